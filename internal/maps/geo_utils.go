// README: Straight-line geography used when a routed travel time is unavailable.
package maps

import (
	"fmt"
	"math"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

const (
	earthRadiusKm = 6371.0

	// Rough city averages including stops and traffic.
	drivingKmh = 30.0
	walkingKmh = 5.0
)

// ApproximateTravel holds straight-line estimates for driving and walking.
type ApproximateTravel struct {
	Driving types.TravelDuration `json:"driving"`
	Walking types.TravelDuration `json:"walking"`
}

// EstimateTravel approximates travel from origin to destination without calling the provider.
func EstimateTravel(origin, destination types.Point) ApproximateTravel {
	meters := haversineKm(origin.Lat, origin.Lng, destination.Lat, destination.Lng) * 1000
	km := meters / 1000
	return ApproximateTravel{
		Driving: estimate(meters, int(math.Round(km/drivingKmh*60))),
		Walking: estimate(meters, int(math.Round(km/walkingKmh*60))),
	}
}

func estimate(meters float64, minutes int) types.TravelDuration {
	return types.TravelDuration{
		Seconds:        minutes * 60,
		DistanceMeters: int(math.Round(meters)),
		DisplayText:    formatMinutes(minutes),
		DistanceText:   formatDistance(meters),
	}
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// formatMinutes renders "12 mins", "1 hour", "2 hours 5 mins".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return plural(minutes, "min")
	}
	hours, mins := minutes/60, minutes%60
	if mins == 0 {
		return plural(hours, "hour")
	}
	return plural(hours, "hour") + " " + plural(mins, "min")
}

// formatDistance renders "850 m" below a kilometre and "3.2 km" above.
func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
