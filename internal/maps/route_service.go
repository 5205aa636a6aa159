package maps

import (
	"context"
	"math"

	"googlemaps.github.io/maps"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

// RouteService handles Distance Matrix lookups.
type RouteService struct {
	client  *maps.Client
	breaker *Breaker
}

func NewRouteService(client *maps.Client, breaker *Breaker) *RouteService {
	return &RouteService{client: client, breaker: breaker}
}

// TravelDuration returns the driving duration and distance from origin to destination.
func (s *RouteService) TravelDuration(ctx context.Context, origin, destination types.Point) (types.TravelDuration, error) {
	from, to := toLatLng(origin), toLatLng(destination)
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{from.String()},
		Destinations: []string{to.String()},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}

	resp, err := execute(s.breaker, "distance_matrix", func() (*maps.DistanceMatrixResponse, error) {
		return s.client.DistanceMatrix(ctx, r)
	})
	if err != nil {
		return types.TravelDuration{}, err
	}
	if resp == nil || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return types.TravelDuration{}, &ProviderError{Op: "distance_matrix", Err: ErrNoRoute}
	}

	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return types.TravelDuration{}, &ProviderError{Op: "distance_matrix", Status: el.Status, Err: ErrNoRoute}
	}

	seconds := int(el.Duration.Seconds())
	return types.TravelDuration{
		Seconds:        seconds,
		DistanceMeters: el.Distance.Meters,
		DisplayText:    formatMinutes(int(math.Round(float64(seconds) / 60))),
		DistanceText:   distanceText(el.Distance),
	}, nil
}

func distanceText(d maps.Distance) string {
	if d.HumanReadable != "" {
		return d.HumanReadable
	}
	return formatDistance(float64(d.Meters))
}
