package maps

import (
	"math"
	"strings"
	"testing"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 46.2044, lng1: 6.1432,
			lat2: 46.2044, lng2: 6.1432,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "Geneva to Lausanne (~51km)",
			lat1: 46.2044, lng1: 6.1432,
			lat2: 46.5197, lng2: 6.6323,
			wantKm:    51,
			tolerance: 2,
		},
		{
			name: "New York to Los Angeles (~3944km)",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(46.0, 6.0, 47.0, 7.0)
	d2 := haversineKm(47.0, 7.0, 46.0, 6.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestEstimateTravel_DrivingFasterThanWalking(t *testing.T) {
	est := EstimateTravel(types.Point{Lat: 46.2044, Lng: 6.1432}, types.Point{Lat: 46.2300, Lng: 6.1432})
	if est.Driving.Seconds >= est.Walking.Seconds {
		t.Errorf("driving %ds should be faster than walking %ds", est.Driving.Seconds, est.Walking.Seconds)
	}
	if est.Driving.DistanceMeters != est.Walking.DistanceMeters {
		t.Errorf("both modes share the straight-line distance")
	}
	if !strings.HasSuffix(est.Driving.DistanceText, "km") {
		t.Errorf("expected km distance text, got %q", est.Driving.DistanceText)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{
		0:   "0 mins",
		1:   "1 min",
		12:  "12 mins",
		60:  "1 hour",
		61:  "1 hour 1 min",
		125: "2 hours 5 mins",
	}
	for in, want := range tests {
		if got := formatMinutes(in); got != want {
			t.Errorf("formatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	if got := formatDistance(850); got != "850 m" {
		t.Errorf("got %q", got)
	}
	if got := formatDistance(3240); got != "3.2 km" {
		t.Errorf("got %q", got)
	}
}

func TestNavigationURL(t *testing.T) {
	ios := NavigationURL(46.2, 6.1, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)")
	if !strings.HasPrefix(ios, "maps://maps.apple.com/?daddr=46.2,6.1") {
		t.Errorf("unexpected iOS url %s", ios)
	}
	android := NavigationURL(46.2, 6.1, "Mozilla/5.0 (Linux; Android 14)")
	if android != "https://www.google.com/maps/dir/?api=1&destination=46.2,6.1" {
		t.Errorf("unexpected url %s", android)
	}
}
