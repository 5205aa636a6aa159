package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"googlemaps.github.io/maps"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *maps.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient("test-key", 0, maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jsonResponse(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

const nearbyBody = `{
  "status": "OK",
  "results": [
    {"place_id": "keep", "name": "Baan Thai", "rating": 4.5, "price_level": 2,
     "types": ["restaurant", "food"], "vicinity": "1 Main St",
     "geometry": {"location": {"lat": 46.2, "lng": 6.1}},
     "opening_hours": {"open_now": true}},
    {"place_id": "visited", "name": "Thai Garden", "rating": 4.6,
     "types": ["restaurant"], "geometry": {"location": {"lat": 46.2, "lng": 6.1}}},
    {"place_id": "chain", "name": "McDonald's Cornavin", "rating": 4.1,
     "types": ["restaurant"], "geometry": {"location": {"lat": 46.2, "lng": 6.1}}},
    {"place_id": "fuel", "name": "Shell Station", "rating": 4.2,
     "types": ["gas_station", "point_of_interest"], "geometry": {"location": {"lat": 46.2, "lng": 6.1}}},
    {"place_id": "closed", "name": "Sawasdee", "rating": 4.4,
     "types": ["restaurant"], "geometry": {"location": {"lat": 46.2, "lng": 6.1}},
     "opening_hours": {"open_now": false}},
    {"place_id": "low", "name": "Noodle Corner", "rating": 3.2,
     "types": ["restaurant"], "geometry": {"location": {"lat": 46.2, "lng": 6.1}}}
  ]
}`

func TestSearchRestaurants_FiltersResults(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		jsonResponse(nearbyBody)(w, r)
	})
	svc := NewPlacesService(client, nil)

	got, err := svc.SearchRestaurants(context.Background(), types.Point{Lat: 46.2, Lng: 6.14},
		RestaurantQuery{RadiusMeters: 10000, MaxPriceLevel: 2, MinRating: 4, Keyword: "thai"},
		types.NewPlaceIDSet("visited"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "keep" {
		t.Fatalf("expected only 'keep', got %+v", got)
	}
	if got[0].Address != "1 Main St" {
		t.Errorf("expected vicinity fallback address, got %q", got[0].Address)
	}
	if got[0].Travel != nil {
		t.Errorf("search results must not carry travel data")
	}
	for _, want := range []string{"keyword=thai", "maxprice=2", "opennow=true", "radius=10000", "type=restaurant"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("expected %q in request query %q", want, gotQuery)
		}
	}
}

func TestSearchRestaurants_ZeroResultsIsEmpty(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{"status": "ZERO_RESULTS", "results": []}`))
	svc := NewPlacesService(client, nil)

	got, err := svc.SearchRestaurants(context.Background(), types.Point{Lat: 1, Lng: 1},
		RestaurantQuery{RadiusMeters: 1000}, nil)
	if err != nil {
		t.Fatalf("ZERO_RESULTS must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestSearchRestaurants_QuotaIsProviderError(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{"status": "OVER_QUERY_LIMIT", "error_message": "quota", "results": []}`))
	svc := NewPlacesService(client, NewBreaker("test-places"))

	_, err := svc.SearchRestaurants(context.Background(), types.Point{Lat: 1, Lng: 1},
		RestaurantQuery{RadiusMeters: 1000}, nil)
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.Op != "nearby_search" {
		t.Errorf("expected op nearby_search, got %s", pe.Op)
	}
}

func TestIsChain(t *testing.T) {
	tests := map[string]bool{
		"McDonald's":        true,
		"KFC Plainpalais":   true,
		"IKEA Restaurant":   true,
		"Chez Marcel":       false,
		"":                  false,
		"Le Petit Bistrot":  false,
		"Costco Food Court": true,
	}
	for name, want := range tests {
		if got := isChain(name); got != want {
			t.Errorf("isChain(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsNonRestaurant(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  bool
	}{
		{"no types", nil, false},
		{"restaurant", []string{"restaurant", "point_of_interest"}, false},
		{"bar serving food", []string{"bar", "restaurant"}, false},
		{"pure bar", []string{"bar", "point_of_interest"}, true},
		{"night club", []string{"night_club"}, true},
		{"gas station", []string{"gas_station", "store"}, true},
		{"unknown only", []string{"point_of_interest", "establishment"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNonRestaurant(tt.types); got != tt.want {
				t.Errorf("isNonRestaurant(%v) = %v, want %v", tt.types, got, tt.want)
			}
		})
	}
}
