package maps

import (
	"context"
	"errors"
	"testing"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

func TestTravelDuration_OK(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{
	  "status": "OK",
	  "origin_addresses": ["a"], "destination_addresses": ["b"],
	  "rows": [{"elements": [{"status": "OK",
	    "duration": {"value": 720, "text": "12 mins"},
	    "distance": {"value": 5300, "text": "5.3 km"}}]}]
	}`))
	svc := NewRouteService(client, nil)

	got, err := svc.TravelDuration(context.Background(), types.Point{Lat: 46.2, Lng: 6.14}, types.Point{Lat: 46.21, Lng: 6.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Seconds != 720 || got.DistanceMeters != 5300 {
		t.Errorf("unexpected measurement %+v", got)
	}
	if got.DisplayText != "12 mins" || got.DistanceText != "5.3 km" {
		t.Errorf("unexpected texts %+v", got)
	}
}

func TestTravelDuration_ElementNotFound(t *testing.T) {
	client := newTestClient(t, jsonResponse(`{
	  "status": "OK",
	  "origin_addresses": ["a"], "destination_addresses": ["b"],
	  "rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]
	}`))
	svc := NewRouteService(client, NewBreaker("test-routes"))

	_, err := svc.TravelDuration(context.Background(), types.Point{Lat: 0, Lng: 0}, types.Point{Lat: 10, Lng: 10})
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Status != "ZERO_RESULTS" {
		t.Fatalf("expected ProviderError with element status, got %v", err)
	}
}
