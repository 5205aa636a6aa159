// README: Shared Google Maps client construction and the provider error taxonomy.
package maps

import (
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

var (
	// ErrNoRoute reports that the provider could not route between two points.
	ErrNoRoute = errors.New("no route found")
	// ErrNotFound reports a lookup with no matching result.
	ErrNotFound = errors.New("no result found")
)

// ProviderError wraps any failure coming back from the maps provider:
// transport, quota, invalid request, per-element status or an open breaker.
type ProviderError struct {
	Op     string
	Status string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("maps %s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("maps %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewClient builds the single maps client shared by all services.
// rps <= 0 keeps the library default rate limit.
func NewClient(apiKey string, rps int, opts ...maps.ClientOption) (*maps.Client, error) {
	all := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if rps > 0 {
		all = append(all, maps.WithRateLimit(rps))
	}
	all = append(all, opts...)
	client, err := maps.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

func toLatLng(p types.Point) maps.LatLng {
	return maps.LatLng{Lat: p.Lat, Lng: p.Lng}
}
