package maps

import (
	"context"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

type GeocodeResult struct {
	Location         types.Point `json:"location"`
	FormattedAddress string      `json:"formatted_address"`
}

// GeocodeService resolves free-text addresses to coordinates.
type GeocodeService struct {
	client  *maps.Client
	breaker *Breaker
}

func NewGeocodeService(client *maps.Client, breaker *Breaker) *GeocodeService {
	return &GeocodeService{client: client, breaker: breaker}
}

// Geocode returns the first match for address.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return GeocodeResult{}, &ProviderError{Op: "geocode", Status: "INVALID_REQUEST", Err: ErrNotFound}
	}

	results, err := execute(s.breaker, "geocode", func() ([]maps.GeocodingResult, error) {
		return s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	})
	if err != nil {
		return GeocodeResult{}, err
	}
	if len(results) == 0 {
		return GeocodeResult{}, &ProviderError{Op: "geocode", Status: "ZERO_RESULTS", Err: ErrNotFound}
	}

	first := results[0]
	return GeocodeResult{
		Location:         types.Point{Lat: first.Geometry.Location.Lat, Lng: first.Geometry.Location.Lng},
		FormattedAddress: first.FormattedAddress,
	}, nil
}
