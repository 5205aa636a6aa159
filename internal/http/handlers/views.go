package handlers

import (
	"github.com/AntoineKoerber/whereshouldweeat/internal/maps"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

// filtersRequest overlays the caller's fields on search.DefaultFilterSpec.
type filtersRequest struct {
	RadiusMeters       *int     `json:"radius_meters"`
	MaxPriceLevel      *int     `json:"max_price_level"`
	MinRating          *float64 `json:"min_rating"`
	CuisineType        *string  `json:"cuisine_type"`
	MaxDurationMinutes *int     `json:"max_duration_minutes"`
}

func (f *filtersRequest) spec() search.FilterSpec {
	spec := search.DefaultFilterSpec()
	if f == nil {
		return spec
	}
	if f.RadiusMeters != nil {
		spec.RadiusMeters = *f.RadiusMeters
	}
	if f.MaxPriceLevel != nil {
		spec.MaxPriceLevel = *f.MaxPriceLevel
	}
	if f.MinRating != nil {
		spec.MinRating = *f.MinRating
	}
	if f.CuisineType != nil {
		spec.CuisineType = *f.CuisineType
	}
	if f.MaxDurationMinutes != nil {
		spec.MaxDurationMinutes = *f.MaxDurationMinutes
	}
	return spec
}

// restaurantView is a candidate as the client renders it.
type restaurantView struct {
	types.Candidate
	DurationKnown bool   `json:"duration_known"`
	NavigationURL string `json:"navigation_url"`
}

func newRestaurantView(c types.Candidate, userAgent string) restaurantView {
	return restaurantView{
		Candidate:     c,
		DurationKnown: c.Travel != nil,
		NavigationURL: maps.NavigationURL(c.Location.Lat, c.Location.Lng, userAgent),
	}
}

func newRestaurantViews(cs []types.Candidate, userAgent string) []restaurantView {
	out := make([]restaurantView, len(cs))
	for i, c := range cs {
		out[i] = newRestaurantView(c, userAgent)
	}
	return out
}
