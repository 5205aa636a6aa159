// README: Search filters, working relaxation state, notifications and results.
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/AntoineKoerber/whereshouldweeat/internal/maps"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

const (
	// MinCandidates is the smallest pool worth drawing a surprise from.
	MinCandidates = 3

	MaxRadiusMeters = 50000
	MinPriceLevel   = 1
	MaxPriceLevel   = 4
	MaxMinRating    = 4.5
	RatingFloor     = 3.0
)

var ErrInvalidFilter = errors.New("invalid filter")

// FilterSpec is the user's search constraints before any relaxation.
type FilterSpec struct {
	RadiusMeters       int     `json:"radius_meters"`
	MaxPriceLevel      int     `json:"max_price_level"`
	MinRating          float64 `json:"min_rating"`
	CuisineType        string  `json:"cuisine_type"`
	MaxDurationMinutes int     `json:"max_duration_minutes"`
}

// DefaultFilterSpec mirrors the filter screen defaults: 10km, $$, 4+ stars, any cuisine, 20 minutes.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		RadiusMeters:       10000,
		MaxPriceLevel:      2,
		MinRating:          4,
		MaxDurationMinutes: 20,
	}
}

// Validate rejects malformed specs instead of clamping them.
func (f FilterSpec) Validate() error {
	if f.RadiusMeters <= 0 || f.RadiusMeters > MaxRadiusMeters {
		return fmt.Errorf("%w: radius %d outside 1..%d meters", ErrInvalidFilter, f.RadiusMeters, MaxRadiusMeters)
	}
	if f.MaxPriceLevel < MinPriceLevel || f.MaxPriceLevel > MaxPriceLevel {
		return fmt.Errorf("%w: max price level %d outside %d..%d", ErrInvalidFilter, f.MaxPriceLevel, MinPriceLevel, MaxPriceLevel)
	}
	if math.IsNaN(f.MinRating) || f.MinRating < 0 || f.MinRating > MaxMinRating {
		return fmt.Errorf("%w: min rating %v outside 0..%v", ErrInvalidFilter, f.MinRating, MaxMinRating)
	}
	if f.MinRating*2 != math.Trunc(f.MinRating*2) {
		return fmt.Errorf("%w: min rating %v is not a multiple of 0.5", ErrInvalidFilter, f.MinRating)
	}
	if f.MaxDurationMinutes < 0 {
		return fmt.Errorf("%w: max duration %d is negative", ErrInvalidFilter, f.MaxDurationMinutes)
	}
	return nil
}

func (f FilterSpec) normalized() FilterSpec {
	f.CuisineType = strings.TrimSpace(f.CuisineType)
	return f
}

// WorkingFilterState is the copy of a FilterSpec that relaxation mutates.
// The caller's FilterSpec stays untouched so every delta is computed from it.
type WorkingFilterState FilterSpec

func (w WorkingFilterState) query() maps.RestaurantQuery {
	return maps.RestaurantQuery{
		RadiusMeters:  w.RadiusMeters,
		MaxPriceLevel: w.MaxPriceLevel,
		MinRating:     w.MinRating,
		Keyword:       w.CuisineType,
	}
}

type Kind string

const (
	KindWarning Kind = "warning"
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

type Notification struct {
	Kind    Kind   `json:"type"`
	Message string `json:"message"`
}

// Result is what a search hands back to the caller. Candidates is either a
// qualifying set or empty; Filters are the working filters at return time.
type Result struct {
	Candidates    []types.Candidate `json:"restaurants"`
	Notifications []Notification    `json:"notifications"`
	Filters       FilterSpec        `json:"filters"`
}
