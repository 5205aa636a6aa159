// README: Search service runs the staged filter-relaxation pipeline against the place provider.
package search

import (
	"context"
	"math"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
	"github.com/AntoineKoerber/whereshouldweeat/internal/maps"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

// PlaceSearcher is the place-search capability.
type PlaceSearcher interface {
	SearchRestaurants(ctx context.Context, origin types.Point, q maps.RestaurantQuery, exclude types.PlaceIDSet) ([]types.Candidate, error)
}

// DurationEstimator measures travel from an origin to a destination.
type DurationEstimator interface {
	TravelDuration(ctx context.Context, origin, destination types.Point) (types.TravelDuration, error)
}

type Service struct {
	places        PlaceSearcher
	routes        DurationEstimator
	pool          *ants.Pool
	lookupTimeout time.Duration
}

type Option func(*Service)

// WithLookupPool bounds concurrent duration lookups. Without a pool lookups run sequentially.
func WithLookupPool(pool *ants.Pool) Option {
	return func(s *Service) { s.pool = pool }
}

// WithLookupTimeout caps each individual duration lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) { s.lookupTimeout = d }
}

func NewService(places PlaceSearcher, routes DurationEstimator, opts ...Option) *Service {
	s := &Service{places: places, routes: routes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns a qualifying candidate set, relaxing filters stage by stage
// until one is found. Provider failures never surface as errors; the only
// errors are an invalid filter or a cancelled ctx.
func (s *Service) Search(ctx context.Context, origin types.Point, spec FilterSpec, exclude types.PlaceIDSet) (Result, error) {
	spec = spec.normalized()
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}
	if exclude == nil {
		exclude = types.PlaceIDSet{}
	}

	run := &searchRun{
		svc:      s,
		origin:   origin,
		original: spec,
		working:  WorkingFilterState(spec),
		exclude:  exclude,
		notes:    []Notification{},
		log:      logging.Ctx(ctx).With().Str("component", "search").Logger(),
	}
	return run.execute(ctx)
}

// searchRun holds the per-invocation state. Nothing in it outlives a Search call.
type searchRun struct {
	svc      *Service
	origin   types.Point
	original FilterSpec
	working  WorkingFilterState
	exclude  types.PlaceIDSet
	notes    []Notification
	log      zerolog.Logger
}

type stage struct {
	name string
	run  func(ctx context.Context) []types.Candidate
}

func (r *searchRun) execute(ctx context.Context) (Result, error) {
	stages := []stage{
		{"baseline", r.baseline},
		{"radius", r.expandRadius},
		{"rating", r.relaxRating},
		{"budget", r.relaxBudget},
		{"cuisine", r.dropCuisine},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if found := st.run(ctx); found != nil {
			r.log.Info().Str("stage", st.name).Int("candidates", len(found)).Int("notifications", len(r.notes)).Msg("qualifying set found")
			return r.result(found), nil
		}
	}

	r.notify(KindError, msgNoResults)
	r.log.Info().Int("notifications", len(r.notes)).Msg("relaxation exhausted")
	return r.result([]types.Candidate{}), nil
}

func (r *searchRun) result(candidates []types.Candidate) Result {
	return Result{
		Candidates:    candidates,
		Notifications: r.notes,
		Filters:       FilterSpec(r.working),
	}
}

func (r *searchRun) notify(kind Kind, msg string) {
	r.notes = append(r.notes, Notification{Kind: kind, Message: msg})
}

func (r *searchRun) baseline(ctx context.Context) []types.Candidate {
	return r.attempt(ctx, "baseline")
}

func (r *searchRun) expandRadius(ctx context.Context) []types.Candidate {
	if r.working.RadiusMeters >= MaxRadiusMeters {
		return nil
	}
	from := r.working.RadiusMeters
	r.working.RadiusMeters = min(from*2, MaxRadiusMeters)
	r.notify(KindWarning, radiusExpanded(from, r.working.RadiusMeters))
	return r.attempt(ctx, "radius")
}

// relaxRating walks down in half stars from the original rating to the floor.
func (r *searchRun) relaxRating(ctx context.Context) []types.Candidate {
	if r.working.MinRating <= RatingFloor {
		return nil
	}
	floor := int(RatingFloor * 2)
	for half := int(math.Round(r.original.MinRating*2)) - 1; half >= floor; half-- {
		if err := ctx.Err(); err != nil {
			return nil
		}
		rating := float64(half) / 2
		r.working.MinRating = rating
		r.notify(KindWarning, ratingLowered(r.original.MinRating, rating))
		if found := r.attempt(ctx, "rating"); found != nil {
			return found
		}
	}
	return nil
}

// relaxBudget allows exactly one level above the original budget.
func (r *searchRun) relaxBudget(ctx context.Context) []types.Candidate {
	if r.working.MaxPriceLevel >= MaxPriceLevel {
		return nil
	}
	next := min(r.original.MaxPriceLevel+1, MaxPriceLevel)
	if next == r.original.MaxPriceLevel {
		return nil
	}
	r.working.MaxPriceLevel = next
	r.notify(KindWarning, budgetRelaxed(r.original.MaxPriceLevel, next))
	return r.attempt(ctx, "budget")
}

func (r *searchRun) dropCuisine(ctx context.Context) []types.Candidate {
	if r.original.CuisineType == "" || r.working.CuisineType == "" {
		return nil
	}
	r.working.CuisineType = ""
	r.notify(KindWarning, cuisineRemoved(r.original.CuisineType))
	return r.attempt(ctx, "cuisine")
}

// attempt runs one fresh provider query plus the duration post-filter and
// returns the qualifying set, or nil when it is too small.
func (r *searchRun) attempt(ctx context.Context, stageName string) []types.Candidate {
	q := r.working.query()
	raw, err := r.svc.places.SearchRestaurants(ctx, r.origin, q, r.exclude)
	if err != nil {
		r.log.Warn().Err(err).Str("stage", stageName).Msg("place search failed; treating stage as empty")
		return nil
	}

	qualifying := r.svc.filterByDuration(ctx, r.origin, raw, r.working.MaxDurationMinutes)
	r.log.Debug().
		Str("stage", stageName).
		Int("radius_m", q.RadiusMeters).
		Int("max_price", q.MaxPriceLevel).
		Float64("min_rating", q.MinRating).
		Str("keyword", q.Keyword).
		Int("raw", len(raw)).
		Int("qualifying", len(qualifying)).
		Msg("stage query")

	if len(qualifying) < MinCandidates {
		return nil
	}
	return qualifying
}
