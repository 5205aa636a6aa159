// README: Reveal service chains exclusion lookup, search, selection, travel info and history.
package reveal

import (
	"context"

	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
	"github.com/AntoineKoerber/whereshouldweeat/internal/maps"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

type Searcher interface {
	Search(ctx context.Context, origin types.Point, spec search.FilterSpec, exclude types.PlaceIDSet) (search.Result, error)
}

type History interface {
	RecentlyVisitedIDs(ctx context.Context, sessionID string) types.PlaceIDSet
	RecordVisit(ctx context.Context, sessionID string, c types.Candidate) (int64, error)
	MarkRevealed(ctx context.Context, sessionID string, id int64) error
	RecordRating(ctx context.Context, sessionID string, id int64, rating int) error
}

type Router interface {
	TravelDuration(ctx context.Context, origin, destination types.Point) (types.TravelDuration, error)
}

type Service struct {
	search  Searcher
	history History
	routes  Router
	choose  func([]types.Candidate) (types.Candidate, bool)
}

func NewService(s Searcher, h History, r Router) *Service {
	return &Service{search: s, history: h, routes: r, choose: search.Choose}
}

// Recommend excludes the session's recent visits, searches, and picks one restaurant.
// With no qualifying set the recommendation carries no restaurant and the
// search notifications end with the error entry.
func (s *Service) Recommend(ctx context.Context, sessionID string, origin types.Point, spec search.FilterSpec) (Recommendation, error) {
	exclude := s.history.RecentlyVisitedIDs(ctx, sessionID)

	res, err := s.search.Search(ctx, origin, spec, exclude)
	if err != nil {
		return Recommendation{}, err
	}
	rec := Recommendation{Notifications: res.Notifications, Filters: res.Filters}

	chosen, ok := s.choose(res.Candidates)
	if !ok {
		return rec, nil
	}
	rec.Restaurant = &chosen
	rec.Travel = s.travelInfo(ctx, origin, chosen)

	log := logging.Ctx(ctx)
	id, err := s.history.RecordVisit(ctx, sessionID, chosen)
	if err != nil {
		// The pick is still shown; it just cannot be revealed or rated later.
		log.Warn().Err(err).Str("place_id", chosen.PlaceID).Msg("save history failed")
	} else {
		rec.HistoryID = id
	}
	log.Info().
		Str("place_id", chosen.PlaceID).
		Int("pool", len(res.Candidates)).
		Int("excluded", exclude.Len()).
		Int64("history_id", rec.HistoryID).
		Msg("restaurant chosen")
	return rec, nil
}

func (s *Service) travelInfo(ctx context.Context, origin types.Point, c types.Candidate) *TravelInfo {
	if c.Travel != nil {
		return &TravelInfo{Driving: *c.Travel}
	}
	if s.routes != nil {
		d, err := s.routes.TravelDuration(ctx, origin, c.Location)
		if err == nil {
			return &TravelInfo{Driving: d}
		}
		logging.Ctx(ctx).Debug().Err(err).Str("place_id", c.PlaceID).Msg("distance matrix failed; using approximation")
	}
	approx := maps.EstimateTravel(origin, c.Location)
	return &TravelInfo{Driving: approx.Driving, Walking: &approx.Walking, Approximate: true}
}

// Reveal marks the session's history entry as revealed. Entries owned by
// another session are reported as not found.
func (s *Service) Reveal(ctx context.Context, sessionID string, historyID int64) error {
	return s.history.MarkRevealed(ctx, sessionID, historyID)
}

// Rate stores the user's rating and returns the confirmation to show.
func (s *Service) Rate(ctx context.Context, sessionID string, historyID int64, rating int) (search.Notification, error) {
	if err := s.history.RecordRating(ctx, sessionID, historyID, rating); err != nil {
		return search.Notification{}, err
	}
	return search.RatingSaved(rating), nil
}
