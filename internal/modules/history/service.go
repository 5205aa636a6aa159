// README: History service records visits and serves the recent-visit exclusion set.
package history

import (
	"context"
	"fmt"

	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

// DefaultExcludeLimit is how many recent visits are kept out of new searches.
const DefaultExcludeLimit = 10

type Repository interface {
	Insert(ctx context.Context, v *Visit) error
	SetUserRating(ctx context.Context, sessionID string, id int64, rating int) error
	MarkRevealed(ctx context.Context, sessionID string, id int64) error
	RecentPlaceIDs(ctx context.Context, sessionID string, limit int) ([]string, error)
	List(ctx context.Context, sessionID string) ([]Visit, error)
}

type RecentCache interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]string, error)
	Push(ctx context.Context, sessionID, placeID string, limit int) error
	Fill(ctx context.Context, sessionID string, ids []string) error
}

type Service struct {
	repo  Repository
	cache RecentCache
	limit int
}

// NewService wires the repository with an optional cache (nil disables it).
func NewService(repo Repository, cache RecentCache, excludeLimit int) *Service {
	if excludeLimit <= 0 {
		excludeLimit = DefaultExcludeLimit
	}
	return &Service{repo: repo, cache: cache, limit: excludeLimit}
}

// RecentlyVisitedIDs returns the place ids of the session's last visits.
// Read failures degrade to an empty set so a search can still run.
func (s *Service) RecentlyVisitedIDs(ctx context.Context, sessionID string) types.PlaceIDSet {
	if sessionID == "" {
		return types.PlaceIDSet{}
	}
	log := logging.Ctx(ctx)

	if s.cache != nil {
		ids, err := s.cache.Recent(ctx, sessionID, s.limit)
		if err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("recent history cache read failed")
		} else if len(ids) > 0 {
			set := types.NewPlaceIDSet(ids...)
			log.Debug().Str("session_id", sessionID).Strs("excluded_ids", set.IDs()).Msg("excluding recently visited restaurants (cached)")
			return set
		}
	}

	ids, err := s.repo.RecentPlaceIDs(ctx, sessionID, s.limit)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("fetch history failed; excluding nothing")
		return types.PlaceIDSet{}
	}
	if s.cache != nil && len(ids) > 0 {
		if err := s.cache.Fill(ctx, sessionID, ids); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("recent history cache refill failed")
		}
	}
	set := types.NewPlaceIDSet(ids...)
	log.Debug().Str("session_id", sessionID).Strs("excluded_ids", set.IDs()).Msg("excluding recently visited restaurants")
	return set
}

// RecordVisit saves the chosen restaurant and returns the new history id.
func (s *Service) RecordVisit(ctx context.Context, sessionID string, c types.Candidate) (int64, error) {
	if sessionID == "" {
		return 0, ErrMissingSession
	}
	v := NewVisit(sessionID, c)
	if err := s.repo.Insert(ctx, &v); err != nil {
		return 0, fmt.Errorf("save history: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Push(ctx, sessionID, c.PlaceID, s.limit); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("session_id", sessionID).Msg("recent history cache push failed")
		}
	}
	return v.ID, nil
}

func (s *Service) RecordRating(ctx context.Context, sessionID string, id int64, rating int) error {
	if !ValidRating(rating) {
		return ErrInvalidRating
	}
	if err := s.repo.SetUserRating(ctx, sessionID, id, rating); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

func (s *Service) MarkRevealed(ctx context.Context, sessionID string, id int64) error {
	if err := s.repo.MarkRevealed(ctx, sessionID, id); err != nil {
		return fmt.Errorf("mark revealed: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]Visit, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	visits, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return visits, nil
}
