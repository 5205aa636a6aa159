package search

import (
	"context"
	"sync"

	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

type lookupResult struct {
	travel types.TravelDuration
	err    error
}

// filterByDuration keeps candidates reachable within maxMinutes and annotates
// them with the measured duration. A candidate whose lookup fails is kept
// unannotated. Every lookup completes before this returns.
func (s *Service) filterByDuration(ctx context.Context, origin types.Point, raw []types.Candidate, maxMinutes int) []types.Candidate {
	if maxMinutes <= 0 || len(raw) == 0 || s.routes == nil {
		return raw
	}
	limit := maxMinutes * 60

	results := make([]lookupResult, len(raw))
	var wg sync.WaitGroup
	for i := range raw {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = s.lookup(ctx, origin, raw[i].Location)
		}
		if s.pool == nil {
			task()
			continue
		}
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	out := make([]types.Candidate, 0, len(raw))
	for i, res := range results {
		if res.err != nil {
			logging.Ctx(ctx).Debug().Err(res.err).Str("place_id", raw[i].PlaceID).Msg("duration lookup failed; keeping candidate")
			out = append(out, raw[i])
			continue
		}
		if res.travel.Seconds <= limit {
			out = append(out, raw[i].WithTravel(res.travel))
		}
	}
	return out
}

func (s *Service) lookup(ctx context.Context, origin, dest types.Point) lookupResult {
	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}
	d, err := s.routes.TravelDuration(ctx, origin, dest)
	return lookupResult{travel: d, err: err}
}
