// README: Reveal flow tests with fake search, history and routing.
package reveal

import (
	"context"
	"errors"
	"testing"

	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/history"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

var origin = types.Point{Lat: 46.2044, Lng: 6.1432}

type fakeSearch struct {
	result  search.Result
	err     error
	exclude types.PlaceIDSet
}

func (f *fakeSearch) Search(_ context.Context, _ types.Point, _ search.FilterSpec, exclude types.PlaceIDSet) (search.Result, error) {
	f.exclude = exclude
	return f.result, f.err
}

type fakeHistory struct {
	recent    types.PlaceIDSet
	saved     []types.Candidate
	owners    map[int64]string
	saveErr   error
	revealed  []int64
	ratings   map[int64]int
	ratingErr error
}

func (f *fakeHistory) RecentlyVisitedIDs(context.Context, string) types.PlaceIDSet {
	if f.recent == nil {
		return types.PlaceIDSet{}
	}
	return f.recent
}

func (f *fakeHistory) RecordVisit(_ context.Context, sessionID string, c types.Candidate) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.saved = append(f.saved, c)
	id := int64(len(f.saved))
	if f.owners == nil {
		f.owners = map[int64]string{}
	}
	f.owners[id] = sessionID
	return id, nil
}

func (f *fakeHistory) owns(sessionID string, id int64) bool {
	owner, ok := f.owners[id]
	return ok && owner == sessionID
}

func (f *fakeHistory) MarkRevealed(_ context.Context, sessionID string, id int64) error {
	if !f.owns(sessionID, id) {
		return history.ErrNotFound
	}
	f.revealed = append(f.revealed, id)
	return nil
}

func (f *fakeHistory) RecordRating(_ context.Context, sessionID string, id int64, rating int) error {
	if f.ratingErr != nil {
		return f.ratingErr
	}
	if !f.owns(sessionID, id) {
		return history.ErrNotFound
	}
	if f.ratings == nil {
		f.ratings = map[int64]int{}
	}
	f.ratings[id] = rating
	return nil
}

type fakeRouter struct {
	travel types.TravelDuration
	err    error
	calls  int
}

func (f *fakeRouter) TravelDuration(context.Context, types.Point, types.Point) (types.TravelDuration, error) {
	f.calls++
	return f.travel, f.err
}

func pool() []types.Candidate {
	return []types.Candidate{
		{PlaceID: "a", Location: types.Point{Lat: 46.21, Lng: 6.15}},
		{PlaceID: "b", Location: types.Point{Lat: 46.22, Lng: 6.16}},
		{PlaceID: "c", Location: types.Point{Lat: 46.23, Lng: 6.17}},
	}
}

func TestRecommend_ChoosesAndRecords(t *testing.T) {
	h := &fakeHistory{recent: types.NewPlaceIDSet("old")}
	s := &fakeSearch{result: search.Result{Candidates: pool(), Notifications: []search.Notification{}}}
	r := &fakeRouter{travel: types.TravelDuration{Seconds: 480, DisplayText: "8 mins"}}

	rec, err := NewService(s, h, r).Recommend(context.Background(), "s1", origin, search.DefaultFilterSpec())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.Restaurant == nil {
		t.Fatal("expected a restaurant")
	}
	if !s.exclude.Has("old") {
		t.Error("recent visits must be excluded from the search")
	}
	if len(h.saved) != 1 || h.saved[0].PlaceID != rec.Restaurant.PlaceID || rec.HistoryID != 1 {
		t.Fatalf("chosen restaurant not recorded: saved=%v id=%d", h.saved, rec.HistoryID)
	}
	if rec.Travel == nil || rec.Travel.Approximate || rec.Travel.Walking != nil || rec.Travel.Driving.Seconds != 480 {
		t.Fatalf("unexpected travel %+v", rec.Travel)
	}
}

func TestRecommend_ReusesMeasuredTravel(t *testing.T) {
	measured := types.TravelDuration{Seconds: 300}
	cands := pool()
	for i := range cands {
		cands[i] = cands[i].WithTravel(measured)
	}
	r := &fakeRouter{}
	svc := NewService(&fakeSearch{result: search.Result{Candidates: cands}}, &fakeHistory{}, r)

	rec, err := svc.Recommend(context.Background(), "s1", origin, search.DefaultFilterSpec())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if r.calls != 0 {
		t.Errorf("already measured travel must not be looked up again, calls=%d", r.calls)
	}
	if rec.Travel.Driving.Seconds != 300 {
		t.Errorf("unexpected travel %+v", rec.Travel)
	}
}

func TestRecommend_ApproximateWhenRoutingFails(t *testing.T) {
	r := &fakeRouter{err: errors.New("OVER_QUERY_LIMIT")}
	svc := NewService(&fakeSearch{result: search.Result{Candidates: pool()}}, &fakeHistory{}, r)
	svc.choose = func(c []types.Candidate) (types.Candidate, bool) { return c[0], true }

	rec, err := svc.Recommend(context.Background(), "s1", origin, search.DefaultFilterSpec())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.Travel == nil || !rec.Travel.Approximate {
		t.Fatalf("expected approximate travel, got %+v", rec.Travel)
	}
	if rec.Travel.Driving.Seconds <= 0 || rec.Travel.Driving.DisplayText == "" {
		t.Errorf("approximation not filled: %+v", rec.Travel.Driving)
	}
	if rec.Travel.Walking == nil || rec.Travel.Walking.Seconds <= rec.Travel.Driving.Seconds {
		t.Errorf("expected a slower walking estimate, got %+v", rec.Travel.Walking)
	}
}

func TestRecommend_NoCandidates(t *testing.T) {
	notes := []search.Notification{{Kind: search.KindError, Message: "none"}}
	h := &fakeHistory{}
	svc := NewService(&fakeSearch{result: search.Result{Candidates: []types.Candidate{}, Notifications: notes}}, h, &fakeRouter{})

	rec, err := svc.Recommend(context.Background(), "s1", origin, search.DefaultFilterSpec())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.Restaurant != nil || rec.Travel != nil || rec.HistoryID != 0 {
		t.Fatalf("expected empty recommendation, got %+v", rec)
	}
	if len(rec.Notifications) != 1 || rec.Notifications[0].Kind != search.KindError {
		t.Fatalf("notifications not forwarded: %v", rec.Notifications)
	}
	if len(h.saved) != 0 {
		t.Fatal("nothing should be recorded")
	}
}

func TestRecommend_HistoryFailureStillRecommends(t *testing.T) {
	h := &fakeHistory{saveErr: errors.New("db down")}
	svc := NewService(&fakeSearch{result: search.Result{Candidates: pool()}}, h, &fakeRouter{})

	rec, err := svc.Recommend(context.Background(), "s1", origin, search.DefaultFilterSpec())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.Restaurant == nil || rec.HistoryID != 0 {
		t.Fatalf("expected restaurant without history id, got %+v", rec)
	}
}

func TestRecommend_SearchError(t *testing.T) {
	svc := NewService(&fakeSearch{err: search.ErrInvalidFilter}, &fakeHistory{}, &fakeRouter{})
	if _, err := svc.Recommend(context.Background(), "s1", origin, search.FilterSpec{}); !errors.Is(err, search.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestRevealAndRate(t *testing.T) {
	h := &fakeHistory{owners: map[int64]string{7: "s1"}}
	svc := NewService(&fakeSearch{}, h, nil)
	ctx := context.Background()

	if err := svc.Reveal(ctx, "s1", 7); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if len(h.revealed) != 1 || h.revealed[0] != 7 {
		t.Fatalf("reveal not forwarded: %v", h.revealed)
	}

	note, err := svc.Rate(ctx, "s1", 7, 4)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if note.Kind != search.KindSuccess || note.Message != "Thanks for rating! Your 4-star review has been saved." {
		t.Fatalf("unexpected notification %+v", note)
	}

	h.ratingErr = history.ErrInvalidRating
	if _, err := svc.Rate(ctx, "s1", 7, 9); !errors.Is(err, history.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestRevealAndRate_OtherSessionNotFound(t *testing.T) {
	h := &fakeHistory{owners: map[int64]string{7: "owner"}}
	svc := NewService(&fakeSearch{}, h, nil)
	ctx := context.Background()

	if err := svc.Reveal(ctx, "intruder", 7); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on reveal, got %v", err)
	}
	if _, err := svc.Rate(ctx, "intruder", 7, 5); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on rate, got %v", err)
	}
	if len(h.revealed) != 0 || len(h.ratings) != 0 {
		t.Fatalf("foreign entry was modified: revealed=%v ratings=%v", h.revealed, h.ratings)
	}
}
