package search

import (
	"testing"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

func TestChoose_Empty(t *testing.T) {
	if _, ok := Choose(nil); ok {
		t.Fatal("expected no choice from nil list")
	}
	if _, ok := Choose([]types.Candidate{}); ok {
		t.Fatal("expected no choice from empty list")
	}
}

func TestChoose_Single(t *testing.T) {
	got, ok := Choose([]types.Candidate{{PlaceID: "only"}})
	if !ok || got.PlaceID != "only" {
		t.Fatalf("expected the only candidate, got %+v", got)
	}
}

// TestChoose_Distribution draws 3000 times from 3 candidates; each should land
// near 1000. The ±150 bound is several standard deviations wide.
func TestChoose_Distribution(t *testing.T) {
	pool := []types.Candidate{{PlaceID: "a"}, {PlaceID: "b"}, {PlaceID: "c"}}
	counts := make(map[string]int, len(pool))
	const trials = 3000
	for i := 0; i < trials; i++ {
		c, ok := Choose(pool)
		if !ok {
			t.Fatal("unexpected empty choice")
		}
		counts[c.PlaceID]++
	}
	expected := trials / len(pool)
	for _, c := range pool {
		if n := counts[c.PlaceID]; n < expected-150 || n > expected+150 {
			t.Errorf("candidate %s chosen %d times, want %d±150", c.PlaceID, n, expected)
		}
	}
}

func TestChoose_DoesNotMutateInput(t *testing.T) {
	pool := []types.Candidate{{PlaceID: "a"}, {PlaceID: "b"}}
	for i := 0; i < 20; i++ {
		Choose(pool)
	}
	if pool[0].PlaceID != "a" || pool[1].PlaceID != "b" {
		t.Fatalf("input mutated: %+v", pool)
	}
}
