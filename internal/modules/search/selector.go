package search

import (
	"math/rand/v2"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

// Choose draws one candidate uniformly at random. ok is false only for an
// empty list. Every call draws afresh.
func Choose(candidates []types.Candidate) (types.Candidate, bool) {
	if len(candidates) == 0 {
		return types.Candidate{}, false
	}
	return candidates[rand.IntN(len(candidates))], true
}
