package search

import (
	"fmt"
	"strconv"
)

const msgNoResults = "Unable to find enough restaurants matching your criteria. Please try different settings or a different location."

var budgetLabels = map[int]string{1: "$", 2: "$$", 3: "$$$", 4: "$$$$"}

func radiusExpanded(fromMeters, toMeters int) string {
	return fmt.Sprintf("Not enough options found. Expanded search radius from %.1fkm to %.1fkm.",
		float64(fromMeters)/1000, float64(toMeters)/1000)
}

func ratingLowered(from, to float64) string {
	return fmt.Sprintf("Still searching... Lowered minimum rating from %s+ to %s+ stars.", stars(from), stars(to))
}

func budgetRelaxed(from, to int) string {
	return fmt.Sprintf("Still not enough options. Relaxed budget from %s to %s (max 1 level increase).",
		budgetLabels[from], budgetLabels[to])
}

func cuisineRemoved(cuisine string) string {
	return fmt.Sprintf("Broadening search... Removed %q cuisine filter to find more options.", cuisine)
}

// RatingSaved is the confirmation shown after a visit is rated.
func RatingSaved(rating int) Notification {
	return Notification{
		Kind:    KindSuccess,
		Message: fmt.Sprintf("Thanks for rating! Your %d-star review has been saved.", rating),
	}
}

func stars(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
