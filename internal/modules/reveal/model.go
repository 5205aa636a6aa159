// README: Recommendation returned by the choose-and-reveal flow.
package reveal

import (
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

// TravelInfo is the driving estimate shown on the mystery screen.
// Approximate is set when the routed lookup failed and a straight-line estimate
// was used; only then is a walking estimate included.
type TravelInfo struct {
	Driving     types.TravelDuration  `json:"driving"`
	Walking     *types.TravelDuration `json:"walking,omitempty"`
	Approximate bool                  `json:"approximate"`
}

type Recommendation struct {
	Restaurant    *types.Candidate      `json:"restaurant"`
	Travel        *TravelInfo           `json:"travel"`
	HistoryID     int64                 `json:"history_id,omitempty"`
	Notifications []search.Notification `json:"notifications"`
	Filters       search.FilterSpec     `json:"filters"`
}
