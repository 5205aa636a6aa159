// README: Visit history records and the errors the history module returns.
package history

import (
	"errors"
	"strings"
	"time"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

var (
	ErrNotFound       = errors.New("history entry not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrMissingSession = errors.New("session id is required")
)

const (
	MinRating = 1
	MaxRating = 5
)

// Visit is one chosen restaurant in a session's history.
type Visit struct {
	ID          int64       `json:"id"`
	SessionID   string      `json:"session_id"`
	PlaceID     string      `json:"place_id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Rating      float64     `json:"rating"`
	PriceLevel  int         `json:"price_level"`
	CuisineType string      `json:"cuisine_type"`
	Location    types.Point `json:"location"`
	Revealed    bool        `json:"revealed"`
	UserRating  *int        `json:"user_rating"`
	VisitedAt   time.Time   `json:"visited_at"`
}

// NewVisit builds the record saved when a restaurant is chosen for a session.
func NewVisit(sessionID string, c types.Candidate) Visit {
	return Visit{
		SessionID:   sessionID,
		PlaceID:     c.PlaceID,
		Name:        c.Name,
		Address:     c.Address,
		Rating:      c.Rating,
		PriceLevel:  c.PriceLevel,
		CuisineType: strings.Join(c.Types, ", "),
		Location:    c.Location,
	}
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
