// README: Restaurant candidate, travel measurement and place-id set value objects.
package types

import "sort"

// TravelDuration is a routed travel measurement from an origin to a place.
type TravelDuration struct {
	Seconds        int    `json:"seconds"`
	DistanceMeters int    `json:"distance_meters"`
	DisplayText    string `json:"display_text"`
	DistanceText   string `json:"distance_text"`
}

// Candidate is a place returned by the search provider. Travel stays nil
// unless a duration lookup succeeded for it.
type Candidate struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Location         Point           `json:"location"`
	Rating           float64         `json:"rating"`
	UserRatingsTotal int             `json:"user_ratings_total"`
	PriceLevel       int             `json:"price_level"`
	Types            []string        `json:"types"`
	OpenNow          *bool           `json:"open_now,omitempty"`
	Travel           *TravelDuration `json:"travel"`
}

// WithTravel returns a copy of c annotated with d.
func (c Candidate) WithTravel(d TravelDuration) Candidate {
	c.Travel = &d
	return c
}

// PlaceIDSet is a read-only set of place identifiers once handed to a search.
type PlaceIDSet map[string]struct{}

func NewPlaceIDSet(ids ...string) PlaceIDSet {
	s := make(PlaceIDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s PlaceIDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s PlaceIDSet) Len() int { return len(s) }

// IDs returns the members sorted, for logging and stable output.
func (s PlaceIDSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
