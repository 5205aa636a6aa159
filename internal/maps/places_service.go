package maps

import (
	"context"
	"strconv"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

// RestaurantQuery is the set of filters forwarded to a nearby search.
// Zero values mean "no constraint" except RadiusMeters.
type RestaurantQuery struct {
	RadiusMeters  int
	MaxPriceLevel int
	MinRating     float64
	Keyword       string
}

// Chains and supermarket restaurants never make it into a recommendation.
var excludedChains = []string{
	"mcdonald", "mcdo", "burger king", "burgerking", "bk", "kfc", "subway",
	"taco bell", "wendy", "five guys", "in-n-out", "white castle",
	"jack in the box", "carl's jr", "hardee", "sonic", "arby", "popeyes",
	"chick-fil-a", "chipotle",

	"coop restaurant", "migros restaurant", "aldi restaurant", "lidl restaurant",
	"walmart", "target cafe", "costco food court", "ikea restaurant",
	"whole foods", "trader joe", "safeway", "kroger", "publix", "carrefour",
	"tesco cafe", "asda cafe", "sainsbury", "waitrose cafe", "auchan",
	"leclerc", "intermarché", "casino", "monoprix",
}

var excludedPlaceTypes = map[string]bool{
	"gas_station": true, "convenience_store": true, "store": true,
	"supermarket": true, "grocery_or_supermarket": true, "shopping_mall": true,
	"lodging": true, "car_dealer": true, "car_repair": true, "parking": true,
	"bank": true, "atm": true, "hospital": true, "pharmacy": true,
	"airport": true, "train_station": true, "transit_station": true,
	"bus_station": true, "subway_station": true, "school": true,
	"university": true, "library": true, "church": true, "mosque": true,
	"synagogue": true, "hindu_temple": true,
}

var restaurantTypes = map[string]bool{
	"restaurant": true, "food": true, "cafe": true, "meal_takeaway": true, "meal_delivery": true,
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client  *maps.Client
	breaker *Breaker
}

func NewPlacesService(client *maps.Client, breaker *Breaker) *PlacesService {
	return &PlacesService{client: client, breaker: breaker}
}

// SearchRestaurants runs one nearby search for open restaurants around origin.
// ZERO_RESULTS is an empty slice, not an error. Excluded ids, chains,
// non-restaurants, closed places and places under MinRating are dropped.
func (s *PlacesService) SearchRestaurants(ctx context.Context, origin types.Point, q RestaurantQuery, exclude types.PlaceIDSet) ([]types.Candidate, error) {
	loc := toLatLng(origin)
	r := &maps.NearbySearchRequest{
		Location: &loc,
		Radius:   uint(q.RadiusMeters),
		Type:     maps.PlaceTypeRestaurant,
		OpenNow:  true,
	}
	if q.MaxPriceLevel > 0 {
		r.MaxPrice = maps.PriceLevel(strconv.Itoa(q.MaxPriceLevel))
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		r.Keyword = kw
	}

	resp, err := execute(s.breaker, "nearby_search", func() (maps.PlacesSearchResponse, error) {
		return s.client.NearbySearch(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	results := make([]types.Candidate, 0, len(resp.Results))
	for _, place := range resp.Results {
		if exclude.Has(place.PlaceID) {
			continue
		}
		if isNonRestaurant(place.Types) || isChain(place.Name) {
			continue
		}
		if place.OpeningHours != nil && place.OpeningHours.OpenNow != nil && !*place.OpeningHours.OpenNow {
			continue
		}
		if q.MinRating > 0 && float64(place.Rating) < q.MinRating {
			continue
		}
		results = append(results, toCandidate(place))
	}
	return results, nil
}

func toCandidate(p maps.PlacesSearchResult) types.Candidate {
	addr := p.FormattedAddress
	if addr == "" {
		addr = p.Vicinity
	}
	c := types.Candidate{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Address:          addr,
		Location:         types.Point{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
		Rating:           float64(p.Rating),
		UserRatingsTotal: p.UserRatingsTotal,
		PriceLevel:       p.PriceLevel,
		Types:            p.Types,
	}
	if p.OpeningHours != nil && p.OpeningHours.OpenNow != nil {
		open := *p.OpeningHours.OpenNow
		c.OpenNow = &open
	}
	return c
}

func isChain(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, chain := range excludedChains {
		if strings.Contains(lower, chain) {
			return true
		}
	}
	return false
}

// isNonRestaurant keeps anything tagged as food, drops pure bars and night
// clubs, and drops places carrying an excluded type.
func isNonRestaurant(placeTypes []string) bool {
	if len(placeTypes) == 0 {
		return false
	}
	for _, t := range placeTypes {
		if restaurantTypes[t] {
			return false
		}
	}
	for _, t := range placeTypes {
		if t == "bar" || t == "night_club" {
			return true
		}
	}
	for _, t := range placeTypes {
		if excludedPlaceTypes[t] {
			return true
		}
	}
	return false
}
