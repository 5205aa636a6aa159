// README: Restaurant handlers for the raw relaxation search and random selection.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

type RestaurantSearcher interface {
	Search(ctx context.Context, origin types.Point, spec search.FilterSpec, exclude types.PlaceIDSet) (search.Result, error)
}

type RestaurantHandler struct {
	search RestaurantSearcher
}

func NewRestaurantHandler(svc RestaurantSearcher) *RestaurantHandler {
	return &RestaurantHandler{search: svc}
}

type searchReq struct {
	Location        *types.Point    `json:"location"`
	Filters         *filtersRequest `json:"filters"`
	ExcludePlaceIDs []string        `json:"exclude_place_ids"`
}

type searchResp struct {
	Restaurants   []restaurantView      `json:"restaurants"`
	Notifications []search.Notification `json:"notifications"`
	Filters       search.FilterSpec     `json:"filters"`
}

func (h *RestaurantHandler) Search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Location == nil || !req.Location.Valid() {
		writeError(c, http.StatusBadRequest, "missing or invalid location")
		return
	}

	res, err := h.search.Search(c.Request.Context(), *req.Location, req.Filters.spec(), types.NewPlaceIDSet(req.ExcludePlaceIDs...))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, searchResp{
		Restaurants:   newRestaurantViews(res.Candidates, c.Request.UserAgent()),
		Notifications: res.Notifications,
		Filters:       res.Filters,
	})
}

type selectReq struct {
	Restaurants []types.Candidate `json:"restaurants"`
}

// Select picks one restaurant uniformly from the posted list; an empty list yields null.
func (h *RestaurantHandler) Select(c *gin.Context) {
	var req selectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	chosen, ok := search.Choose(req.Restaurants)
	if !ok {
		writeJSON(c, http.StatusOK, gin.H{"restaurant": nil})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"restaurant": newRestaurantView(chosen, c.Request.UserAgent())})
}
