// README: Recommendation handlers for the choose, reveal, rate and history flow.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/history"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/reveal"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/types"
)

type Recommender interface {
	Recommend(ctx context.Context, sessionID string, origin types.Point, spec search.FilterSpec) (reveal.Recommendation, error)
	Reveal(ctx context.Context, sessionID string, historyID int64) error
	Rate(ctx context.Context, sessionID string, historyID int64, rating int) (search.Notification, error)
}

type HistoryLister interface {
	List(ctx context.Context, sessionID string) ([]history.Visit, error)
}

type RecommendationHandler struct {
	reveal  Recommender
	history HistoryLister
}

func NewRecommendationHandler(r Recommender, h HistoryLister) *RecommendationHandler {
	return &RecommendationHandler{reveal: r, history: h}
}

type recommendReq struct {
	Location *types.Point    `json:"location"`
	Filters  *filtersRequest `json:"filters"`
}

type recommendResp struct {
	Restaurant    *restaurantView       `json:"restaurant"`
	Travel        *reveal.TravelInfo    `json:"travel"`
	HistoryID     int64                 `json:"history_id,omitempty"`
	Notifications []search.Notification `json:"notifications"`
	Filters       search.FilterSpec     `json:"filters"`
}

func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Location == nil || !req.Location.Valid() {
		writeError(c, http.StatusBadRequest, "missing or invalid location")
		return
	}

	rec, err := h.reveal.Recommend(c.Request.Context(), sessionID(c), *req.Location, req.Filters.spec())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := recommendResp{
		Travel:        rec.Travel,
		HistoryID:     rec.HistoryID,
		Notifications: rec.Notifications,
		Filters:       rec.Filters,
	}
	if rec.Restaurant != nil {
		view := newRestaurantView(*rec.Restaurant, c.Request.UserAgent())
		resp.Restaurant = &view
	}
	writeJSON(c, http.StatusOK, resp)
}

func (h *RecommendationHandler) Reveal(c *gin.Context) {
	id, ok := historyIDParam(c)
	if !ok {
		return
	}
	if err := h.reveal.Reveal(c.Request.Context(), sessionID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": id, "revealed": true})
}

type rateReq struct {
	Rating *int `json:"rating"`
}

func (h *RecommendationHandler) Rate(c *gin.Context) {
	id, ok := historyIDParam(c)
	if !ok {
		return
	}
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		writeError(c, http.StatusBadRequest, "rating is required")
		return
	}
	note, err := h.reveal.Rate(c.Request.Context(), sessionID(c), id, *req.Rating)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"notifications": []search.Notification{note}})
}

func (h *RecommendationHandler) History(c *gin.Context) {
	visits, err := h.history.List(c.Request.Context(), sessionID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"history": visits})
}

func historyIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid history id")
		return 0, false
	}
	return id, true
}
