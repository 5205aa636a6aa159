// README: Session and geocoding handlers.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AntoineKoerber/whereshouldweeat/internal/maps"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/session"
)

type SessionEnsurer interface {
	Ensure(ctx context.Context, id string) (string, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (maps.GeocodeResult, error)
}

type SessionHandler struct {
	sessions SessionEnsurer
}

func NewSessionHandler(svc SessionEnsurer) *SessionHandler {
	return &SessionHandler{sessions: svc}
}

// Create registers the session named in the header, or starts a new one.
func (h *SessionHandler) Create(c *gin.Context) {
	id, err := h.sessions.Ensure(c.Request.Context(), c.GetHeader(session.HeaderName))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header(session.HeaderName, id)
	writeJSON(c, http.StatusOK, gin.H{"session_id": id})
}

type GeocodeHandler struct {
	geocoder Geocoder
}

func NewGeocodeHandler(g Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: g}
}

type geocodeReq struct {
	Address string `json:"address"`
}

func (h *GeocodeHandler) Geocode(c *gin.Context) {
	var req geocodeReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		writeError(c, http.StatusBadRequest, "address is required")
		return
	}
	res, err := h.geocoder.Geocode(c.Request.Context(), strings.TrimSpace(req.Address))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"lat":               res.Location.Lat,
		"lng":               res.Location.Lng,
		"formatted_address": res.FormattedAddress,
	})
}
