// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
	"github.com/AntoineKoerber/whereshouldweeat/internal/maps"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/history"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/session"
)

// SessionKey is the gin context key the session middleware stores the id under.
const SessionKey = "session_id"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	var perr *maps.ProviderError
	switch {
	case errors.Is(err, search.ErrInvalidFilter),
		errors.Is(err, session.ErrInvalidSession),
		errors.Is(err, history.ErrInvalidRating),
		errors.Is(err, history.ErrMissingSession):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrNotFound), errors.Is(err, maps.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusRequestTimeout, "request cancelled")
	case errors.As(err, &perr):
		logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("provider failure")
		writeError(c, http.StatusBadGateway, "maps provider unavailable")
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
