// README: Session middleware resolving X-Session-ID for session-scoped routes.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntoineKoerber/whereshouldweeat/internal/http/handlers"
	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/session"
)

type SessionEnsurer interface {
	Ensure(ctx context.Context, id string) (string, error)
}

// Session registers the caller's session (creating one when the header is
// absent) and echoes the id back on the response.
func Session(sessions SessionEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := sessions.Ensure(c.Request.Context(), c.GetHeader(session.HeaderName))
		if errors.Is(err, session.ErrInvalidSession) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("session lookup failed")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session unavailable"})
			return
		}
		c.Set(handlers.SessionKey, id)
		c.Header(session.HeaderName, id)
		c.Next()
	}
}
