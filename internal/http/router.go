// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntoineKoerber/whereshouldweeat/internal/config"
	"github.com/AntoineKoerber/whereshouldweeat/internal/http/handlers"
	"github.com/AntoineKoerber/whereshouldweeat/internal/http/middleware"
)

type RouterDeps struct {
	Search    handlers.RestaurantSearcher
	Recommend handlers.Recommender
	History   handlers.HistoryLister
	Sessions  handlers.SessionEnsurer
	Geocoder  handlers.Geocoder
	RateLimit config.RateLimitConfig
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	limited := middleware.RateLimit(deps.RateLimit)

	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	api.POST("/sessions", sessionHandler.Create)

	geocodeHandler := handlers.NewGeocodeHandler(deps.Geocoder)
	api.POST("/geocode", limited, geocodeHandler.Geocode)

	restaurantHandler := handlers.NewRestaurantHandler(deps.Search)
	api.POST("/restaurants/search", limited, restaurantHandler.Search)
	api.POST("/restaurants/select", restaurantHandler.Select)

	recHandler := handlers.NewRecommendationHandler(deps.Recommend, deps.History)
	scoped := api.Group("", middleware.Session(deps.Sessions))
	scoped.POST("/recommendations", limited, recHandler.Recommend)
	scoped.POST("/history/:id/reveal", recHandler.Reveal)
	scoped.PUT("/history/:id/rating", recHandler.Rate)
	scoped.GET("/history", recHandler.History)

	return r
}
