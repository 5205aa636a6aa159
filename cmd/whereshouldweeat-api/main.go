// README: Entry point; loads config, wires maps, storage and modules, then serves HTTP until signalled.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"

	"github.com/AntoineKoerber/whereshouldweeat/internal/config"
	httptransport "github.com/AntoineKoerber/whereshouldweeat/internal/http"
	"github.com/AntoineKoerber/whereshouldweeat/internal/infra"
	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
	"github.com/AntoineKoerber/whereshouldweeat/internal/maps"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/history"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/reveal"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/search"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	mapsClient, err := maps.NewClient(cfg.Maps.APIKey, cfg.Maps.RPS)
	if err != nil {
		return err
	}
	breaker := maps.NewBreaker("google-maps")
	places := maps.NewPlacesService(mapsClient, breaker)
	routes := maps.NewRouteService(mapsClient, breaker)
	geocoder := maps.NewGeocodeService(mapsClient, breaker)

	lookupPool, err := ants.NewPool(cfg.Search.LookupWorkers)
	if err != nil {
		return err
	}
	defer lookupPool.Release()

	searchSvc := search.NewService(places, routes,
		search.WithLookupPool(lookupPool),
		search.WithLookupTimeout(cfg.Search.LookupTimeout),
	)

	historySvc := history.NewService(history.NewStore(dbPool), history.NewCache(redisClient), cfg.Search.ExcludeRecent)
	sessionSvc := session.NewService(session.NewStore(dbPool, redisClient))
	revealSvc := reveal.NewService(searchSvc, historySvc, routes)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Search:    searchSvc,
		Recommend: revealSvc,
		History:   historySvc,
		Sessions:  sessionSvc,
		Geocoder:  geocoder,
		RateLimit: cfg.HTTP.RateLimit,
	})

	logging.Info().
		Int("lookup_workers", cfg.Search.LookupWorkers).
		Int("exclude_recent", cfg.Search.ExcludeRecent).
		Msg("services wired")
	return httptransport.NewServer(cfg.HTTP.Addr, router).Run(ctx)
}
