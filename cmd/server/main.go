package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"country-currency-api/internal/config"
	"country-currency-api/internal/database"
	"country-currency-api/internal/external"
	"country-currency-api/internal/handler"
	"country-currency-api/internal/image"
	appmw "country-currency-api/internal/middleware"
	"country-currency-api/internal/queue"
	"country-currency-api/internal/repository"
	"country-currency-api/internal/router"
	"country-currency-api/internal/service"
	"country-currency-api/internal/transform"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environments set vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	countryRepo := repository.NewCountryRepo(db)
	metadataRepo := repository.NewMetadataRepo(db)
	generator := image.NewGenerator(cfg.CacheDir)

	// The consumer renders the summary image from snapshot events; it keeps
	// retrying the broker connection in the background.
	go queue.StartSnapshotConsumer(generator)

	refresher := &service.Refresher{
		DB:          db,
		Countries:   external.NewCountriesClient(cfg.CountriesAPI),
		Rates:       external.NewRatesClient(cfg.ExchangeAPI),
		Transformer: transform.NewSeeded(),
		CountryRepo: countryRepo,
		Metadata:    metadataRepo,
		Publish:     queue.PublishSnapshotRefreshed,
		Renderer:    generator,
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	e.Use(appmw.NewResponseCache(cacheCfg, rdb))
	refreshLimiter := appmw.NewRefreshLimiter(config.LoadRateLimitConfig(), rdb)
	cacheInvalidator := appmw.NewCacheInvalidator(cacheCfg, rdb)

	countryHandler := &handler.CountryHandler{
		Repo:      countryRepo,
		Refresher: refresher,
		ImagePath: generator.Path(),
	}
	statusHandler := &handler.StatusHandler{
		Countries: countryRepo,
		Metadata:  metadataRepo,
	}
	router.RegisterRoutes(e, countryHandler, statusHandler, refreshLimiter, cacheInvalidator)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
