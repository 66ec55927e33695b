package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cat-breed-search/internal/adapters/catalog/cached"
	"cat-breed-search/internal/adapters/catalog/thecatapi"
	mem "cat-breed-search/internal/adapters/storage/memory"
	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/domain/sessions"
	"cat-breed-search/internal/platform/config"
	"cat-breed-search/internal/platform/logger"
	"cat-breed-search/internal/router"
)

// @title Cat Breed Search API
// @version 1.0
// @description Widget de búsqueda de razas de gatos: debounce del input, fetch de razas + imagen y orden de resultados.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	client, err := thecatapi.NewClient(thecatapi.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
		RateBurst: cfg.Catalog.RateBurst,
	})
	if err != nil {
		log.Error("catalog client", map[string]any{"err": err})
		os.Exit(1)
	}

	fetcher := breeds.NewService(cached.New(client, cfg.Catalog.CacheTTL), breeds.Options{
		Limit:  cfg.Search.Limit,
		Logger: log,
	})
	svc := sessions.NewService(mem.NewSessionRepo(cfg.Search.SessionTTL), fetcher, sessions.Options{
		QuietPeriod:    cfg.Search.QuietPeriod,
		MinQueryLength: cfg.Search.MinQueryLength,
		Logger:         log,
	})

	srv := &http.Server{
		Addr: cfg.HTTP.Addr(),
		Handler: router.NewRouter(router.Options{
			Sessions:           svc,
			Logger:             log,
			CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		// sin WriteTimeout: /stream es una conexión larga
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "catalog": cfg.Catalog.BaseURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// primero las sesiones: cierra los streams WebSocket, que Shutdown no espera
	if err := svc.Shutdown(shutdownCtx); err != nil {
		log.Warn("sessions shutdown", map[string]any{"err": err})
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", map[string]any{"err": err})
	}
}
