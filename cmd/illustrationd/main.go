package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kanekanefy/qwerty-learner/internal/cache"
	"github.com/kanekanefy/qwerty-learner/internal/config"
	"github.com/kanekanefy/qwerty-learner/internal/lingo"
	"github.com/kanekanefy/qwerty-learner/internal/middleware"
	"github.com/kanekanefy/qwerty-learner/internal/query"
	"github.com/kanekanefy/qwerty-learner/internal/rest"
	"github.com/kanekanefy/qwerty-learner/internal/router"
	"github.com/kanekanefy/qwerty-learner/internal/service"
	"github.com/kanekanefy/qwerty-learner/internal/store"
	"github.com/kanekanefy/qwerty-learner/internal/syllable"
	"github.com/kanekanefy/qwerty-learner/internal/unsplash"
)

func run(ctx context.Context) error {
	slog.Info("starting illustration service")

	cfg := config.FromEnv()
	if cfg.Unsplash.AccessKey == "" {
		slog.Warn("unsplash access key is not configured, resolutions will fail")
	}

	if dir := filepath.Dir(cfg.Cache.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}

	st, err := store.NewSQLiteStore(cfg.Cache.DBPath)
	if err != nil {
		return fmt.Errorf("open media store: %w", err)
	}
	defer st.Close()

	assets, err := cache.New(st, cache.Config{
		TTL:     cfg.Cache.TTL,
		HotKeys: cfg.Cache.HotKeys,
		HotCost: cfg.Cache.HotCost,
	})
	if err != nil {
		return fmt.Errorf("create asset cache: %w", err)
	}

	search := unsplash.NewClient(unsplash.Config{
		AccessKey: cfg.Unsplash.AccessKey,
		Endpoint:  cfg.Unsplash.Endpoint,
		HTTP:      &http.Client{Timeout: cfg.Unsplash.Timeout},
	})

	srv := service.NewIllustrations(
		query.NewBuilder(lingo.Default()),
		search,
		assets,
		service.IllustrationsConfig{TrackTimeout: cfg.Unsplash.TrackTimeout},
	)

	r := router.New()
	r.Use(middleware.Recover(), middleware.Log(), middleware.Metrics())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	api := rest.NewAPI(srv, syllable.NewSplitter())
	r.Handle("/api/v1/", api)

	httpSrv := &http.Server{
		Addr:         cfg.HTTP.ListenAddr,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		Handler:      r,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("HTTP server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("illustration service exited with error", "error", err)
		os.Exit(1)
	}
}
