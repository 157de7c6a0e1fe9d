package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/docs/swagger"
	"github.com/joestump/bookmarks-api/internal/api"
	"github.com/joestump/bookmarks-api/internal/build"
	"github.com/joestump/bookmarks-api/internal/cache"
	"github.com/joestump/bookmarks-api/internal/config"
	"github.com/joestump/bookmarks-api/internal/db"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database, cfg.DB.Driver); err != nil {
		return err
	}

	bookmarkStore := store.NewBookmarkStore(database)
	if n, err := bookmarkStore.Count(ctx); err == nil {
		metrics.BookmarksTotal.Set(float64(n))
	} else {
		log.Warn("count bookmarks", logger.Error(err))
	}

	var bookmarks store.BookmarkService = bookmarkStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, cache will fall through", logger.String("addr", cfg.Redis.Addr), logger.Error(err))
		}
		bookmarks = cache.NewBookmarkCache(bookmarkStore, client, cfg.Redis.TTL, log)
		log.Info("bookmark cache enabled", logger.String("addr", cfg.Redis.Addr), logger.Duration("ttl", cfg.Redis.TTL))
	}

	swagger.SwaggerInfo.BasePath = cfg.HTTP.APIRoot
	if swagger.SwaggerInfo.BasePath == "" {
		swagger.SwaggerInfo.BasePath = "/"
	}

	router := api.NewRouter(api.Deps{
		Bookmarks:          bookmarks,
		Logger:             log,
		APIToken:           cfg.APIToken,
		APIRoot:            cfg.HTTP.APIRoot,
		RequireDescription: cfg.RequireDescription,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitRPS:       cfg.RateLimit.RPS,
		RateLimitBurst:     cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			logger.String("addr", cfg.HTTP.Addr),
			logger.String("api_root", cfg.HTTP.APIRoot),
			logger.String("version", build.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
