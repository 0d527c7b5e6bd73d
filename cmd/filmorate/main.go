package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"filmorate/internal/api"
	"filmorate/internal/config"
	"filmorate/internal/domain"
	"filmorate/internal/service"
	"filmorate/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := config.MustLoad("")
	validate := domain.NewValidator()

	filmStore, userStore, genreStore, mpaStore, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	filmService := service.NewFilmService(filmStore, userStore, logger)
	userService := service.NewUserService(userStore, logger)
	referenceService := service.NewReferenceService(genreStore, mpaStore)

	handler := api.NewHandler(filmService, userService, referenceService, logger, validate)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server starting",
			slog.String("addr", cfg.HTTP.Addr()),
			slog.String("storage", cfg.Storage.Backend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
}

// buildStores собирает набор хранилищ для выбранного бэкенда.
// Для postgres перед стартом накатываются миграции.
func buildStores(cfg *config.Config, logger *slog.Logger) (
	store.FilmStore, store.UserStore, store.GenreStore, store.MpaStore, func(), error,
) {
	if cfg.Storage.Backend == config.StorageMemory {
		logger.Info("using in-memory storage")
		return store.NewMemoryFilmStore(logger),
			store.NewMemoryUserStore(logger),
			store.NewMemoryGenreStore(),
			store.NewMemoryMpaStore(),
			func() {},
			nil
	}

	if err := store.ApplyMigrations(cfg.Storage.URL, cfg.Storage.MigrationsPath, logger); err != nil {
		return nil, nil, nil, nil, nil, err
	}

	db, err := sqlx.Connect("postgres", cfg.Storage.URL)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	cleanup := func() {
		logger.Info("closing postgres connection...")
		if err := db.Close(); err != nil {
			logger.Error("failed to close postgres connection", slog.String("error", err.Error()))
		}
	}

	filmStore, err := store.NewPostgresFilmStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, err
	}
	userStore, err := store.NewPostgresUserStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, err
	}
	genreStore, err := store.NewPostgresGenreStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, err
	}
	mpaStore, err := store.NewPostgresMpaStore(db, logger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, nil, err
	}

	logger.Info("using postgres storage")
	return filmStore, userStore, genreStore, mpaStore, cleanup, nil
}
