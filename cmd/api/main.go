// Package main is the entry point for the RoamLog API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/roamlog/backend/internal/auth"
	"github.com/pkordes/roamlog/backend/internal/config"
	"github.com/pkordes/roamlog/backend/internal/handler"
	"github.com/pkordes/roamlog/backend/internal/metrics"
	"github.com/pkordes/roamlog/backend/internal/middleware"
	"github.com/pkordes/roamlog/backend/internal/planner"
	"github.com/pkordes/roamlog/backend/internal/repo"
	"github.com/pkordes/roamlog/backend/internal/service"
	"github.com/pkordes/roamlog/backend/migrations"
	"github.com/pkordes/roamlog/backend/openapi"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.RunMigrations {
		// goose needs a *sql.DB; this one shares the pool's connections.
		db := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(ctx, db)
		_ = db.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Services ---------------------------------------------------------
	m := metrics.New()
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL)

	users := repo.NewUserRepo(pool)
	trips := repo.NewTripRepo(pool)
	entries := repo.NewEntryRepo(pool)

	// A nil Completer makes the planner answer ai_not_configured.
	var completer service.Completer
	if cfg.AIEnabled() {
		completer = planner.New(planner.Config{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.OpenRouterModel,
			Referer: cfg.AppURL,
			Timeout: cfg.AITimeout,
		}, m)
	} else {
		slog.Warn("OPENROUTER_API_KEY not set; AI routes will report ai_not_configured")
	}

	aiLimiter := middleware.NewRateLimiter(cfg.AIRatePerMinute)
	go aiLimiter.Run(ctx, time.Minute, 10*time.Minute)

	server := handler.NewServer(handler.Deps{
		Auth:      service.NewAuthService(users, tokens),
		Trips:     service.NewTripService(trips),
		Entries:   service.NewEntryService(trips, entries),
		Export:    service.NewExportService(trips, entries),
		Planner:   service.NewPlannerService(completer, repo.NewTxStore(pool)),
		Tokens:    tokens,
		Cookies:   auth.Cookies{Secure: cfg.SecureCookies()},
		AILimiter: aiLimiter,
		Logger:    logger,
	})

	// --- Router -----------------------------------------------------------
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	// SlogLogger writes one structured JSON log line per request.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(m.Middleware)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/api", server.Routes())
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Method(http.MethodGet, "/openapi.yaml", openapi.Handler())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a full provider call on the /ai routes.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AITimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for a signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
