// Package main is the entry point for the vacation planner web server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/vacation-planner/internal/config"
	"github.com/pkordes/vacation-planner/internal/handler"
	"github.com/pkordes/vacation-planner/internal/middleware"
	"github.com/pkordes/vacation-planner/internal/repo"
	"github.com/pkordes/vacation-planner/internal/service"
	"github.com/pkordes/vacation-planner/internal/session"
	"github.com/pkordes/vacation-planner/migrations"
	"github.com/pkordes/vacation-planner/web"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
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

	// --- Migrations -------------------------------------------------------
	if cfg.MigrateOnStart {
		if err := migrate(context.Background(), cfg.DatabaseURL); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Sessions ---------------------------------------------------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.Info("redis connection established")

	// --- Views ------------------------------------------------------------
	views, err := handler.NewRenderer(web.Templates)
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	// --- Wiring -----------------------------------------------------------
	vacationRepo := repo.NewVacationRepo(pool)
	legRepo := repo.NewLegRepo(pool)

	srv := handler.NewServer(handler.Deps{
		Vacations: service.NewVacationService(vacationRepo, legRepo),
		Legs: service.NewLegService(
			vacationRepo,
			legRepo,
			repo.NewAccommodationRepo(pool),
			repo.NewTransportationRepo(pool),
		),
		Auth:     service.NewAuthService(repo.NewUserRepo(pool), bcrypt.DefaultCost),
		Export:   service.NewExportService(vacationRepo, legRepo),
		Sessions: session.NewRedisStore(rdb, cfg.SessionTTL),
		Cookie: session.Cookie{
			Name:   "vacation_session",
			Secure: cfg.CookieSecure,
			MaxAge: cfg.SessionTTL,
		},
		Views:  views,
		Logger: logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies every pending embedded migration. goose needs a
// database/sql handle, so it gets its own short-lived connection.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
