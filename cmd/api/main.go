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

	"github.com/joho/godotenv"

	"github.com/cesmanager/cesmanager-go/internal/config"
	"github.com/cesmanager/cesmanager-go/internal/handler"
	"github.com/cesmanager/cesmanager-go/internal/logging"
	"github.com/cesmanager/cesmanager-go/internal/repository"
	"github.com/cesmanager/cesmanager-go/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	level, err := logging.ParseLevel(cfg.LogLevel)
	slog.SetDefault(logging.New(level, cfg.LogFormat, os.Stderr))
	if err != nil {
		slog.Warn("falling back to info logging", "error", err)
	}
	if envErr != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	dialect, err := repository.DialectFor(cfg.DBDriver)
	if err != nil {
		slog.Error("unsupported database driver", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := repository.NewDB(ctx, dialect, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "driver", dialect.Name, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := repository.Migrate(ctx, db, dialect); err != nil {
			slog.Error("database migration failed", "driver", dialect.Name, "error", err)
			os.Exit(1)
		}
	}

	userRepo := repository.NewUserRepository(db, dialect)
	sessionRepo := repository.NewSessionRepository(db, dialect)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry))
	sessionHandler := handler.NewSessionHandler(service.NewSessionService(sessionRepo, userRepo))

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(handler.RouterConfig{
			JWTSecret:     cfg.JWTSecret,
			AuthRateLimit: cfg.AuthRateRPS,
			AuthRateBurst: cfg.AuthRateBurst,
		}, authHandler, sessionHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", dialect.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
