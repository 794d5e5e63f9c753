package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edudash/internal/auth"
	"edudash/internal/config"
	"edudash/internal/database"
	"edudash/internal/handler"
	"edudash/internal/middleware"
	"edudash/internal/repository"
	"edudash/internal/router"
	"edudash/internal/token"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var (
		store   repository.UserStore
		cleanup []func()
	)

	if cfg.DatabaseURL != "" {
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		store = repository.NewPostgresStore(db.Pool)
		cleanup = append(cleanup, db.Close)
	} else {
		slog.Info("using CSV user store", "path", cfg.UsersFile)
		store, err = repository.NewCSVStore(cfg.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize user store: %w", err)
		}
	}

	var hasher auth.Hasher = auth.SHA256Hasher{}
	if cfg.PasswordScheme == "bcrypt" {
		hasher = auth.BcryptHasher{}
	}

	authService := auth.NewService(store, hasher)
	tokenService := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// Bootstrap the store up front so a broken backing file fails the
	// process at startup instead of on the first login.
	if _, err := store.Load(); err != nil {
		for _, fn := range cleanup {
			fn()
		}
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	authHandler := handler.NewAuthHandler(authService, tokenService)
	userHandler := handler.NewUserHandler(authService)

	appRouter := router.New(cfg, authMiddleware, authHandler, userHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: cleanup}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
