package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Catalog/internal/auth"
	"Catalog/internal/config"
	"Catalog/internal/handlers"
	"Catalog/internal/middleware"
	"Catalog/internal/repo"
	"Catalog/internal/service"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	// Repositories
	userRepo := repo.NewUserRepository(gormDB)
	categoryRepo := repo.NewCategoryRepository(gormDB)

	// Services
	svc := handlers.Services{
		Users:      service.NewUserService(userRepo, auth.NewPasswordHasher(0), sugar),
		Items:      service.NewItemService(repo.NewItemRepository(gormDB), categoryRepo, sugar),
		Categories: service.NewCategoryService(categoryRepo),
		Tags:       service.NewTagService(repo.NewTagRepository(gormDB)),
		Sessions:   service.NewSessionService(repo.NewSessionRepository(gormDB), cfg.SessionTTL),
		Tokens:     auth.NewTokenService(cfg.AuthSecret, cfg.TokenTTL),
	}

	if cfg.HasAdminBootstrap() {
		admin, err := svc.Users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			sugar.Fatalw("failed to bootstrap admin", "error", err)
		}
		sugar.Infow("admin account ready", "user_id", admin.ID, "username", admin.Username)
	}
	if n, err := svc.Sessions.Purge(ctx); err != nil {
		sugar.Warnw("failed to purge expired sessions", "error", err)
	} else if n > 0 {
		sugar.Infow("expired sessions purged", "count", n)
	}

	h, err := handlers.NewHandler(svc, sugar, cfg)
	if err != nil {
		sugar.Fatalw("failed to build handlers", "error", err)
	}

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"TokenTTL", cfg.TokenTTL,
		"SessionTTL", cfg.SessionTTL,
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
