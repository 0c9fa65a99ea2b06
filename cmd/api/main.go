package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"inquirydesk/internal/config"
	"inquirydesk/internal/database"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/notify"
	"inquirydesk/internal/server"
	"inquirydesk/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.Bool("debug", cfg.App.Debug),
		zap.String("storage_scheme", cfg.Storage.Scheme()),
		zap.Bool("email_enabled", cfg.Email.Enabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	store, err := database.Open(openCtx, cfg.Storage, log)
	cancel()
	if err != nil {
		log.Error("failed to initialize storage", zap.Error(err))
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("error closing storage", zap.Error(err))
		}
	}()

	notifier := notify.New(cfg.Email, log)
	if !notifier.Enabled() {
		log.Warn("SENDGRID_API_KEY not set, submissions will be stored without email notifications")
	}

	srv := server.New(cfg, server.Services{
		Contact:    services.NewContactService(store, notifier, log),
		Investment: services.NewInvestmentService(store, notifier, log),
		Health:     services.NewHealthService(store, cfg.App.Name, cfg.App.Version),
	}, log).HTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed, forcing close", zap.Error(err))
			return srv.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}
	log.Info("server shutdown complete")
	return nil
}
