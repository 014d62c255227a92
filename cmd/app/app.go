package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"xrate/internal/config"
	"xrate/internal/provider"
	"xrate/internal/service"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	httpServer *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	rateService, err := newRateService(cfg, logger)
	if err != nil {
		return nil, err
	}

	app.initHTTP(rateService)
	return app, nil
}

func newRateService(cfg *config.Config, logger *zap.SugaredLogger) (*service.RateService, error) {
	policy, err := provider.ParseMatchPolicy(cfg.Source.MatchPolicy)
	if err != nil {
		return nil, err
	}

	reader, err := provider.NewReader(cfg.Source.BaseURL, cfg.Source.Timeout,
		provider.WithLogger(logger),
		provider.WithMatchPolicy(policy),
		provider.WithMaxDocumentSize(cfg.Source.MaxDocumentBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("create rate reader: %w", err)
	}
	logger.Debugw("Rate source configured", "base_url", reader.BaseURL(), "match_policy", policy.String())

	validator := service.NewValidator(cfg.Source.Currencies...)
	return service.NewRateService(reader, validator, logger), nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "addr", app.httpServer.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or server failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown stops accepting new requests and drains in-flight lookups.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	timeout := time.Duration(app.cfg.Server.ShutdownTimeoutSec) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		return fmt.Errorf("http shutdown: %w", err)
	}

	app.logger.Infow("Shutdown complete")
	return nil
}
