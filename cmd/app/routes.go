package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"xrate/internal/api"
	_ "xrate/internal/api/docs"
	"xrate/internal/api/middleware"
	"xrate/internal/service"
)

func (app *App) initHTTP(rateService service.RateServiceInterface) {
	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           app.router(rateService),
		ReadHeaderTimeout: time.Duration(app.cfg.Server.ReadHeaderTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(app.cfg.Source.Timeout+5) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (app *App) router(rateService service.RateServiceInterface) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", api.HandleHealthz())

	r.Group(func(r chi.Router) {
		if app.cfg.RateLimit.Enabled {
			limiter := middleware.NewRateLimiter(app.cfg.RateLimit.RequestsPerSecond, app.cfg.RateLimit.Burst, app.logger)
			r.Use(limiter.Middleware)
		}
		r.Get("/rates/{year}/{month}/{day}/{code}", api.HandleGetRate(rateService))
		r.Get("/rates/{year}/{month}/{day}/{from}/{to}", api.HandleGetCrossRate(rateService))
	})

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	return r
}
