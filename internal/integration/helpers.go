//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"xrate/internal/api"
	"xrate/internal/api/middleware"
	"xrate/internal/provider"
	"xrate/internal/service"
	"xrate/internal/testkit"
)

// stack is a running API wired to a real Reader that reads from a fake source.
type stack struct {
	source *testkit.RateServer
	api    *httptest.Server
	svc    *service.RateService
}

// newStack wires source, Reader, RateService and router the same way the
// serve command does. Options are applied to the Reader.
func newStack(t *testing.T, currencies []string, opts ...provider.Option) *stack {
	t.Helper()

	source := testkit.NewRateServer(t)
	logger := zap.NewNop().Sugar()

	reader, err := provider.NewReader(source.BaseURL(), 5, append([]provider.Option{provider.WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	svc := service.NewRateService(reader, service.NewValidator(currencies...), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Get("/healthz", api.HandleHealthz())
	r.Get("/rates/{year}/{month}/{day}/{code}", api.HandleGetRate(svc))
	r.Get("/rates/{year}/{month}/{day}/{from}/{to}", api.HandleGetCrossRate(svc))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &stack{source: source, api: srv, svc: svc}
}

// get issues a GET against the API and returns the response with its body unread.
func (s *stack) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(testContext(t), http.MethodGet, s.api.URL+path, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// testContext returns a context with a 30-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
