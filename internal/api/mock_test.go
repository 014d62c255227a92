package api

import (
	"context"

	"xrate/internal/provider"
	"xrate/internal/service"
)

// mockRateService implements service.RateServiceInterface for testing.
type mockRateService struct {
	getRateFunc      func(ctx context.Context, code string, date provider.DateKey) (*service.RateResult, error)
	getCrossRateFunc func(ctx context.Context, from, to string, date provider.DateKey) (*service.RateResult, error)
}

func (m *mockRateService) GetRate(ctx context.Context, code string, date provider.DateKey) (*service.RateResult, error) {
	return m.getRateFunc(ctx, code, date)
}

func (m *mockRateService) GetCrossRate(ctx context.Context, from, to string, date provider.DateKey) (*service.RateResult, error) {
	return m.getCrossRateFunc(ctx, from, to, date)
}
