package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"xrate/internal/provider"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Rate(ctx context.Context, code string, date provider.DateKey) (float64, error) {
	args := m.Called(ctx, code, date)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProvider) CrossRate(ctx context.Context, from, to string, date provider.DateKey) (float64, error) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).(float64), args.Error(1)
}
