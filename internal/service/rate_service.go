// Package service implements the rate lookup use cases on top of a rate provider.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"xrate/internal/provider"
)

// RateServiceInterface defines the operations available for rate lookups.
type RateServiceInterface interface {
	GetRate(ctx context.Context, code string, date provider.DateKey) (*RateResult, error)
	GetCrossRate(ctx context.Context, from, to string, date provider.DateKey) (*RateResult, error)
}

// RateService validates lookups and delegates them to a provider.
type RateService struct {
	provider  provider.RatesProvider
	validator Validator
	log       *zap.SugaredLogger
}

// NewRateService creates a new RateService
func NewRateService(prov provider.RatesProvider, validator Validator, logger *zap.SugaredLogger) *RateService {
	return &RateService{
		provider:  prov,
		validator: validator,
		log:       logger,
	}
}

// GetRate returns the rate of code against the source's base currency on date.
func (s *RateService) GetRate(ctx context.Context, code string, date provider.DateKey) (*RateResult, error) {
	if err := s.validator.Validate(code); err != nil {
		return nil, err
	}

	rate, err := s.provider.Rate(ctx, code, date)
	if err != nil {
		s.logLookupError("Rate lookup failed", err, "currency", code, "date", date.String())
		return nil, err
	}

	s.log.Infow("Rate lookup", "currency", code, "date", date.String(), "rate", rate)
	return &RateResult{Quote: code, Date: date.String(), Rate: rate}, nil
}

// GetCrossRate returns the rate of from expressed in units of to on date.
func (s *RateService) GetCrossRate(ctx context.Context, from, to string, date provider.DateKey) (*RateResult, error) {
	if err := s.validatePair(from, to); err != nil {
		return nil, err
	}

	rate, err := s.provider.CrossRate(ctx, from, to, date)
	if err != nil {
		s.logLookupError("Cross-rate lookup failed", err, "base", from, "quote", to, "date", date.String())
		return nil, err
	}

	s.log.Infow("Cross-rate lookup", "base", from, "quote", to, "date", date.String(), "rate", rate)
	return &RateResult{Base: from, Quote: to, Date: date.String(), Rate: rate}, nil
}

func (s *RateService) validatePair(from, to string) error {
	if err := s.validator.Validate(from); err != nil {
		return err
	}
	return s.validator.Validate(to)
}

// logLookupError logs caller mistakes at warn level and source failures at error level.
func (s *RateService) logLookupError(msg string, err error, kv ...any) {
	kv = append(kv, "error", err)
	switch {
	case errors.Is(err, provider.ErrCurrencyNotFound), errors.Is(err, provider.ErrZeroRate):
		s.log.Warnw(msg, kv...)
	default:
		s.log.Errorw(msg, kv...)
	}
}
