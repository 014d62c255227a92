package service

import (
	"errors"
)

// ErrUnsupportedCurrency is returned when a currency is not in the configured list.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Validator defines the interface for currency validation.
type Validator interface {
	Validate(code string) error
	IsSupported(code string) bool
}

type validator struct {
	supported map[string]struct{}
}

// NewValidator creates a currency validator. With no codes every
// well-formed code is supported; otherwise only the listed ones are.
func NewValidator(codes ...string) Validator {
	v := &validator{}
	if len(codes) > 0 {
		v.supported = make(map[string]struct{}, len(codes))
		for _, c := range codes {
			v.supported[c] = struct{}{}
		}
	}
	return v
}

// Validate checks the code format, then whether it is supported.
func (v *validator) Validate(code string) error {
	if !IsValidCurrencyCode(code) {
		return ErrInvalidCurrencyCode
	}
	if !v.IsSupported(code) {
		return ErrUnsupportedCurrency
	}
	return nil
}

// IsSupported reports whether the code is allowed. Matching is case-sensitive.
func (v *validator) IsSupported(code string) bool {
	if v.supported == nil {
		return true
	}
	_, ok := v.supported[code]
	return ok
}
