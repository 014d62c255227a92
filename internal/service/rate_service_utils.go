package service

import (
	"errors"
	"strconv"

	"xrate/internal/provider"
)

// ErrInvalidCurrencyCode indicates the currency code format is invalid.
var ErrInvalidCurrencyCode = errors.New("invalid currency code format")

// ErrInvalidDate indicates a date component is not an integer.
var ErrInvalidDate = errors.New("invalid date")

// IsValidCurrencyCode checks whether a string is a 3-letter upper-case
// currency code. Upstream matching is case-sensitive, so lower case is rejected
// rather than converted.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// ParseDate builds a DateKey from its textual components. Only the
// integer syntax is checked; calendar validity is left to the source.
func ParseDate(year, month, day string) (provider.DateKey, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return provider.DateKey{}, ErrInvalidDate
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return provider.DateKey{}, ErrInvalidDate
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return provider.DateKey{}, ErrInvalidDate
	}
	return provider.DateKey{Year: y, Month: m, Day: d}, nil
}
