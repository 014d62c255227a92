package provider

import (
	"context"
)

// RatesProvider defines an interface for fetching dated exchange rates from an external source.
type RatesProvider interface {
	Rate(ctx context.Context, currencyCode string, date DateKey) (float64, error)
	CrossRate(ctx context.Context, fromCurrency, toCurrency string, date DateKey) (float64, error)
}
