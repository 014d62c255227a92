package service

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// RateResult represents a rate returned by the service layer.
// Base is empty for a single-currency rate, which is quoted against the
// source's own base currency.
type RateResult struct {
	Base  string
	Quote string
	Date  string
	Rate  float64
}

// IsCross reports whether the result is a cross-rate between two requested currencies.
func (r *RateResult) IsCross() bool {
	return r.Base != ""
}

// Pair names the result's currencies, "USD" or "USD/GBP".
func (r *RateResult) Pair() string {
	if r.IsCross() {
		return r.Base + "/" + r.Quote
	}
	return r.Quote
}

// FormatRate renders a rate as the shortest decimal string that round-trips, e.g. "1.25".
func FormatRate(rate float64) string {
	if math.IsInf(rate, 0) || math.IsNaN(rate) {
		return strconv.FormatFloat(rate, 'g', -1, 64)
	}
	return decimal.NewFromFloat(rate).String()
}
