package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"xrate/internal/provider"
)

var testDate = provider.DateKey{Year: 2010, Month: 6, Day: 25}

func newTestService(prov provider.RatesProvider, codes ...string) *RateService {
	logger, _ := zap.NewDevelopment()
	return NewRateService(prov, NewValidator(codes...), logger.Sugar())
}

func TestIsValidCurrencyCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"USD", true},
		{"EUR", true},
		{"usd", false},  // upstream matching is case-sensitive
		{"US", false},   // too short
		{"USDA", false}, // too long
		{"US1", false},  // contains number
		{"US$", false},  // contains special char
		{"", false},     // empty
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidCurrencyCode(tc.code))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2010", "6", "25")
	require.NoError(t, err)
	assert.Equal(t, testDate, d)

	d, err = ParseDate("2010", "06", "05")
	require.NoError(t, err)
	assert.Equal(t, provider.DateKey{Year: 2010, Month: 6, Day: 5}, d)

	for _, in := range [][3]string{{"x", "6", "25"}, {"2010", "", "25"}, {"2010", "6", "2.5"}} {
		_, err := ParseDate(in[0], in[1], in[2])
		assert.ErrorIs(t, err, ErrInvalidDate)
	}
}

func TestValidator(t *testing.T) {
	open := NewValidator()
	assert.NoError(t, open.Validate("XAU"))
	assert.ErrorIs(t, open.Validate("xau"), ErrInvalidCurrencyCode)

	restricted := NewValidator("USD", "EUR")
	assert.NoError(t, restricted.Validate("USD"))
	assert.ErrorIs(t, restricted.Validate("GBP"), ErrUnsupportedCurrency)
	assert.False(t, restricted.IsSupported("usd"))
}

func TestGetRate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		prov := new(MockProvider)
		prov.On("Rate", mock.Anything, "USD", testDate).Return(1.25, nil).Once()

		res, err := newTestService(prov).GetRate(context.Background(), "USD", testDate)
		require.NoError(t, err)
		assert.Equal(t, &RateResult{Quote: "USD", Date: "2010-06-25", Rate: 1.25}, res)
		assert.False(t, res.IsCross())
		prov.AssertExpectations(t)
	})

	t.Run("invalid code never reaches provider", func(t *testing.T) {
		prov := new(MockProvider)

		_, err := newTestService(prov).GetRate(context.Background(), "usd", testDate)
		assert.ErrorIs(t, err, ErrInvalidCurrencyCode)
		prov.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unsupported code", func(t *testing.T) {
		prov := new(MockProvider)

		_, err := newTestService(prov, "EUR").GetRate(context.Background(), "USD", testDate)
		assert.ErrorIs(t, err, ErrUnsupportedCurrency)
		prov.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider errors pass through", func(t *testing.T) {
		for _, sentinel := range []error{provider.ErrCurrencyNotFound, provider.ErrNetwork, provider.ErrParse} {
			prov := new(MockProvider)
			prov.On("Rate", mock.Anything, "USD", testDate).
				Return(0.0, fmt.Errorf("%w: USD", sentinel)).Once()

			res, err := newTestService(prov).GetRate(context.Background(), "USD", testDate)
			assert.ErrorIs(t, err, sentinel)
			assert.Nil(t, res)
			prov.AssertExpectations(t)
		}
	})
}

func TestGetCrossRate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		prov := new(MockProvider)
		prov.On("CrossRate", mock.Anything, "USD", "GBP", testDate).Return(1.49, nil).Once()

		res, err := newTestService(prov).GetCrossRate(context.Background(), "USD", "GBP", testDate)
		require.NoError(t, err)
		assert.Equal(t, &RateResult{Base: "USD", Quote: "GBP", Date: "2010-06-25", Rate: 1.49}, res)
		assert.True(t, res.IsCross())
		prov.AssertExpectations(t)
	})

	t.Run("invalid quote", func(t *testing.T) {
		prov := new(MockProvider)

		_, err := newTestService(prov).GetCrossRate(context.Background(), "USD", "GB", testDate)
		assert.ErrorIs(t, err, ErrInvalidCurrencyCode)
		prov.AssertNotCalled(t, "CrossRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero denominator", func(t *testing.T) {
		prov := new(MockProvider)
		prov.On("CrossRate", mock.Anything, "USD", "XXX", testDate).
			Return(0.0, fmt.Errorf("%w: XXX", provider.ErrZeroRate)).Once()

		_, err := newTestService(prov).GetCrossRate(context.Background(), "USD", "XXX", testDate)
		assert.ErrorIs(t, err, provider.ErrZeroRate)
	})
}
