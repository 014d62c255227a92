package provider

import "errors"

// ErrConfiguration indicates the reader could not be constructed from the given settings.
var ErrConfiguration = errors.New("configuration error")

// ErrNetwork indicates the rate document could not be retrieved.
var ErrNetwork = errors.New("network error")

// ErrParse indicates the rate document is not well-formed or a rate entry is malformed.
var ErrParse = errors.New("parse error")

// ErrCurrencyNotFound indicates the document has no entry for the requested currency code.
var ErrCurrencyNotFound = errors.New("currency not found")

// ErrZeroRate indicates a cross-rate denominator resolved to zero.
var ErrZeroRate = errors.New("zero rate")
