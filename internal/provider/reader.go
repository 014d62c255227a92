// Package provider implements the dated XML exchange rate source.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

var _ RatesProvider = (*Reader)(nil)

// DefaultMaxDocumentSize caps the bytes read from one rate document.
const DefaultMaxDocumentSize int64 = 10 << 20

var errDocumentTooLarge = errors.New("rate document too large")

// Reader fetches daily rate documents relative to a base endpoint. For a
// base of http://api.finance.xaviermedia.com/api/ the document for
// 25 June 2010 is http://api.finance.xaviermedia.com/api/2010/06/25.xml.
//
// A Reader holds no per-call state and is safe for concurrent use.
type Reader struct {
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
	policy  MatchPolicy
	maxSize int64
}

// Option configures a Reader.
type Option func(*Reader)

// WithHTTPClient replaces the HTTP client used for document requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) {
		if c != nil {
			r.client = c
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMatchPolicy sets which entry wins for a code listed more than once.
func WithMatchPolicy(p MatchPolicy) Option {
	return func(r *Reader) {
		r.policy = p
	}
}

// WithMaxDocumentSize limits how many bytes of a document are read. Larger
// documents fail with ErrParse. A non-positive n removes the limit.
func WithMaxDocumentSize(n int64) Option {
	return func(r *Reader) {
		r.maxSize = n
	}
}

// NewReader creates a Reader for baseURL. Request URLs are formed by
// appending the date path to baseURL as-is, so it normally ends with "/".
// A non-positive timeoutSec leaves the client without a timeout.
func NewReader(baseURL string, timeoutSec int, opts ...Option) (*Reader, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL %q: %v", ErrConfiguration, baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be absolute", ErrConfiguration, baseURL)
	}

	client := &http.Client{}
	if timeoutSec > 0 {
		client.Timeout = time.Duration(timeoutSec) * time.Second
	}

	r := &Reader{
		baseURL: baseURL,
		client:  client,
		log:     zap.NewNop().Sugar(),
		policy:  MatchLast,
		maxSize: DefaultMaxDocumentSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BaseURL returns the endpoint all requests are relative to.
func (r *Reader) BaseURL() string {
	return r.baseURL
}

// DocumentURL returns the full URL of the document for date.
func (r *Reader) DocumentURL(date DateKey) string {
	return r.baseURL + date.Path()
}

// Rate returns the rate of currencyCode against the document's base
// currency on date. When the document has no entry for the code it
// returns 0 and an error wrapping ErrCurrencyNotFound.
func (r *Reader) Rate(ctx context.Context, currencyCode string, date DateKey) (float64, error) {
	doc, err := r.fetch(ctx, date)
	if err != nil {
		return 0, err
	}
	return doc.lookup(currencyCode, r.policy)
}

// CrossRate returns rate(fromCurrency) / rate(toCurrency) on date. Both
// rates are read from a single fetch of the document.
func (r *Reader) CrossRate(ctx context.Context, fromCurrency, toCurrency string, date DateKey) (float64, error) {
	doc, err := r.fetch(ctx, date)
	if err != nil {
		return 0, err
	}

	from, err := doc.lookup(fromCurrency, r.policy)
	if err != nil {
		return 0, err
	}
	to, err := doc.lookup(toCurrency, r.policy)
	if err != nil {
		return 0, err
	}
	if to == 0 {
		return 0, fmt.Errorf("%w: %s on %s", ErrZeroRate, toCurrency, date)
	}
	return from / to, nil
}

func (r *Reader) fetch(ctx context.Context, date DateKey) (*rateDocument, error) {
	reqURL := r.DocumentURL(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: rate document request creation failed: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/xml")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warnw("Rate document request failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: rate document request failed: %w", ErrNetwork, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.log.Warnw("Rate document request returned error status", "url", reqURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: rate source returned status %d: %s", ErrNetwork, resp.StatusCode, string(body))
	}

	body := &bodyReader{r: resp.Body, limit: r.maxSize}
	doc, err := parseDocument(body)
	if errors.Is(body.err, errDocumentTooLarge) {
		r.log.Warnw("Rate document exceeds size limit", "url", reqURL, "limit_bytes", r.maxSize)
		return nil, fmt.Errorf("%w: rate document exceeds %d bytes", ErrParse, r.maxSize)
	}
	if body.err != nil {
		r.log.Warnw("Rate document read failed", "url", reqURL, "error", body.err)
		return nil, fmt.Errorf("%w: reading rate document: %w", ErrNetwork, body.err)
	}
	if err != nil {
		r.log.Warnw("Rate document could not be parsed", "url", reqURL, "error", err)
		return nil, err
	}

	r.log.Debugw("Fetched rate document", "url", reqURL, "duration_ms", time.Since(start).Milliseconds())
	return doc, nil
}

// bodyReader remembers the first transport error so it is not reported as a
// parse failure, and stops once more than limit bytes have been read.
type bodyReader struct {
	r     io.Reader
	limit int64
	read  int64
	err   error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	n, err := b.r.Read(p)
	b.read += int64(n)
	if b.limit > 0 && b.read > b.limit {
		b.err = errDocumentTooLarge
		return 0, b.err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		b.err = err
	}
	return n, err
}
