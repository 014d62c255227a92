// Package testkit provides a fake upstream rate source for tests.
package testkit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// APIPrefix is the path under which the fake source serves documents.
const APIPrefix = "/api/"

// RateServer serves dated rate documents from memory and records every request.
type RateServer struct {
	server *httptest.Server

	mu       sync.Mutex
	docs     map[string]string
	status   map[string]int
	requests []string
}

// NewRateServer starts a RateServer that is closed when the test finishes.
func NewRateServer(t testing.TB) *RateServer {
	t.Helper()
	s := &RateServer{
		docs:   make(map[string]string),
		status: make(map[string]int),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.server.Close)
	return s
}

// BaseURL returns the endpoint to configure a reader with, ending in "/api/".
func (s *RateServer) BaseURL() string {
	return s.server.URL + APIPrefix
}

// SetDocument serves body for the relative path, e.g. "2010/06/25.xml".
func (s *RateServer) SetDocument(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = body
}

// SetStatus makes the server answer path with the given status and no document.
func (s *RateServer) SetStatus(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[path] = code
}

// Requests returns the relative paths requested so far, in order.
func (s *RateServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// Hits returns how many times path was requested.
func (s *RateServer) Hits(path string) int {
	n := 0
	for _, p := range s.Requests() {
		if p == path {
			n++
		}
	}
	return n
}

func (s *RateServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, APIPrefix)

	s.mu.Lock()
	s.requests = append(s.requests, path)
	code, hasStatus := s.status[path]
	body, hasDoc := s.docs[path]
	s.mu.Unlock()

	switch {
	case hasStatus:
		http.Error(w, http.StatusText(code), code)
	case hasDoc:
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	default:
		http.NotFound(w, r)
	}
}

// Entry is one currency line of a generated document.
type Entry struct {
	Code string
	Rate string
}

// RateDocument renders entries in the layout of the Xavier finance feed,
// one fx block per entry, indented so that whitespace text sits between
// the code and rate elements.
func RateDocument(base, date string, entries ...Entry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<xavierresponse responsetype="fx">` + "\n")
	b.WriteString("  <exchange_rates>\n")
	fmt.Fprintf(&b, "    <basecurrency>%s</basecurrency>\n", base)
	fmt.Fprintf(&b, "    <fx_date>%s</fx_date>\n", date)
	for _, e := range entries {
		b.WriteString("    <fx>\n")
		fmt.Fprintf(&b, "      <currency_code>%s</currency_code>\n", e.Code)
		fmt.Fprintf(&b, "      <rate>%s</rate>\n", e.Rate)
		b.WriteString("    </fx>\n")
	}
	b.WriteString("  </exchange_rates>\n")
	b.WriteString("</xavierresponse>\n")
	return b.String()
}
