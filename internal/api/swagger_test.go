package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "xrate/internal/api/docs"
)

func TestOpenAPISpecHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()

	OpenAPISpecHandler().ServeHTTP(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Errorf("Expected status 307, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/swagger/doc.json" {
		t.Errorf("Expected redirect to /swagger/doc.json, got %s", loc)
	}
}

func TestSwaggerUIHandler_ServesDoc(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()

	SwaggerUIHandler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/rates/{year}/{month}/{day}/{code}") {
		t.Error("Expected rate route in the served document")
	}
}
