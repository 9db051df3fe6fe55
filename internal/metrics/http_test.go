package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	got := normalizePath("/admin/reservations/3f2b8c4e-1d2a-4b7c-9e8f-0a1b2c3d4e5f/status")
	assert.Equal(t, "/admin/reservations/{id}/status", got)
	assert.Equal(t, "/email/send", normalizePath("/email/send"))
}

func TestRouteLabel(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/nope/123", nil)
	assert.Equal(t, "unmatched", routeLabel(r, http.StatusNotFound))

	r.Pattern = "GET /health"
	assert.Equal(t, "GET /health", routeLabel(r, http.StatusOK))
}

func TestMiddleware_CapturesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /email/send", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	rec := httptest.NewRecorder()
	Middleware(mux).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/email/send", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
