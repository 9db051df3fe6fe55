package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// =============================================================================
// Error Response Tests - Security Focus
// =============================================================================

func TestErrorResponse_ValidationListsFields(t *testing.T) {
	err := domain.RequireFields("email.send", "reservationId", "", "templateName", "x", "recipientEmail", " ")

	req := httptest.NewRequest(http.MethodPost, "/email/send", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, newTestLogger(), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeAPIError(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Missing required fields: reservationId, recipientEmail", body.Error)
	assert.Equal(t, map[string]string{"reservationId": "required", "recipientEmail": "required"}, body.Fields)
	assert.NotContains(t, rec.Body.String(), "email.send")
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	dbErr := errors.New("pq: password authentication failed for user \"traslado\" at 10.0.0.5:5432")
	err := domain.Internal(dbErr, "email_log.list", "failed to list email logs")

	req := httptest.NewRequest(http.MethodGet, "/admin/email/logs", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, newTestLogger(), err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	for _, leak := range []string{"password", "10.0.0.5", "pq:", "email_log.list"} {
		assert.NotContains(t, body, leak)
	}
	assert.Equal(t, "Internal server error", decodeAPIError(t, rec).Error)
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/email/logs", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, newTestLogger(), &mockDatabaseError{msg: "relation \"email_logs\" does not exist"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "relation"))
}

func TestErrorResponse_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/reservations/x", nil)
	rec := httptest.NewRecorder()
	NotFoundResponse(rec, req, newTestLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.ENOTFOUND, decodeAPIError(t, rec).Code)
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[string]int{
		domain.EINVALID:      http.StatusBadRequest,
		domain.EUNAUTHORIZED: http.StatusUnauthorized,
		domain.ENOTFOUND:     http.StatusNotFound,
		domain.ECONFLICT:     http.StatusConflict,
		domain.EINTERNAL:     http.StatusInternalServerError,
		"something-else":     http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, ErrorCodeToHTTPStatus(code), code)
	}
}

type mockDatabaseError struct {
	msg string
}

func (e *mockDatabaseError) Error() string {
	return e.msg
}
