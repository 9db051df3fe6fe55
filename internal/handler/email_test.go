package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmailService implements service.EmailService.
type mockEmailService struct {
	SendReservationEmailFunc func(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult
	SendEmailWithDataFunc    func(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult
	VerifyConnectionFunc     func(ctx context.Context) bool
}

func (m *mockEmailService) SendReservationEmail(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
	if m.SendReservationEmailFunc != nil {
		return m.SendReservationEmailFunc(ctx, reservationID, templateName, recipient)
	}
	return domain.SendResult{Success: true}
}

func (m *mockEmailService) SendEmailWithData(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult {
	if m.SendEmailWithDataFunc != nil {
		return m.SendEmailWithDataFunc(ctx, templateName, recipient, data)
	}
	return domain.SendResult{Success: true}
}

func (m *mockEmailService) VerifyConnection(ctx context.Context) bool {
	if m.VerifyConnectionFunc != nil {
		return m.VerifyConnectionFunc(ctx)
	}
	return true
}

func (m *mockEmailService) Templates() []string {
	return []string{"reservation_created", "reservation_confirmed"}
}

func newTestEmailMux(svc *mockEmailService) *http.ServeMux {
	logger := newTestLogger()
	h := NewEmailHandler(svc, notify.NewNotifier(svc, "admin@traslado.app", logger), logger)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSend(t *testing.T, rec *httptest.ResponseRecorder) SendResponse {
	t.Helper()
	var resp SendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// =============================================================================
// POST /email/send
// =============================================================================

func TestSend_Success(t *testing.T) {
	var got []string
	svc := &mockEmailService{
		SendReservationEmailFunc: func(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
			got = []string{reservationID, templateName, recipient}
			return domain.SendResult{Success: true, MessageID: "<id@traslado.app>"}
		},
	}

	rec := doJSON(t, newTestEmailMux(svc), http.MethodPost, "/email/send",
		`{"reservationId":"R1","templateName":"reservation_created","recipientEmail":"client@x.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSend(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Email sent successfully", resp.Message)
	assert.Equal(t, []string{"R1", "reservation_created", "client@x.com"}, got)
}

func TestSend_MissingFields(t *testing.T) {
	called := false
	svc := &mockEmailService{
		SendReservationEmailFunc: func(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
			called = true
			return domain.SendResult{Success: true}
		},
	}

	rec := doJSON(t, newTestEmailMux(svc), http.MethodPost, "/email/send", `{"templateName":"reservation_created"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeAPIError(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Missing required fields: reservationId, recipientEmail", body.Error)
	assert.False(t, called)
}

func TestSend_MalformedJSON(t *testing.T) {
	rec := doJSON(t, newTestEmailMux(&mockEmailService{}), http.MethodPost, "/email/send", `{"reservationId":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeAPIError(t, rec).Success)
}

func TestSend_FacadeFailure(t *testing.T) {
	svc := &mockEmailService{
		SendReservationEmailFunc: func(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
			return domain.SendResult{Success: false, Error: "Reservation data not found"}
		},
	}

	rec := doJSON(t, newTestEmailMux(svc), http.MethodPost, "/email/send",
		`{"reservationId":"nonexistent-id","templateName":"reservation_created","recipientEmail":"a@b.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeSend(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Reservation data not found", resp.Error)
}

func TestSend_PanicIsGenericError(t *testing.T) {
	svc := &mockEmailService{
		SendReservationEmailFunc: func(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
			panic("nil map write in smtp pool")
		},
	}

	rec := doJSON(t, newTestEmailMux(svc), http.MethodPost, "/email/send",
		`{"reservationId":"R1","templateName":"reservation_created","recipientEmail":"a@b.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeSend(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error", resp.Error)
	assert.NotContains(t, rec.Body.String(), "smtp pool")
}

// =============================================================================
// GET /email/send
// =============================================================================

func TestVerify(t *testing.T) {
	tests := []struct {
		name          string
		verify        func(ctx context.Context) bool
		wantStatus    int
		wantConnected bool
	}{
		{name: "connected", verify: func(ctx context.Context) bool { return true }, wantStatus: http.StatusOK, wantConnected: true},
		{name: "disconnected", verify: func(ctx context.Context) bool { return false }, wantStatus: http.StatusOK},
		{name: "panic", verify: func(ctx context.Context) bool { panic("boom") }, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestEmailMux(&mockEmailService{VerifyConnectionFunc: tt.verify})

			req := httptest.NewRequest(http.MethodGet, "/email/send", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp VerifyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantConnected, resp.Connected)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", resp.Error)
			} else {
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

// =============================================================================
// POST /email/send-simple
// =============================================================================

func TestSendSimple(t *testing.T) {
	var got domain.ReservationEmailData
	svc := &mockEmailService{
		SendEmailWithDataFunc: func(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult {
			got = data
			return domain.SendResult{Success: true}
		},
	}

	rec := doJSON(t, newTestEmailMux(svc), http.MethodPost, "/email/send-simple", `{
		"templateName": "reservation_confirmed",
		"recipientEmail": "client@x.com",
		"reservationData": {
			"client_name": "Ana",
			"confirmation_code": "ABC123",
			"pickup_location": "Airport",
			"dropoff_location": "Hotel X",
			"passenger_count": 2,
			"contact_phone": "+56911112222",
			"driver_name": "Juan Soto"
		}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeSend(t, rec).Success)
	assert.Equal(t, "ABC123", got.ConfirmationCode)
	assert.Equal(t, 2, got.PassengerCount)
	assert.Equal(t, "Juan Soto", got.DriverName)
}

func TestSendSimple_MissingData(t *testing.T) {
	rec := doJSON(t, newTestEmailMux(&mockEmailService{}), http.MethodPost, "/email/send-simple",
		`{"templateName":"reservation_confirmed","recipientEmail":"client@x.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: reservationData", decodeAPIError(t, rec).Error)
}

// =============================================================================
// POST /email/automatic
// =============================================================================

func TestSendAutomatic(t *testing.T) {
	svc := &mockEmailService{
		SendReservationEmailFunc: func(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
			if recipient == "driver@y.com" {
				return domain.SendResult{Success: false, Error: "smtp send: 550"}
			}
			return domain.SendResult{Success: true}
		},
	}
	mux := newTestEmailMux(svc)

	t.Run("all succeed", func(t *testing.T) {
		rec := doJSON(t, mux, http.MethodPost, "/email/automatic",
			`{"reservationId":"R1","clientEmail":"client@x.com","type":"created"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var batch domain.BatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
		assert.True(t, batch.Success)
		require.Len(t, batch.Results, 2)
		assert.Equal(t, "admin@traslado.app", batch.Results[1].Recipient)
	})

	t.Run("partial failure", func(t *testing.T) {
		rec := doJSON(t, mux, http.MethodPost, "/email/automatic",
			`{"reservationId":"R1","clientEmail":"client@x.com","type":"confirmed","driverEmail":"driver@y.com"}`)

		assert.Equal(t, http.StatusMultiStatus, rec.Code)
		var batch domain.BatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
		assert.False(t, batch.Success)
		require.Len(t, batch.Results, 2)
		assert.True(t, batch.Results[0].Success)
		assert.False(t, batch.Results[1].Success)
	})

	t.Run("unknown type", func(t *testing.T) {
		rec := doJSON(t, mux, http.MethodPost, "/email/automatic",
			`{"reservationId":"R1","clientEmail":"client@x.com","type":"refunded"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTemplates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/email/templates", nil)
	rec := httptest.NewRecorder()
	newTestEmailMux(&mockEmailService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"templates":["reservation_created","reservation_confirmed"]}`, rec.Body.String())
}
