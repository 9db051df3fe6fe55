package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/notify"
	"github.com/DukeRupert/traslado/internal/service"
)

// EmailHandler serves the email service endpoints.
type EmailHandler struct {
	emails   service.EmailService
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(emails service.EmailService, notifier *notify.Notifier, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{
		emails:   emails,
		notifier: notifier,
		logger:   logger,
	}
}

// RegisterRoutes registers the email routes.
func (h *EmailHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /email/send", h.recoverSend(h.Send))
	mux.HandleFunc("GET /email/send", h.recoverVerify(h.Verify))
	mux.HandleFunc("POST /email/send-simple", h.recoverSend(h.SendSimple))
	mux.HandleFunc("POST /email/automatic", h.recoverSend(h.SendAutomatic))
	mux.HandleFunc("GET /email/templates", h.Templates)
}

// =============================================================================
// Request / Response Types
// =============================================================================

type sendEmailRequest struct {
	ReservationID  string `json:"reservationId"`
	TemplateName   string `json:"templateName"`
	RecipientEmail string `json:"recipientEmail"`
}

type sendSimpleRequest struct {
	TemplateName    string                       `json:"templateName"`
	RecipientEmail  string                       `json:"recipientEmail"`
	ReservationData *domain.ReservationEmailData `json:"reservationData"`
}

type sendAutomaticRequest struct {
	ReservationID string `json:"reservationId"`
	ClientEmail   string `json:"clientEmail"`
	Type          string `json:"type"`
	DriverEmail   string `json:"driverEmail,omitempty"`
}

// SendResponse is the body of a send endpoint.
type SendResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

// VerifyResponse is the body of GET /email/send.
type VerifyResponse struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

// Send sends a template for a stored reservation.
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	const op = "email.send"

	var req sendEmailRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := domain.RequireFields(op,
		"reservationId", req.ReservationID,
		"templateName", req.TemplateName,
		"recipientEmail", req.RecipientEmail,
	); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	res := h.emails.SendReservationEmail(r.Context(), req.ReservationID, req.TemplateName, req.RecipientEmail)
	h.writeSendResult(w, res)
}

// SendSimple sends a template using data supplied in the request.
func (h *EmailHandler) SendSimple(w http.ResponseWriter, r *http.Request) {
	const op = "email.send_simple"

	var req sendSimpleRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := domain.RequireFields(op,
		"templateName", req.TemplateName,
		"recipientEmail", req.RecipientEmail,
		"reservationData", present(req.ReservationData != nil),
	); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	res := h.emails.SendEmailWithData(r.Context(), req.TemplateName, req.RecipientEmail, *req.ReservationData)
	h.writeSendResult(w, res)
}

// SendAutomatic fires every email for a reservation event. Partial failure
// answers 207 with the per-recipient results.
func (h *EmailHandler) SendAutomatic(w http.ResponseWriter, r *http.Request) {
	const op = "email.automatic"

	var req sendAutomaticRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := domain.RequireFields(op,
		"reservationId", req.ReservationID,
		"clientEmail", req.ClientEmail,
		"type", req.Type,
	); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	event := domain.NotificationEvent(strings.ToLower(strings.TrimSpace(req.Type)))
	batch, err := h.notifier.SendAutomaticEmails(r.Context(), req.ReservationID, req.ClientEmail, event, req.DriverEmail)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	status := http.StatusOK
	if !batch.Success {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, batch)
}

// Verify reports whether the mail transport is reachable.
func (h *EmailHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if h.emails.VerifyConnection(r.Context()) {
		writeJSON(w, http.StatusOK, VerifyResponse{Connected: true, Message: "Email service connected"})
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{Connected: false, Message: "Email service connection failed"})
}

// Templates lists the registered template names.
func (h *EmailHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"templates": h.emails.Templates()})
}

// =============================================================================
// Helpers
// =============================================================================

func (h *EmailHandler) writeSendResult(w http.ResponseWriter, res domain.SendResult) {
	if !res.Success {
		writeJSON(w, http.StatusInternalServerError, SendResponse{Success: false, Error: res.Error})
		return
	}
	writeJSON(w, http.StatusOK, SendResponse{
		Success:   true,
		Message:   "Email sent successfully",
		MessageID: res.MessageID,
	})
}

// recoverSend turns a panic into the generic send failure body.
func (h *EmailHandler) recoverSend(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic in email handler",
					"path", r.URL.Path,
					"panic", rec,
				)
				writeJSON(w, http.StatusInternalServerError, SendResponse{Success: false, Error: "Internal server error"})
			}
		}()
		next(w, r)
	}
}

// recoverVerify turns a panic into a disconnected verify body.
func (h *EmailHandler) recoverVerify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic in email verify handler", "panic", rec)
				writeJSON(w, http.StatusInternalServerError, VerifyResponse{Connected: false, Error: "Internal server error"})
			}
		}()
		next(w, r)
	}
}

// present maps a presence check onto the string form RequireFields takes.
func present(ok bool) string {
	if ok {
		return "present"
	}
	return ""
}
