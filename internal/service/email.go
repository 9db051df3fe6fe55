// Package service contains the business logic layer.
//
// This file implements the email facade: assemble reservation data, render
// the named template, hand the message to the transport and record the
// attempt in the delivery log.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/email"
	"github.com/DukeRupert/traslado/internal/metrics"
)

// Messages returned in SendResult.Error for failures that happen before a
// delivery attempt.
const (
	ErrMsgReservationNotFound = "Reservation data not found"
	ErrMsgRecipientRequired   = "Recipient email is required"
)

// =============================================================================
// Interface Definition
// =============================================================================

// EmailService is the single entry point for templated sends.
type EmailService interface {
	// SendReservationEmail assembles data for reservationID and sends
	// templateName to recipient. An empty recipient falls back to the
	// client's profile email. Failures are reported in the result, not as
	// errors.
	SendReservationEmail(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult

	// SendEmailWithData sends templateName using caller-supplied data and
	// skips the reservation lookup.
	SendEmailWithData(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult

	// VerifyConnection checks the mail transport. It never panics.
	VerifyConnection(ctx context.Context) bool

	// Templates lists the registered template names.
	Templates() []string
}

// =============================================================================
// Implementation
// =============================================================================

type emailService struct {
	assembler   Assembler
	templates   *email.Registry
	transport   email.Transport
	deliveryLog DeliveryLog
	logger      *slog.Logger
}

// NewEmailService creates a new EmailService.
//
// Parameters:
// - assembler: Builds template data from a reservation id
// - templates: Registry of named templates
// - transport: Mail transport shared by every send
// - deliveryLog: Append-only record of send attempts
// - logger: Structured logger for operation logging
func NewEmailService(
	assembler Assembler,
	templates *email.Registry,
	transport email.Transport,
	deliveryLog DeliveryLog,
	logger *slog.Logger,
) EmailService {
	return &emailService{
		assembler:   assembler,
		templates:   templates,
		transport:   transport,
		deliveryLog: deliveryLog,
		logger:      logger,
	}
}

// =============================================================================
// Send
// =============================================================================

func (s *emailService) SendReservationEmail(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
	data, err := s.assembler.Assemble(ctx, reservationID)
	if err != nil {
		metrics.ReservationDataNotFound.Inc()
		s.logger.Warn("reservation data not found",
			"reservation_id", reservationID,
			"template", templateName,
			"error", err,
		)
		return domain.SendResult{Success: false, Error: ErrMsgReservationNotFound}
	}

	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		recipient = data.ClientEmail
	}

	return s.deliver(ctx, templateName, recipient, *data)
}

func (s *emailService) SendEmailWithData(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		recipient = data.ClientEmail
	}
	if data.ClientName == "" {
		data.ClientName = domain.DefaultClientName
	}
	return s.deliver(ctx, templateName, recipient, data)
}

// deliver renders and sends one message. Exactly one log row is written
// once rendering is attempted.
func (s *emailService) deliver(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult {
	if recipient == "" {
		return domain.SendResult{Success: false, Error: ErrMsgRecipientRequired}
	}

	entry := domain.EmailLog{
		RecipientEmail: recipient,
		TemplateName:   templateName,
	}

	rendered, err := s.templates.Render(templateName, data.Fields())
	if err != nil {
		return s.fail(ctx, entry, "unknown", err)
	}
	entry.Subject = rendered.Subject

	start := time.Now()
	messageID, err := s.send(ctx, email.Message{
		To:       recipient,
		Subject:  rendered.Subject,
		HTMLBody: rendered.HTML,
		TextBody: rendered.Text,
	})
	if err != nil {
		return s.fail(ctx, entry, templateName, err)
	}
	metrics.EmailSent(templateName, time.Since(start))

	entry.Status = domain.EmailLogStatusSent
	entry.MessageID = messageID
	s.deliveryLog.Record(ctx, entry)

	s.logger.Info("templated email sent",
		"template", templateName,
		"recipient", recipient,
		"message_id", messageID,
	)
	return domain.SendResult{Success: true, MessageID: messageID}
}

// send calls the transport, converting a panic into a TransportError so the
// attempt is still logged.
func (s *emailService) send(ctx context.Context, msg email.Message) (messageID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			messageID = ""
			err = &email.TransportError{Provider: "transport", Op: "send", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return s.transport.Send(ctx, msg)
}

func (s *emailService) fail(ctx context.Context, entry domain.EmailLog, metricLabel string, err error) domain.SendResult {
	metrics.EmailFailed(metricLabel)

	entry.Status = domain.EmailLogStatusFailed
	entry.ErrorMessage = err.Error()
	s.deliveryLog.Record(ctx, entry)

	level := slog.LevelError
	if errors.Is(err, email.ErrTemplateNotFound) {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "templated email failed",
		"template", entry.TemplateName,
		"recipient", entry.RecipientEmail,
		"error", err,
	)
	return domain.SendResult{Success: false, Error: err.Error()}
}

// =============================================================================
// Connectivity
// =============================================================================

func (s *emailService) VerifyConnection(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("transport verification panicked", "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	return s.transport.Verify(ctx)
}

func (s *emailService) Templates() []string {
	return s.templates.Names()
}
