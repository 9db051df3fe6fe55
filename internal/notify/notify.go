// Package notify maps reservation events to templated emails.
//
// A Notifier runs against any Sender: the in-process email service, or a
// Client that calls a remote email service over HTTP.
package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/email"
	"github.com/DukeRupert/traslado/internal/metrics"
)

// DefaultAdminEmail receives new-reservation alerts when none is configured.
const DefaultAdminEmail = "admin@traslado.app"

// Sender delivers one templated email. service.EmailService and Client
// both satisfy it.
type Sender interface {
	SendReservationEmail(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult
	SendEmailWithData(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult
}

// Notifier fires the emails for one business event.
type Notifier struct {
	sender     Sender
	adminEmail string
	logger     *slog.Logger
}

// NewNotifier creates a Notifier. An empty adminEmail uses DefaultAdminEmail.
func NewNotifier(sender Sender, adminEmail string, logger *slog.Logger) *Notifier {
	if strings.TrimSpace(adminEmail) == "" {
		adminEmail = DefaultAdminEmail
	}
	return &Notifier{
		sender:     sender,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// attempt is one recipient/template pair in a batch.
type attempt struct {
	recipient string
	template  string
}

// plan returns the ordered attempts for event. The client is always first.
func (n *Notifier) plan(event domain.NotificationEvent, clientEmail, driverEmail string) ([]attempt, error) {
	const op = "notify.plan"

	switch event {
	case domain.NotificationCreated:
		return []attempt{
			{recipient: clientEmail, template: email.TemplateReservationCreated},
			{recipient: n.adminEmail, template: email.TemplateAdminNewReservation},
		}, nil
	case domain.NotificationConfirmed:
		steps := []attempt{{recipient: clientEmail, template: email.TemplateReservationConfirmed}}
		if strings.TrimSpace(driverEmail) != "" {
			steps = append(steps, attempt{recipient: driverEmail, template: email.TemplateDriverNewTrip})
		}
		return steps, nil
	case domain.NotificationCompleted:
		return []attempt{{recipient: clientEmail, template: email.TemplateReservationCompleted}}, nil
	default:
		return nil, domain.Invalid(op, "type must be one of created, confirmed, completed")
	}
}

// SendAutomaticEmails sends every email for event, one after another.
// A failed attempt does not stop later ones; Success is true only when all
// attempts succeed.
func (n *Notifier) SendAutomaticEmails(ctx context.Context, reservationID, clientEmail string, event domain.NotificationEvent, driverEmail string) (*domain.BatchResult, error) {
	steps, err := n.plan(event, clientEmail, driverEmail)
	if err != nil {
		return nil, err
	}

	return n.run(event, steps, func(a attempt) domain.SendResult {
		return n.sender.SendReservationEmail(ctx, reservationID, a.template, a.recipient)
	}), nil
}

// SendAutomaticEmailsWithData is SendAutomaticEmails for callers that
// already hold the template data. An empty clientEmail falls back to
// data.ClientEmail.
func (n *Notifier) SendAutomaticEmailsWithData(ctx context.Context, data domain.ReservationEmailData, clientEmail string, event domain.NotificationEvent, driverEmail string) (*domain.BatchResult, error) {
	if strings.TrimSpace(clientEmail) == "" {
		clientEmail = data.ClientEmail
	}
	steps, err := n.plan(event, clientEmail, driverEmail)
	if err != nil {
		return nil, err
	}

	return n.run(event, steps, func(a attempt) domain.SendResult {
		return n.sender.SendEmailWithData(ctx, a.template, a.recipient, data)
	}), nil
}

func (n *Notifier) run(event domain.NotificationEvent, steps []attempt, send func(attempt) domain.SendResult) *domain.BatchResult {
	batch := &domain.BatchResult{Results: make([]domain.RecipientResult, 0, len(steps))}
	for _, a := range steps {
		res := send(a)
		batch.Add(domain.RecipientResult{
			Recipient:    a.recipient,
			TemplateName: a.template,
			SendResult:   res,
		})
		if !res.Success {
			n.logger.Warn("notification email failed",
				"event", event,
				"template", a.template,
				"recipient", a.recipient,
				"error", res.Error,
			)
		}
	}

	metrics.BatchCompleted(string(event), batch.Success)
	return batch
}

// =============================================================================
// Single-event helpers
// =============================================================================

// NotifyReservationCreated tells the client and the admin about a new booking.
func (n *Notifier) NotifyReservationCreated(ctx context.Context, reservationID, clientEmail string) *domain.BatchResult {
	batch, _ := n.SendAutomaticEmails(ctx, reservationID, clientEmail, domain.NotificationCreated, "")
	return batch
}

// NotifyReservationConfirmed tells the client, and the driver when known.
func (n *Notifier) NotifyReservationConfirmed(ctx context.Context, reservationID, clientEmail, driverEmail string) *domain.BatchResult {
	batch, _ := n.SendAutomaticEmails(ctx, reservationID, clientEmail, domain.NotificationConfirmed, driverEmail)
	return batch
}

// NotifyReservationCompleted thanks the client after the trip.
func (n *Notifier) NotifyReservationCompleted(ctx context.Context, reservationID, clientEmail string) *domain.BatchResult {
	batch, _ := n.SendAutomaticEmails(ctx, reservationID, clientEmail, domain.NotificationCompleted, "")
	return batch
}

// NotifyDriverAssigned tells the client which driver will pick them up.
func (n *Notifier) NotifyDriverAssigned(ctx context.Context, reservationID, clientEmail string) domain.SendResult {
	return n.sender.SendReservationEmail(ctx, reservationID, email.TemplateTripAssigned, clientEmail)
}
