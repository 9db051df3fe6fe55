// Package email provides template rendering and mail delivery for the
// reservation notification service.
//
// This package defines a Transport interface with implementations for:
// - SMTP (Gmail, Mailhog in development, any standard SMTP relay)
// - SendGrid Web API
package email

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Transport delivers rendered messages.
//
// A single Transport is built at startup and shared by every send; its
// configuration is read-only afterwards.
type Transport interface {
	// Send delivers msg and returns the provider message id.
	// Failures are returned as *TransportError.
	Send(ctx context.Context, msg Message) (string, error)

	// Verify checks connectivity and credentials without sending mail.
	// It never returns an error; the cause is logged for operators.
	Verify(ctx context.Context) bool
}

// =============================================================================
// Email Data Types
// =============================================================================

// Message represents a single outgoing email.
type Message struct {
	To       string // Recipient email address
	Subject  string // Email subject line
	HTMLBody string // HTML content of the email
	TextBody string // Optional plain text alternative
}

// =============================================================================
// Configuration Types
// =============================================================================

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host     string // SMTP server hostname
	Port     int    // SMTP server port
	Secure   bool   // Use implicit TLS (port 465) instead of STARTTLS
	Username string // SMTP authentication username (empty for Mailhog)
	Password string // SMTP authentication password
	From     string // Sender email address
	FromName string // Sender display name
}

// SendGridConfig holds SendGrid API configuration.
type SendGridConfig struct {
	APIKey   string
	From     string
	FromName string
	Host     string // API host, overridable for tests
}

// =============================================================================
// Common Constants
// =============================================================================

const (
	// DefaultSMTPHost is used when SMTP_HOST is unset.
	DefaultSMTPHost = "smtp.gmail.com"

	// DefaultSMTPPort is used when SMTP_PORT is unset.
	DefaultSMTPPort = 587

	// DefaultFromEmail is the default sender email for transactional emails.
	DefaultFromEmail = "noreply@traslado.app"

	// DefaultFromName is the default sender display name.
	DefaultFromName = "Traslado"

	// DefaultSendGridHost is the public SendGrid API host.
	DefaultSendGridHost = "https://api.sendgrid.com"
)

// =============================================================================
// Errors
// =============================================================================

// ErrTemplateNotFound is returned when a template name is not registered.
var ErrTemplateNotFound = errors.New("template not found")

// TransportError wraps a delivery failure from the underlying provider
// (authentication, connectivity, rejected recipient).
type TransportError struct {
	Provider string // "smtp" or "sendgrid"
	Op       string // "dial", "send", ...
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
