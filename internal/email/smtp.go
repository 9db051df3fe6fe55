package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-mail/mail/v2"
	"github.com/google/uuid"
)

// =============================================================================
// SMTP Transport Implementation
// =============================================================================

// SMTPTransport sends emails via SMTP.
//
// This implementation works with:
// - Gmail / Google Workspace (default host, STARTTLS on 587)
// - Mailhog (development): No authentication required
// - Any standard SMTP server (implicit TLS when Secure is set)
type SMTPTransport struct {
	config SMTPConfig
	dialer *mail.Dialer
	logger *slog.Logger
}

// NewSMTPTransport creates a new SMTP-based transport.
//
// Parameters:
// - config: SMTP server configuration; empty host/port/from use the defaults
// - timeout: dial and I/O timeout for each connection
// - logger: Structured logger for operator diagnostics
func NewSMTPTransport(config SMTPConfig, timeout time.Duration, logger *slog.Logger) *SMTPTransport {
	// Set defaults
	if config.Host == "" {
		config.Host = DefaultSMTPHost
	}
	if config.Port == 0 {
		config.Port = DefaultSMTPPort
	}
	if config.From == "" {
		config.From = DefaultFromEmail
	}
	if config.FromName == "" {
		config.FromName = DefaultFromName
	}

	dialer := mail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.SSL = config.Secure || config.Port == 465
	if timeout > 0 {
		dialer.Timeout = timeout
	}

	return &SMTPTransport{
		config: config,
		dialer: dialer,
		logger: logger,
	}
}

// Send delivers msg over a fresh SMTP connection.
func (s *SMTPTransport) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &TransportError{Provider: "smtp", Op: "send", Err: err}
	}

	messageID := s.newMessageID()
	m := s.buildMessage(msg, messageID)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("failed to send email",
			"to", msg.To,
			"subject", msg.Subject,
			"host", s.config.Host,
			"error", err,
		)
		return "", &TransportError{Provider: "smtp", Op: "send", Err: err}
	}

	s.logger.Info("email sent",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", messageID,
	)

	return messageID, nil
}

// Verify opens and closes an authenticated SMTP session.
func (s *SMTPTransport) Verify(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	conn, err := s.dialer.Dial()
	if err != nil {
		s.logger.Error("smtp verification failed",
			"host", s.config.Host,
			"port", s.config.Port,
			"error", err,
		)
		return false
	}
	if err := conn.Close(); err != nil {
		s.logger.Warn("smtp verification close failed", "error", err)
	}
	return true
}

// =============================================================================
// Internal Methods
// =============================================================================

// buildMessage constructs the MIME message. With a text body the message is
// multipart/alternative; otherwise it is a single text/html part.
func (s *SMTPTransport) buildMessage(msg Message, messageID string) *mail.Message {
	m := mail.NewMessage()
	m.SetAddressHeader("From", s.config.From, s.config.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetDateHeader("Date", time.Now())

	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}
	return m
}

// newMessageID returns an RFC 5322 message id scoped to the sender domain.
func (s *SMTPTransport) newMessageID() string {
	domain := "localhost"
	if at := strings.LastIndex(s.config.From, "@"); at >= 0 && at < len(s.config.From)-1 {
		domain = s.config.From[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// =============================================================================
// Compile-time interface check
// =============================================================================

var _ Transport = (*SMTPTransport)(nil)
