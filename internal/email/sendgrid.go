package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridTransport sends emails through the SendGrid v3 Web API.
type SendGridTransport struct {
	config SendGridConfig
	logger *slog.Logger
}

// NewSendGridTransport creates a SendGrid-backed transport.
func NewSendGridTransport(config SendGridConfig, logger *slog.Logger) *SendGridTransport {
	if config.Host == "" {
		config.Host = DefaultSendGridHost
	}
	if config.From == "" {
		config.From = DefaultFromEmail
	}
	if config.FromName == "" {
		config.FromName = DefaultFromName
	}
	return &SendGridTransport{config: config, logger: logger}
}

// Send posts msg to /v3/mail/send and returns the X-Message-Id header.
func (s *SendGridTransport) Send(ctx context.Context, msg Message) (string, error) {
	request := sendgrid.GetRequest(s.config.APIKey, "/v3/mail/send", s.config.Host)
	request.Method = rest.Post
	request.Body = sgmail.GetRequestBody(s.buildMessage(msg))

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		s.logger.Error("failed to send email via sendgrid", "to", msg.To, "error", err)
		return "", &TransportError{Provider: "sendgrid", Op: "send", Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		err := fmt.Errorf("unexpected status %d: %s", response.StatusCode, response.Body)
		s.logger.Error("sendgrid rejected email",
			"to", msg.To,
			"status", response.StatusCode,
			"body", response.Body,
		)
		return "", &TransportError{Provider: "sendgrid", Op: "send", Err: err}
	}

	var messageID string
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}

	s.logger.Info("email sent",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", messageID,
	)
	return messageID, nil
}

// Verify checks the API key by listing its scopes.
func (s *SendGridTransport) Verify(ctx context.Context) bool {
	if s.config.APIKey == "" {
		s.logger.Error("sendgrid verification failed", "error", errors.New("api key not configured"))
		return false
	}

	request := sendgrid.GetRequest(s.config.APIKey, "/v3/scopes", s.config.Host)
	request.Method = rest.Get

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		s.logger.Error("sendgrid verification failed", "error", err)
		return false
	}
	if response.StatusCode != 200 {
		s.logger.Error("sendgrid verification failed",
			"status", response.StatusCode,
			"body", response.Body,
		)
		return false
	}
	return true
}

func (s *SendGridTransport) buildMessage(msg Message) *sgmail.SGMailV3 {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(s.config.FromName, s.config.From))
	m.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail("", msg.To))
	m.AddPersonalizations(p)

	if msg.TextBody != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	}
	m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	return m
}

var _ Transport = (*SendGridTransport)(nil)
