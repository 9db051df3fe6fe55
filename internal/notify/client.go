package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DukeRupert/traslado/internal/domain"
)

// DefaultClientTimeout bounds one call to the email service.
const DefaultClientTimeout = 30 * time.Second

// Client calls the email service endpoints over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for the service at baseURL
// (e.g. "http://localhost:8080"). A nil httpClient uses a client with
// DefaultClientTimeout.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultClientTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type sendRequest struct {
	ReservationID  string `json:"reservationId"`
	TemplateName   string `json:"templateName"`
	RecipientEmail string `json:"recipientEmail"`
}

type sendSimpleRequest struct {
	TemplateName    string                      `json:"templateName"`
	RecipientEmail  string                      `json:"recipientEmail"`
	ReservationData domain.ReservationEmailData `json:"reservationData"`
}

type sendResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

type verifyResponse struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendReservationEmail posts to /email/send.
func (c *Client) SendReservationEmail(ctx context.Context, reservationID, templateName, recipient string) domain.SendResult {
	return c.send(ctx, "/email/send", sendRequest{
		ReservationID:  reservationID,
		TemplateName:   templateName,
		RecipientEmail: recipient,
	})
}

// SendEmailWithData posts to /email/send-simple.
func (c *Client) SendEmailWithData(ctx context.Context, templateName, recipient string, data domain.ReservationEmailData) domain.SendResult {
	return c.send(ctx, "/email/send-simple", sendSimpleRequest{
		TemplateName:    templateName,
		RecipientEmail:  recipient,
		ReservationData: data,
	})
}

// VerifyConnection calls GET /email/send. Transport errors report false.
func (c *Client) VerifyConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/email/send", nil)
	if err != nil {
		c.logger.Error("failed to build verify request", "error", err)
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("email service unreachable", "url", c.baseURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Error("invalid verify response", "status", resp.StatusCode, "error", err)
		return false
	}
	return out.Connected
}

func (c *Client) send(ctx context.Context, path string, payload any) domain.SendResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.SendResult{Success: false, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return domain.SendResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("email service request failed", "path", path, "error", err)
		return domain.SendResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.SendResult{
			Success: false,
			Error:   fmt.Sprintf("unexpected response (status %d): %v", resp.StatusCode, err),
		}
	}

	if resp.StatusCode >= 300 && out.Success {
		out.Success = false
	}
	if !out.Success && out.Error == "" {
		out.Error = fmt.Sprintf("email service returned status %d", resp.StatusCode)
	}
	return domain.SendResult{Success: out.Success, Error: out.Error, MessageID: out.MessageID}
}

var _ Sender = (*Client)(nil)
