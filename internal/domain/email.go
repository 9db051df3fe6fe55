package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultClientName is used when a reservation has no resolvable profile.
const DefaultClientName = "Cliente"

// ReservationEmailData is the flat record templates are compiled against.
// It is built per send and never persisted.
type ReservationEmailData struct {
	ClientName       string `json:"client_name"`
	ClientEmail      string `json:"client_email,omitempty"`
	ConfirmationCode string `json:"confirmation_code"`
	PickupLocation   string `json:"pickup_location"`
	DropoffLocation  string `json:"dropoff_location"`
	PassengerCount   int    `json:"passenger_count"`
	ContactPhone     string `json:"contact_phone"`

	// Optional fields are omitted from Fields when empty so templates
	// can branch on them.
	FlightNumber        string `json:"flight_number,omitempty"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
	DriverName          string `json:"driver_name,omitempty"`
	VehicleInfo         string `json:"vehicle_info,omitempty"`
}

// Fields returns the placeholder values keyed by template field name.
func (d ReservationEmailData) Fields() map[string]any {
	fields := map[string]any{
		"client_name":       d.ClientName,
		"confirmation_code": d.ConfirmationCode,
		"pickup_location":   d.PickupLocation,
		"dropoff_location":  d.DropoffLocation,
		"passenger_count":   d.PassengerCount,
		"contact_phone":     d.ContactPhone,
	}
	optional := map[string]string{
		"client_email":         d.ClientEmail,
		"flight_number":        d.FlightNumber,
		"special_requirements": d.SpecialRequirements,
		"driver_name":          d.DriverName,
		"vehicle_info":         d.VehicleInfo,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

// =============================================================================
// Email Log
// =============================================================================

// EmailLogStatus is the outcome recorded for one delivery attempt.
type EmailLogStatus string

const (
	EmailLogStatusSent   EmailLogStatus = "sent"
	EmailLogStatusFailed EmailLogStatus = "failed"
)

// IsValid returns true if the status is a known value.
func (s EmailLogStatus) IsValid() bool {
	return s == EmailLogStatusSent || s == EmailLogStatusFailed
}

// EmailLog is the append-only audit row written for every send attempt.
type EmailLog struct {
	ID             uuid.UUID      `json:"id"`
	RecipientEmail string         `json:"recipient_email"`
	TemplateName   string         `json:"template_name"`
	Subject        string         `json:"subject"`
	Status         EmailLogStatus `json:"status"`
	MessageID      string         `json:"message_id,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ListEmailLogsParams filters the admin log listing.
type ListEmailLogsParams struct {
	Statuses []EmailLogStatus // Empty means all statuses
	Limit    int32
}

// =============================================================================
// Send Results
// =============================================================================

// SendResult is the outcome of a single templated send.
type SendResult struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

// NotificationEvent is a business event that triggers a batch of emails.
type NotificationEvent string

const (
	NotificationCreated   NotificationEvent = "created"
	NotificationConfirmed NotificationEvent = "confirmed"
	NotificationCompleted NotificationEvent = "completed"
)

// IsValid returns true if the event is a known value.
func (e NotificationEvent) IsValid() bool {
	switch e {
	case NotificationCreated, NotificationConfirmed, NotificationCompleted:
		return true
	default:
		return false
	}
}

// RecipientResult is one attempt inside a batch.
type RecipientResult struct {
	Recipient    string `json:"recipient"`
	TemplateName string `json:"templateName"`
	SendResult
}

// BatchResult aggregates the attempts of one notification event.
// Success is the logical AND of every attempt.
type BatchResult struct {
	Success bool              `json:"success"`
	Results []RecipientResult `json:"results"`
}

// Add appends an attempt and folds it into Success.
func (b *BatchResult) Add(r RecipientResult) {
	if len(b.Results) == 0 {
		b.Success = true
	}
	b.Results = append(b.Results, r)
	b.Success = b.Success && r.Success
}
