// Package domain contains core business types and interfaces.
//
// This file defines reservations and the vehicle description stored for
// the driver that serves them.
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Reservation Status
// =============================================================================

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	// ReservationStatusPending is a new booking awaiting admin confirmation.
	ReservationStatusPending ReservationStatus = "pending"

	// ReservationStatusConfirmed has been accepted by an administrator.
	ReservationStatusConfirmed ReservationStatus = "confirmed"

	// ReservationStatusCompleted is a finished trip.
	ReservationStatusCompleted ReservationStatus = "completed"

	// ReservationStatusCancelled was cancelled by the client or an admin.
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// String returns the string representation of the status.
func (s ReservationStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

// =============================================================================
// Reservation
// =============================================================================

// Reservation is a client's booking for a transfer.
type Reservation struct {
	ID                  uuid.UUID
	UserID              *uuid.UUID // Profile that booked; nil for guest bookings
	TripID              *uuid.UUID // Assigned trip; nil until an admin assigns one
	PickupLocation      string
	DropoffLocation     string
	PassengerCount      int
	ContactPhone        string
	FlightNumber        string // Optional
	SpecialRequirements string // Optional
	ConfirmationCode    string
	Status              ReservationStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// =============================================================================
// Vehicle Info
// =============================================================================

// VehicleInfo is the canonical form of a driver's vehicle description.
type VehicleInfo struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Plate string `json:"plate,omitempty"`
	Color string `json:"color,omitempty"`
}

// Display returns "{brand} {model}" trimmed of surrounding whitespace.
func (v VehicleInfo) Display() string {
	return strings.TrimSpace(strings.TrimSpace(v.Brand) + " " + strings.TrimSpace(v.Model))
}

// ParseVehicleInfo normalizes a stored vehicle description. The column may
// hold a JSON object or a JSON string whose content is that object.
// The second return value is false when nothing usable could be parsed.
func ParseVehicleInfo(raw []byte) (VehicleInfo, bool) {
	raw = []byte(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return VehicleInfo{}, false
	}

	// Encoded as a JSON string: unwrap once and parse the inner document.
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return VehicleInfo{}, false
		}
		raw = []byte(strings.TrimSpace(inner))
		if len(raw) == 0 || raw[0] != '{' {
			return VehicleInfo{}, false
		}
	}

	var info VehicleInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return VehicleInfo{}, false
	}
	if info.Display() == "" {
		return VehicleInfo{}, false
	}
	return info, true
}

// =============================================================================
// Service Parameters
// =============================================================================

// UpdateReservationStatusParams contains parameters for an admin status change.
type UpdateReservationStatusParams struct {
	ID     uuid.UUID
	Status ReservationStatus
}
