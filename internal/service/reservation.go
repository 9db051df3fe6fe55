// Package service contains the business logic layer.
//
// This file implements reservation lookups and admin status changes. The
// email path reads reservations through the assembler; this service is what
// administrative actions call before notifications are fired.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/metrics"
	"github.com/DukeRupert/traslado/internal/repository"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ReservationService defines the reservation operations used by admin handlers.
type ReservationService interface {
	// Get retrieves a reservation by ID.
	// Returns domain.ENOTFOUND if the id is malformed or unknown.
	Get(ctx context.Context, id string) (*domain.Reservation, error)

	// UpdateStatus changes the status of a reservation.
	// Returns domain.EINVALID for an unknown status.
	// Returns domain.ENOTFOUND if the reservation does not exist.
	UpdateStatus(ctx context.Context, params domain.UpdateReservationStatusParams) (*domain.Reservation, error)

	// Contacts returns the client and driver email addresses for a
	// reservation. Either may be empty.
	Contacts(ctx context.Context, r *domain.Reservation) (clientEmail, driverEmail string)
}

// =============================================================================
// Implementation
// =============================================================================

type reservationService struct {
	queries repository.Querier
	logger  *slog.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(queries repository.Querier, logger *slog.Logger) ReservationService {
	return &reservationService{
		queries: queries,
		logger:  logger,
	}
}

// Get retrieves a reservation by ID.
func (s *reservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	const op = "reservation.get"

	rid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.NotFound(op, "reservation", id)
	}

	row, err := s.queries.GetReservationByID(ctx, rid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "reservation", id)
		}
		return nil, domain.Internal(err, op, "failed to get reservation")
	}

	return rowToReservation(row), nil
}

// UpdateStatus changes the status of a reservation.
func (s *reservationService) UpdateStatus(ctx context.Context, params domain.UpdateReservationStatusParams) (*domain.Reservation, error) {
	const op = "reservation.update_status"

	if !params.Status.IsValid() {
		return nil, domain.Invalid(op, "status must be one of pending, confirmed, completed, cancelled")
	}

	row, err := s.queries.UpdateReservationStatus(ctx, repository.UpdateReservationStatusParams{
		ID:     params.ID,
		Status: params.Status.String(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "reservation", params.ID.String())
		}
		return nil, domain.Internal(err, op, "failed to update reservation status")
	}

	metrics.ReservationStatusChanges.WithLabelValues(params.Status.String()).Inc()
	s.logger.Info("reservation status updated",
		"reservation_id", params.ID,
		"status", params.Status,
	)

	return rowToReservation(row), nil
}

// Contacts resolves recipient addresses. Lookup failures leave the address
// empty and are logged.
func (s *reservationService) Contacts(ctx context.Context, r *domain.Reservation) (string, string) {
	var clientEmail, driverEmail string

	if r.UserID != nil {
		profile, err := s.queries.GetProfileByID(ctx, *r.UserID)
		if err != nil {
			s.logger.Warn("profile lookup failed", "reservation_id", r.ID, "error", err)
		} else {
			clientEmail = profile.Email
		}
	}

	if r.TripID != nil {
		trip, err := s.queries.GetTripByID(ctx, *r.TripID)
		if err != nil {
			s.logger.Warn("trip lookup failed", "reservation_id", r.ID, "error", err)
			return clientEmail, ""
		}
		if trip.DriverID.Valid {
			driver, err := s.queries.GetDriverByID(ctx, trip.DriverID.UUID)
			if err != nil {
				s.logger.Warn("driver lookup failed", "reservation_id", r.ID, "error", err)
			} else {
				driverEmail = domain.NullStringValue(driver.Email)
			}
		}
	}

	return clientEmail, driverEmail
}

// =============================================================================
// Helper Functions
// =============================================================================

func rowToReservation(row repository.Reservation) *domain.Reservation {
	r := &domain.Reservation{
		ID:                  row.ID,
		PickupLocation:      row.PickupLocation,
		DropoffLocation:     row.DropoffLocation,
		PassengerCount:      int(row.PassengerCount),
		ContactPhone:        row.ContactPhone,
		FlightNumber:        domain.NullStringValue(row.FlightNumber),
		SpecialRequirements: domain.NullStringValue(row.SpecialRequirements),
		ConfirmationCode:    row.ConfirmationCode,
		Status:              domain.ReservationStatus(row.Status),
		UserID:              domain.NullUUIDValue(row.UserID),
		TripID:              domain.NullUUIDValue(row.TripID),
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
	return r
}
