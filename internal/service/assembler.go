package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/repository"
	"github.com/google/uuid"
)

// Assembler builds the flat template record for a reservation.
type Assembler interface {
	// Assemble reads the reservation and its profile, trip and driver.
	// Returns domain.ENOTFOUND when the reservation itself cannot be read;
	// missing related records only leave optional fields empty.
	Assemble(ctx context.Context, reservationID string) (*domain.ReservationEmailData, error)
}

type reservationAssembler struct {
	queries repository.Querier
	logger  *slog.Logger
}

// NewAssembler creates an Assembler backed by the repository.
func NewAssembler(queries repository.Querier, logger *slog.Logger) Assembler {
	return &reservationAssembler{
		queries: queries,
		logger:  logger,
	}
}

func (a *reservationAssembler) Assemble(ctx context.Context, reservationID string) (*domain.ReservationEmailData, error) {
	const op = "reservation.assemble"

	id, err := uuid.Parse(strings.TrimSpace(reservationID))
	if err != nil {
		return nil, domain.NotFound(op, "reservation", reservationID)
	}

	// Any failure of the primary lookup is reported as not found.
	row, err := a.queries.GetReservationByID(ctx, id)
	if err != nil {
		a.logger.Debug("reservation lookup failed", "reservation_id", reservationID, "error", err)
		return nil, &domain.Error{
			Code:    domain.ENOTFOUND,
			Op:      op,
			Message: "reservation not found",
			Err:     err,
		}
	}

	data := &domain.ReservationEmailData{
		ClientName:          domain.DefaultClientName,
		ConfirmationCode:    row.ConfirmationCode,
		PickupLocation:      row.PickupLocation,
		DropoffLocation:     row.DropoffLocation,
		PassengerCount:      int(row.PassengerCount),
		ContactPhone:        row.ContactPhone,
		FlightNumber:        domain.NullStringValue(row.FlightNumber),
		SpecialRequirements: domain.NullStringValue(row.SpecialRequirements),
	}

	if row.UserID.Valid {
		a.addProfile(ctx, data, row.UserID.UUID)
	}
	if row.TripID.Valid {
		a.addDriver(ctx, data, row.TripID.UUID)
	}

	return data, nil
}

func (a *reservationAssembler) addProfile(ctx context.Context, data *domain.ReservationEmailData, userID uuid.UUID) {
	profile, err := a.queries.GetProfileByID(ctx, userID)
	if err != nil {
		a.logger.Warn("profile lookup failed, using default client name",
			"user_id", userID,
			"error", err,
		)
		return
	}
	if name := strings.TrimSpace(profile.FullName); name != "" {
		data.ClientName = name
	}
	data.ClientEmail = strings.TrimSpace(profile.Email)
}

func (a *reservationAssembler) addDriver(ctx context.Context, data *domain.ReservationEmailData, tripID uuid.UUID) {
	trip, err := a.queries.GetTripByID(ctx, tripID)
	if err != nil {
		a.logger.Warn("trip lookup failed", "trip_id", tripID, "error", err)
		return
	}
	if !trip.DriverID.Valid {
		return
	}

	driver, err := a.queries.GetDriverByID(ctx, trip.DriverID.UUID)
	if err != nil {
		a.logger.Warn("driver lookup failed", "driver_id", trip.DriverID.UUID, "error", err)
		return
	}

	data.DriverName = strings.TrimSpace(driver.FullName)
	if driver.VehicleInfo.Valid {
		if info, ok := domain.ParseVehicleInfo(driver.VehicleInfo.RawMessage); ok {
			data.VehicleInfo = info.Display()
		} else {
			a.logger.Debug("vehicle info not parseable", "driver_id", driver.ID)
		}
	}
}
