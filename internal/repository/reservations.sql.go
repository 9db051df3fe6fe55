// Queries from queries/reservations.sql.

package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const getDriverByID = `-- name: GetDriverByID :one
SELECT id, full_name, email, vehicle_info FROM drivers
WHERE id = $1
`

type GetDriverByIDRow struct {
	ID          uuid.UUID
	FullName    string
	Email       sql.NullString
	VehicleInfo pqtype.NullRawMessage
}

func (q *Queries) GetDriverByID(ctx context.Context, id uuid.UUID) (GetDriverByIDRow, error) {
	row := q.db.QueryRowContext(ctx, getDriverByID, id)
	var i GetDriverByIDRow
	err := row.Scan(
		&i.ID,
		&i.FullName,
		&i.Email,
		&i.VehicleInfo,
	)
	return i, err
}

const getProfileByID = `-- name: GetProfileByID :one
SELECT id, full_name, email FROM profiles
WHERE id = $1
`

type GetProfileByIDRow struct {
	ID       uuid.UUID
	FullName string
	Email    string
}

func (q *Queries) GetProfileByID(ctx context.Context, id uuid.UUID) (GetProfileByIDRow, error) {
	row := q.db.QueryRowContext(ctx, getProfileByID, id)
	var i GetProfileByIDRow
	err := row.Scan(&i.ID, &i.FullName, &i.Email)
	return i, err
}

const getReservationByID = `-- name: GetReservationByID :one
SELECT id, user_id, trip_id, pickup_location, dropoff_location, passenger_count, contact_phone, flight_number, special_requirements, confirmation_code, status, created_at, updated_at FROM reservations
WHERE id = $1
`

func (q *Queries) GetReservationByID(ctx context.Context, id uuid.UUID) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, getReservationByID, id)
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TripID,
		&i.PickupLocation,
		&i.DropoffLocation,
		&i.PassengerCount,
		&i.ContactPhone,
		&i.FlightNumber,
		&i.SpecialRequirements,
		&i.ConfirmationCode,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTripByID = `-- name: GetTripByID :one
SELECT id, driver_id, departure_at FROM trips
WHERE id = $1
`

type GetTripByIDRow struct {
	ID          uuid.UUID
	DriverID    uuid.NullUUID
	DepartureAt sql.NullTime
}

func (q *Queries) GetTripByID(ctx context.Context, id uuid.UUID) (GetTripByIDRow, error) {
	row := q.db.QueryRowContext(ctx, getTripByID, id)
	var i GetTripByIDRow
	err := row.Scan(&i.ID, &i.DriverID, &i.DepartureAt)
	return i, err
}

const updateReservationStatus = `-- name: UpdateReservationStatus :one
UPDATE reservations
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING id, user_id, trip_id, pickup_location, dropoff_location, passenger_count, contact_phone, flight_number, special_requirements, confirmation_code, status, created_at, updated_at
`

type UpdateReservationStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, arg UpdateReservationStatusParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, updateReservationStatus, arg.ID, arg.Status)
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TripID,
		&i.PickupLocation,
		&i.DropoffLocation,
		&i.PassengerCount,
		&i.ContactPhone,
		&i.FlightNumber,
		&i.SpecialRequirements,
		&i.ConfirmationCode,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
