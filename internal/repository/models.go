package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Driver struct {
	ID          uuid.UUID
	FullName    string
	Email       sql.NullString
	Phone       sql.NullString
	VehicleInfo pqtype.NullRawMessage
	CreatedAt   sql.NullTime
}

type EmailLog struct {
	ID             uuid.UUID
	RecipientEmail string
	TemplateName   string
	Subject        string
	Status         string
	MessageID      sql.NullString
	ErrorMessage   sql.NullString
	CreatedAt      time.Time
}

type Profile struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	Phone     sql.NullString
	Role      string
	CreatedAt sql.NullTime
}

type Reservation struct {
	ID                  uuid.UUID
	UserID              uuid.NullUUID
	TripID              uuid.NullUUID
	PickupLocation      string
	DropoffLocation     string
	PassengerCount      int32
	ContactPhone        string
	FlightNumber        sql.NullString
	SpecialRequirements sql.NullString
	ConfirmationCode    string
	Status              string
	CreatedAt           sql.NullTime
	UpdatedAt           sql.NullTime
}

type Trip struct {
	ID          uuid.UUID
	DriverID    uuid.NullUUID
	DepartureAt sql.NullTime
	CreatedAt   sql.NullTime
}
