package repository

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	CreateEmailLog(ctx context.Context, arg CreateEmailLogParams) error
	GetDriverByID(ctx context.Context, id uuid.UUID) (GetDriverByIDRow, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (GetProfileByIDRow, error)
	GetReservationByID(ctx context.Context, id uuid.UUID) (Reservation, error)
	GetTripByID(ctx context.Context, id uuid.UUID) (GetTripByIDRow, error)
	ListEmailLogs(ctx context.Context, arg ListEmailLogsParams) ([]EmailLog, error)
	UpdateReservationStatus(ctx context.Context, arg UpdateReservationStatusParams) (Reservation, error)
}

var _ Querier = (*Queries)(nil)
