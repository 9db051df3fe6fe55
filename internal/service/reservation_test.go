package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationService_Get(t *testing.T) {
	svc := NewReservationService(querierWith(r1()), newTestLogger())

	r, err := svc.Get(context.Background(), r1ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ABC123", r.ConfirmationCode)
	assert.Equal(t, domain.ReservationStatusPending, r.Status)
	assert.Nil(t, r.TripID)

	_, err = svc.Get(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.Get(context.Background(), missingID.String())
	assert.True(t, domain.IsNotFound(err))
}

func TestReservationService_UpdateStatus(t *testing.T) {
	q := &fakeQuerier{
		UpdateReservationStatusFunc: func(ctx context.Context, arg repository.UpdateReservationStatusParams) (repository.Reservation, error) {
			if arg.ID != r1ID {
				return repository.Reservation{}, errNoRows()
			}
			row := r1()
			row.Status = arg.Status
			return row, nil
		},
	}
	svc := NewReservationService(q, newTestLogger())

	t.Run("valid", func(t *testing.T) {
		r, err := svc.UpdateStatus(context.Background(), domain.UpdateReservationStatusParams{
			ID:     r1ID,
			Status: domain.ReservationStatusConfirmed,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusConfirmed, r.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), domain.UpdateReservationStatusParams{
			ID:     r1ID,
			Status: "shipped",
		})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), domain.UpdateReservationStatusParams{
			ID:     missingID,
			Status: domain.ReservationStatusCompleted,
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("database error", func(t *testing.T) {
		failing := &fakeQuerier{
			UpdateReservationStatusFunc: func(ctx context.Context, arg repository.UpdateReservationStatusParams) (repository.Reservation, error) {
				return repository.Reservation{}, errors.New("deadlock detected")
			},
		}
		_, err := NewReservationService(failing, newTestLogger()).UpdateStatus(context.Background(), domain.UpdateReservationStatusParams{
			ID:     r1ID,
			Status: domain.ReservationStatusCompleted,
		})
		assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
	})
}

func TestReservationService_Contacts(t *testing.T) {
	q := &fakeQuerier{
		GetProfileByIDFunc: profileFunc("Ana", "ana@x.com"),
		GetTripByIDFunc: func(ctx context.Context, id uuid.UUID) (repository.GetTripByIDRow, error) {
			return repository.GetTripByIDRow{ID: id, DriverID: nullUUID(driverID)}, nil
		},
		GetDriverByIDFunc: func(ctx context.Context, id uuid.UUID) (repository.GetDriverByIDRow, error) {
			return repository.GetDriverByIDRow{ID: id, FullName: "Juan", Email: domain.ToNullString("driver@y.com")}, nil
		},
	}
	svc := NewReservationService(q, newTestLogger())

	uid, tid := userID, tripID
	clientEmail, driverEmail := svc.Contacts(context.Background(), &domain.Reservation{ID: r1ID, UserID: &uid, TripID: &tid})
	assert.Equal(t, "ana@x.com", clientEmail)
	assert.Equal(t, "driver@y.com", driverEmail)

	clientEmail, driverEmail = svc.Contacts(context.Background(), &domain.Reservation{ID: r1ID})
	assert.Empty(t, clientEmail)
	assert.Empty(t, driverEmail)
}
