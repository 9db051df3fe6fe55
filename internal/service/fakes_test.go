package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"

	"github.com/DukeRupert/traslado/internal/email"
	"github.com/DukeRupert/traslado/internal/repository"
	"github.com/google/uuid"
)

// =============================================================================
// Test doubles
// =============================================================================

// fakeQuerier implements repository.Querier. Unset funcs return
// sql.ErrNoRows; created log rows are kept in order.
type fakeQuerier struct {
	mu sync.Mutex

	GetReservationByIDFunc      func(ctx context.Context, id uuid.UUID) (repository.Reservation, error)
	GetProfileByIDFunc          func(ctx context.Context, id uuid.UUID) (repository.GetProfileByIDRow, error)
	GetTripByIDFunc             func(ctx context.Context, id uuid.UUID) (repository.GetTripByIDRow, error)
	GetDriverByIDFunc           func(ctx context.Context, id uuid.UUID) (repository.GetDriverByIDRow, error)
	UpdateReservationStatusFunc func(ctx context.Context, arg repository.UpdateReservationStatusParams) (repository.Reservation, error)
	ListEmailLogsFunc           func(ctx context.Context, arg repository.ListEmailLogsParams) ([]repository.EmailLog, error)
	CreateEmailLogFunc          func(ctx context.Context, arg repository.CreateEmailLogParams) error

	logs []repository.CreateEmailLogParams
}

func (f *fakeQuerier) CreateEmailLog(ctx context.Context, arg repository.CreateEmailLogParams) error {
	if f.CreateEmailLogFunc != nil {
		if err := f.CreateEmailLogFunc(ctx, arg); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, arg)
	return nil
}

func (f *fakeQuerier) GetDriverByID(ctx context.Context, id uuid.UUID) (repository.GetDriverByIDRow, error) {
	if f.GetDriverByIDFunc != nil {
		return f.GetDriverByIDFunc(ctx, id)
	}
	return repository.GetDriverByIDRow{}, sql.ErrNoRows
}

func (f *fakeQuerier) GetProfileByID(ctx context.Context, id uuid.UUID) (repository.GetProfileByIDRow, error) {
	if f.GetProfileByIDFunc != nil {
		return f.GetProfileByIDFunc(ctx, id)
	}
	return repository.GetProfileByIDRow{}, sql.ErrNoRows
}

func (f *fakeQuerier) GetReservationByID(ctx context.Context, id uuid.UUID) (repository.Reservation, error) {
	if f.GetReservationByIDFunc != nil {
		return f.GetReservationByIDFunc(ctx, id)
	}
	return repository.Reservation{}, sql.ErrNoRows
}

func (f *fakeQuerier) GetTripByID(ctx context.Context, id uuid.UUID) (repository.GetTripByIDRow, error) {
	if f.GetTripByIDFunc != nil {
		return f.GetTripByIDFunc(ctx, id)
	}
	return repository.GetTripByIDRow{}, sql.ErrNoRows
}

func (f *fakeQuerier) ListEmailLogs(ctx context.Context, arg repository.ListEmailLogsParams) ([]repository.EmailLog, error) {
	if f.ListEmailLogsFunc != nil {
		return f.ListEmailLogsFunc(ctx, arg)
	}
	return nil, nil
}

func (f *fakeQuerier) UpdateReservationStatus(ctx context.Context, arg repository.UpdateReservationStatusParams) (repository.Reservation, error) {
	if f.UpdateReservationStatusFunc != nil {
		return f.UpdateReservationStatusFunc(ctx, arg)
	}
	return repository.Reservation{}, sql.ErrNoRows
}

func (f *fakeQuerier) createdLogs() []repository.CreateEmailLogParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]repository.CreateEmailLogParams(nil), f.logs...)
}

var _ repository.Querier = (*fakeQuerier)(nil)

// fakeTransport records sent messages. SendFunc overrides the default
// success response.
type fakeTransport struct {
	SendFunc   func(ctx context.Context, msg email.Message) (string, error)
	VerifyFunc func(ctx context.Context) bool

	sent []email.Message
}

func (f *fakeTransport) Send(ctx context.Context, msg email.Message) (string, error) {
	f.sent = append(f.sent, msg)
	if f.SendFunc != nil {
		return f.SendFunc(ctx, msg)
	}
	return "<msg-" + msg.To + ">", nil
}

func (f *fakeTransport) Verify(ctx context.Context) bool {
	if f.VerifyFunc != nil {
		return f.VerifyFunc(ctx)
	}
	return true
}

var _ email.Transport = (*fakeTransport)(nil)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// =============================================================================
// Fixtures
// =============================================================================

var (
	r1ID      = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	userID    = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	tripID    = uuid.MustParse("33333333-3333-4333-8333-333333333333")
	driverID  = uuid.MustParse("44444444-4444-4444-8444-444444444444")
	missingID = uuid.MustParse("99999999-9999-4999-8999-999999999999")
)

// r1 is a reservation with no trip and no flight number.
func r1() repository.Reservation {
	return repository.Reservation{
		ID:               r1ID,
		PickupLocation:   "Airport",
		DropoffLocation:  "Hotel X",
		PassengerCount:   2,
		ContactPhone:     "+56911112222",
		ConfirmationCode: "ABC123",
		Status:           "pending",
	}
}

// querierWith serves the given reservations by id.
func querierWith(rows ...repository.Reservation) *fakeQuerier {
	byID := make(map[uuid.UUID]repository.Reservation, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	return &fakeQuerier{
		GetReservationByIDFunc: func(ctx context.Context, id uuid.UUID) (repository.Reservation, error) {
			r, ok := byID[id]
			if !ok {
				return repository.Reservation{}, sql.ErrNoRows
			}
			return r, nil
		},
	}
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: true}
}

func profileFunc(name, addr string) func(ctx context.Context, id uuid.UUID) (repository.GetProfileByIDRow, error) {
	return func(ctx context.Context, id uuid.UUID) (repository.GetProfileByIDRow, error) {
		return repository.GetProfileByIDRow{ID: id, FullName: name, Email: addr}, nil
	}
}

func errNoRows() error {
	return sql.ErrNoRows
}
