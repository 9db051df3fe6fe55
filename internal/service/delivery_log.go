package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/metrics"
	"github.com/DukeRupert/traslado/internal/repository"
	"github.com/google/uuid"
)

// DefaultEmailLogLimit bounds the admin log listing when no limit is given.
const DefaultEmailLogLimit = 50

// MaxEmailLogLimit is the largest page the listing returns.
const MaxEmailLogLimit = 500

// DeliveryLog persists one row per send attempt.
type DeliveryLog interface {
	// Record appends entry to the log. It never fails from the caller's
	// point of view: write errors and panics are reported to the operator
	// log and the email_log_write_failures_total counter.
	Record(ctx context.Context, entry domain.EmailLog)

	// List returns the most recent entries, newest first.
	List(ctx context.Context, params domain.ListEmailLogsParams) ([]domain.EmailLog, error)
}

type deliveryLog struct {
	queries repository.Querier
	logger  *slog.Logger
	now     func() time.Time
}

// NewDeliveryLog creates a DeliveryLog backed by the email_logs table.
func NewDeliveryLog(queries repository.Querier, logger *slog.Logger) DeliveryLog {
	return &deliveryLog{
		queries: queries,
		logger:  logger,
		now:     time.Now,
	}
}

func (d *deliveryLog) Record(ctx context.Context, entry domain.EmailLog) {
	defer func() {
		if r := recover(); r != nil {
			metrics.EmailLogWriteFailed()
			d.logger.Error("email log write panicked",
				"recipient", entry.RecipientEmail,
				"template", entry.TemplateName,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = d.now().UTC()
	}

	err := d.queries.CreateEmailLog(ctx, repository.CreateEmailLogParams{
		ID:             entry.ID,
		RecipientEmail: entry.RecipientEmail,
		TemplateName:   entry.TemplateName,
		Subject:        entry.Subject,
		Status:         string(entry.Status),
		MessageID:      domain.ToNullString(entry.MessageID),
		ErrorMessage:   domain.ToNullString(entry.ErrorMessage),
		CreatedAt:      entry.CreatedAt,
	})
	if err != nil {
		metrics.EmailLogWriteFailed()
		d.logger.Error("failed to write email log",
			"recipient", entry.RecipientEmail,
			"template", entry.TemplateName,
			"status", entry.Status,
			"error", err,
		)
	}
}

func (d *deliveryLog) List(ctx context.Context, params domain.ListEmailLogsParams) ([]domain.EmailLog, error) {
	const op = "email_log.list"

	// A nil array binds as NULL, which would match nothing.
	statuses := make([]string, 0, len(params.Statuses))
	for _, s := range params.Statuses {
		if !s.IsValid() {
			return nil, domain.Invalid(op, fmt.Sprintf("unknown status %q", s))
		}
		statuses = append(statuses, string(s))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultEmailLogLimit
	}
	if limit > MaxEmailLogLimit {
		limit = MaxEmailLogLimit
	}

	rows, err := d.queries.ListEmailLogs(ctx, repository.ListEmailLogsParams{
		Statuses: statuses,
		RowLimit: limit,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list email logs")
	}

	logs := make([]domain.EmailLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, domain.EmailLog{
			ID:             row.ID,
			RecipientEmail: row.RecipientEmail,
			TemplateName:   row.TemplateName,
			Subject:        row.Subject,
			Status:         domain.EmailLogStatus(row.Status),
			MessageID:      domain.NullStringValue(row.MessageID),
			ErrorMessage:   domain.NullStringValue(row.ErrorMessage),
			CreatedAt:      row.CreatedAt,
		})
	}
	return logs, nil
}
