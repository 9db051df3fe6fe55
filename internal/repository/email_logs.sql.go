// Queries from queries/email_logs.sql.

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const createEmailLog = `-- name: CreateEmailLog :exec
INSERT INTO email_logs (
    id, recipient_email, template_name, subject, status, message_id, error_message, created_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8
)
`

type CreateEmailLogParams struct {
	ID             uuid.UUID
	RecipientEmail string
	TemplateName   string
	Subject        string
	Status         string
	MessageID      sql.NullString
	ErrorMessage   sql.NullString
	CreatedAt      time.Time
}

func (q *Queries) CreateEmailLog(ctx context.Context, arg CreateEmailLogParams) error {
	_, err := q.db.ExecContext(ctx, createEmailLog,
		arg.ID,
		arg.RecipientEmail,
		arg.TemplateName,
		arg.Subject,
		arg.Status,
		arg.MessageID,
		arg.ErrorMessage,
		arg.CreatedAt,
	)
	return err
}

const listEmailLogs = `-- name: ListEmailLogs :many
SELECT id, recipient_email, template_name, subject, status, message_id, error_message, created_at FROM email_logs
WHERE cardinality($1::text[]) = 0 OR status = ANY($1::text[])
ORDER BY created_at DESC
LIMIT $2
`

type ListEmailLogsParams struct {
	Statuses []string
	RowLimit int32
}

func (q *Queries) ListEmailLogs(ctx context.Context, arg ListEmailLogsParams) ([]EmailLog, error) {
	rows, err := q.db.QueryContext(ctx, listEmailLogs, pq.Array(arg.Statuses), arg.RowLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EmailLog
	for rows.Next() {
		var i EmailLog
		if err := rows.Scan(
			&i.ID,
			&i.RecipientEmail,
			&i.TemplateName,
			&i.Subject,
			&i.Status,
			&i.MessageID,
			&i.ErrorMessage,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
