package db

import (
	"context"
	"database/sql"
)

func scanStripeEvent(row *sql.Row) (StripeEvent, error) {
	var e StripeEvent
	err := row.Scan(
		&e.ID,
		&e.Type,
		&e.Status,
		&e.ErrorMessage,
		&e.ReceivedAt,
		&e.ProcessedAt,
	)
	return e, err
}

const insertStripeEvent = `
INSERT INTO stripe_events (id, type)
VALUES ($1, $2)
ON CONFLICT (id) DO NOTHING
RETURNING id, type, status, error_message, received_at, processed_at`

type InsertStripeEventParams struct {
	ID   string
	Type string
}

// InsertStripeEvent records a webhook delivery in the idempotency ledger. A
// duplicate event ID hits the DO NOTHING branch and surfaces as sql.ErrNoRows,
// which the webhook handler treats as "already handled, ack and stop".
func (q *Queries) InsertStripeEvent(ctx context.Context, arg InsertStripeEventParams) (StripeEvent, error) {
	row := q.queryRow(ctx, q.insertStripeEventStmt, insertStripeEvent, arg.ID, arg.Type)
	return scanStripeEvent(row)
}

const markStripeEventProcessed = `
UPDATE stripe_events
SET status = 'processed', processed_at = now()
WHERE id = $1
RETURNING id, type, status, error_message, received_at, processed_at`

func (q *Queries) MarkStripeEventProcessed(ctx context.Context, id string) (StripeEvent, error) {
	row := q.queryRow(ctx, q.markStripeEventProcessedStmt, markStripeEventProcessed, id)
	return scanStripeEvent(row)
}

const markStripeEventFailed = `
UPDATE stripe_events
SET status = 'failed', error_message = $2, processed_at = now()
WHERE id = $1
RETURNING id, type, status, error_message, received_at, processed_at`

type MarkStripeEventFailedParams struct {
	ID           string
	ErrorMessage sql.NullString
}

func (q *Queries) MarkStripeEventFailed(ctx context.Context, arg MarkStripeEventFailedParams) (StripeEvent, error) {
	row := q.queryRow(ctx, q.markStripeEventFailedStmt, markStripeEventFailed, arg.ID, arg.ErrorMessage)
	return scanStripeEvent(row)
}
