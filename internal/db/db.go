// Package db is the hand-maintained Postgres access layer, laid out in sqlc's
// generated shape: a DBTX interface over *sql.DB / *sql.Tx, a Queries struct
// with one method per named query, and an optional prepared-statement mode.
// Queries return sql.ErrNoRows untouched; callers decide what a missing row
// means.
package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same query methods run
// inside and outside transactions.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New returns a Queries that executes against db without prepared statements.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries carries the connection (or transaction) and, when built via Prepare,
// the prepared statement for every query.
type Queries struct {
	db DBTX
	tx *sql.Tx

	attachConsultationIntentStmt   *sql.Stmt
	createAssessmentStmt           *sql.Stmt
	getAssessmentByClientRefStmt   *sql.Stmt
	getAssessmentByIDStmt          *sql.Stmt
	getCounterStmt                 *sql.Stmt
	incrementCounterStmt           *sql.Stmt
	insertStripeEventStmt          *sql.Stmt
	listPendingEmailDeliveriesStmt *sql.Stmt
	markConsultationFailedStmt     *sql.Stmt
	markConsultationPaidStmt       *sql.Stmt
	markStripeEventFailedStmt      *sql.Stmt
	markStripeEventProcessedStmt   *sql.Stmt
	markSummaryEmailFailedStmt     *sql.Stmt
	markSummaryEmailSentStmt       *sql.Stmt
	setAssessmentNumberStmt        *sql.Stmt
}

// Prepare builds a Queries with every statement prepared up front. Besides the
// execution-time win, this validates all SQL against the live schema at
// startup, so a schema drift fails the boot instead of the first request.
func Prepare(ctx context.Context, db DBTX) (*Queries, error) {
	q := Queries{db: db}
	var err error
	if q.attachConsultationIntentStmt, err = db.PrepareContext(ctx, attachConsultationIntent); err != nil {
		return nil, fmt.Errorf("error preparing query AttachConsultationIntent: %w", err)
	}
	if q.createAssessmentStmt, err = db.PrepareContext(ctx, createAssessment); err != nil {
		return nil, fmt.Errorf("error preparing query CreateAssessment: %w", err)
	}
	if q.getAssessmentByClientRefStmt, err = db.PrepareContext(ctx, getAssessmentByClientRef); err != nil {
		return nil, fmt.Errorf("error preparing query GetAssessmentByClientRef: %w", err)
	}
	if q.getAssessmentByIDStmt, err = db.PrepareContext(ctx, getAssessmentByID); err != nil {
		return nil, fmt.Errorf("error preparing query GetAssessmentByID: %w", err)
	}
	if q.getCounterStmt, err = db.PrepareContext(ctx, getCounter); err != nil {
		return nil, fmt.Errorf("error preparing query GetCounter: %w", err)
	}
	if q.incrementCounterStmt, err = db.PrepareContext(ctx, incrementCounter); err != nil {
		return nil, fmt.Errorf("error preparing query IncrementCounter: %w", err)
	}
	if q.insertStripeEventStmt, err = db.PrepareContext(ctx, insertStripeEvent); err != nil {
		return nil, fmt.Errorf("error preparing query InsertStripeEvent: %w", err)
	}
	if q.listPendingEmailDeliveriesStmt, err = db.PrepareContext(ctx, listPendingEmailDeliveries); err != nil {
		return nil, fmt.Errorf("error preparing query ListPendingEmailDeliveries: %w", err)
	}
	if q.markConsultationFailedStmt, err = db.PrepareContext(ctx, markConsultationFailed); err != nil {
		return nil, fmt.Errorf("error preparing query MarkConsultationFailed: %w", err)
	}
	if q.markConsultationPaidStmt, err = db.PrepareContext(ctx, markConsultationPaid); err != nil {
		return nil, fmt.Errorf("error preparing query MarkConsultationPaid: %w", err)
	}
	if q.markStripeEventFailedStmt, err = db.PrepareContext(ctx, markStripeEventFailed); err != nil {
		return nil, fmt.Errorf("error preparing query MarkStripeEventFailed: %w", err)
	}
	if q.markStripeEventProcessedStmt, err = db.PrepareContext(ctx, markStripeEventProcessed); err != nil {
		return nil, fmt.Errorf("error preparing query MarkStripeEventProcessed: %w", err)
	}
	if q.markSummaryEmailFailedStmt, err = db.PrepareContext(ctx, markSummaryEmailFailed); err != nil {
		return nil, fmt.Errorf("error preparing query MarkSummaryEmailFailed: %w", err)
	}
	if q.markSummaryEmailSentStmt, err = db.PrepareContext(ctx, markSummaryEmailSent); err != nil {
		return nil, fmt.Errorf("error preparing query MarkSummaryEmailSent: %w", err)
	}
	if q.setAssessmentNumberStmt, err = db.PrepareContext(ctx, setAssessmentNumber); err != nil {
		return nil, fmt.Errorf("error preparing query SetAssessmentNumber: %w", err)
	}
	return &q, nil
}

// WithTx returns a Queries scoped to tx. Prepared statements are re-bound to
// the transaction at execution time via tx.StmtContext.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
		tx: tx,

		attachConsultationIntentStmt:   q.attachConsultationIntentStmt,
		createAssessmentStmt:           q.createAssessmentStmt,
		getAssessmentByClientRefStmt:   q.getAssessmentByClientRefStmt,
		getAssessmentByIDStmt:          q.getAssessmentByIDStmt,
		getCounterStmt:                 q.getCounterStmt,
		incrementCounterStmt:           q.incrementCounterStmt,
		insertStripeEventStmt:          q.insertStripeEventStmt,
		listPendingEmailDeliveriesStmt: q.listPendingEmailDeliveriesStmt,
		markConsultationFailedStmt:     q.markConsultationFailedStmt,
		markConsultationPaidStmt:       q.markConsultationPaidStmt,
		markStripeEventFailedStmt:      q.markStripeEventFailedStmt,
		markStripeEventProcessedStmt:   q.markStripeEventProcessedStmt,
		markSummaryEmailFailedStmt:     q.markSummaryEmailFailedStmt,
		markSummaryEmailSentStmt:       q.markSummaryEmailSentStmt,
		setAssessmentNumberStmt:        q.setAssessmentNumberStmt,
	}
}

func (q *Queries) queryRow(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) *sql.Row {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryRowContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryRowContext(ctx, args...)
	default:
		return q.db.QueryRowContext(ctx, query, args...)
	}
}

func (q *Queries) query(ctx context.Context, stmt *sql.Stmt, query string, args ...interface{}) (*sql.Rows, error) {
	switch {
	case stmt != nil && q.tx != nil:
		return q.tx.StmtContext(ctx, stmt).QueryContext(ctx, args...)
	case stmt != nil:
		return stmt.QueryContext(ctx, args...)
	default:
		return q.db.QueryContext(ctx, query, args...)
	}
}
