package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const assessmentColumns = `id, client_ref, variant, firm_type, score, risk_level, assessment_number, responses_json, result_json, email_recipient, email_status, email_error, consult_service, consult_payment_intent, consult_status, created_at, updated_at`

func scanAssessment(row *sql.Row) (Assessment, error) {
	var a Assessment
	err := row.Scan(
		&a.ID,
		&a.ClientRef,
		&a.Variant,
		&a.FirmType,
		&a.Score,
		&a.RiskLevel,
		&a.AssessmentNumber,
		&a.ResponsesJson,
		&a.ResultJson,
		&a.EmailRecipient,
		&a.EmailStatus,
		&a.EmailError,
		&a.ConsultService,
		&a.ConsultPaymentIntent,
		&a.ConsultStatus,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

const createAssessment = `
INSERT INTO assessments (
    client_ref, variant, firm_type, score, risk_level,
    responses_json, result_json, email_recipient, email_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (client_ref) DO NOTHING
RETURNING ` + assessmentColumns

type CreateAssessmentParams struct {
	ClientRef      string
	Variant        string
	FirmType       FirmType
	Score          int32
	RiskLevel      RiskLevel
	ResponsesJson  pqtype.NullRawMessage
	ResultJson     pqtype.NullRawMessage
	EmailRecipient sql.NullString
	EmailStatus    EmailStatus
}

// CreateAssessment inserts a new assessment row. A client_ref conflict hits
// the DO NOTHING branch and surfaces as sql.ErrNoRows; the store translates
// that into the replay path.
func (q *Queries) CreateAssessment(ctx context.Context, arg CreateAssessmentParams) (Assessment, error) {
	row := q.queryRow(ctx, q.createAssessmentStmt, createAssessment,
		arg.ClientRef,
		arg.Variant,
		arg.FirmType,
		arg.Score,
		arg.RiskLevel,
		arg.ResponsesJson,
		arg.ResultJson,
		arg.EmailRecipient,
		arg.EmailStatus,
	)
	return scanAssessment(row)
}

const getAssessmentByID = `
SELECT ` + assessmentColumns + `
FROM assessments
WHERE id = $1`

func (q *Queries) GetAssessmentByID(ctx context.Context, id uuid.UUID) (Assessment, error) {
	row := q.queryRow(ctx, q.getAssessmentByIDStmt, getAssessmentByID, id)
	return scanAssessment(row)
}

const getAssessmentByClientRef = `
SELECT ` + assessmentColumns + `
FROM assessments
WHERE client_ref = $1`

func (q *Queries) GetAssessmentByClientRef(ctx context.Context, clientRef string) (Assessment, error) {
	row := q.queryRow(ctx, q.getAssessmentByClientRefStmt, getAssessmentByClientRef, clientRef)
	return scanAssessment(row)
}

const setAssessmentNumber = `
UPDATE assessments
SET assessment_number = $2, updated_at = now()
WHERE id = $1
RETURNING ` + assessmentColumns

type SetAssessmentNumberParams struct {
	ID               uuid.UUID
	AssessmentNumber sql.NullInt64
}

func (q *Queries) SetAssessmentNumber(ctx context.Context, arg SetAssessmentNumberParams) (Assessment, error) {
	row := q.queryRow(ctx, q.setAssessmentNumberStmt, setAssessmentNumber, arg.ID, arg.AssessmentNumber)
	return scanAssessment(row)
}

const attachConsultationIntent = `
UPDATE assessments
SET consult_service = $2,
    consult_payment_intent = $3,
    consult_status = 'pending',
    updated_at = now()
WHERE id = $1
RETURNING ` + assessmentColumns

type AttachConsultationIntentParams struct {
	ID                   uuid.UUID
	ConsultService       sql.NullString
	ConsultPaymentIntent sql.NullString
}

func (q *Queries) AttachConsultationIntent(ctx context.Context, arg AttachConsultationIntentParams) (Assessment, error) {
	row := q.queryRow(ctx, q.attachConsultationIntentStmt, attachConsultationIntent,
		arg.ID,
		arg.ConsultService,
		arg.ConsultPaymentIntent,
	)
	return scanAssessment(row)
}

const markConsultationPaid = `
UPDATE assessments
SET consult_status = 'paid', updated_at = now()
WHERE consult_payment_intent = $1
RETURNING ` + assessmentColumns

// MarkConsultationPaid matches on the PaymentIntent ID because that is all a
// Stripe webhook carries. sql.ErrNoRows means the PI belongs to no assessment.
func (q *Queries) MarkConsultationPaid(ctx context.Context, consultPaymentIntent sql.NullString) (Assessment, error) {
	row := q.queryRow(ctx, q.markConsultationPaidStmt, markConsultationPaid, consultPaymentIntent)
	return scanAssessment(row)
}

const markConsultationFailed = `
UPDATE assessments
SET consult_status = 'failed', updated_at = now()
WHERE consult_payment_intent = $1
RETURNING ` + assessmentColumns

func (q *Queries) MarkConsultationFailed(ctx context.Context, consultPaymentIntent sql.NullString) (Assessment, error) {
	row := q.queryRow(ctx, q.markConsultationFailedStmt, markConsultationFailed, consultPaymentIntent)
	return scanAssessment(row)
}

const markSummaryEmailSent = `
UPDATE assessments
SET email_status = 'sent', email_error = NULL, updated_at = now()
WHERE id = $1
RETURNING ` + assessmentColumns

func (q *Queries) MarkSummaryEmailSent(ctx context.Context, id uuid.UUID) (Assessment, error) {
	row := q.queryRow(ctx, q.markSummaryEmailSentStmt, markSummaryEmailSent, id)
	return scanAssessment(row)
}

const markSummaryEmailFailed = `
UPDATE assessments
SET email_status = 'failed', email_error = $2, updated_at = now()
WHERE id = $1
RETURNING ` + assessmentColumns

type MarkSummaryEmailFailedParams struct {
	ID         uuid.UUID
	EmailError sql.NullString
}

func (q *Queries) MarkSummaryEmailFailed(ctx context.Context, arg MarkSummaryEmailFailedParams) (Assessment, error) {
	row := q.queryRow(ctx, q.markSummaryEmailFailedStmt, markSummaryEmailFailed, arg.ID, arg.EmailError)
	return scanAssessment(row)
}

const listPendingEmailDeliveries = `
SELECT ` + assessmentColumns + `
FROM assessments
WHERE email_status = 'pending'
ORDER BY created_at
LIMIT $1`

// ListPendingEmailDeliveries feeds the worker's poller recovery path: rows
// whose summary email was requested but never sent, oldest first.
func (q *Queries) ListPendingEmailDeliveries(ctx context.Context, limit int32) ([]Assessment, error) {
	rows, err := q.query(ctx, q.listPendingEmailDeliveriesStmt, listPendingEmailDeliveries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(
			&a.ID,
			&a.ClientRef,
			&a.Variant,
			&a.FirmType,
			&a.Score,
			&a.RiskLevel,
			&a.AssessmentNumber,
			&a.ResponsesJson,
			&a.ResultJson,
			&a.EmailRecipient,
			&a.EmailStatus,
			&a.EmailError,
			&a.ConsultService,
			&a.ConsultPaymentIntent,
			&a.ConsultStatus,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
