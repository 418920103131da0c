package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Querier is the query surface consumed by store, api, and worker. *Queries
// implements it; tests substitute stubs.
type Querier interface {
	AttachConsultationIntent(ctx context.Context, arg AttachConsultationIntentParams) (Assessment, error)
	CreateAssessment(ctx context.Context, arg CreateAssessmentParams) (Assessment, error)
	GetAssessmentByClientRef(ctx context.Context, clientRef string) (Assessment, error)
	GetAssessmentByID(ctx context.Context, id uuid.UUID) (Assessment, error)
	GetCounter(ctx context.Context, name string) (int64, error)
	IncrementCounter(ctx context.Context, name string) (int64, error)
	InsertStripeEvent(ctx context.Context, arg InsertStripeEventParams) (StripeEvent, error)
	ListPendingEmailDeliveries(ctx context.Context, limit int32) ([]Assessment, error)
	MarkConsultationFailed(ctx context.Context, consultPaymentIntent sql.NullString) (Assessment, error)
	MarkConsultationPaid(ctx context.Context, consultPaymentIntent sql.NullString) (Assessment, error)
	MarkStripeEventFailed(ctx context.Context, arg MarkStripeEventFailedParams) (StripeEvent, error)
	MarkStripeEventProcessed(ctx context.Context, id string) (StripeEvent, error)
	MarkSummaryEmailFailed(ctx context.Context, arg MarkSummaryEmailFailedParams) (Assessment, error)
	MarkSummaryEmailSent(ctx context.Context, id uuid.UUID) (Assessment, error)
	SetAssessmentNumber(ctx context.Context, arg SetAssessmentNumberParams) (Assessment, error)
}

var _ Querier = (*Queries)(nil)
