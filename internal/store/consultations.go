package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/google/uuid"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// AttachConsultationIntentParams groups the fields written together when a
// consultation checkout is initiated for an assessment.
type AttachConsultationIntentParams struct {
	AssessmentID  uuid.UUID
	Service       string
	PaymentIntent string
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrConsultationIntentAlreadyAttached is returned when the assessment already
// carries a Stripe PaymentIntent. The checkout handler should treat this as a
// recoverable condition and return the existing intent's client_secret to the
// browser rather than creating a second PaymentIntent.
var ErrConsultationIntentAlreadyAttached = errors.New("store: consultation intent already attached to assessment")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// AttachConsultationIntent atomically guards against double-attachment of a
// Stripe PaymentIntent to an assessment, then writes the service and PI.
//
// Race scenario without this guard:
//  1. Two browser tabs book a consultation simultaneously.
//  2. Both read the assessment, see no PI, and call Stripe.
//  3. Both try to write — the second write silently overwrites the first PI,
//     orphaning a Stripe PaymentIntent that will never be confirmed.
//
// With serializable isolation the second concurrent transaction will see the
// first commit and hit the already-attached check, returning
// ErrConsultationIntentAlreadyAttached. The handler then reads the existing PI
// from the assessment and returns its client_secret — no orphaned object, no
// double charge.
func (s *Store) AttachConsultationIntent(ctx context.Context, p AttachConsultationIntentParams) (db.Assessment, error) {
	var assessment db.Assessment

	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		// Re-read the assessment inside the transaction so we see the latest
		// committed state under serializable isolation.
		existing, err := q.GetAssessmentByID(ctx, p.AssessmentID)
		if err != nil {
			return fmt.Errorf("AttachConsultationIntent: get assessment: %w", err)
		}

		if existing.ConsultPaymentIntent.Valid && existing.ConsultPaymentIntent.String != "" {
			assessment = existing
			return ErrConsultationIntentAlreadyAttached
		}

		updated, err := q.AttachConsultationIntent(ctx, db.AttachConsultationIntentParams{
			ID: p.AssessmentID,
			ConsultService: sql.NullString{
				String: p.Service,
				Valid:  p.Service != "",
			},
			ConsultPaymentIntent: sql.NullString{
				String: p.PaymentIntent,
				Valid:  true,
			},
		})
		if err != nil {
			return fmt.Errorf("AttachConsultationIntent: attach: %w", err)
		}

		assessment = updated
		return nil
	})

	if errors.Is(err, ErrConsultationIntentAlreadyAttached) {
		return assessment, ErrConsultationIntentAlreadyAttached
	}
	if err != nil {
		return db.Assessment{}, err
	}

	return assessment, nil
}

// MarkConsultationPaid flips the consultation to paid, matched on the
// PaymentIntent from the webhook payload. Re-delivered webhooks land on a row
// that is already paid; the UPDATE is idempotent so the duplicate is harmless.
// sql.ErrNoRows propagates when the PI belongs to no assessment.
func (s *Store) MarkConsultationPaid(ctx context.Context, paymentIntent string) (db.Assessment, error) {
	a, err := s.q.MarkConsultationPaid(ctx, sql.NullString{String: paymentIntent, Valid: true})
	if err != nil {
		return db.Assessment{}, fmt.Errorf("MarkConsultationPaid: %w", err)
	}
	return a, nil
}

// MarkConsultationFailed records a failed or canceled payment for the
// consultation matched by PaymentIntent.
func (s *Store) MarkConsultationFailed(ctx context.Context, paymentIntent string) (db.Assessment, error) {
	a, err := s.q.MarkConsultationFailed(ctx, sql.NullString{String: paymentIntent, Valid: true})
	if err != nil {
		return db.Assessment{}, fmt.Errorf("MarkConsultationFailed: %w", err)
	}
	return a, nil
}
