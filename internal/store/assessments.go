package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// RecordAssessmentParams is everything the submission handler persists after
// the engine has scored the answers.
type RecordAssessmentParams struct {
	ClientRef     string
	Variant       string
	FirmType      db.FirmType
	Score         int32
	RiskLevel     db.RiskLevel
	ResponsesJSON json.RawMessage
	ResultJSON    json.RawMessage
	// Email is the optional summary recipient. Non-empty queues the row for
	// the delivery worker.
	Email string
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrAssessmentAlreadyRecorded is returned when the client_ref has been seen
// before. The submission handler should treat this as a replay and return the
// previously stored row — same score, same assessment number, counter
// untouched — rather than failing the request.
var ErrAssessmentAlreadyRecorded = errors.New("store: assessment already recorded for client ref")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// RecordAssessment atomically persists a scored assessment and claims the next
// assessment number.
//
// The completion counter must move at most once per client session, even when
// the browser retries the POST. The guard is the unique client_ref column:
//
//  1. Insert the row with ON CONFLICT DO NOTHING. A conflict surfaces as
//     sql.ErrNoRows from RETURNING.
//  2. First insert only: increment the assessments_completed counter and stamp
//     its value on the row as the assessment number.
//  3. On conflict: read the existing row and return it with the sentinel
//     error. No counter movement.
//
// Both steps run in one serializable transaction, so a crash between insert
// and counter increment cannot leave a numbered-but-uncounted (or vice versa)
// row behind.
func (s *Store) RecordAssessment(ctx context.Context, p RecordAssessmentParams) (db.Assessment, error) {
	var assessment db.Assessment

	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		emailStatus := db.EmailStatusNone
		if p.Email != "" {
			emailStatus = db.EmailStatusPending
		}

		created, err := q.CreateAssessment(ctx, db.CreateAssessmentParams{
			ClientRef: p.ClientRef,
			Variant:   p.Variant,
			FirmType:  p.FirmType,
			Score:     p.Score,
			RiskLevel: p.RiskLevel,
			ResponsesJson: pqtype.NullRawMessage{
				RawMessage: p.ResponsesJSON,
				Valid:      len(p.ResponsesJSON) > 0,
			},
			ResultJson: pqtype.NullRawMessage{
				RawMessage: p.ResultJSON,
				Valid:      len(p.ResultJSON) > 0,
			},
			EmailRecipient: sql.NullString{
				String: p.Email,
				Valid:  p.Email != "",
			},
			EmailStatus: emailStatus,
		})
		if errors.Is(err, sql.ErrNoRows) {
			// client_ref conflict: this session was recorded before. Surface
			// the stored row; the counter stays where it is.
			existing, getErr := q.GetAssessmentByClientRef(ctx, p.ClientRef)
			if getErr != nil {
				return fmt.Errorf("RecordAssessment: load existing: %w", getErr)
			}
			assessment = existing
			return ErrAssessmentAlreadyRecorded
		}
		if err != nil {
			return fmt.Errorf("RecordAssessment: create: %w", err)
		}

		number, err := q.IncrementCounter(ctx, CounterAssessmentsCompleted)
		if err != nil {
			return fmt.Errorf("RecordAssessment: increment counter: %w", err)
		}

		numbered, err := q.SetAssessmentNumber(ctx, db.SetAssessmentNumberParams{
			ID:               created.ID,
			AssessmentNumber: sql.NullInt64{Int64: number, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("RecordAssessment: set number: %w", err)
		}

		assessment = numbered
		return nil
	})

	// Unwrap the sentinel so callers can check with errors.Is without needing
	// to look inside a wrapped error chain.
	if errors.Is(err, ErrAssessmentAlreadyRecorded) {
		return assessment, ErrAssessmentAlreadyRecorded
	}
	if err != nil {
		return db.Assessment{}, err
	}

	return assessment, nil
}

// CounterAssessmentsCompleted is the counters row behind "Assessment #N" and
// GET /api/stats.
const CounterAssessmentsCompleted = "assessments_completed"

// MarkSummaryEmailSent records a successful summary delivery. Single-query
// write — no transaction needed — but it lives here because it is part of the
// assessment lifecycle and the worker should not call db.Querier directly for
// state changes.
func (s *Store) MarkSummaryEmailSent(ctx context.Context, assessmentID uuid.UUID) (db.Assessment, error) {
	a, err := s.q.MarkSummaryEmailSent(ctx, assessmentID)
	if err != nil {
		return db.Assessment{}, fmt.Errorf("MarkSummaryEmailSent: %w", err)
	}
	return a, nil
}

// MarkSummaryEmailFailed records a permanently failed summary delivery with a
// descriptive reason. Called by the worker after exhausting retries; the row
// drops out of the pending poll so it is not retried forever.
func (s *Store) MarkSummaryEmailFailed(ctx context.Context, assessmentID uuid.UUID, reason string) (db.Assessment, error) {
	a, err := s.q.MarkSummaryEmailFailed(ctx, db.MarkSummaryEmailFailedParams{
		ID: assessmentID,
		EmailError: sql.NullString{
			String: reason,
			Valid:  true,
		},
	})
	if err != nil {
		return db.Assessment{}, fmt.Errorf("MarkSummaryEmailFailed: %w", err)
	}
	return a, nil
}
