package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/globalcyberassociates/cyberstats-backend/internal/email"
	"github.com/globalcyberassociates/cyberstats-backend/internal/scoring"
	"github.com/globalcyberassociates/cyberstats-backend/internal/store"
	"github.com/google/uuid"
)

// Job delivers one assessment summary email. The stored result_json snapshot
// is the source of truth for the email body: the delivery renders exactly what
// was scored at submission time, even if the question configs have changed
// since.
type Job struct {
	q      db.Querier
	store  *store.Store
	mailer email.Sender
	logger *slog.Logger
}

// NewJob constructs a Job with all required dependencies.
func NewJob(
	q db.Querier,
	st *store.Store,
	mailer email.Sender,
	logger *slog.Logger,
) *Job {
	return &Job{
		q:      q,
		store:  st,
		mailer: mailer,
		logger: logger,
	}
}

// Run executes the delivery for a single assessment:
//
//  1. Load the assessment row.
//  2. Skip rows that are not awaiting delivery (already sent, no recipient).
//  3. Rebuild the summary from the result_json snapshot.
//  4. Send the email and mark the row sent.
//
// Any error is returned to the Runner, which retries up to MaxRetries times
// before calling store.MarkSummaryEmailFailed.
func (j *Job) Run(ctx context.Context, assessmentID uuid.UUID) error {
	log := j.logger.With("assessment_id", assessmentID)
	log.Info("job: starting")

	assessment, err := j.q.GetAssessmentByID(ctx, assessmentID)
	if err != nil {
		return fmt.Errorf("job: get assessment: %w", err)
	}

	// The channel fast path and the poller can both hand over the same row;
	// whichever runs second sees a non-pending status and stops here.
	if assessment.EmailStatus != db.EmailStatusPending {
		log.Debug("job: nothing to deliver", "email_status", assessment.EmailStatus)
		return nil
	}
	if !assessment.EmailRecipient.Valid || assessment.EmailRecipient.String == "" {
		// Pending without a recipient should be impossible; repair the row so
		// the poller stops re-queueing it.
		log.Warn("job: pending delivery has no recipient, marking failed")
		_, err := j.store.MarkSummaryEmailFailed(ctx, assessmentID, "no recipient on record")
		return err
	}

	if !assessment.ResultJson.Valid {
		return fmt.Errorf("job: assessment %s has no result snapshot", assessmentID)
	}

	var result scoring.Result
	if err := json.Unmarshal(assessment.ResultJson.RawMessage, &result); err != nil {
		return fmt.Errorf("job: unmarshal result snapshot: %w", err)
	}

	recommendations := make([]email.RecommendationLine, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		recommendations[i] = email.RecommendationLine{
			Service:     rec.Service,
			Description: rec.Description,
			Priority:    string(rec.Priority),
		}
	}

	if err := j.mailer.SendResultSummary(ctx, email.SummaryParams{
		To:               assessment.EmailRecipient.String,
		AssessmentNumber: assessment.AssessmentNumber.Int64,
		Score:            result.Score,
		RiskLevel:        string(result.RiskLevel),
		Breakdown: []email.BreakdownLine{
			{Label: "Exposure", Value: result.Breakdown.Exposure},
			{Label: "Data Sensitivity", Value: result.Breakdown.DataSensitivity},
			{Label: "Regulatory", Value: result.Breakdown.Regulatory},
			{Label: "Operational", Value: result.Breakdown.Operational},
		},
		Recommendations: recommendations,
		AssessmentID:    assessment.ID.String(),
	}); err != nil {
		return fmt.Errorf("job: send summary: %w", err)
	}

	if _, err := j.store.MarkSummaryEmailSent(ctx, assessmentID); err != nil {
		// The email went out but the row still says pending: the poller will
		// re-run this job, hit the idempotency check above only after the mark
		// succeeds. Surface the error so the retry loop gets another chance to
		// record the send.
		return fmt.Errorf("job: mark sent: %w", err)
	}

	log.Info("job: summary delivered", "to", assessment.EmailRecipient.String)
	return nil
}
