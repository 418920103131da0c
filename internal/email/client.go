// Package email defines the interface for transactional email delivery and
// provides a Resend-backed implementation. Its parameter types are plain
// strings and ints so the package stays import-free from db and scoring.
package email

import "context"

// RecommendationLine is one recommended service rendered in the summary email.
type RecommendationLine struct {
	Service     string
	Description string
	Priority    string // Critical / Recommended / Optional
}

// BreakdownLine is one category subtotal rendered in the summary email.
type BreakdownLine struct {
	Label string // e.g. "Exposure"
	Value int
}

// SummaryParams holds the data needed to render the assessment summary email.
type SummaryParams struct {
	To               string // recipient email address
	AssessmentNumber int64  // global "Assessment #N" counter value
	Score            int
	RiskLevel        string // Low / Medium / High
	Breakdown        []BreakdownLine
	Recommendations  []RecommendationLine
	AssessmentID     string // inserted into the result URL
}

// ReceiptParams holds the data for the consultation booking receipt email.
type ReceiptParams struct {
	To          string
	Service     string // booked service, e.g. "Security Posture Assessment"
	AmountCents int64  // e.g. 14900 for $149.00
	Currency    string // e.g. "usd"
}

// Sender is the interface the worker and webhook handler use to send email.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	// SendResultSummary sends the assessment result email with score, risk
	// level, and recommended services. Called by the delivery worker.
	SendResultSummary(ctx context.Context, p SummaryParams) error

	// SendConsultationReceipt confirms a paid consultation booking. Called by
	// the webhook handler after payment confirmation.
	SendConsultationReceipt(ctx context.Context, p ReceiptParams) error
}
