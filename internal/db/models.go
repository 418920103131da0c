package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Enum types mirror the Postgres enums one to one. Their string values also
// match internal/scoring and internal/questionnaire, so conversions are plain
// casts.

type FirmType string

const (
	FirmTypeIT    FirmType = "IT"
	FirmTypeNonIT FirmType = "Non-IT"
)

func (e *FirmType) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = FirmType(s)
	case string:
		*e = FirmType(s)
	default:
		return fmt.Errorf("unsupported scan type for FirmType: %T", src)
	}
	return nil
}

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

func (e *RiskLevel) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = RiskLevel(s)
	case string:
		*e = RiskLevel(s)
	default:
		return fmt.Errorf("unsupported scan type for RiskLevel: %T", src)
	}
	return nil
}

type EmailStatus string

const (
	EmailStatusNone    EmailStatus = "none"
	EmailStatusPending EmailStatus = "pending"
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
)

func (e *EmailStatus) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = EmailStatus(s)
	case string:
		*e = EmailStatus(s)
	default:
		return fmt.Errorf("unsupported scan type for EmailStatus: %T", src)
	}
	return nil
}

type ConsultationStatus string

const (
	ConsultationStatusNone    ConsultationStatus = "none"
	ConsultationStatusPending ConsultationStatus = "pending"
	ConsultationStatusPaid    ConsultationStatus = "paid"
	ConsultationStatusFailed  ConsultationStatus = "failed"
)

func (e *ConsultationStatus) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = ConsultationStatus(s)
	case string:
		*e = ConsultationStatus(s)
	default:
		return fmt.Errorf("unsupported scan type for ConsultationStatus: %T", src)
	}
	return nil
}

type WebhookStatus string

const (
	WebhookStatusReceived  WebhookStatus = "received"
	WebhookStatusProcessed WebhookStatus = "processed"
	WebhookStatusFailed    WebhookStatus = "failed"
)

func (e *WebhookStatus) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = WebhookStatus(s)
	case string:
		*e = WebhookStatus(s)
	default:
		return fmt.Errorf("unsupported scan type for WebhookStatus: %T", src)
	}
	return nil
}

// Assessment is one completed, scored questionnaire submission.
type Assessment struct {
	ID                   uuid.UUID
	ClientRef            string
	Variant              string
	FirmType             FirmType
	Score                int32
	RiskLevel            RiskLevel
	AssessmentNumber     sql.NullInt64
	ResponsesJson        pqtype.NullRawMessage
	ResultJson           pqtype.NullRawMessage
	EmailRecipient       sql.NullString
	EmailStatus          EmailStatus
	EmailError           sql.NullString
	ConsultService       sql.NullString
	ConsultPaymentIntent sql.NullString
	ConsultStatus        ConsultationStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Counter is a named monotonically increasing value.
type Counter struct {
	Name  string
	Value int64
}

// StripeEvent is one row in the webhook idempotency ledger.
type StripeEvent struct {
	ID           string
	Type         string
	Status       WebhookStatus
	ErrorMessage sql.NullString
	ReceivedAt   time.Time
	ProcessedAt  sql.NullTime
}
