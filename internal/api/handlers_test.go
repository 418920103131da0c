package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/globalcyberassociates/cyberstats-backend/internal/api"
	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/globalcyberassociates/cyberstats-backend/internal/email"
	"github.com/globalcyberassociates/cyberstats-backend/internal/questionnaire"
	"github.com/globalcyberassociates/cyberstats-backend/internal/store"
	stripeinternal "github.com/globalcyberassociates/cyberstats-backend/internal/stripe"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// ─── STUBS ────────────────────────────────────────────────────────────────────

// stubQuerier implements the handful of db.Querier methods the handlers call.
// The embedded nil Querier panics on anything a test did not expect.
type stubQuerier struct {
	db.Querier
	getAssessmentByID        func(ctx context.Context, id uuid.UUID) (db.Assessment, error)
	getCounter               func(ctx context.Context, name string) (int64, error)
	insertStripeEvent        func(ctx context.Context, arg db.InsertStripeEventParams) (db.StripeEvent, error)
	markStripeEventProcessed func(ctx context.Context, id string) (db.StripeEvent, error)
	markStripeEventFailed    func(ctx context.Context, arg db.MarkStripeEventFailedParams) (db.StripeEvent, error)
}

func (s *stubQuerier) GetAssessmentByID(ctx context.Context, id uuid.UUID) (db.Assessment, error) {
	return s.getAssessmentByID(ctx, id)
}

func (s *stubQuerier) GetCounter(ctx context.Context, name string) (int64, error) {
	return s.getCounter(ctx, name)
}

func (s *stubQuerier) InsertStripeEvent(ctx context.Context, arg db.InsertStripeEventParams) (db.StripeEvent, error) {
	return s.insertStripeEvent(ctx, arg)
}

func (s *stubQuerier) MarkStripeEventProcessed(ctx context.Context, id string) (db.StripeEvent, error) {
	if s.markStripeEventProcessed == nil {
		return db.StripeEvent{ID: id}, nil
	}
	return s.markStripeEventProcessed(ctx, id)
}

func (s *stubQuerier) MarkStripeEventFailed(ctx context.Context, arg db.MarkStripeEventFailedParams) (db.StripeEvent, error) {
	if s.markStripeEventFailed == nil {
		return db.StripeEvent{ID: arg.ID}, nil
	}
	return s.markStripeEventFailed(ctx, arg)
}

type stubRecorder struct {
	recordAssessment         func(ctx context.Context, p store.RecordAssessmentParams) (db.Assessment, error)
	attachConsultationIntent func(ctx context.Context, p store.AttachConsultationIntentParams) (db.Assessment, error)
	markConsultationPaid     func(ctx context.Context, pi string) (db.Assessment, error)
	markConsultationFailed   func(ctx context.Context, pi string) (db.Assessment, error)
}

func (s *stubRecorder) RecordAssessment(ctx context.Context, p store.RecordAssessmentParams) (db.Assessment, error) {
	return s.recordAssessment(ctx, p)
}

func (s *stubRecorder) AttachConsultationIntent(ctx context.Context, p store.AttachConsultationIntentParams) (db.Assessment, error) {
	return s.attachConsultationIntent(ctx, p)
}

func (s *stubRecorder) MarkConsultationPaid(ctx context.Context, pi string) (db.Assessment, error) {
	return s.markConsultationPaid(ctx, pi)
}

func (s *stubRecorder) MarkConsultationFailed(ctx context.Context, pi string) (db.Assessment, error) {
	return s.markConsultationFailed(ctx, pi)
}

type stubStripe struct {
	createPaymentIntent func(ctx context.Context, p stripeinternal.CreatePaymentIntentParams) (stripeinternal.PaymentIntent, error)
	getClientSecret     func(ctx context.Context, piID string) (string, error)
	verifyWebhook       func(payload []byte, sig, secret string) (stripeinternal.Event, error)
}

func (s *stubStripe) CreatePaymentIntent(ctx context.Context, p stripeinternal.CreatePaymentIntentParams) (stripeinternal.PaymentIntent, error) {
	return s.createPaymentIntent(ctx, p)
}

func (s *stubStripe) GetClientSecret(ctx context.Context, piID string) (string, error) {
	return s.getClientSecret(ctx, piID)
}

func (s *stubStripe) VerifyWebhook(payload []byte, sig, secret string) (stripeinternal.Event, error) {
	return s.verifyWebhook(payload, sig, secret)
}

type stubEnqueuer struct {
	enqueued []uuid.UUID
	err      error
}

func (s *stubEnqueuer) Enqueue(_ context.Context, assessmentID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.enqueued = append(s.enqueued, assessmentID)
	return nil
}

type stubMailer struct {
	receipts  []email.ReceiptParams
	summaries []email.SummaryParams
}

func (s *stubMailer) SendResultSummary(_ context.Context, p email.SummaryParams) error {
	s.summaries = append(s.summaries, p)
	return nil
}

func (s *stubMailer) SendConsultationReceipt(_ context.Context, p email.ReceiptParams) error {
	s.receipts = append(s.receipts, p)
	return nil
}

// ─── TEST HARNESS ─────────────────────────────────────────────────────────────

type harness struct {
	q        *stubQuerier
	recorder *stubRecorder
	stripe   *stubStripe
	enqueuer *stubEnqueuer
	mailer   *stubMailer
	handler  http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		q:        &stubQuerier{},
		recorder: &stubRecorder{},
		stripe:   &stubStripe{},
		enqueuer: &stubEnqueuer{},
		mailer:   &stubMailer{},
	}
	h.handler = api.NewServer(
		h.q,
		h.recorder,
		h.stripe,
		h.enqueuer,
		h.mailer,
		api.Config{
			BaseURL:             "https://cyberstats.test",
			StripeWebhookSecret: "whsec_test",
			Env:                 "test",
			ActiveVariant:       questionnaire.VariantDefault,
			ConsultPriceCents:   14900,
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

// storedAssessment builds a row the way RecordAssessment would return it.
func storedAssessment(p store.RecordAssessmentParams, number int64) db.Assessment {
	return db.Assessment{
		ID:               uuid.New(),
		ClientRef:        p.ClientRef,
		Variant:          p.Variant,
		FirmType:         p.FirmType,
		Score:            p.Score,
		RiskLevel:        p.RiskLevel,
		AssessmentNumber: sql.NullInt64{Int64: number, Valid: true},
		ResponsesJson:    pqtype.NullRawMessage{RawMessage: p.ResponsesJSON, Valid: true},
		ResultJson:       pqtype.NullRawMessage{RawMessage: p.ResultJSON, Valid: true},
		EmailRecipient:   sql.NullString{String: p.Email, Valid: p.Email != ""},
		CreatedAt:        time.Now(),
	}
}

// ─── QUESTIONNAIRE ENDPOINTS ──────────────────────────────────────────────────

func TestGetActiveQuestionnaire(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/questionnaire", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Variant string `json:"variant"`
		Steps   []struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			IsLastStep bool   `json:"is_last_step"`
			Questions  []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"questions"`
		} `json:"steps"`
	}
	decodeBody(t, rec, &resp)

	if resp.Variant != questionnaire.VariantDefault {
		t.Errorf("variant = %q, want %q", resp.Variant, questionnaire.VariantDefault)
	}
	if len(resp.Steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(resp.Steps))
	}
	for i, step := range resp.Steps {
		wantLast := i == len(resp.Steps)-1
		if step.IsLastStep != wantLast {
			t.Errorf("step %q is_last_step = %v, want %v", step.ID, step.IsLastStep, wantLast)
		}
		if len(step.Questions) == 0 {
			t.Errorf("step %q has no questions", step.ID)
		}
	}
	if resp.Steps[0].Title == "" {
		t.Error("first step is missing display copy")
	}
}

func TestGetQuestionnaire_UnknownVariantReturns404(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/questionnaire/nope", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetQuestionnaire_LegacyIncludesPresenceGate(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/questionnaire/legacy", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		PresenceGate []string `json:"presence_gate"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.PresenceGate) == 0 {
		t.Error("expected presence_gate on the legacy variant")
	}
}

func TestListVariants(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/variants", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Variants []struct {
			Variant   string `json:"variant"`
			Name      string `json:"name"`
			Steps     int    `json:"steps"`
			Questions int    `json:"questions"`
			Active    bool   `json:"active"`
		} `json:"variants"`
	}
	decodeBody(t, rec, &resp)

	if len(resp.Variants) != 4 {
		t.Fatalf("variants = %d, want 4", len(resp.Variants))
	}
	for _, v := range resp.Variants {
		wantActive := v.Variant == questionnaire.VariantDefault
		if v.Active != wantActive {
			t.Errorf("variant %q active = %v, want %v", v.Variant, v.Active, wantActive)
		}
		if v.Steps == 0 || v.Questions == 0 {
			t.Errorf("variant %q has empty counts: steps=%d questions=%d", v.Variant, v.Steps, v.Questions)
		}
	}
}

// ─── SUBMIT ASSESSMENT ────────────────────────────────────────────────────────

func TestSubmitAssessment_Success(t *testing.T) {
	h := newHarness(t)

	var recorded store.RecordAssessmentParams
	h.recorder.recordAssessment = func(_ context.Context, p store.RecordAssessmentParams) (db.Assessment, error) {
		recorded = p
		return storedAssessment(p, 42), nil
	}

	rec := h.do(t, http.MethodPost, "/api/assessment", map[string]any{
		"client_ref": "ref-123",
		"firm_type":  "IT",
		"answers":    map[string]bool{},
		"email":      "owner@example.com",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	if recorded.Variant != questionnaire.VariantDefault {
		t.Errorf("recorded variant = %q, want active default", recorded.Variant)
	}
	// All-no answers on the default IT config land on the negative-weight
	// compliance floor: subtotal 10 weighted at 0.20 rounds to 2.
	if recorded.Score != 2 {
		t.Errorf("recorded score = %d, want 2", recorded.Score)
	}
	if recorded.Email != "owner@example.com" {
		t.Errorf("recorded email = %q", recorded.Email)
	}

	var resp struct {
		ID               string `json:"id"`
		AssessmentNumber int64  `json:"assessment_number"`
		Result           struct {
			Score     int    `json:"score"`
			RiskLevel string `json:"riskLevel"`
		} `json:"result"`
		Replayed bool `json:"replayed"`
	}
	decodeBody(t, rec, &resp)

	if resp.AssessmentNumber != 42 {
		t.Errorf("assessment_number = %d, want 42", resp.AssessmentNumber)
	}
	if resp.Result.Score != 2 || resp.Result.RiskLevel != "Low" {
		t.Errorf("result = %d/%s, want 2/Low", resp.Result.Score, resp.Result.RiskLevel)
	}
	if resp.Replayed {
		t.Error("fresh submission reported as replayed")
	}

	if len(h.enqueuer.enqueued) != 1 {
		t.Fatalf("enqueued %d deliveries, want 1", len(h.enqueuer.enqueued))
	}
	if h.enqueuer.enqueued[0].String() != resp.ID {
		t.Errorf("enqueued id %s, want %s", h.enqueuer.enqueued[0], resp.ID)
	}
}

func TestSubmitAssessment_NoEmailSkipsEnqueue(t *testing.T) {
	h := newHarness(t)
	h.recorder.recordAssessment = func(_ context.Context, p store.RecordAssessmentParams) (db.Assessment, error) {
		return storedAssessment(p, 1), nil
	}

	rec := h.do(t, http.MethodPost, "/api/assessment", map[string]any{
		"client_ref": "ref-no-email",
		"firm_type":  "Non-IT",
		"answers":    map[string]bool{"hasWebsite": true},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(h.enqueuer.enqueued) != 0 {
		t.Errorf("enqueued %d deliveries, want 0", len(h.enqueuer.enqueued))
	}
}

func TestSubmitAssessment_ReplayReturnsStoredRow(t *testing.T) {
	h := newHarness(t)

	storedResult, _ := json.Marshal(map[string]any{
		"score":     77,
		"riskLevel": "High",
	})
	h.recorder.recordAssessment = func(_ context.Context, p store.RecordAssessmentParams) (db.Assessment, error) {
		return db.Assessment{
			ID:               uuid.New(),
			ClientRef:        p.ClientRef,
			Variant:          p.Variant,
			FirmType:         p.FirmType,
			AssessmentNumber: sql.NullInt64{Int64: 7, Valid: true},
			ResultJson:       pqtype.NullRawMessage{RawMessage: storedResult, Valid: true},
		}, store.ErrAssessmentAlreadyRecorded
	}

	rec := h.do(t, http.MethodPost, "/api/assessment", map[string]any{
		"client_ref": "ref-replay",
		"firm_type":  "IT",
		"answers":    map[string]bool{},
		"email":      "owner@example.com",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for replay", rec.Code)
	}

	var resp struct {
		AssessmentNumber int64 `json:"assessment_number"`
		Result           struct {
			Score int `json:"score"`
		} `json:"result"`
		Replayed bool `json:"replayed"`
	}
	decodeBody(t, rec, &resp)

	if !resp.Replayed {
		t.Error("replayed flag not set")
	}
	if resp.Result.Score != 77 {
		t.Errorf("score = %d, want stored 77 (not a fresh scoring run)", resp.Result.Score)
	}
	if resp.AssessmentNumber != 7 {
		t.Errorf("assessment_number = %d, want original 7", resp.AssessmentNumber)
	}
	if len(h.enqueuer.enqueued) != 0 {
		t.Error("replay must not enqueue a second delivery")
	}
}

func TestSubmitAssessment_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing client_ref", map[string]any{"firm_type": "IT", "answers": map[string]bool{}}},
		{"bad firm_type", map[string]any{"client_ref": "r", "firm_type": "Bank", "answers": map[string]bool{}}},
		{"unknown variant", map[string]any{"client_ref": "r", "firm_type": "IT", "variant": "nope", "answers": map[string]bool{}}},
		{"unknown field", map[string]any{"client_ref": "r", "firm_type": "IT", "answers": map[string]bool{}, "extra": 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.recorder.recordAssessment = func(_ context.Context, p store.RecordAssessmentParams) (db.Assessment, error) {
				t.Fatal("RecordAssessment must not be called for a rejected request")
				return db.Assessment{}, nil
			}

			rec := h.do(t, http.MethodPost, "/api/assessment", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// ─── GET ASSESSMENT & STATS ───────────────────────────────────────────────────

func TestGetAssessment_Success(t *testing.T) {
	h := newHarness(t)
	id := uuid.New()
	result, _ := json.Marshal(map[string]any{"score": 55, "riskLevel": "Medium"})

	h.q.getAssessmentByID = func(_ context.Context, got uuid.UUID) (db.Assessment, error) {
		if got != id {
			t.Errorf("queried id %s, want %s", got, id)
		}
		return db.Assessment{
			ID:               id,
			Variant:          "default",
			FirmType:         db.FirmTypeIT,
			AssessmentNumber: sql.NullInt64{Int64: 9, Valid: true},
			ResultJson:       pqtype.NullRawMessage{RawMessage: result, Valid: true},
		}, nil
	}

	rec := h.do(t, http.MethodGet, "/api/assessment/"+id.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		ID     string `json:"id"`
		Result struct {
			Score int `json:"score"`
		} `json:"result"`
	}
	decodeBody(t, rec, &resp)
	if resp.ID != id.String() || resp.Result.Score != 55 {
		t.Errorf("got id=%s score=%d", resp.ID, resp.Result.Score)
	}
}

func TestGetAssessment_NotFound(t *testing.T) {
	h := newHarness(t)
	h.q.getAssessmentByID = func(_ context.Context, _ uuid.UUID) (db.Assessment, error) {
		return db.Assessment{}, sql.ErrNoRows
	}

	rec := h.do(t, http.MethodGet, "/api/assessment/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetAssessment_InvalidID(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/assessment/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetStats(t *testing.T) {
	h := newHarness(t)
	h.q.getCounter = func(_ context.Context, name string) (int64, error) {
		if name != store.CounterAssessmentsCompleted {
			t.Errorf("counter name = %q", name)
		}
		return 1234, nil
	}

	rec := h.do(t, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		AssessmentsCompleted int64 `json:"assessments_completed"`
	}
	decodeBody(t, rec, &resp)
	if resp.AssessmentsCompleted != 1234 {
		t.Errorf("assessments_completed = %d, want 1234", resp.AssessmentsCompleted)
	}
}

// ─── CONSULTATION CHECKOUT ────────────────────────────────────────────────────

func TestCreateConsultation_CreatesAndAttaches(t *testing.T) {
	h := newHarness(t)
	id := uuid.New()

	h.q.getAssessmentByID = func(_ context.Context, _ uuid.UUID) (db.Assessment, error) {
		return db.Assessment{ID: id}, nil
	}
	h.stripe.createPaymentIntent = func(_ context.Context, p stripeinternal.CreatePaymentIntentParams) (stripeinternal.PaymentIntent, error) {
		if p.AmountCents != 14900 {
			t.Errorf("amount = %d, want 14900", p.AmountCents)
		}
		if p.Metadata["assessment_id"] != id.String() {
			t.Errorf("metadata assessment_id = %q", p.Metadata["assessment_id"])
		}
		return stripeinternal.PaymentIntent{ID: "pi_new", ClientSecret: "pi_new_secret"}, nil
	}
	h.recorder.attachConsultationIntent = func(_ context.Context, p store.AttachConsultationIntentParams) (db.Assessment, error) {
		if p.PaymentIntent != "pi_new" || p.Service != "Security Posture Assessment" {
			t.Errorf("attach params = %+v", p)
		}
		return db.Assessment{ID: id}, nil
	}

	rec := h.do(t, http.MethodPost, "/api/assessment/"+id.String()+"/consultation", map[string]any{
		"service": "Security Posture Assessment",
		"email":   "owner@example.com",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ClientSecret string `json:"client_secret"`
		IsExisting   bool   `json:"is_existing"`
	}
	decodeBody(t, rec, &resp)
	if resp.ClientSecret != "pi_new_secret" || resp.IsExisting {
		t.Errorf("got secret=%q is_existing=%v", resp.ClientSecret, resp.IsExisting)
	}
}

func TestCreateConsultation_ExistingIntentFastPath(t *testing.T) {
	h := newHarness(t)
	id := uuid.New()

	h.q.getAssessmentByID = func(_ context.Context, _ uuid.UUID) (db.Assessment, error) {
		return db.Assessment{
			ID:                   id,
			ConsultPaymentIntent: sql.NullString{String: "pi_existing", Valid: true},
		}, nil
	}
	h.stripe.getClientSecret = func(_ context.Context, piID string) (string, error) {
		if piID != "pi_existing" {
			t.Errorf("looked up %q, want pi_existing", piID)
		}
		return "pi_existing_secret", nil
	}
	h.stripe.createPaymentIntent = func(_ context.Context, _ stripeinternal.CreatePaymentIntentParams) (stripeinternal.PaymentIntent, error) {
		t.Fatal("must not create a second PaymentIntent")
		return stripeinternal.PaymentIntent{}, nil
	}

	rec := h.do(t, http.MethodPost, "/api/assessment/"+id.String()+"/consultation", map[string]any{
		"service": "VAPT (Vulnerability Assessment)",
		"email":   "owner@example.com",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		ClientSecret string `json:"client_secret"`
		IsExisting   bool   `json:"is_existing"`
	}
	decodeBody(t, rec, &resp)
	if resp.ClientSecret != "pi_existing_secret" || !resp.IsExisting {
		t.Errorf("got secret=%q is_existing=%v", resp.ClientSecret, resp.IsExisting)
	}
}

func TestCreateConsultation_LostRaceReturnsWinningSecret(t *testing.T) {
	h := newHarness(t)
	id := uuid.New()

	calls := 0
	h.q.getAssessmentByID = func(_ context.Context, _ uuid.UUID) (db.Assessment, error) {
		calls++
		if calls == 1 {
			// First read: no PI yet.
			return db.Assessment{ID: id}, nil
		}
		// Re-read after losing the race: the winner's PI is attached.
		return db.Assessment{
			ID:                   id,
			ConsultPaymentIntent: sql.NullString{String: "pi_winner", Valid: true},
		}, nil
	}
	h.stripe.createPaymentIntent = func(_ context.Context, _ stripeinternal.CreatePaymentIntentParams) (stripeinternal.PaymentIntent, error) {
		return stripeinternal.PaymentIntent{ID: "pi_loser", ClientSecret: "pi_loser_secret"}, nil
	}
	h.recorder.attachConsultationIntent = func(_ context.Context, _ store.AttachConsultationIntentParams) (db.Assessment, error) {
		return db.Assessment{}, store.ErrConsultationIntentAlreadyAttached
	}
	h.stripe.getClientSecret = func(_ context.Context, piID string) (string, error) {
		if piID != "pi_winner" {
			t.Errorf("looked up %q, want pi_winner", piID)
		}
		return "pi_winner_secret", nil
	}

	rec := h.do(t, http.MethodPost, "/api/assessment/"+id.String()+"/consultation", map[string]any{
		"service": "24/7 SOC Monitoring",
		"email":   "owner@example.com",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		ClientSecret string `json:"client_secret"`
		IsExisting   bool   `json:"is_existing"`
	}
	decodeBody(t, rec, &resp)
	if resp.ClientSecret != "pi_winner_secret" || !resp.IsExisting {
		t.Errorf("got secret=%q is_existing=%v", resp.ClientSecret, resp.IsExisting)
	}
}

func TestCreateConsultation_MissingEmail(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/api/assessment/"+uuid.NewString()+"/consultation", map[string]any{
		"service": "VAPT (Vulnerability Assessment)",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// ─── STRIPE WEBHOOK ───────────────────────────────────────────────────────────

func webhookRequest(payload string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	return req
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	h := newHarness(t)
	h.stripe.verifyWebhook = func(_ []byte, _, _ string) (stripeinternal.Event, error) {
		return stripeinternal.Event{}, errors.New("signature mismatch")
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, webhookRequest(`{}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStripeWebhook_DuplicateEventAcked(t *testing.T) {
	h := newHarness(t)
	h.stripe.verifyWebhook = func(_ []byte, _, _ string) (stripeinternal.Event, error) {
		return stripeinternal.Event{ID: "evt_dup", Type: "payment_intent.succeeded"}, nil
	}
	h.q.insertStripeEvent = func(_ context.Context, _ db.InsertStripeEventParams) (db.StripeEvent, error) {
		return db.StripeEvent{}, sql.ErrNoRows
	}
	h.recorder.markConsultationPaid = func(_ context.Context, _ string) (db.Assessment, error) {
		t.Fatal("duplicate event must not reach the paid handler")
		return db.Assessment{}, nil
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, webhookRequest(`{}`))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for duplicate", rec.Code)
	}
}

func TestStripeWebhook_PaymentSucceeded(t *testing.T) {
	h := newHarness(t)

	piPayload, _ := json.Marshal(map[string]any{"id": "pi_paid", "object": "payment_intent"})
	h.stripe.verifyWebhook = func(_ []byte, _, _ string) (stripeinternal.Event, error) {
		return stripeinternal.Event{
			ID:      "evt_paid",
			Type:    "payment_intent.succeeded",
			DataRaw: piPayload,
		}, nil
	}
	h.q.insertStripeEvent = func(_ context.Context, arg db.InsertStripeEventParams) (db.StripeEvent, error) {
		return db.StripeEvent{ID: arg.ID}, nil
	}

	var processed string
	h.q.markStripeEventProcessed = func(_ context.Context, id string) (db.StripeEvent, error) {
		processed = id
		return db.StripeEvent{ID: id}, nil
	}
	h.recorder.markConsultationPaid = func(_ context.Context, pi string) (db.Assessment, error) {
		if pi != "pi_paid" {
			t.Errorf("marked pi %q, want pi_paid", pi)
		}
		return db.Assessment{
			ID:             uuid.New(),
			EmailRecipient: sql.NullString{String: "owner@example.com", Valid: true},
			ConsultService: sql.NullString{String: "Compliance Audit", Valid: true},
		}, nil
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, webhookRequest(`{}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	if processed != "evt_paid" {
		t.Errorf("processed event = %q, want evt_paid", processed)
	}
	if len(h.mailer.receipts) != 1 {
		t.Fatalf("sent %d receipts, want 1", len(h.mailer.receipts))
	}
	receipt := h.mailer.receipts[0]
	if receipt.To != "owner@example.com" || receipt.Service != "Compliance Audit" || receipt.AmountCents != 14900 {
		t.Errorf("receipt = %+v", receipt)
	}
}

func TestStripeWebhook_PaymentFailed(t *testing.T) {
	h := newHarness(t)

	piPayload, _ := json.Marshal(map[string]any{"id": "pi_failed"})
	h.stripe.verifyWebhook = func(_ []byte, _, _ string) (stripeinternal.Event, error) {
		return stripeinternal.Event{
			ID:      "evt_failed",
			Type:    "payment_intent.payment_failed",
			DataRaw: piPayload,
		}, nil
	}
	h.q.insertStripeEvent = func(_ context.Context, arg db.InsertStripeEventParams) (db.StripeEvent, error) {
		return db.StripeEvent{ID: arg.ID}, nil
	}

	var failedPI string
	h.recorder.markConsultationFailed = func(_ context.Context, pi string) (db.Assessment, error) {
		failedPI = pi
		return db.Assessment{}, nil
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, webhookRequest(`{}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if failedPI != "pi_failed" {
		t.Errorf("marked failed pi %q, want pi_failed", failedPI)
	}
	if len(h.mailer.receipts) != 0 {
		t.Error("failed payment must not send a receipt")
	}
}

func TestStripeWebhook_UnknownPIIsAcked(t *testing.T) {
	h := newHarness(t)

	piPayload, _ := json.Marshal(map[string]any{"id": "pi_foreign"})
	h.stripe.verifyWebhook = func(_ []byte, _, _ string) (stripeinternal.Event, error) {
		return stripeinternal.Event{ID: "evt_foreign", Type: "payment_intent.succeeded", DataRaw: piPayload}, nil
	}
	h.q.insertStripeEvent = func(_ context.Context, arg db.InsertStripeEventParams) (db.StripeEvent, error) {
		return db.StripeEvent{ID: arg.ID}, nil
	}
	h.recorder.markConsultationPaid = func(_ context.Context, _ string) (db.Assessment, error) {
		return db.Assessment{}, sql.ErrNoRows
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, webhookRequest(`{}`))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for unknown PI", rec.Code)
	}
}

func TestStripeWebhook_UnknownEventTypeAcked(t *testing.T) {
	h := newHarness(t)
	h.stripe.verifyWebhook = func(_ []byte, _, _ string) (stripeinternal.Event, error) {
		return stripeinternal.Event{ID: "evt_other", Type: "customer.created"}, nil
	}
	h.q.insertStripeEvent = func(_ context.Context, arg db.InsertStripeEventParams) (db.StripeEvent, error) {
		return db.StripeEvent{ID: arg.ID}, nil
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, webhookRequest(`{}`))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for unhandled type", rec.Code)
	}
}

// ─── HEALTH ───────────────────────────────────────────────────────────────────

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
