package api

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/globalcyberassociates/cyberstats-backend/internal/email"
	stripeinternal "github.com/globalcyberassociates/cyberstats-backend/internal/stripe"
)

// ─── POST /api/webhooks/stripe ────────────────────────────────────────────────

// handleStripeWebhook is the entry point for all Stripe webhook deliveries.
//
// Stripe delivers events at-least-once and may retry on non-2xx responses.
// The handler must be idempotent: every operation it performs uses
// insert-or-ignore patterns or idempotent updates so replays are safe.
//
// The only events we act on are:
//   - payment_intent.succeeded      → mark consultation paid + send receipt
//   - payment_intent.payment_failed → mark consultation failed
//   - payment_intent.canceled       → mark consultation failed
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	// ── 1. Read and size-limit the body ───────────────────────────────────────
	// Stripe recommends reading the raw body before any other processing so
	// the signature check runs against the exact bytes Stripe signed.
	r.Body = http.MaxBytesReader(w, r.Body, 65536) // 64 KB — generous for any Stripe event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "could not read request body")
		return
	}

	// ── 2. Verify the Stripe-Signature header ─────────────────────────────────
	sig := r.Header.Get("Stripe-Signature")
	event, err := s.stripe.VerifyWebhook(payload, sig, s.cfg.StripeWebhookSecret)
	if err != nil {
		s.logger.Warn("webhook: invalid signature", "error", err, logField(r))
		respondErr(w, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	// ── 3. Idempotency: record the event, skip if already seen ────────────────
	// InsertStripeEvent uses ON CONFLICT DO NOTHING. When a duplicate event_id
	// is received Postgres returns zero rows, surfaced as sql.ErrNoRows — not
	// a nil struct. We treat that as an idempotent success and ack immediately
	// so Stripe stops retrying.
	_, err = s.q.InsertStripeEvent(r.Context(), stripeinternal.ToInsertParams(event))
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("webhook: duplicate event, skipping", "event_id", event.ID, logField(r))
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("insert stripe event: %w", err))
		return
	}

	// ── 4. Dispatch by event type ─────────────────────────────────────────────
	var handlerErr error

	switch event.Type {
	case "payment_intent.succeeded":
		handlerErr = s.onConsultationPaid(r, event)

	case "payment_intent.payment_failed", "payment_intent.canceled":
		handlerErr = s.onConsultationFailed(r, event)

	default:
		// Unknown event type — ack immediately so Stripe stops retrying.
		s.logger.Debug("webhook: unhandled event type", "type", event.Type, logField(r))
	}

	// ── 5. Mark event processed (or failed) ───────────────────────────────────
	if handlerErr != nil {
		s.logger.Error("webhook: handler error",
			"event_id", event.ID,
			"type", event.Type,
			"error", handlerErr,
			logField(r),
		)
		// Record the failure in stripe_events so operators can investigate.
		_, _ = s.q.MarkStripeEventFailed(r.Context(), stripeinternal.ToMarkFailedParams(event.ID, handlerErr))
		// Return 500 so Stripe retries delivery.
		respondErr(w, http.StatusInternalServerError, "webhook handler failed")
		return
	}

	_, _ = s.q.MarkStripeEventProcessed(r.Context(), event.ID)
	w.WriteHeader(http.StatusOK)
}

// ─── EVENT HANDLERS ───────────────────────────────────────────────────────────

func (s *Server) onConsultationPaid(r *http.Request, event stripeinternal.Event) error {
	piID, err := stripeinternal.ExtractPaymentIntentID(event)
	if err != nil {
		return fmt.Errorf("onConsultationPaid: extract PI id: %w", err)
	}

	// MarkConsultationPaid is an idempotent UPDATE keyed on the PI, so a
	// re-delivered event lands on an already-paid row without harm.
	assessment, err := s.store.MarkConsultationPaid(r.Context(), piID)
	if errors.Is(err, sql.ErrNoRows) {
		// A PI we never attached — most likely a payment from another product
		// sharing the Stripe account. Ack so Stripe stops retrying.
		s.logger.Warn("webhook: payment for unknown PI", "pi", piID, logField(r))
		return nil
	}
	if err != nil {
		return fmt.Errorf("onConsultationPaid: mark paid: %w", err)
	}

	// Send the booking receipt. Email failure must not fail the webhook: the
	// payment state is already recorded, and a 500 here would make Stripe
	// redeliver an event we cannot act on again.
	if assessment.EmailRecipient.Valid && assessment.EmailRecipient.String != "" {
		receiptErr := s.mailer.SendConsultationReceipt(r.Context(), email.ReceiptParams{
			To:          assessment.EmailRecipient.String,
			Service:     assessment.ConsultService.String,
			AmountCents: s.cfg.ConsultPriceCents,
			Currency:    "usd",
		})
		s.logAndIgnoreEmailErr(r, receiptErr, "send consultation receipt")
	}

	return nil
}

func (s *Server) onConsultationFailed(r *http.Request, event stripeinternal.Event) error {
	piID, err := stripeinternal.ExtractPaymentIntentID(event)
	if err != nil {
		return fmt.Errorf("onConsultationFailed: extract PI id: %w", err)
	}

	_, err = s.store.MarkConsultationFailed(r.Context(), piID)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("webhook: failed payment for unknown PI", "pi", piID, logField(r))
		return nil
	}
	if err != nil {
		return fmt.Errorf("onConsultationFailed: mark failed: %w", err)
	}

	return nil
}
