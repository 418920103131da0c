package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/globalcyberassociates/cyberstats-backend/internal/store"
	stripeinternal "github.com/globalcyberassociates/cyberstats-backend/internal/stripe"
	"github.com/google/uuid"
)

// ─── POST /api/assessment/{assessmentID}/consultation ─────────────────────────

type createConsultationRequest struct {
	// Service is the recommended service being booked, e.g. "Security Posture
	// Assessment". Free text from the recommendation list; informational only.
	Service string `json:"service"`
	Email   string `json:"email"`
}

type createConsultationResponse struct {
	// ClientSecret is the Stripe PaymentIntent client_secret. The browser
	// passes this to Stripe.js to render the payment UI and confirm the charge.
	ClientSecret string `json:"client_secret"`
	// IsExisting is true when the assessment already had a PaymentIntent (i.e.
	// the user opened checkout twice). The browser should use the returned
	// secret normally — the PI is still valid and confirmable.
	IsExisting bool `json:"is_existing,omitempty"`
}

// handleCreateConsultation creates a Stripe PaymentIntent for a consultation
// booking tied to an assessment and returns the client_secret to the browser.
//
// Race-safety: two concurrent calls for the same assessment are handled by
// store.AttachConsultationIntent using a serializable transaction. The second
// call receives ErrConsultationIntentAlreadyAttached and returns the existing
// client_secret rather than creating a second PI.
func (s *Server) handleCreateConsultation(w http.ResponseWriter, r *http.Request) {
	assessmentID, err := uuid.Parse(chi.URLParam(r, "assessmentID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	var req createConsultationRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Email == "" {
		respondErr(w, http.StatusBadRequest, "email is required")
		return
	}

	// ── Fast path: assessment already has a PI ────────────────────────────────
	// Check before calling Stripe to avoid creating an unnecessary PI object.
	// The store transaction is the authoritative guard; this is just an
	// optimisation to skip the Stripe API call in the common retry case.
	existing, err := s.q.GetAssessmentByID(r.Context(), assessmentID)
	if errors.Is(err, sql.ErrNoRows) {
		respondErr(w, http.StatusNotFound, "assessment not found")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get assessment: %w", err))
		return
	}

	if existing.ConsultPaymentIntent.Valid && existing.ConsultPaymentIntent.String != "" {
		clientSecret, err := s.stripe.GetClientSecret(r.Context(), existing.ConsultPaymentIntent.String)
		if err != nil {
			// PI exists in our DB but Stripe can't find it — unusual.
			// Fall through to create a new one.
			s.logger.Warn("consultation: existing PI not found in Stripe, creating new",
				"pi", existing.ConsultPaymentIntent.String,
				"error", err,
				logField(r),
			)
		} else {
			respond(w, http.StatusOK, createConsultationResponse{
				ClientSecret: clientSecret,
				IsExisting:   true,
			})
			return
		}
	}

	// ── Create a new Stripe PaymentIntent ─────────────────────────────────────
	pi, err := s.stripe.CreatePaymentIntent(r.Context(), stripeinternal.CreatePaymentIntentParams{
		AmountCents: s.cfg.ConsultPriceCents,
		Currency:    "usd",
		Email:       req.Email,
		Metadata: map[string]string{
			"assessment_id": assessmentID.String(),
			"service":       req.Service,
		},
	})
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("create payment intent: %w", err))
		return
	}

	// ── Atomically attach the PI to the assessment ────────────────────────────
	_, err = s.store.AttachConsultationIntent(r.Context(), store.AttachConsultationIntentParams{
		AssessmentID:  assessmentID,
		Service:       req.Service,
		PaymentIntent: pi.ID,
	})

	if errors.Is(err, store.ErrConsultationIntentAlreadyAttached) {
		// Lost the race — another request beat us to it. Fetch the winning PI's
		// client_secret and return it. The PI we just created will expire unused
		// in Stripe after 24h — an acceptable cost of this rare race.
		s.logger.Info("consultation: lost race, returning existing PI",
			"assessment_id", assessmentID,
			logField(r),
		)
		winner, dbErr := s.q.GetAssessmentByID(r.Context(), assessmentID)
		if dbErr != nil {
			s.respondInternalErr(w, r, fmt.Errorf("get assessment after race: %w", dbErr))
			return
		}
		clientSecret, stripeErr := s.stripe.GetClientSecret(r.Context(), winner.ConsultPaymentIntent.String)
		if stripeErr != nil {
			s.respondInternalErr(w, r, fmt.Errorf("get client secret after race: %w", stripeErr))
			return
		}
		respond(w, http.StatusOK, createConsultationResponse{
			ClientSecret: clientSecret,
			IsExisting:   true,
		})
		return
	}

	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("attach consultation intent: %w", err))
		return
	}

	respond(w, http.StatusOK, createConsultationResponse{
		ClientSecret: pi.ClientSecret,
	})
}
