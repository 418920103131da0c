// Package api implements the HTTP layer for the CyberStats assessment
// backend. Handlers are methods on *Server. Each handler file is responsible
// for one resource group and only imports the dependencies it actually uses.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/globalcyberassociates/cyberstats-backend/internal/email"
	"github.com/globalcyberassociates/cyberstats-backend/internal/store"
	stripeinternal "github.com/globalcyberassociates/cyberstats-backend/internal/stripe"
	"github.com/globalcyberassociates/cyberstats-backend/internal/worker"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// BaseURL is used to construct the result page link in emails.
	// e.g. "https://cyberstats.globalcyber.example"
	BaseURL string

	// StripeWebhookSecret is the signing secret from the Stripe dashboard.
	StripeWebhookSecret string

	// Env is "production", "staging", or "development".
	Env string

	// ActiveVariant is the questionnaire served at GET /api/questionnaire and
	// used when a submission omits the variant field.
	ActiveVariant string

	// ConsultPriceCents is the fixed consultation price charged at checkout.
	ConsultPriceCents int64
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// q handles all single-query reads. Injected directly — no repo wrapper.
	q db.Querier

	// store handles multi-step atomic writes.
	store store.Recorder

	// stripe creates PaymentIntents and verifies webhook signatures.
	stripe stripeinternal.Client

	// worker enqueues summary-email deliveries after a submission.
	worker worker.Enqueuer

	// mailer sends transactional emails (consultation receipt).
	mailer email.Sender

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(
	q db.Querier,
	st store.Recorder,
	stripeClient stripeinternal.Client,
	enqueuer worker.Enqueuer,
	mailer email.Sender,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		q:      q,
		store:  st,
		stripe: stripeClient,
		worker: enqueuer,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ── API v1 ────────────────────────────────────────────────────────────────
	// Everything is anonymous: the assessment is free and accountless, and
	// submissions are idempotent on client_ref. The Stripe webhook verifies its
	// own signature inside the handler.
	r.Route("/api", func(r chi.Router) {

		// Questionnaire configs — read-only, served from memory.
		r.Get("/questionnaire", s.handleGetActiveQuestionnaire)
		r.Get("/questionnaire/{variant}", s.handleGetQuestionnaire)
		r.Get("/variants", s.handleListVariants)

		// Assessments.
		r.Post("/assessment", s.handleSubmitAssessment)
		r.Get("/assessment/{assessmentID}", s.handleGetAssessment)
		r.Post("/assessment/{assessmentID}/consultation", s.handleCreateConsultation)

		// Aggregate stats for the landing page counter.
		r.Get("/stats", s.handleGetStats)

		// Stripe webhook — signature verification inside handler.
		r.Post("/webhooks/stripe", s.handleStripeWebhook)
	})

	return r
}
