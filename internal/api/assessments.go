package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/globalcyberassociates/cyberstats-backend/internal/questionnaire"
	"github.com/globalcyberassociates/cyberstats-backend/internal/scoring"
	"github.com/globalcyberassociates/cyberstats-backend/internal/store"
	"github.com/google/uuid"
)

// ─── POST /api/assessment ─────────────────────────────────────────────────────

type submitAssessmentRequest struct {
	// ClientRef is a client-generated opaque token identifying this browser
	// session's submission. Retries with the same ref return the original
	// result instead of scoring (and counting) again.
	ClientRef string `json:"client_ref"`

	// Variant selects the questionnaire. Empty means the active variant.
	Variant string `json:"variant"`

	FirmType string          `json:"firm_type"`
	Answers  map[string]bool `json:"answers"`

	// Email is optional. When present, a summary email is queued for delivery.
	Email string `json:"email"`
}

type assessmentResponse struct {
	ID               string         `json:"id"`
	AssessmentNumber int64          `json:"assessment_number"`
	Variant          string         `json:"variant"`
	FirmType         string         `json:"firm_type"`
	Result           scoring.Result `json:"result"`
	CreatedAt        time.Time      `json:"created_at"`
	// Replayed is true when the client_ref was seen before and the stored
	// result is being returned instead of a fresh scoring run.
	Replayed bool `json:"replayed,omitempty"`
}

// handleSubmitAssessment scores a completed questionnaire and persists the
// result. Scoring is synchronous (pure in-memory arithmetic); only the summary
// email is deferred to the background worker.
func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	var req submitAssessmentRequest
	if !decode(w, r, &req) {
		return
	}

	if req.ClientRef == "" {
		respondErr(w, http.StatusBadRequest, "client_ref is required")
		return
	}
	firmType := questionnaire.FirmType(req.FirmType)
	if !firmType.Valid() {
		respondErr(w, http.StatusBadRequest, `firm_type must be "IT" or "Non-IT"`)
		return
	}

	variant := req.Variant
	if variant == "" {
		variant = s.cfg.ActiveVariant
	}
	cfg, err := questionnaire.ByName(variant)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "unknown questionnaire variant")
		return
	}

	result := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: firmType,
		Answers:  req.Answers,
	})

	// Snapshot both sides of the computation. The stored result_json is what
	// the result page and the summary email render, so a later change to the
	// question configs never rewrites history.
	responsesJSON, err := json.Marshal(map[string]any{
		"firm_type": req.FirmType,
		"answers":   req.Answers,
	})
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("marshal responses: %w", err))
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("marshal result: %w", err))
		return
	}

	assessment, err := s.store.RecordAssessment(r.Context(), store.RecordAssessmentParams{
		ClientRef:     req.ClientRef,
		Variant:       variant,
		FirmType:      db.FirmType(firmType),
		Score:         int32(result.Score),
		RiskLevel:     db.RiskLevel(result.RiskLevel),
		ResponsesJSON: responsesJSON,
		ResultJSON:    resultJSON,
		Email:         req.Email,
	})

	if errors.Is(err, store.ErrAssessmentAlreadyRecorded) {
		// Browser retry: return the originally stored row. The fresh scoring
		// run above is discarded — the first submission won.
		resp, renderErr := renderAssessment(assessment)
		if renderErr != nil {
			s.respondInternalErr(w, r, renderErr)
			return
		}
		resp.Replayed = true
		respond(w, http.StatusOK, resp)
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("record assessment: %w", err))
		return
	}

	// Hand the summary delivery to the worker. Enqueue failure is not a
	// request failure: the poller picks the row up from its pending status.
	if req.Email != "" {
		if err := s.worker.Enqueue(r.Context(), assessment.ID); err != nil {
			s.logger.Warn("submit: enqueue failed, will be picked up by poller",
				"assessment_id", assessment.ID,
				"error", err,
				logField(r),
			)
		}
	}

	resp, renderErr := renderAssessment(assessment)
	if renderErr != nil {
		s.respondInternalErr(w, r, renderErr)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// ─── GET /api/assessment/{assessmentID} ───────────────────────────────────────

// handleGetAssessment serves a stored result by its opaque UUID. There is no
// auth: the UUID itself is the access token, the same model as an unlisted
// link.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID, err := uuid.Parse(chi.URLParam(r, "assessmentID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	assessment, err := s.q.GetAssessmentByID(r.Context(), assessmentID)
	if errors.Is(err, sql.ErrNoRows) {
		respondErr(w, http.StatusNotFound, "assessment not found")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get assessment: %w", err))
		return
	}

	resp, err := renderAssessment(assessment)
	if err != nil {
		s.respondInternalErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

// renderAssessment maps a row to the wire shape, rehydrating the stored result
// snapshot.
func renderAssessment(a db.Assessment) (assessmentResponse, error) {
	var result scoring.Result
	if a.ResultJson.Valid {
		if err := json.Unmarshal(a.ResultJson.RawMessage, &result); err != nil {
			return assessmentResponse{}, fmt.Errorf("unmarshal result snapshot for %s: %w", a.ID, err)
		}
	}

	return assessmentResponse{
		ID:               a.ID.String(),
		AssessmentNumber: a.AssessmentNumber.Int64,
		Variant:          a.Variant,
		FirmType:         string(a.FirmType),
		Result:           result,
		CreatedAt:        a.CreatedAt,
	}, nil
}

// ─── GET /api/stats ───────────────────────────────────────────────────────────

type statsResponse struct {
	AssessmentsCompleted int64 `json:"assessments_completed"`
}

// handleGetStats serves the public completion counter shown on the landing
// page ("join N businesses who checked their risk").
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.q.GetCounter(r.Context(), store.CounterAssessmentsCompleted)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get counter: %w", err))
		return
	}
	respond(w, http.StatusOK, statsResponse{AssessmentsCompleted: count})
}
