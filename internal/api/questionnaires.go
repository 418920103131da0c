package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/globalcyberassociates/cyberstats-backend/internal/questionnaire"
)

// ─── WIRE SHAPES ──────────────────────────────────────────────────────────────

// questionView joins a question's scoring schema with its display copy. Weight
// and category are included so the frontend can preview the impact of an
// answer; scoring itself always happens server-side.
type questionView struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Weight      int    `json:"weight"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type stepView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsLastStep  bool           `json:"is_last_step"`
	Questions   []questionView `json:"questions"`
}

type questionnaireView struct {
	Variant      string     `json:"variant"`
	Steps        []stepView `json:"steps"`
	PresenceGate []string   `json:"presence_gate,omitempty"`
}

type variantView struct {
	Variant     string `json:"variant"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
	Questions   int    `json:"questions"`
	Active      bool   `json:"active"`
}

// renderQuestionnaire joins the config with the display catalog. Questions
// without copy render with empty strings rather than being dropped: the
// scoring schema is authoritative for which questions exist.
func renderQuestionnaire(cfg questionnaire.Config) questionnaireView {
	copyCatalog, _ := questionnaire.CopyFor(cfg.Variant)

	steps := make([]stepView, 0, len(cfg.Steps))
	for _, step := range cfg.Steps {
		sc := copyCatalog.Steps[step.ID]
		sv := stepView{
			ID:          step.ID,
			Title:       sc.Title,
			Description: sc.Description,
			IsLastStep:  cfg.IsLastStep(step.ID),
			Questions:   make([]questionView, 0, len(step.Questions)),
		}
		for _, q := range step.Questions {
			qc := copyCatalog.Questions[q.ID]
			sv.Questions = append(sv.Questions, questionView{
				ID:          q.ID,
				Category:    string(q.Category),
				Weight:      q.Weight,
				Title:       qc.Title,
				Description: qc.Description,
				Icon:        qc.Icon,
			})
		}
		steps = append(steps, sv)
	}

	return questionnaireView{
		Variant:      cfg.Variant,
		Steps:        steps,
		PresenceGate: cfg.PresenceGate,
	}
}

// ─── GET /api/questionnaire ───────────────────────────────────────────────────

// handleGetActiveQuestionnaire serves the variant selected by configuration.
// The active variant was validated at startup, so a lookup failure here is a
// programming error, not a client error.
func (s *Server) handleGetActiveQuestionnaire(w http.ResponseWriter, r *http.Request) {
	cfg, err := questionnaire.ByName(s.cfg.ActiveVariant)
	if err != nil {
		s.respondInternalErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, renderQuestionnaire(cfg))
}

// ─── GET /api/questionnaire/{variant} ─────────────────────────────────────────

func (s *Server) handleGetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	cfg, err := questionnaire.ByName(variant)
	if err != nil {
		respondErr(w, http.StatusNotFound, "unknown questionnaire variant")
		return
	}
	respond(w, http.StatusOK, renderQuestionnaire(cfg))
}

// ─── GET /api/variants ────────────────────────────────────────────────────────

func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	names := questionnaire.Variants()
	views := make([]variantView, 0, len(names))

	for _, name := range names {
		m, err := questionnaire.MetadataFor(name)
		if err != nil {
			s.respondInternalErr(w, r, err)
			return
		}
		views = append(views, variantView{
			Variant:     name,
			Name:        m.Name,
			Description: m.Description,
			Steps:       m.Steps,
			Questions:   m.Questions,
			Active:      name == s.cfg.ActiveVariant,
		})
	}

	respond(w, http.StatusOK, map[string]any{"variants": views})
}
