// Package scoring turns a set of yes/no answers into a 0-100 risk score, a
// risk level, a per-category breakdown, and an ordered list of service
// recommendations. It depends only on internal/questionnaire and is fully
// deterministic: same config + same responses = same Result.
package scoring

import "github.com/globalcyberassociates/cyberstats-backend/internal/questionnaire"

// ─── TYPES ───────────────────────────────────────────────────────────────────

// RiskLevel is the three-bucket classification. String values deliberately
// match the Postgres enum so they can be cast to db.RiskLevel without
// conversion.
type RiskLevel string

const (
	LevelLow    RiskLevel = "Low"
	LevelMedium RiskLevel = "Medium"
	LevelHigh   RiskLevel = "High"
)

// Priority ranks how urgently a recommended service should be taken up.
type Priority string

const (
	PriorityCritical    Priority = "Critical"
	PriorityRecommended Priority = "Recommended"
	PriorityOptional    Priority = "Optional"
)

// Recommendation is one suggested security service.
type Recommendation struct {
	Service     string   `json:"service"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// Breakdown exposes the raw per-category subtotals before firm-type weighting
// is applied. The JSON field names are the client-facing labels, not the
// internal category names: infrastructure surfaces as exposure, data as
// dataSensitivity, compliance as regulatory, operations as operational.
type Breakdown struct {
	Exposure        int `json:"exposure"`
	DataSensitivity int `json:"dataSensitivity"`
	Regulatory      int `json:"regulatory"`
	Operational     int `json:"operational"`
}

// Responses is the scoring input: a firm type and the answer map. A question
// absent from Answers is treated as answered "no".
type Responses struct {
	FirmType questionnaire.FirmType
	Answers  map[string]bool
}

// Answer returns the answer for a question ID, defaulting to false.
func (r Responses) Answer(id string) bool {
	return r.Answers[id]
}

// Result is the complete scoring output.
type Result struct {
	Score           int              `json:"score"`
	RiskLevel       RiskLevel        `json:"riskLevel"`
	Breakdown       Breakdown        `json:"breakdown"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ─── ENGINE ──────────────────────────────────────────────────────────────────

// ComputeResult runs the weighted scoring algorithm for one submission.
//
// Each category accumulates the contributions of its questions: a yes on a
// positive-weight question adds the weight, a no on a negative-weight question
// adds abs(weight). The raw subtotals are multiplied by the firm type's
// category weights, summed, rounded half-up, and clamped to 100. The
// breakdown reports the subtotals as accumulated, before weighting.
//
// If cfg declares a presence gate and every gate answer is no, the weighted
// algorithm is skipped entirely and the fixed zero-presence result is
// returned.
func ComputeResult(cfg questionnaire.Config, r Responses) Result {
	if gated(cfg, r) {
		return zeroPresenceResult()
	}

	raw := make(map[questionnaire.Category]int, 4)
	for _, step := range cfg.Steps {
		for _, q := range step.Questions {
			raw[q.Category] += contribution(q, r.Answer(q.ID))
		}
	}

	weights := cfg.ScoringWeights.For(r.FirmType)
	var total float64
	for _, cat := range questionnaire.Categories() {
		total += float64(raw[cat]) * weights.For(cat)
	}

	// Round half-up, then clamp. Subtotals above 100 in a single category can
	// push the weighted sum past the scale; the clamp absorbs that.
	score := int(total + 0.5)
	if score > 100 {
		score = 100
	}

	level := classify(score, cfg.RiskThresholds)

	return Result{
		Score:     score,
		RiskLevel: level,
		Breakdown: Breakdown{
			Exposure:        raw[questionnaire.CategoryInfrastructure],
			DataSensitivity: raw[questionnaire.CategoryData],
			Regulatory:      raw[questionnaire.CategoryCompliance],
			Operational:     raw[questionnaire.CategoryOperations],
		},
		Recommendations: Recommend(level, r),
	}
}

// contribution returns the points one question adds to its category subtotal.
func contribution(q questionnaire.Question, answeredYes bool) int {
	if q.Weight >= 0 {
		if answeredYes {
			return q.Weight
		}
		return 0
	}
	// Negative weight: the absence of the control is the risk.
	if answeredYes {
		return 0
	}
	return -q.Weight
}

// classify maps a final score to a risk level. Thresholds are exclusive lower
// bounds: a score exactly on a threshold stays in the lower tier.
func classify(score int, t questionnaire.RiskThresholds) RiskLevel {
	switch {
	case score > t.Medium:
		return LevelHigh
	case score > t.Low:
		return LevelMedium
	default:
		return LevelLow
	}
}

// gated reports whether the presence-gate short circuit applies: the config
// declares gate questions and every one of them was answered no.
func gated(cfg questionnaire.Config, r Responses) bool {
	if len(cfg.PresenceGate) == 0 {
		return false
	}
	for _, id := range cfg.PresenceGate {
		if r.Answer(id) {
			return false
		}
	}
	return true
}

// zeroPresenceResult is the fixed output for a business with no digital
// footprint: nothing to attack, nothing to score.
func zeroPresenceResult() Result {
	return Result{
		Score:     0,
		RiskLevel: LevelLow,
		Recommendations: []Recommendation{
			{
				Service:     "Basic Cyber Hygiene",
				Description: "Maintain good security practices as you grow your digital presence.",
				Priority:    PriorityRecommended,
			},
		},
	}
}
