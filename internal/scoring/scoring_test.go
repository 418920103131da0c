package scoring_test

import (
	"reflect"
	"testing"

	"github.com/globalcyberassociates/cyberstats-backend/internal/questionnaire"
	"github.com/globalcyberassociates/cyberstats-backend/internal/scoring"
)

func mustConfig(t *testing.T, variant string) questionnaire.Config {
	t.Helper()
	cfg, err := questionnaire.ByName(variant)
	if err != nil {
		t.Fatalf("ByName(%q): %v", variant, err)
	}
	return cfg
}

// answersWhere returns a full answer map for cfg with every answer set to v.
func answersWhere(cfg questionnaire.Config, v bool) map[string]bool {
	out := make(map[string]bool)
	for _, id := range cfg.QuestionIDs() {
		out[id] = v
	}
	return out
}

// ─── Core algorithm ──────────────────────────────────────────────────────────

func TestComputeResult_AllFalseITFirm(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantDefault)
	got := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeIT,
		Answers:  answersWhere(cfg, false),
	})

	// Missing insurance and training each add 5 to compliance, so the floor
	// for the default variant is 10 * 0.20 = 2, not zero.
	if got.Score != 2 {
		t.Errorf("score: got %d, want 2", got.Score)
	}
	if got.RiskLevel != scoring.LevelLow {
		t.Errorf("risk level: got %s, want Low", got.RiskLevel)
	}
	wantBreakdown := scoring.Breakdown{Exposure: 0, DataSensitivity: 0, Regulatory: 10, Operational: 0}
	if got.Breakdown != wantBreakdown {
		t.Errorf("breakdown: got %+v, want %+v", got.Breakdown, wantBreakdown)
	}
	wantRecs := []scoring.Recommendation{
		{Service: "Employee Security Training", Description: "Phishing awareness and safe practices.", Priority: scoring.PriorityRecommended},
	}
	if !reflect.DeepEqual(got.Recommendations, wantRecs) {
		t.Errorf("recommendations: got %+v, want %+v", got.Recommendations, wantRecs)
	}
}

func TestComputeResult_MaximalITFirm(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantDefault)
	answers := answersWhere(cfg, true)

	got := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeIT,
		Answers:  answers,
	})

	// 100*0.30 + 100*0.25 + 100*0.25 + 90*0.20 = 98. Insurance and training
	// are in place, so compliance stops at 90.
	if got.Score != 98 {
		t.Errorf("score: got %d, want 98", got.Score)
	}
	if got.RiskLevel != scoring.LevelHigh {
		t.Errorf("risk level: got %s, want High", got.RiskLevel)
	}
	wantBreakdown := scoring.Breakdown{Exposure: 100, DataSensitivity: 100, Regulatory: 90, Operational: 100}
	if got.Breakdown != wantBreakdown {
		t.Errorf("breakdown: got %+v, want %+v", got.Breakdown, wantBreakdown)
	}

	wantServices := []string{
		"VAPT (Vulnerability Assessment)",
		"24/7 SOC Monitoring",
		"Compliance Audit",
		"Data Protection Impact Assessment",
		"Incident Response Planning",
	}
	if len(got.Recommendations) != len(wantServices) {
		t.Fatalf("recommendations: got %d, want %d: %+v", len(got.Recommendations), len(wantServices), got.Recommendations)
	}
	for i, svc := range wantServices {
		if got.Recommendations[i].Service != svc {
			t.Errorf("recommendation %d: got %q, want %q", i, got.Recommendations[i].Service, svc)
		}
	}
}

func TestComputeResult_Determinism(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantDetailed)
	r := scoring.Responses{
		FirmType: questionnaire.FirmTypeNonIT,
		Answers: map[string]bool{
			"reliesOnDigitalChannels": true,
			"storesBankDetails":       true,
			"mfaEnabled":              true,
		},
	}
	a := scoring.ComputeResult(cfg, r)
	b := scoring.ComputeResult(cfg, r)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same input produced different results:\n%+v\n%+v", a, b)
	}
}

func TestComputeResult_ScoreBounds(t *testing.T) {
	for _, variant := range questionnaire.Variants() {
		cfg := mustConfig(t, variant)
		for _, firm := range []questionnaire.FirmType{questionnaire.FirmTypeIT, questionnaire.FirmTypeNonIT} {
			for _, all := range []bool{true, false} {
				got := scoring.ComputeResult(cfg, scoring.Responses{
					FirmType: firm,
					Answers:  answersWhere(cfg, all),
				})
				if got.Score < 0 || got.Score > 100 {
					t.Errorf("%s/%s all=%v: score %d out of bounds", variant, firm, all, got.Score)
				}
			}
		}
	}
}

func TestComputeResult_Monotonicity(t *testing.T) {
	// Flipping a positive-weight answer to yes, or a negative-weight answer
	// to no, must never lower the score.
	for _, variant := range []string{questionnaire.VariantDefault, questionnaire.VariantDetailed, questionnaire.VariantCheck} {
		cfg := mustConfig(t, variant)
		for _, step := range cfg.Steps {
			for _, q := range step.Questions {
				base := answersWhere(cfg, false)
				for _, id := range cfg.QuestionIDs() {
					base[id] = id < q.ID // arbitrary but deterministic mix
				}

				lower := copyAnswers(base)
				higher := copyAnswers(base)
				if q.Weight >= 0 {
					lower[q.ID] = false
					higher[q.ID] = true
				} else {
					lower[q.ID] = true
					higher[q.ID] = false
				}

				lo := scoring.ComputeResult(cfg, scoring.Responses{FirmType: questionnaire.FirmTypeIT, Answers: lower})
				hi := scoring.ComputeResult(cfg, scoring.Responses{FirmType: questionnaire.FirmTypeIT, Answers: higher})
				if hi.Score < lo.Score {
					t.Errorf("%s/%s: score decreased from %d to %d", variant, q.ID, lo.Score, hi.Score)
				}
			}
		}
	}
}

func copyAnswers(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func TestComputeResult_MissingAnswersAreNo(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantDefault)
	explicit := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeNonIT,
		Answers:  answersWhere(cfg, false),
	})
	missing := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeNonIT,
	})
	if !reflect.DeepEqual(explicit, missing) {
		t.Errorf("nil answer map should equal explicit all-no:\n%+v\n%+v", explicit, missing)
	}
}

func TestComputeResult_UnknownFirmTypeUsesNonITWeights(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantDefault)
	answers := answersWhere(cfg, true)

	unknown := scoring.ComputeResult(cfg, scoring.Responses{FirmType: "Consultancy", Answers: answers})
	nonIT := scoring.ComputeResult(cfg, scoring.Responses{FirmType: questionnaire.FirmTypeNonIT, Answers: answers})
	if unknown.Score != nonIT.Score {
		t.Errorf("unknown firm type scored %d, Non-IT scored %d", unknown.Score, nonIT.Score)
	}
}

// ─── Tier boundaries ─────────────────────────────────────────────────────────

// boundaryConfig scores exactly the weight of its single question: one
// category carries the full firm weighting.
func boundaryConfig(weight int) questionnaire.Config {
	full := questionnaire.CategoryWeights{Infrastructure: 1.0}
	return questionnaire.Config{
		Variant: "boundary",
		Steps: []questionnaire.Step{
			{ID: "only", Questions: []questionnaire.Question{
				{ID: "q", Category: questionnaire.CategoryInfrastructure, Weight: weight},
			}},
		},
		ScoringWeights: questionnaire.ScoringWeights{IT: full, NonIT: full},
		RiskThresholds: questionnaire.RiskThresholds{Low: 35, Medium: 70},
	}
}

func TestComputeResult_TierBoundariesAreExclusive(t *testing.T) {
	tests := []struct {
		weight int
		want   scoring.RiskLevel
	}{
		{35, scoring.LevelLow},    // exactly on the low threshold stays Low
		{36, scoring.LevelMedium},
		{70, scoring.LevelMedium}, // exactly on the medium threshold stays Medium
		{71, scoring.LevelHigh},
	}
	for _, tt := range tests {
		got := scoring.ComputeResult(boundaryConfig(tt.weight), scoring.Responses{
			FirmType: questionnaire.FirmTypeIT,
			Answers:  map[string]bool{"q": true},
		})
		if got.Score != tt.weight {
			t.Errorf("weight %d: score %d", tt.weight, got.Score)
		}
		if got.RiskLevel != tt.want {
			t.Errorf("score %d: got %s, want %s", tt.weight, got.RiskLevel, tt.want)
		}
	}
}

func TestComputeResult_ClampsOverflow(t *testing.T) {
	got := scoring.ComputeResult(boundaryConfig(140), scoring.Responses{
		FirmType: questionnaire.FirmTypeIT,
		Answers:  map[string]bool{"q": true},
	})
	if got.Score != 100 {
		t.Errorf("score: got %d, want 100", got.Score)
	}
	// The breakdown keeps the raw subtotal; only the score is clamped.
	if got.Breakdown.Exposure != 140 {
		t.Errorf("exposure subtotal: got %d, want 140", got.Breakdown.Exposure)
	}
}

func TestComputeResult_RoundsHalfUp(t *testing.T) {
	// 21 * 0.5 = 10.5, which must round up to 11. The 0.5 weight is exact in
	// binary, so the half-way case is not disturbed by float noise.
	cfg := boundaryConfig(21)
	cfg.ScoringWeights.IT = questionnaire.CategoryWeights{Infrastructure: 0.5, Data: 0.25, Operations: 0.15, Compliance: 0.10}
	got := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeIT,
		Answers:  map[string]bool{"q": true},
	})
	if got.Score != 11 {
		t.Errorf("score: got %d, want 11", got.Score)
	}
}

// ─── Presence gate ───────────────────────────────────────────────────────────

func TestComputeResult_ZeroPresenceShortCircuit(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantLegacy)

	// All gate answers false; the remaining answers are deliberately noisy
	// and must not matter.
	got := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeIT,
		Answers: map[string]bool{
			"usesEmail":           false,
			"usesDigitalPayments": false,
			"hasWebsiteOrApp":     false,
			"hasPublicIPs":        true,
			"storesCustomerData":  true,
			"regulatoryMandates":  true,
			"criticalDowntime":    true,
		},
	})

	want := scoring.Result{
		Score:     0,
		RiskLevel: scoring.LevelLow,
		Recommendations: []scoring.Recommendation{
			{
				Service:     "Basic Cyber Hygiene",
				Description: "Maintain good security practices as you grow your digital presence.",
				Priority:    scoring.PriorityRecommended,
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestComputeResult_AnyPresenceRunsFullAlgorithm(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantLegacy)
	got := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeNonIT,
		Answers: map[string]bool{
			"usesEmail":          true,
			"storesCustomerData": true,
			"regulatoryMandates": true,
		},
	})
	if got.Score == 0 {
		t.Error("expected a nonzero weighted score when a gate answer is yes")
	}
	for _, rec := range got.Recommendations {
		if rec.Service == "Basic Cyber Hygiene" {
			t.Error("zero-presence recommendation leaked into the weighted path")
		}
	}
}

func TestComputeResult_GateIgnoredForVariantsWithoutOne(t *testing.T) {
	cfg := mustConfig(t, questionnaire.VariantDefault)
	got := scoring.ComputeResult(cfg, scoring.Responses{
		FirmType: questionnaire.FirmTypeIT,
		Answers:  answersWhere(cfg, false),
	})
	for _, rec := range got.Recommendations {
		if rec.Service == "Basic Cyber Hygiene" {
			t.Error("variants without a presence gate must never short-circuit")
		}
	}
}

// ─── Recommendations ─────────────────────────────────────────────────────────

func TestRecommend_TriggerOrderIsFixed(t *testing.T) {
	// Every trigger firing at once, on a Medium result: base set first, then
	// the triggers in declaration order.
	r := scoring.Responses{
		FirmType: questionnaire.FirmTypeIT,
		Answers: map[string]bool{
			"hasRegulatoryCompliance": true,
			"handlesHealthData":       true,
			"hadPreviousIncidents":    true,
			"hasCyberInsurance":       false,
		},
	}
	recs := scoring.Recommend(scoring.LevelMedium, r)

	want := []string{
		"Security Posture Assessment",
		"Endpoint Protection",
		"Compliance Audit",
		"Data Protection Impact Assessment",
		"Incident Response Planning",
		"Cyber Insurance Consultation",
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d recommendations, want %d: %+v", len(recs), len(want), recs)
	}
	for i, svc := range want {
		if recs[i].Service != svc {
			t.Errorf("recommendation %d: got %q, want %q", i, recs[i].Service, svc)
		}
	}
}

func TestRecommend_InsuranceTriggerSkippedAtLowRisk(t *testing.T) {
	r := scoring.Responses{Answers: map[string]bool{"hasCyberInsurance": false}}

	for _, rec := range scoring.Recommend(scoring.LevelLow, r) {
		if rec.Service == "Cyber Insurance Consultation" {
			t.Error("insurance consultation must not fire for Low risk")
		}
	}
	found := false
	for _, rec := range scoring.Recommend(scoring.LevelHigh, r) {
		if rec.Service == "Cyber Insurance Consultation" {
			found = true
			if rec.Priority != scoring.PriorityOptional {
				t.Errorf("priority: got %s, want Optional", rec.Priority)
			}
		}
	}
	if !found {
		t.Error("insurance consultation should fire for High risk without coverage")
	}
}

func TestRecommend_ReturnsFreshSlice(t *testing.T) {
	r := scoring.Responses{Answers: map[string]bool{}}
	a := scoring.Recommend(scoring.LevelHigh, r)
	a[0].Service = "mutated"

	b := scoring.Recommend(scoring.LevelHigh, r)
	if b[0].Service == "mutated" {
		t.Error("Recommend must not share backing storage between calls")
	}
}
