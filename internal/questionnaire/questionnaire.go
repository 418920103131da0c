// Package questionnaire declares the question sets that drive the scoring
// engine. A Config is pure data: the ordered steps, each question's category
// and signed weight, the per-firm-type category weights, and the risk
// thresholds. It is intentionally dependency-free: it imports nothing from
// internal/ and carries no presentation copy (see presentation.go for the
// display catalog joined by ID).
package questionnaire

import (
	"errors"
	"fmt"
	"math"
)

// ─── CATEGORIES & FIRM TYPES ─────────────────────────────────────────────────

// Category is a question's scoring bucket. Every question contributes to
// exactly one of the four category subtotals.
type Category string

const (
	CategoryInfrastructure Category = "infrastructure"
	CategoryData           Category = "data"
	CategoryOperations     Category = "operations"
	CategoryCompliance     Category = "compliance"
)

// Categories returns the four categories in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryInfrastructure,
		CategoryData,
		CategoryOperations,
		CategoryCompliance,
	}
}

// FirmType selects which category-weight row applies. String values match the
// values accepted on the wire and stored in the assessments table.
type FirmType string

const (
	FirmTypeIT    FirmType = "IT"
	FirmTypeNonIT FirmType = "Non-IT"
)

// Valid reports whether f is one of the two known firm types.
func (f FirmType) Valid() bool {
	return f == FirmTypeIT || f == FirmTypeNonIT
}

// ─── QUESTIONS & STEPS ───────────────────────────────────────────────────────

// Question is one yes/no item. Weight is signed: a positive weight adds to the
// category subtotal when the answer is yes (the condition itself is
// risk-increasing); a negative weight adds abs(Weight) when the answer is no
// (the condition's absence is risk-increasing, e.g. no backups, no MFA).
// A yes on a negative-weight question contributes zero.
type Question struct {
	ID       string
	Category Category
	Weight   int
}

// Step is a named, ordered group of questions presented together. Step order
// is presentation order only; scoring is set-based and order-independent.
type Step struct {
	ID        string
	Questions []Question
}

// ─── WEIGHTS & THRESHOLDS ────────────────────────────────────────────────────

// CategoryWeights is one firm type's fractional weighting of the four
// category subtotals. The four values must sum to 1.0.
type CategoryWeights struct {
	Infrastructure float64
	Data           float64
	Operations     float64
	Compliance     float64
}

// For returns the weight for a single category.
func (w CategoryWeights) For(c Category) float64 {
	switch c {
	case CategoryInfrastructure:
		return w.Infrastructure
	case CategoryData:
		return w.Data
	case CategoryOperations:
		return w.Operations
	case CategoryCompliance:
		return w.Compliance
	default:
		return 0
	}
}

// Sum returns the total of the four weights. Used by Validate to check the
// partition property.
func (w CategoryWeights) Sum() float64 {
	return w.Infrastructure + w.Data + w.Operations + w.Compliance
}

// ScoringWeights holds the category weights per firm type.
type ScoringWeights struct {
	IT    CategoryWeights
	NonIT CategoryWeights
}

// For maps a FirmType to its weight row. Unknown firm types fall back to
// NonIT; callers are expected to have validated the firm type already.
func (s ScoringWeights) For(f FirmType) CategoryWeights {
	if f == FirmTypeIT {
		return s.IT
	}
	return s.NonIT
}

// RiskThresholds are the two exclusive lower bounds partitioning the 0–100
// score range: score > Medium → High, score > Low → Medium, otherwise Low.
// A score exactly equal to a threshold falls into the lower tier.
type RiskThresholds struct {
	Low    int
	Medium int
}

// ─── CONFIG ──────────────────────────────────────────────────────────────────

// Config is one complete questionnaire variant. Configs are authored
// constants, validated once at process start, and immutable thereafter.
//
// PresenceGate is non-empty only on the legacy two-phase variant: it lists the
// question IDs whose answers establish any digital presence at all. When every
// gate answer is false the engine short-circuits to a fixed zero-score result
// without evaluating the weighted algorithm.
type Config struct {
	Variant        string
	Steps          []Step
	ScoringWeights ScoringWeights
	RiskThresholds RiskThresholds
	PresenceGate   []string
}

// QuestionIDs returns every question ID in step order. The result is the set
// of answer keys the variant collects.
func (c Config) QuestionIDs() []string {
	var ids []string
	for _, step := range c.Steps {
		for _, q := range step.Questions {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// IsLastStep reports whether stepID is the final step in the sequence. Used
// by presentation only; it carries no scoring meaning.
func (c Config) IsLastStep(stepID string) bool {
	if len(c.Steps) == 0 {
		return false
	}
	return c.Steps[len(c.Steps)-1].ID == stepID
}

// weightTolerance is the floating-point slack allowed when checking that a
// firm type's category weights sum to 1.0.
const weightTolerance = 1e-9

// Validate checks the config invariants the engine relies on. It is called
// for every shipped variant at process start; the server refuses to boot on
// the first malformed config, since silent mis-scoring is the alternative.
func (c Config) Validate() error {
	var errs []error

	if c.Variant == "" {
		errs = append(errs, errors.New("variant name must not be empty"))
	}
	if len(c.Steps) == 0 {
		errs = append(errs, errors.New("config must declare at least one step"))
	}

	seenSteps := make(map[string]bool)
	seenQuestions := make(map[string]bool)
	for _, step := range c.Steps {
		if step.ID == "" {
			errs = append(errs, errors.New("step ID must not be empty"))
		}
		if seenSteps[step.ID] {
			errs = append(errs, fmt.Errorf("duplicate step ID %q", step.ID))
		}
		seenSteps[step.ID] = true

		if len(step.Questions) == 0 {
			errs = append(errs, fmt.Errorf("step %q has no questions", step.ID))
		}
		for _, q := range step.Questions {
			if q.ID == "" {
				errs = append(errs, fmt.Errorf("step %q: question ID must not be empty", step.ID))
				continue
			}
			// Answers are looked up by a single flat key, so IDs must be
			// unique across all steps, not just within one.
			if seenQuestions[q.ID] {
				errs = append(errs, fmt.Errorf("duplicate question ID %q", q.ID))
			}
			seenQuestions[q.ID] = true

			if q.Weight == 0 {
				errs = append(errs, fmt.Errorf("question %q has zero weight", q.ID))
			}
			switch q.Category {
			case CategoryInfrastructure, CategoryData, CategoryOperations, CategoryCompliance:
			default:
				errs = append(errs, fmt.Errorf("question %q has unknown category %q", q.ID, q.Category))
			}
		}
	}

	for _, fw := range []struct {
		firm    FirmType
		weights CategoryWeights
	}{
		{FirmTypeIT, c.ScoringWeights.IT},
		{FirmTypeNonIT, c.ScoringWeights.NonIT},
	} {
		if sum := fw.weights.Sum(); math.Abs(sum-1.0) > weightTolerance {
			errs = append(errs, fmt.Errorf("%s category weights sum to %v, want 1.0", fw.firm, sum))
		}
	}

	t := c.RiskThresholds
	if t.Low < 0 || t.Medium > 100 || t.Low > t.Medium {
		errs = append(errs, fmt.Errorf("risk thresholds out of order: low=%d medium=%d (want 0 <= low <= medium <= 100)", t.Low, t.Medium))
	}

	for _, id := range c.PresenceGate {
		if !seenQuestions[id] {
			errs = append(errs, fmt.Errorf("presence gate references unknown question ID %q", id))
		}
	}

	return errors.Join(errs...)
}
