package questionnaire

// Presentation copy lives apart from the scoring schema so the engine never
// depends on display concerns. The API layer joins copy to questions by ID
// when serving a questionnaire; a missing entry renders as empty strings
// rather than failing.

// StepCopy is the display text for one step.
type StepCopy struct {
	Title       string
	Description string
}

// QuestionCopy is the display text for one question. Icon is a symbolic name
// the frontend maps to its icon set ("server", "globe", "lock", "shield",
// "alert-triangle", "briefcase", "check-circle", "wifi", "database", "users",
// "dollar-sign", "heart").
type QuestionCopy struct {
	Title       string
	Description string
	Icon        string
}

// Copy is the full display catalog for one variant.
type Copy struct {
	Steps     map[string]StepCopy
	Questions map[string]QuestionCopy
}

// CopyFor returns the display catalog for a variant. The second return is
// false for unknown variants.
func CopyFor(variant string) (Copy, bool) {
	c, ok := copyCatalog[variant]
	return c, ok
}

var copyCatalog = map[string]Copy{
	VariantDefault:  defaultCopy,
	VariantDetailed: detailedCopy,
	VariantCheck:    checkCopy,
	VariantLegacy:   legacyCopy,
}
