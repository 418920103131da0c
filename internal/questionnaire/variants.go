package questionnaire

import "fmt"

// Variant names. The active variant is chosen by configuration at startup
// (ACTIVE_QUESTIONNAIRE), not compiled in; all four coexist in memory and any
// of them can be requested explicitly by name.
const (
	VariantDefault  = "default"
	VariantDetailed = "detailed"
	VariantCheck    = "check"
	VariantLegacy   = "legacy"
)

// Metadata describes a variant for the selection endpoint.
type Metadata struct {
	Name        string
	Description string
	Steps       int
	Questions   int
}

var registry = map[string]Config{
	VariantDefault:  defaultConfig,
	VariantDetailed: detailedConfig,
	VariantCheck:    checkConfig,
	VariantLegacy:   legacyConfig,
}

// Variants returns the shipped variant names in a fixed order.
func Variants() []string {
	return []string{VariantDefault, VariantDetailed, VariantCheck, VariantLegacy}
}

// ByName returns the named variant's config. Returns an error for unknown
// names so callers can surface a 404 rather than silently falling back.
func ByName(variant string) (Config, error) {
	cfg, ok := registry[variant]
	if !ok {
		return Config{}, fmt.Errorf("questionnaire: unknown variant %q", variant)
	}
	return cfg, nil
}

// MetadataFor returns descriptive metadata for a variant. Step and question
// counts are derived from the config itself so they can never drift from the
// data.
func MetadataFor(variant string) (Metadata, error) {
	cfg, err := ByName(variant)
	if err != nil {
		return Metadata{}, err
	}
	m, ok := metadata[variant]
	if !ok {
		m = Metadata{Name: variant}
	}
	m.Steps = len(cfg.Steps)
	m.Questions = len(cfg.QuestionIDs())
	return m, nil
}

var metadata = map[string]Metadata{
	VariantDefault: {
		Name:        "Original Assessment",
		Description: "Comprehensive assessment covering infrastructure, data, operations, and compliance",
	},
	VariantDetailed: {
		Name:        "Detailed Security Assessment",
		Description: "In-depth evaluation of digital dependency, data value, exposure surface, governance, and recovery",
	},
	VariantCheck: {
		Name:        "Business-Friendly Assessment",
		Description: `Simplified assessment using practical "check" metaphors (Pulse, Target, Wallet, Culture, Recovery)`,
	},
	VariantLegacy: {
		Name:        "Quick Two-Phase Assessment",
		Description: "Short legacy form: digital footprint first, risk factors only when any digital presence exists",
	},
}

// ValidateAll validates every shipped variant. Called once from main; the
// process refuses to start on the first malformed config.
func ValidateAll() error {
	for _, name := range Variants() {
		cfg := registry[name]
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("questionnaire: variant %q: %w", name, err)
		}
	}
	return nil
}
