package scoring

// Recommendation rules. The base set is keyed by risk level; the triggers are
// evaluated against the raw answers in a fixed order, independent of the
// category subtotals. The rule list can legitimately produce the same service
// twice; duplicates are kept as-is rather than second-guessing the rules.

// tierRecommendations is the base set appended first, keyed by risk level.
var tierRecommendations = map[RiskLevel][]Recommendation{
	LevelHigh: {
		{
			Service:     "VAPT (Vulnerability Assessment)",
			Description: "Comprehensive testing of your exposed assets.",
			Priority:    PriorityCritical,
		},
		{
			Service:     "24/7 SOC Monitoring",
			Description: "Real-time threat detection and response.",
			Priority:    PriorityRecommended,
		},
	},
	LevelMedium: {
		{
			Service:     "Security Posture Assessment",
			Description: "Identify vulnerabilities and security gaps.",
			Priority:    PriorityCritical,
		},
		{
			Service:     "Endpoint Protection",
			Description: "Antivirus and firewall for all devices.",
			Priority:    PriorityRecommended,
		},
	},
	LevelLow: {
		{
			Service:     "Employee Security Training",
			Description: "Phishing awareness and safe practices.",
			Priority:    PriorityRecommended,
		},
	},
}

// triggerRule adds one recommendation when its condition holds for the raw
// answers. Rules fire in declaration order.
type triggerRule struct {
	fires func(level RiskLevel, r Responses) bool
	rec   Recommendation
}

var triggerRules = []triggerRule{
	{
		fires: func(_ RiskLevel, r Responses) bool {
			return r.Answer("hasRegulatoryCompliance") || r.Answer("hasIndustryRegulations")
		},
		rec: Recommendation{
			Service:     "Compliance Audit",
			Description: "Ensure adherence to required standards (ISO, GDPR, HIPAA, etc.).",
			Priority:    PriorityCritical,
		},
	},
	{
		fires: func(_ RiskLevel, r Responses) bool {
			return r.Answer("handlesFinancialData") || r.Answer("handlesHealthData")
		},
		rec: Recommendation{
			Service:     "Data Protection Impact Assessment",
			Description: "Evaluate risks to sensitive data.",
			Priority:    PriorityRecommended,
		},
	},
	{
		fires: func(_ RiskLevel, r Responses) bool {
			return r.Answer("hadPreviousIncidents")
		},
		rec: Recommendation{
			Service:     "Incident Response Planning",
			Description: "Prepare for and prevent future security incidents.",
			Priority:    PriorityCritical,
		},
	},
	{
		fires: func(level RiskLevel, r Responses) bool {
			return !r.Answer("hasCyberInsurance") && level != LevelLow
		},
		rec: Recommendation{
			Service:     "Cyber Insurance Consultation",
			Description: "Protect your business from financial losses.",
			Priority:    PriorityOptional,
		},
	},
}

// Recommend builds the ordered recommendation list for a risk level and raw
// answer set: the tier base set first, then every trigger that fires, in rule
// order. The returned slice is freshly allocated on every call.
func Recommend(level RiskLevel, r Responses) []Recommendation {
	base := tierRecommendations[level]
	out := make([]Recommendation, 0, len(base)+len(triggerRules))
	out = append(out, base...)
	for _, rule := range triggerRules {
		if rule.fires(level, r) {
			out = append(out, rule.rec)
		}
	}
	return out
}
