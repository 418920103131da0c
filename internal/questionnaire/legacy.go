package questionnaire

// The legacy two-phase form: a short digital-footprint step followed by a
// risk-factors step. Its PresenceGate carries the short-circuit rule — when
// none of the three footprint answers is yes, the business has no digital
// presence to assess and the engine returns the fixed zero result instead of
// running the weighted algorithm.

var legacyConfig = Config{
	Variant: VariantLegacy,
	Steps: []Step{
		{
			ID: "digital-footprint",
			Questions: []Question{
				{ID: "usesEmail", Category: CategoryInfrastructure, Weight: 10},
				{ID: "usesDigitalPayments", Category: CategoryOperations, Weight: 20},
				{ID: "hasWebsiteOrApp", Category: CategoryInfrastructure, Weight: 20},
			},
		},
		{
			ID: "risk-factors",
			Questions: []Question{
				{ID: "hasPublicIPs", Category: CategoryInfrastructure, Weight: 25},
				{ID: "storesCustomerData", Category: CategoryData, Weight: 30},
				{ID: "remoteWork", Category: CategoryOperations, Weight: 15},
				{ID: "regulatoryMandates", Category: CategoryCompliance, Weight: 40},
				{ID: "criticalDowntime", Category: CategoryOperations, Weight: 25},
			},
		},
	},
	ScoringWeights: standardScoringWeights,
	RiskThresholds: standardRiskThresholds,
	PresenceGate:   []string{"usesEmail", "usesDigitalPayments", "hasWebsiteOrApp"},
}

var legacyCopy = Copy{
	Steps: map[string]StepCopy{
		"digital-footprint": {
			Title:       "Identify your digital footprint.",
			Description: "Select all that apply to your daily operations.",
		},
		"risk-factors": {
			Title:       "Assess your risk exposure.",
			Description: "Help us understand your operational risks.",
		},
	},
	Questions: map[string]QuestionCopy{
		"usesEmail": {
			Title:       "Business Email",
			Description: "We use email for business communications.",
			Icon:        "server",
		},
		"usesDigitalPayments": {
			Title:       "Digital Payments",
			Description: "We accept or make digital payments.",
			Icon:        "lock",
		},
		"hasWebsiteOrApp": {
			Title:       "Website or App",
			Description: "We operate a public website or mobile app.",
			Icon:        "globe",
		},
		"hasPublicIPs": {
			Title:       "Public-Facing Systems",
			Description: "We have systems reachable from the internet.",
			Icon:        "globe",
		},
		"storesCustomerData": {
			Title:       "Customer Data",
			Description: "We store customer personal or payment data.",
			Icon:        "lock",
		},
		"remoteWork": {
			Title:       "Remote Work",
			Description: "Employees access our systems remotely.",
			Icon:        "server",
		},
		"regulatoryMandates": {
			Title:       "Regulatory Mandates",
			Description: "We are subject to regulatory or industry compliance requirements.",
			Icon:        "shield",
		},
		"criticalDowntime": {
			Title:       "Critical Downtime",
			Description: "Extended downtime would significantly impact our operations.",
			Icon:        "alert-triangle",
		},
	},
}
