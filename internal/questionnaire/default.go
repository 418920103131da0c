package questionnaire

// The original four-step questionnaire: 23 questions across infrastructure,
// data handling, operations, and compliance.

var defaultConfig = Config{
	Variant: VariantDefault,
	Steps: []Step{
		{
			ID: "infrastructure",
			Questions: []Question{
				{ID: "usesEmail", Category: CategoryInfrastructure, Weight: 10},
				{ID: "hasWebsiteOrApp", Category: CategoryInfrastructure, Weight: 20},
				{ID: "usesCloudServices", Category: CategoryInfrastructure, Weight: 20},
				{ID: "hasOnPremiseServers", Category: CategoryInfrastructure, Weight: 15},
				{ID: "hasPublicFacingSystems", Category: CategoryInfrastructure, Weight: 25},
				{ID: "hasThirdPartyIntegrations", Category: CategoryInfrastructure, Weight: 10},
			},
		},
		{
			ID: "data-handling",
			Questions: []Question{
				{ID: "collectsCustomerData", Category: CategoryData, Weight: 15},
				{ID: "handlesFinancialData", Category: CategoryData, Weight: 30},
				{ID: "storesEmployeeData", Category: CategoryData, Weight: 10},
				{ID: "hasProprietaryData", Category: CategoryData, Weight: 20},
				{ID: "handlesHealthData", Category: CategoryData, Weight: 20},
				{ID: "retainsDataLongTerm", Category: CategoryData, Weight: 5},
			},
		},
		{
			ID: "operations",
			Questions: []Question{
				{ID: "acceptsDigitalPayments", Category: CategoryOperations, Weight: 20},
				{ID: "hasRemoteWork", Category: CategoryOperations, Weight: 15},
				{ID: "criticalUptime", Category: CategoryOperations, Weight: 25},
				{ID: "revenueDependent", Category: CategoryOperations, Weight: 25},
				{ID: "hasCustomerFacingSystems", Category: CategoryOperations, Weight: 10},
				{ID: "hasSupplyChainIntegration", Category: CategoryOperations, Weight: 5},
			},
		},
		{
			ID: "compliance",
			Questions: []Question{
				{ID: "hasRegulatoryCompliance", Category: CategoryCompliance, Weight: 40},
				{ID: "hasIndustryRegulations", Category: CategoryCompliance, Weight: 30},
				{ID: "hadPreviousIncidents", Category: CategoryCompliance, Weight: 20},
				// Negative weight: lack of insurance/training increases risk.
				{ID: "hasCyberInsurance", Category: CategoryCompliance, Weight: -5},
				{ID: "providesSecurityTraining", Category: CategoryCompliance, Weight: -5},
			},
		},
	},
	ScoringWeights: standardScoringWeights,
	RiskThresholds: standardRiskThresholds,
}

// All shipped variants use the same firm-type weighting and thresholds; the
// variants differ only in their question sets.
var standardScoringWeights = ScoringWeights{
	IT: CategoryWeights{
		Infrastructure: 0.30,
		Data:           0.25,
		Operations:     0.25,
		Compliance:     0.20,
	},
	NonIT: CategoryWeights{
		Infrastructure: 0.20,
		Data:           0.30,
		Operations:     0.30,
		Compliance:     0.20,
	},
}

var standardRiskThresholds = RiskThresholds{Low: 35, Medium: 70}

var defaultCopy = Copy{
	Steps: map[string]StepCopy{
		"infrastructure": {
			Title:       "Your Digital Infrastructure",
			Description: "Tell us about your digital assets and infrastructure.",
		},
		"data-handling": {
			Title:       "Data You Handle",
			Description: "What type of data does your organization handle?",
		},
		"operations": {
			Title:       "Business Operations",
			Description: "How dependent is your business on digital systems?",
		},
		"compliance": {
			Title:       "Compliance & Risk Factors",
			Description: "Regulatory requirements and security awareness.",
		},
	},
	Questions: map[string]QuestionCopy{
		"usesEmail": {
			Title:       "Business Email",
			Description: "Do you use email for business communications?",
			Icon:        "server",
		},
		"hasWebsiteOrApp": {
			Title:       "Website or Mobile App",
			Description: "Do you have a public-facing website or mobile app?",
			Icon:        "globe",
		},
		"usesCloudServices": {
			Title:       "Cloud Services",
			Description: "Do you use cloud services (AWS, Azure, Google Cloud, SaaS apps)?",
			Icon:        "server",
		},
		"hasOnPremiseServers": {
			Title:       "On-Premise Servers",
			Description: "Do you operate your own physical servers?",
			Icon:        "server",
		},
		"hasPublicFacingSystems": {
			Title:       "Public-Facing Systems",
			Description: "Do you have servers or services accessible from the internet?",
			Icon:        "globe",
		},
		"hasThirdPartyIntegrations": {
			Title:       "Third-Party Integrations",
			Description: "Do you integrate with external APIs or services?",
			Icon:        "server",
		},
		"collectsCustomerData": {
			Title:       "Customer Personal Data",
			Description: "Do you collect/store customer names, contact info, or addresses?",
			Icon:        "lock",
		},
		"handlesFinancialData": {
			Title:       "Financial Data",
			Description: "Do you handle payment information, bank details, or financial records?",
			Icon:        "lock",
		},
		"storesEmployeeData": {
			Title:       "Employee Data",
			Description: "Do you maintain employee records, payroll, or HR data?",
			Icon:        "lock",
		},
		"hasProprietaryData": {
			Title:       "Proprietary/IP Data",
			Description: "Do you have trade secrets, source code, or proprietary designs?",
			Icon:        "shield",
		},
		"handlesHealthData": {
			Title:       "Health/Medical Data",
			Description: "Do you handle patient records or health information?",
			Icon:        "lock",
		},
		"retainsDataLongTerm": {
			Title:       "Long-Term Data Retention",
			Description: "Do you store data for more than 1 year?",
			Icon:        "server",
		},
		"acceptsDigitalPayments": {
			Title:       "Digital Payments",
			Description: "Do you accept digital payments (UPI, cards, online banking)?",
			Icon:        "lock",
		},
		"hasRemoteWork": {
			Title:       "Remote Work",
			Description: "Do employees access systems remotely or work from home?",
			Icon:        "server",
		},
		"criticalUptime": {
			Title:       "Critical Uptime",
			Description: "Would 4+ hours of system downtime significantly impact operations?",
			Icon:        "alert-triangle",
		},
		"revenueDependent": {
			Title:       "Revenue Dependency",
			Description: "Is more than 50% of your revenue dependent on digital systems?",
			Icon:        "briefcase",
		},
		"hasCustomerFacingSystems": {
			Title:       "Customer-Facing Systems",
			Description: "Do customers directly interact with your digital systems?",
			Icon:        "globe",
		},
		"hasSupplyChainIntegration": {
			Title:       "Supply Chain Integration",
			Description: "Are your systems integrated with suppliers or partners?",
			Icon:        "server",
		},
		"hasRegulatoryCompliance": {
			Title:       "Regulatory Compliance",
			Description: "Are you required to comply with ISO, RBI, GDPR, HIPAA, or similar standards?",
			Icon:        "shield",
		},
		"hasIndustryRegulations": {
			Title:       "Industry Regulations",
			Description: "Does your industry have specific cybersecurity requirements?",
			Icon:        "shield",
		},
		"hadPreviousIncidents": {
			Title:       "Previous Security Incidents",
			Description: "Have you experienced security incidents or data breaches?",
			Icon:        "alert-triangle",
		},
		"hasCyberInsurance": {
			Title:       "Cyber Insurance",
			Description: "Do you have cybersecurity insurance coverage?",
			Icon:        "shield",
		},
		"providesSecurityTraining": {
			Title:       "Security Training",
			Description: "Do you provide regular cybersecurity training to employees?",
			Icon:        "check-circle",
		},
	},
}
