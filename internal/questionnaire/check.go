package questionnaire

// The business-friendly "check" variant: 25 questions framed as five plain
// language checks (Pulse, Target, Wallet, Culture, Recovery).

var checkConfig = Config{
	Variant: VariantCheck,
	Steps: []Step{
		{
			ID: "digital-dependency-pulse",
			Questions: []Question{
				{ID: "businessStopsWithoutTech", Category: CategoryOperations, Weight: 25},
				{ID: "usesCloudTools", Category: CategoryInfrastructure, Weight: 15},
				{ID: "remoteWorkEnabled", Category: CategoryInfrastructure, Weight: 15},
				{ID: "personalDevicesUsed", Category: CategoryInfrastructure, Weight: 15},
				{ID: "websiteAppDependency", Category: CategoryOperations, Weight: 20},
			},
		},
		{
			ID: "value-sensitivity-target",
			Questions: []Question{
				{ID: "storesCustomerInfo", Category: CategoryData, Weight: 20},
				{ID: "holdsTradeSecrets", Category: CategoryData, Weight: 25},
				{ID: "leakCausesLegalTrouble", Category: CategoryCompliance, Weight: 30},
				{ID: "clientsAskAboutSecurity", Category: CategoryData, Weight: 15},
				{ID: "reputationBuiltOnTrust", Category: CategoryData, Weight: 20},
			},
		},
		{
			ID: "financial-risk-wallet",
			Questions: []Question{
				{ID: "acceptsDigitalPayments", Category: CategoryOperations, Weight: 20},
				{ID: "storesVendorBankDetails", Category: CategoryData, Weight: 25},
				{ID: "digitalBillingPayroll", Category: CategoryOperations, Weight: 20},
				{ID: "dependsOnSaasVendors", Category: CategoryInfrastructure, Weight: 15},
				{ID: "emailHackRiskPaymentDiversion", Category: CategoryData, Weight: 30},
			},
		},
		{
			ID: "human-awareness-culture",
			Questions: []Question{
				{ID: "phishingTrainingGiven", Category: CategoryCompliance, Weight: -15},
				{ID: "strictPasswordPolicy", Category: CategoryCompliance, Weight: -10},
				{ID: "accessRevokedImmediately", Category: CategoryCompliance, Weight: -15},
				// Positive: having noticed suspicious activity is itself a
				// risk signal, unlike the surrounding control questions.
				{ID: "seenSuspiciousActivity", Category: CategoryCompliance, Weight: 10},
				{ID: "hasTechSupportPerson", Category: CategoryCompliance, Weight: -10},
			},
		},
		{
			ID: "safety-net-recovery",
			Questions: []Question{
				{ID: "hasSecureBackup", Category: CategoryOperations, Weight: -20},
				{ID: "usesMfaForBanking", Category: CategoryInfrastructure, Weight: -20},
				{ID: "hasPaidAntivirus", Category: CategoryInfrastructure, Weight: -15},
				{ID: "hasWrittenIncidentPlan", Category: CategoryCompliance, Weight: -15},
				{ID: "leadershipDiscussesRisks", Category: CategoryCompliance, Weight: -10},
			},
		},
	},
	ScoringWeights: standardScoringWeights,
	RiskThresholds: standardRiskThresholds,
}

var checkCopy = Copy{
	Steps: map[string]StepCopy{
		"digital-dependency-pulse": {
			Title:       "Digital Dependency",
			Description: `The "Pulse" Check`,
		},
		"value-sensitivity-target": {
			Title:       "Value & Sensitivity",
			Description: `The "Target" Check`,
		},
		"financial-risk-wallet": {
			Title:       "Financial Risk",
			Description: `The "Wallet" Check`,
		},
		"human-awareness-culture": {
			Title:       "Human Awareness",
			Description: `The "Culture" Check`,
		},
		"safety-net-recovery": {
			Title:       "Safety Net",
			Description: `The "Recovery" Check`,
		},
	},
	Questions: map[string]QuestionCopy{
		"businessStopsWithoutTech": {
			Title:       "48-Hour Tech Shutdown",
			Description: "If your computers or internet went down for 48 hours, would your business stop making money?",
			Icon:        "alert-triangle",
		},
		"usesCloudTools": {
			Title:       "Cloud Tools Usage",
			Description: "Do you use cloud tools like Google Workspace, Microsoft 365, or Tally on Cloud?",
			Icon:        "globe",
		},
		"remoteWorkEnabled": {
			Title:       "Remote Work",
			Description: "Do employees work remotely or access company files from home/travel?",
			Icon:        "wifi",
		},
		"personalDevicesUsed": {
			Title:       "Personal Devices for Work",
			Description: "Do staff use their personal phones or laptops for official business work?",
			Icon:        "server",
		},
		"websiteAppDependency": {
			Title:       "Website/App Dependency",
			Description: "Does your business rely on a website or app to find or serve customers?",
			Icon:        "globe",
		},
		"storesCustomerInfo": {
			Title:       "Customer Information",
			Description: "Do you store customer IDs, phone numbers, or home addresses digitally?",
			Icon:        "database",
		},
		"holdsTradeSecrets": {
			Title:       "Trade Secrets & IP",
			Description: `Do you hold "Trade Secrets," proprietary designs, or confidential client contracts?`,
			Icon:        "shield",
		},
		"leakCausesLegalTrouble": {
			Title:       "Legal Consequences",
			Description: "Would a public data leak cause you legal trouble or a loss of your business license?",
			Icon:        "alert-triangle",
		},
		"clientsAskAboutSecurity": {
			Title:       "Client Security Inquiries",
			Description: "Do clients ever ask about your data security practices before they agree to work with you?",
			Icon:        "users",
		},
		"reputationBuiltOnTrust": {
			Title:       "Trust-Based Reputation",
			Description: "Is your brand's reputation built heavily on client trust and confidentiality?",
			Icon:        "heart",
		},
		"acceptsDigitalPayments": {
			Title:       "Digital Payment Acceptance",
			Description: "Does your business accept digital payments (UPI, Cards, Net Banking)?",
			Icon:        "dollar-sign",
		},
		"storesVendorBankDetails": {
			Title:       "Bank Details Storage",
			Description: "Do you store the bank details of your vendors, suppliers, or employees?",
			Icon:        "lock",
		},
		"digitalBillingPayroll": {
			Title:       "Digital Financial Systems",
			Description: "Is your billing, invoicing, or payroll managed entirely through digital software?",
			Icon:        "server",
		},
		"dependsOnSaasVendors": {
			Title:       "Third-Party SaaS Dependency",
			Description: "Do you depend on third-party digital vendors (SaaS) to run your daily operations?",
			Icon:        "globe",
		},
		"emailHackRiskPaymentDiversion": {
			Title:       "Payment Diversion Risk",
			Description: "If your email was hacked, could a fraudster successfully divert a payment from a client?",
			Icon:        "alert-triangle",
		},
		"phishingTrainingGiven": {
			Title:       "Phishing Training",
			Description: `Have your employees been taught how to spot a fake "phishing" email or text?`,
			Icon:        "shield",
		},
		"strictPasswordPolicy": {
			Title:       "Password Sharing Policy",
			Description: "Do you have a strict policy against sharing passwords among team members?",
			Icon:        "lock",
		},
		"accessRevokedImmediately": {
			Title:       "Exit Access Revocation",
			Description: "Do you immediately revoke all digital access when an employee leaves the company?",
			Icon:        "users",
		},
		"seenSuspiciousActivity": {
			Title:       "Security Incidents Awareness",
			Description: `Have you ever seen suspicious login attempts or "weird" emails in your inbox?`,
			Icon:        "alert-triangle",
		},
		"hasTechSupportPerson": {
			Title:       "Tech Support Contact",
			Description: `Is there a specific person (internal or external) you call when "the tech breaks"?`,
			Icon:        "briefcase",
		},
		"hasSecureBackup": {
			Title:       "Secure Data Backup",
			Description: "Do you have a backup of your data stored in a separate, secure location?",
			Icon:        "database",
		},
		"usesMfaForBanking": {
			Title:       "Multi-Factor Authentication",
			Description: "Do you use Multi-Factor Authentication (OTP/Mobile App Approval) for your banking and main emails?",
			Icon:        "lock",
		},
		"hasPaidAntivirus": {
			Title:       "Professional Antivirus",
			Description: "Are all company laptops/PCs protected by a professional (paid) antivirus?",
			Icon:        "shield",
		},
		"hasWrittenIncidentPlan": {
			Title:       "Incident Response Plan",
			Description: `Do you have a "Step 1, Step 2" plan written down for what to do if you are hacked?`,
			Icon:        "check-circle",
		},
		"leadershipDiscussesRisks": {
			Title:       "Leadership Risk Discussion",
			Description: "Does your leadership team discuss digital risks at least once a year?",
			Icon:        "briefcase",
		},
	},
}
