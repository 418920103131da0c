package questionnaire

// The detailed variant: 25 questions in five steps. The governance and
// recovery steps are dominated by negative weights — missing controls are
// what add risk there.

var detailedConfig = Config{
	Variant: VariantDetailed,
	Steps: []Step{
		{
			ID: "digital-dependency",
			Questions: []Question{
				{ID: "reliesOnDigitalChannels", Category: CategoryOperations, Weight: 20},
				{ID: "revenueImpactFromDowntime", Category: CategoryOperations, Weight: 25},
				{ID: "digitalBusinessProcesses", Category: CategoryOperations, Weight: 20},
				{ID: "remoteSystemAccess", Category: CategoryInfrastructure, Weight: 15},
				{ID: "digitalPaymentAcceptance", Category: CategoryOperations, Weight: 20},
			},
		},
		{
			ID: "data-value-sensitivity",
			Questions: []Question{
				{ID: "storesCustomerData", Category: CategoryData, Weight: 20},
				{ID: "storesBankDetails", Category: CategoryData, Weight: 30},
				{ID: "handlesConfidentialInfo", Category: CategoryData, Weight: 25},
				{ID: "breachWouldDamageTrust", Category: CategoryData, Weight: 15},
				{ID: "leakHasLegalConsequences", Category: CategoryCompliance, Weight: 30},
			},
		},
		{
			ID: "exposure-surface",
			Questions: []Question{
				{ID: "personalDevicesForWork", Category: CategoryInfrastructure, Weight: 15},
				{ID: "multipleCloudTools", Category: CategoryInfrastructure, Weight: 15},
				{ID: "iotDevicesConnected", Category: CategoryInfrastructure, Weight: 10},
				{ID: "frequentExternalSharing", Category: CategoryInfrastructure, Weight: 15},
				{ID: "wifiAccessControlled", Category: CategoryInfrastructure, Weight: -10},
			},
		},
		{
			ID: "awareness-governance",
			Questions: []Question{
				{ID: "phishingTrainingProvided", Category: CategoryCompliance, Weight: -15},
				{ID: "passwordSharingProhibited", Category: CategoryCompliance, Weight: -10},
				{ID: "accessRevokedOnExit", Category: CategoryCompliance, Weight: -15},
				{ID: "securityPersonDesignated", Category: CategoryCompliance, Weight: -15},
				{ID: "annualRiskReview", Category: CategoryCompliance, Weight: -10},
			},
		},
		{
			ID: "preparedness-recovery",
			Questions: []Question{
				{ID: "regularBackups", Category: CategoryOperations, Weight: -20},
				{ID: "backupTested", Category: CategoryOperations, Weight: -15},
				{ID: "mfaEnabled", Category: CategoryInfrastructure, Weight: -20},
				{ID: "professionalSecuritySoftware", Category: CategoryInfrastructure, Weight: -15},
				{ID: "incidentResponsePlan", Category: CategoryCompliance, Weight: -15},
			},
		},
	},
	ScoringWeights: standardScoringWeights,
	RiskThresholds: standardRiskThresholds,
}

var detailedCopy = Copy{
	Steps: map[string]StepCopy{
		"digital-dependency": {
			Title:       "Digital Dependency",
			Description: "If tech stops, does revenue stop?",
		},
		"data-value-sensitivity": {
			Title:       "Data Value & Sensitivity",
			Description: "Are you holding something attackers would want?",
		},
		"exposure-surface": {
			Title:       "Exposure Surface",
			Description: "How many entry points exist?",
		},
		"awareness-governance": {
			Title:       "Awareness & Governance",
			Description: "Is cyber risk managed or ignored?",
		},
		"preparedness-recovery": {
			Title:       "Preparedness & Recovery",
			Description: "If attacked, can you survive it?",
		},
	},
	Questions: map[string]QuestionCopy{
		"reliesOnDigitalChannels": {
			Title:       "Digital Business Channels",
			Description: "Do you rely on email, messaging apps, website, or digital ads to generate business?",
			Icon:        "globe",
		},
		"revenueImpactFromDowntime": {
			Title:       "48-Hour Downtime Impact",
			Description: "If internet and systems stopped for 48 hours, would revenue be significantly affected?",
			Icon:        "alert-triangle",
		},
		"digitalBusinessProcesses": {
			Title:       "Digital Business Processes",
			Description: "Are billing, inventory, payroll, or compliance handled digitally?",
			Icon:        "server",
		},
		"remoteSystemAccess": {
			Title:       "Remote Access",
			Description: "Do employees access systems remotely?",
			Icon:        "wifi",
		},
		"digitalPaymentAcceptance": {
			Title:       "Digital Payments",
			Description: "Do you accept digital payments (UPI, cards, online transfers)?",
			Icon:        "lock",
		},
		"storesCustomerData": {
			Title:       "Customer Personal Data",
			Description: "Do you store personal customer data?",
			Icon:        "database",
		},
		"storesBankDetails": {
			Title:       "Financial Records",
			Description: "Do you store bank details or financial records?",
			Icon:        "lock",
		},
		"handlesConfidentialInfo": {
			Title:       "Confidential Information",
			Description: "Do you handle confidential contracts, trade secrets, designs, or proprietary information?",
			Icon:        "shield",
		},
		"breachWouldDamageTrust": {
			Title:       "Brand Trust Risk",
			Description: "Would a data breach damage client trust or your brand?",
			Icon:        "alert-triangle",
		},
		"leakHasLegalConsequences": {
			Title:       "Legal/Regulatory Exposure",
			Description: "Could a data leak expose you to legal or regulatory penalties?",
			Icon:        "shield",
		},
		"personalDevicesForWork": {
			Title:       "Personal Device Usage",
			Description: "Do employees use personal devices for work?",
			Icon:        "server",
		},
		"multipleCloudTools": {
			Title:       "Multiple Cloud/SaaS Tools",
			Description: "Do you use multiple cloud/SaaS tools (5 or more)?",
			Icon:        "globe",
		},
		"iotDevicesConnected": {
			Title:       "Smart Devices Connected",
			Description: "Are smart devices (CCTV, biometric attendance, IoT devices) connected to office internet?",
			Icon:        "wifi",
		},
		"frequentExternalSharing": {
			Title:       "External File Sharing",
			Description: "Do you frequently share sensitive files with vendors or freelancers?",
			Icon:        "users",
		},
		"wifiAccessControlled": {
			Title:       "Wi-Fi Security",
			Description: "Is office Wi-Fi access tightly controlled and changed periodically?",
			Icon:        "wifi",
		},
		"phishingTrainingProvided": {
			Title:       "Phishing Awareness",
			Description: "Have employees received guidance on phishing or cyber scams?",
			Icon:        "shield",
		},
		"passwordSharingProhibited": {
			Title:       "Password Policy",
			Description: "Is password sharing prohibited and monitored?",
			Icon:        "lock",
		},
		"accessRevokedOnExit": {
			Title:       "Access Revocation",
			Description: "Are digital accesses revoked immediately when someone leaves?",
			Icon:        "users",
		},
		"securityPersonDesignated": {
			Title:       "Security Responsibility",
			Description: "Is there a designated person responsible for digital security?",
			Icon:        "shield",
		},
		"annualRiskReview": {
			Title:       "Leadership Review",
			Description: "Does leadership formally review cyber risks annually?",
			Icon:        "briefcase",
		},
		"regularBackups": {
			Title:       "Data Backups",
			Description: "Is critical business data backed up regularly?",
			Icon:        "database",
		},
		"backupTested": {
			Title:       "Backup Testing",
			Description: "Have you tested restoring a backup in the past year?",
			Icon:        "check-circle",
		},
		"mfaEnabled": {
			Title:       "Multi-Factor Authentication",
			Description: "Is multi-factor authentication enabled for key systems?",
			Icon:        "lock",
		},
		"professionalSecuritySoftware": {
			Title:       "Security Software",
			Description: "Are systems protected by professional security software?",
			Icon:        "shield",
		},
		"incidentResponsePlan": {
			Title:       "Incident Response Plan",
			Description: "Do you have a written incident response plan?",
			Icon:        "alert-triangle",
		},
	},
}
