package models

// DashboardSummary aggregates a user's activity for the dashboard view.
type DashboardSummary struct {
	AuditCount            uint64         `json:"auditCount"`
	ImplementedRecCount   uint64         `json:"implementedRecCount"`
	TotalEstimatedSavings float64        `json:"totalEstimatedSavings"`
	TotalActualSavings    float64        `json:"totalActualSavings"`
	BadgePoints           int            `json:"badgePoints"`
	RecentAudits          []EnergyAudit  `json:"recentAudits"`
	SurveyAverages        SurveyAverages `json:"surveyAverages"`
}
