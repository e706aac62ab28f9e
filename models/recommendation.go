package models

import "time"

// Recommendation statuses form a small fixed set; anything else is rejected
// at the handler boundary.
const (
	RecStatusActive      = "active"
	RecStatusInProgress  = "in_progress"
	RecStatusImplemented = "implemented"
	RecStatusDismissed   = "dismissed"
)

type Recommendation struct {
	ID               string     `json:"id"`
	AuditID          string     `json:"auditId"`
	Category         string     `json:"category"`
	Priority         string     `json:"priority"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	EstimatedCost    float64    `json:"estimatedCost"`
	ActualCost       *float64   `json:"actualCost,omitempty"`
	EstimatedSavings float64    `json:"estimatedSavings"`
	ActualSavings    *float64   `json:"actualSavings,omitempty"`
	PaybackYears     float64    `json:"paybackYears"`
	MonthlySavings   []float64  `json:"monthlySavings"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type UpdateRecommendationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSavingsRequest carries an actual annual savings figure plus its
// 12-month breakdown; both are written in one transaction.
type UpdateSavingsRequest struct {
	ActualSavings  float64   `json:"actualSavings" binding:"required"`
	ActualCost     float64   `json:"actualCost"`
	MonthlySavings []float64 `json:"monthlySavings" binding:"required"`
}

func IsValidRecStatus(status string) bool {
	switch status {
	case RecStatusActive, RecStatusInProgress, RecStatusImplemented, RecStatusDismissed:
		return true
	default:
		return false
	}
}
