package models

import "time"

// CreateAuditRequest is the raw audit submission from the client. Derived
// scores are computed server-side and never accepted from the request body.
type CreateAuditRequest struct {
	SquareFootage     float64 `json:"squareFootage" binding:"required,gt=0"`
	YearBuilt         int     `json:"yearBuilt"`
	Occupants         int     `json:"occupants"`
	ZipCode           string  `json:"zipCode"`
	State             string  `json:"state"`
	HeatingSystem     string  `json:"heatingSystem"`
	HeatingSystemAge  int     `json:"heatingSystemAge"`
	HeatingEfficiency float64 `json:"heatingEfficiency"`
	CoolingSystem     string  `json:"coolingSystem"`
	CoolingEfficiency float64 `json:"coolingEfficiency"`
	BulbsIncandescent int     `json:"bulbsIncandescent"`
	BulbsCFL          int     `json:"bulbsCfl"`
	BulbsLED          int     `json:"bulbsLed"`
	MonthlyUsageKWh   float64 `json:"monthlyUsageKwh"`
	MonthlyCost       float64 `json:"monthlyCost"`
}

type EnergyAudit struct {
	ID                  string    `json:"id"`
	UserID              int       `json:"userId"`
	SquareFootage       float64   `json:"squareFootage"`
	YearBuilt           int       `json:"yearBuilt"`
	Occupants           int       `json:"occupants"`
	ZipCode             string    `json:"zipCode"`
	State               string    `json:"state"`
	HeatingSystem       string    `json:"heatingSystem"`
	HeatingSystemAge    int       `json:"heatingSystemAge"`
	HeatingEfficiency   float64   `json:"heatingEfficiency"`
	CoolingSystem       string    `json:"coolingSystem"`
	CoolingEfficiency   float64   `json:"coolingEfficiency"`
	BulbsIncandescent   int       `json:"bulbsIncandescent"`
	BulbsCFL            int       `json:"bulbsCfl"`
	BulbsLED            int       `json:"bulbsLed"`
	MonthlyUsageKWh     float64   `json:"monthlyUsageKwh"`
	MonthlyCost         float64   `json:"monthlyCost"`
	HVACScore           float64   `json:"hvacScore"`
	LightingScore       float64   `json:"lightingScore"`
	OverallScore        float64   `json:"overallScore"`
	EstimatedAnnualKWh  float64   `json:"estimatedAnnualKwh"`
	EstimatedAnnualCost float64   `json:"estimatedAnnualCost"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
