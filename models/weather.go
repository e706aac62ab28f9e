package models

type WeatherLocation struct {
	LocationID  string `json:"locationId"`
	ZipCode     string `json:"zipCode"`
	City        string `json:"city"`
	State       string `json:"state"`
	ClimateZone int    `json:"climateZone"`
}

// DegreeDays summarizes heating/cooling degree days for a location and
// period. IsEstimated is set when the figures came from a fallback
// (monthly averages, climate zone, or the generic estimate) rather than
// daily observations.
type DegreeDays struct {
	TotalHDD         float64 `json:"totalHdd"`
	TotalCDD         float64 `json:"totalCdd"`
	AvgHDD           float64 `json:"avgHdd"`
	AvgCDD           float64 `json:"avgCdd"`
	DaysCount        int     `json:"daysCount"`
	IsEstimated      bool    `json:"isEstimated"`
	EstimationMethod string  `json:"estimationMethod,omitempty"`
}
