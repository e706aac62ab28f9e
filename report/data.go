package report

import (
	"wattwise/api/analysis"
	"wattwise/api/models"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Data is the chart-ready aggregation behind both the PDF and the JSON
// report formats.
type Data struct {
	Audit                 models.EnergyAudit      `json:"audit"`
	Recommendations       []models.Recommendation `json:"recommendations"`
	MonthlyConsumption    []ChartPoint            `json:"monthlyConsumption"`
	NormalizedConsumption []ChartPoint            `json:"normalizedConsumption"`
	SavingsByCategory     []ChartPoint            `json:"savingsByCategory"`
	TotalEstimatedSavings float64                 `json:"totalEstimatedSavings"`
}

// Build assembles the report aggregation from an audit and its
// recommendations. Monthly consumption spreads the annual estimate using
// the seasonal factors so the chart reflects a realistic heating/cooling
// shape rather than a flat line.
func Build(audit models.EnergyAudit, recs []models.Recommendation, factors map[int]float64) Data {
	data := Data{
		Audit:           audit,
		Recommendations: recs,
	}

	if factors == nil {
		factors = analysis.SeasonalAdjustmentFactors(nil)
	}

	monthlyBase := audit.EstimatedAnnualKWh / 12
	consumption := make([]analysis.ConsumptionPoint, 0, 12)
	for month := 1; month <= 12; month++ {
		factor, ok := factors[month]
		if !ok {
			factor = 1.0
		}
		point := analysis.ConsumptionPoint{Month: month, Value: monthlyBase * factor}
		consumption = append(consumption, point)
		data.MonthlyConsumption = append(data.MonthlyConsumption, ChartPoint{
			Label: monthLabels[month-1],
			Value: point.Value,
		})
	}

	// The weather-normalized series strips the seasonal shape back out,
	// exposing the baseline load the weather cannot explain.
	for _, n := range analysis.NormalizeConsumption(consumption, factors) {
		data.NormalizedConsumption = append(data.NormalizedConsumption, ChartPoint{
			Label: monthLabels[n.Month-1],
			Value: n.NormalizedValue,
		})
	}

	byCategory := map[string]float64{}
	var order []string
	for _, rec := range recs {
		if _, seen := byCategory[rec.Category]; !seen {
			order = append(order, rec.Category)
		}
		byCategory[rec.Category] += rec.EstimatedSavings
		data.TotalEstimatedSavings += rec.EstimatedSavings
	}
	for _, category := range order {
		data.SavingsByCategory = append(data.SavingsByCategory, ChartPoint{
			Label: category,
			Value: byCategory[category],
		})
	}

	return data
}
