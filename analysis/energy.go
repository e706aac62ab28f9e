package analysis

// EstimatedAnnualUsage projects annual kWh from a single monthly reading.
// When no reading was submitted, falls back to a square-footage rule of
// thumb (12 kWh per sq ft per year).
func EstimatedAnnualUsage(monthlyUsageKWh, squareFootage float64) float64 {
	if monthlyUsageKWh > 0 {
		return monthlyUsageKWh * 12
	}
	return squareFootage * 12
}

// EstimatedAnnualCost projects annual spend from a monthly bill, falling
// back to usage times the typical residential rate.
func EstimatedAnnualCost(monthlyCost, annualUsageKWh float64) float64 {
	if monthlyCost > 0 {
		return monthlyCost * 12
	}
	return annualUsageKWh * electricityRate
}

// OverallScore combines the HVAC and lighting scores. HVAC carries more
// weight since it dominates consumption.
func OverallScore(hvacScore, lightingScore float64) float64 {
	return hvacScore*0.7 + lightingScore*0.3
}

// PaybackYears is implementation cost divided by annual savings, defined
// only when savings are positive.
func PaybackYears(cost, annualSavings float64) float64 {
	if annualSavings <= 0 {
		return 0
	}
	return cost / annualSavings
}
