// Package analysis holds the pure derived-metric formulas: HVAC and
// lighting efficiency scores, savings estimates, and the weather
// adjustment math. No state, no I/O.
package analysis

import "math"

// Energy consumption factors, BTU per sq ft per degree day, with the
// standard 3412 BTU per kWh conversion.
const (
	heatingFactorBTU = 1.5
	coolingFactorBTU = 2.0
	btuPerKWh        = 3412.0
	electricityRate  = 0.14 // $/kWh, typical residential
)

// HVACScore rates the combined heating/cooling setup on a 0-100 scale.
// Efficiencies are fractions (0.0-1.0); system age discounts the score by
// 2 points a year after the first five years, floored at 25.
func HVACScore(heatingEfficiency, coolingEfficiency float64, systemAge int) float64 {
	heating := clamp(heatingEfficiency, 0, 1)
	cooling := clamp(coolingEfficiency, 0, 1)

	// Heating dominates residential energy use, so it gets more weight.
	base := (heating*0.6 + cooling*0.4) * 100

	agePenalty := 0.0
	if systemAge > 5 {
		agePenalty = float64(systemAge-5) * 2.0
	}

	return math.Max(25, base-agePenalty)
}

// HVACImpact estimates HVAC energy consumption from degree days, and the
// savings available from a 20-point efficiency upgrade (capped at 95%).
type HVACImpact struct {
	HeatingEnergyKWh       float64
	CoolingEnergyKWh       float64
	TotalEnergyKWh         float64
	EstimatedAnnualCost    float64
	PotentialAnnualSavings float64
	EfficiencyUpgradeROI   float64
}

func WeatherImpactForHVAC(totalHDD, totalCDD, squareFootage, systemEfficiency float64) HVACImpact {
	efficiencyFactor := 1.25
	if systemEfficiency > 0 {
		efficiencyFactor = 1 / systemEfficiency
	}

	heatingBTU := totalHDD * squareFootage * heatingFactorBTU
	coolingBTU := totalCDD * squareFootage * coolingFactorBTU

	heatingKWh := heatingBTU / btuPerKWh * efficiencyFactor
	coolingKWh := coolingBTU / btuPerKWh * efficiencyFactor

	improved := math.Min(0.95, systemEfficiency+0.2)
	improvedFactor := 1 / improved

	heatingSavings := heatingKWh - heatingBTU/btuPerKWh*improvedFactor
	coolingSavings := coolingKWh - coolingBTU/btuPerKWh*improvedFactor

	annualSavings := (heatingSavings + coolingSavings) * electricityRate

	roi := 0.0
	if squareFootage > 0 {
		roi = annualSavings / (squareFootage * 1.5)
	}

	return HVACImpact{
		HeatingEnergyKWh:       heatingKWh,
		CoolingEnergyKWh:       coolingKWh,
		TotalEnergyKWh:         heatingKWh + coolingKWh,
		EstimatedAnnualCost:    (heatingKWh + coolingKWh) * electricityRate,
		PotentialAnnualSavings: annualSavings,
		EfficiencyUpgradeROI:   roi,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
