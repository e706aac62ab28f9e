package analysis

// Rough daily degree-day estimates by climate zone, used when a location
// has no recorded weather data at all.
var climateZoneEstimates = map[int]struct{ HDD, CDD float64 }{
	1: {0.5, 8.0},  // hot/tropical
	2: {2.0, 5.0},  // hot/warm
	3: {5.0, 3.0},  // mixed/moderate
	4: {8.0, 1.0},  // mixed/cold
	5: {12.0, 0.5}, // cold
}

const (
	genericDailyHDD = 5.0
	genericDailyCDD = 3.0
)

// ClimateZoneDailyEstimate returns average daily HDD/CDD for a climate
// zone, or the generic estimate for unknown zones.
func ClimateZoneDailyEstimate(zone int) (hdd, cdd float64) {
	if est, ok := climateZoneEstimates[zone]; ok {
		return est.HDD, est.CDD
	}
	return genericDailyHDD, genericDailyCDD
}

// MonthlyDegreeDays holds average monthly HDD/CDD for one calendar month.
type MonthlyDegreeDays struct {
	HDD float64
	CDD float64
}

// northern-hemisphere season defaults for months with no data
func seasonalDefault(month int) MonthlyDegreeDays {
	switch {
	case month == 12 || month <= 2:
		return MonthlyDegreeDays{HDD: 20, CDD: 0}
	case month >= 6 && month <= 8:
		return MonthlyDegreeDays{HDD: 0, CDD: 20}
	default:
		return MonthlyDegreeDays{HDD: 10, CDD: 5}
	}
}

// SeasonalAdjustmentFactors derives a per-month consumption adjustment
// factor from monthly degree-day averages: each month's combined degree
// days over the annual mean, clamped to [0.6, 1.8]. Months missing from
// the input are filled with season defaults.
func SeasonalAdjustmentFactors(monthly map[int]MonthlyDegreeDays) map[int]float64 {
	filled := make(map[int]MonthlyDegreeDays, 12)
	for month := 1; month <= 12; month++ {
		if dd, ok := monthly[month]; ok {
			filled[month] = dd
		} else {
			filled[month] = seasonalDefault(month)
		}
	}

	var sum float64
	for _, dd := range filled {
		sum += dd.HDD + dd.CDD
	}
	avgCombined := sum / 12

	factors := make(map[int]float64, 12)
	for month, dd := range filled {
		factor := 1.0
		if avgCombined > 0 {
			factor = (dd.HDD + dd.CDD) / avgCombined
		}
		factors[month] = clamp(factor, 0.6, 1.8)
	}
	return factors
}

// ConsumptionPoint is one dated energy reading. Month is 1-12.
type ConsumptionPoint struct {
	Month int
	Value float64
}

// NormalizedConsumption is a reading with its weather adjustment applied.
type NormalizedConsumption struct {
	ConsumptionPoint
	WeatherFactor   float64
	NormalizedValue float64
}

// NormalizeConsumption divides each reading by its month's adjustment
// factor. Readings for months without a factor pass through unchanged.
func NormalizeConsumption(points []ConsumptionPoint, factors map[int]float64) []NormalizedConsumption {
	out := make([]NormalizedConsumption, 0, len(points))
	for _, p := range points {
		factor, ok := factors[p.Month]
		if !ok || factor <= 0 {
			factor = 1.0
		}
		out = append(out, NormalizedConsumption{
			ConsumptionPoint: p,
			WeatherFactor:    factor,
			NormalizedValue:  p.Value / factor,
		})
	}
	return out
}
