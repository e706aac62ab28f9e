package analysis

// Relative efficacy of each bulb type against LED as the baseline.
const (
	ledWeight          = 1.0
	cflWeight          = 0.7
	incandescentWeight = 0.2
)

// LightingScore rates the bulb mix on a 0-100 scale: all-LED scores 100,
// all-incandescent scores 20. A home with no reported bulbs gets a
// neutral 50 so the overall score isn't dragged to zero by a blank form.
func LightingScore(incandescent, cfl, led int) float64 {
	total := incandescent + cfl + led
	if total <= 0 {
		return 50
	}

	weighted := float64(incandescent)*incandescentWeight +
		float64(cfl)*cflWeight +
		float64(led)*ledWeight

	return weighted / float64(total) * 100
}

// LEDConversionSavings estimates annual savings from replacing the
// remaining incandescent and CFL bulbs with LEDs. Assumes 60W
// incandescent, 14W CFL, 9W LED at 3 hours/day.
func LEDConversionSavings(incandescent, cfl int) float64 {
	hoursPerYear := 3.0 * 365
	incandescentKWh := float64(incandescent) * (60 - 9) / 1000 * hoursPerYear
	cflKWh := float64(cfl) * (14 - 9) / 1000 * hoursPerYear
	return (incandescentKWh + cflKWh) * electricityRate
}
