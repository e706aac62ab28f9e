package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedAnnualUsage(t *testing.T) {
	assert.InDelta(t, 10800, EstimatedAnnualUsage(900, 2000), 0.001)
	// no monthly reading: 12 kWh per sq ft rule of thumb
	assert.InDelta(t, 24000, EstimatedAnnualUsage(0, 2000), 0.001)
}

func TestEstimatedAnnualCost(t *testing.T) {
	assert.InDelta(t, 1800, EstimatedAnnualCost(150, 0), 0.001)
	// no monthly bill: usage at the typical rate
	assert.InDelta(t, 10800*0.14, EstimatedAnnualCost(0, 10800), 0.001)
}

func TestOverallScore(t *testing.T) {
	assert.InDelta(t, 79, OverallScore(70, 100), 0.001)
}

func TestPaybackYears(t *testing.T) {
	assert.InDelta(t, 4.0, PaybackYears(1000, 250), 0.001)
	// undefined when savings are zero or negative
	assert.Zero(t, PaybackYears(1000, 0))
	assert.Zero(t, PaybackYears(1000, -50))
}

func TestLightingScore(t *testing.T) {
	assert.InDelta(t, 100, LightingScore(0, 0, 10), 0.001)
	assert.InDelta(t, 20, LightingScore(10, 0, 0), 0.001)
	assert.InDelta(t, 70, LightingScore(0, 10, 0), 0.001)
	// neutral when nothing reported
	assert.InDelta(t, 50, LightingScore(0, 0, 0), 0.001)
}

func TestLEDConversionSavings(t *testing.T) {
	// 10 incandescent: 10 * 51W * 1095h = 558.45 kWh * $0.14
	assert.InDelta(t, 78.18, LEDConversionSavings(10, 0), 0.01)
	assert.Zero(t, LEDConversionSavings(0, 0))
}
