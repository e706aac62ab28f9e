// Package report aggregates audit and recommendation data into
// chart-ready structures and renders them as a multi-section PDF.
package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// ChartPoint is one labeled value in a chart-ready series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RenderConsumptionBarChart rasterizes the monthly consumption series
// into a PNG.
func RenderConsumptionBarChart(points []ChartPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no consumption data to chart")
	}

	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, chart.Value{Label: p.Label, Value: p.Value})
	}

	graph := chart.BarChart{
		Title:    "Estimated Monthly Energy Consumption (kWh)",
		Height:   400,
		Width:    900,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render consumption chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSavingsPieChart rasterizes the per-category savings split into a
// PNG. Fails when every slice is zero, which the caller treats as a
// skippable section.
func RenderSavingsPieChart(points []ChartPoint) ([]byte, error) {
	values := make([]chart.Value, 0, len(points))
	for _, p := range points {
		if p.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: p.Label, Value: p.Value})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no savings data to chart")
	}

	pie := chart.PieChart{
		Title:  "Estimated Savings by Category ($/yr)",
		Width:  500,
		Height: 500,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render savings chart: %w", err)
	}
	return buf.Bytes(), nil
}
