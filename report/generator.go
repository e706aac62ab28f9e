package report

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"
)

// Generator lays out the audit report PDF. Every section runs inside its
// own recovery wrapper so one failing section (a chart with no data, a
// render error) degrades to a skipped block instead of aborting the
// whole document.
type Generator struct {
	pdf *gofpdf.Fpdf
}

func NewGenerator() *Generator {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("WattWise Energy Audit Report - Page %d", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})
	return &Generator{pdf: pdf}
}

// Generate renders the full report and returns the PDF bytes.
func (g *Generator) Generate(data Data) ([]byte, error) {
	g.pdf.AddPage()

	g.section("header", func() error { return g.writeHeader(data) })
	g.section("summary", func() error { return g.writeSummary(data) })
	g.section("audit details", func() error { return g.writeAuditTable(data) })
	g.section("consumption chart", func() error {
		png, err := RenderConsumptionBarChart(data.MonthlyConsumption)
		if err != nil {
			return err
		}
		return g.writeImage("consumption", png)
	})
	g.section("savings chart", func() error {
		png, err := RenderSavingsPieChart(data.SavingsByCategory)
		if err != nil {
			return err
		}
		return g.writeImage("savings", png)
	})
	g.section("recommendations", func() error { return g.writeRecommendations(data) })

	var buf bytes.Buffer
	if err := g.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

// section runs one block, logging and continuing on failure.
func (g *Generator) section(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("Skipping report section '%s': %v", name, err)
	}
	if g.pdf.Err() {
		log.Printf("PDF error after section '%s': %v", name, g.pdf.Error())
		// Clear the error so later sections still get a chance.
		g.pdf.ClearError()
	}
}

func (g *Generator) writeHeader(data Data) error {
	g.pdf.SetFont("Helvetica", "B", 18)
	g.pdf.CellFormat(0, 12, "Home Energy Audit Report", "", 1, "C", false, 0, "")
	g.pdf.SetFont("Helvetica", "", 10)
	g.pdf.CellFormat(0, 6, fmt.Sprintf("Audit %s - %s", data.Audit.ID,
		data.Audit.CreatedAt.Format("January 2, 2006")), "", 1, "C", false, 0, "")
	g.pdf.Ln(4)
	return nil
}

func (g *Generator) writeSummary(data Data) error {
	g.pdf.SetFont("Helvetica", "B", 13)
	g.pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	g.pdf.SetFont("Helvetica", "", 10)

	summary := fmt.Sprintf(
		"Overall efficiency score: %.0f/100 (HVAC %.0f, lighting %.0f). "+
			"Estimated annual consumption is %.0f kWh at a cost of $%.0f. "+
			"Implementing the recommendations below could save an estimated $%.0f per year.",
		data.Audit.OverallScore, data.Audit.HVACScore, data.Audit.LightingScore,
		data.Audit.EstimatedAnnualKWh, data.Audit.EstimatedAnnualCost,
		data.TotalEstimatedSavings)
	g.pdf.MultiCell(0, 5, summary, "", "L", false)
	g.pdf.Ln(4)
	return nil
}

func (g *Generator) writeAuditTable(data Data) error {
	rows := [][2]string{
		{"Square footage", fmt.Sprintf("%.0f sq ft", data.Audit.SquareFootage)},
		{"Year built", fmt.Sprintf("%d", data.Audit.YearBuilt)},
		{"Occupants", fmt.Sprintf("%d", data.Audit.Occupants)},
		{"Heating system", fmt.Sprintf("%s (%d yrs, %.0f%% efficient)",
			data.Audit.HeatingSystem, data.Audit.HeatingSystemAge, data.Audit.HeatingEfficiency*100)},
		{"Cooling system", fmt.Sprintf("%s (%.0f%% efficient)",
			data.Audit.CoolingSystem, data.Audit.CoolingEfficiency*100)},
		{"Lighting", fmt.Sprintf("%d incandescent / %d CFL / %d LED",
			data.Audit.BulbsIncandescent, data.Audit.BulbsCFL, data.Audit.BulbsLED)},
		{"Reported monthly usage", fmt.Sprintf("%.0f kWh ($%.2f)",
			data.Audit.MonthlyUsageKWh, data.Audit.MonthlyCost)},
	}

	g.pdf.SetFont("Helvetica", "B", 13)
	g.pdf.CellFormat(0, 8, "Property Details", "", 1, "L", false, 0, "")
	g.pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		g.pdf.CellFormat(60, 6, row[0], "1", 0, "L", false, 0, "")
		g.pdf.CellFormat(120, 6, row[1], "1", 1, "L", false, 0, "")
	}
	g.pdf.Ln(4)
	return nil
}

func (g *Generator) writeImage(name string, png []byte) error {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	g.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if g.pdf.Err() {
		return fmt.Errorf("failed to register %s image: %v", name, g.pdf.Error())
	}
	g.pdf.ImageOptions(name, 15, g.pdf.GetY(), 180, 0, true, opts, 0, "")
	g.pdf.Ln(6)
	return nil
}

func (g *Generator) writeRecommendations(data Data) error {
	if len(data.Recommendations) == 0 {
		return fmt.Errorf("no recommendations to render")
	}

	g.pdf.AddPage()
	g.pdf.SetFont("Helvetica", "B", 13)
	g.pdf.CellFormat(0, 8, "Recommendations", "", 1, "L", false, 0, "")

	for _, rec := range data.Recommendations {
		g.pdf.SetFont("Helvetica", "B", 11)
		g.pdf.CellFormat(0, 7, fmt.Sprintf("%s [%s priority]", rec.Title, rec.Priority),
			"", 1, "L", false, 0, "")
		g.pdf.SetFont("Helvetica", "", 10)
		g.pdf.MultiCell(0, 5, rec.Description, "", "L", false)
		g.pdf.CellFormat(0, 6, fmt.Sprintf(
			"Estimated cost: $%.0f   Estimated savings: $%.0f/yr   Payback: %.1f years",
			rec.EstimatedCost, rec.EstimatedSavings, rec.PaybackYears),
			"", 1, "L", false, 0, "")
		g.pdf.Ln(2)
	}
	return nil
}
