package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wattwise/api/analysis"
	"wattwise/api/report"
	"wattwise/api/store"
	"wattwise/api/utils"
)

type ReportHandlers struct {
	AuditStore   *store.AuditStore
	RecStore     *store.RecommendationStore
	WeatherStore *store.WeatherStore
}

func NewReportHandlers(audits *store.AuditStore, recs *store.RecommendationStore, weather *store.WeatherStore) *ReportHandlers {
	return &ReportHandlers{AuditStore: audits, RecStore: recs, WeatherStore: weather}
}

// GetAuditReport renders the audit report. The default response is the
// PDF byte stream; ?format=json returns the chart-ready aggregation.
func (h *ReportHandlers) GetAuditReport(c *gin.Context) {
	auditID := c.Param("id")
	if !utils.IsValidUUID(auditID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audit id"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	audit, err := h.AuditStore.GetAudit(ctx, auditID, userID)
	if err != nil {
		log.Printf("Error fetching audit %s for report: %v", auditID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
		return
	}

	recs, err := h.RecStore.ListForAudit(ctx, auditID)
	if err != nil {
		// The report still renders without recommendations.
		log.Printf("Error listing recommendations for report %s: %v", auditID, err)
		recs = nil
	}

	data := report.Build(*audit, recs, h.seasonalFactors(ctx, audit.ZipCode, audit.State))

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, data)
		return
	}

	pdfBytes, err := report.NewGenerator().Generate(data)
	if err != nil {
		log.Printf("Error generating PDF for audit %s: %v", auditID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	filename := fmt.Sprintf("energy-audit-%s.pdf", auditID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// seasonalFactors shapes the monthly consumption chart from the local
// weather dataset when one exists; otherwise the season defaults apply.
func (h *ReportHandlers) seasonalFactors(ctx context.Context, zipCode, state string) map[int]float64 {
	if h.WeatherStore == nil || zipCode == "" {
		return nil
	}

	location, err := h.WeatherStore.FindNearestLocation(ctx, zipCode, state)
	if err != nil {
		log.Printf("No weather location for zip %s: %v", zipCode, err)
		return nil
	}

	monthly, err := h.WeatherStore.GetMonthlyDegreeDays(ctx, location.LocationID)
	if err != nil {
		log.Printf("Error loading monthly degree days for %s: %v", location.LocationID, err)
		return nil
	}

	return analysis.SeasonalAdjustmentFactors(monthly)
}
