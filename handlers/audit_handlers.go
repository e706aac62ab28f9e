package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wattwise/api/analysis"
	"wattwise/api/mailer"
	"wattwise/api/models"
	"wattwise/api/store"
	"wattwise/api/utils"
)

type AuditHandlers struct {
	AuditStore   *store.AuditStore
	RecStore     *store.RecommendationStore
	BadgeStore   *store.BadgeStore
	WeatherStore *store.WeatherStore
	Mailer       *mailer.Mailer
}

func NewAuditHandlers(audits *store.AuditStore, recs *store.RecommendationStore, badges *store.BadgeStore, weather *store.WeatherStore, m *mailer.Mailer) *AuditHandlers {
	return &AuditHandlers{AuditStore: audits, RecStore: recs, BadgeStore: badges, WeatherStore: weather, Mailer: m}
}

// Generic annual degree days used when an audit's location cannot be
// matched to the weather dataset.
const (
	genericAnnualHDD = 300 * 12
	genericAnnualCDD = 100 * 12
)

// CreateAudit validates the submission, computes the derived scores,
// persists the audit, and generates its recommendations.
func (h *AuditHandlers) CreateAudit(c *gin.Context) {
	var req models.CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	audit := buildAudit(userID, req)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	created, err := h.AuditStore.CreateAudit(ctx, audit)
	if err != nil {
		log.Printf("Error creating audit for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save audit"})
		return
	}

	hdd, cdd := h.annualDegreeDays(ctx, created.ZipCode, created.State)
	recs := buildRecommendations(created, hdd, cdd)
	if err := h.RecStore.CreateRecommendations(ctx, recs); err != nil {
		// The audit itself is saved; recommendations can be regenerated.
		log.Printf("Error generating recommendations for audit %s: %v", created.ID, err)
		recs = nil
	}

	if _, err := h.BadgeStore.EvaluateRelevantBadges(ctx, userID, "audit_completed"); err != nil {
		log.Printf("Error evaluating badges after audit %s: %v", created.ID, err)
	}

	// The report is available as soon as the audit and its
	// recommendations exist; the notification is best-effort.
	if email := c.GetString("user_email"); h.Mailer != nil && email != "" {
		var totalSavings float64
		for _, rec := range recs {
			totalSavings += rec.EstimatedSavings
		}
		if err := h.Mailer.SendReportReady(email, created.ID, totalSavings); err != nil {
			log.Printf("Report-ready email failed for %s: %v", email, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"audit":           created,
		"recommendations": recs,
	})
}

func (h *AuditHandlers) GetAudit(c *gin.Context) {
	auditID := c.Param("id")
	if !utils.IsValidUUID(auditID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audit id"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	audit, err := h.AuditStore.GetAudit(ctx, auditID, userID)
	if err != nil {
		log.Printf("Error fetching audit %s for user %d: %v", auditID, userID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
		return
	}

	recs, err := h.RecStore.ListForAudit(ctx, auditID)
	if err != nil {
		log.Printf("Error listing recommendations for audit %s: %v", auditID, err)
		recs = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"audit":           audit,
		"recommendations": recs,
	})
}

func (h *AuditHandlers) ListAudits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	audits, err := h.AuditStore.ListAudits(ctx, userID, limit, offset)
	if err != nil {
		log.Printf("Error listing audits for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audits"})
		return
	}

	if audits == nil {
		audits = []models.EnergyAudit{}
	}
	c.JSON(http.StatusOK, audits)
}

func (h *AuditHandlers) DeleteAudit(c *gin.Context) {
	auditID := c.Param("id")
	if !utils.IsValidUUID(auditID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audit id"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.AuditStore.DeleteAudit(ctx, auditID, userID); err != nil {
		log.Printf("Error deleting audit %s for user %d: %v", auditID, userID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audit deleted"})
}

// buildAudit fills in every derived metric from the raw submission.
func buildAudit(userID int, req models.CreateAuditRequest) *models.EnergyAudit {
	hvacScore := analysis.HVACScore(req.HeatingEfficiency, req.CoolingEfficiency, req.HeatingSystemAge)
	lightingScore := analysis.LightingScore(req.BulbsIncandescent, req.BulbsCFL, req.BulbsLED)
	annualKWh := analysis.EstimatedAnnualUsage(req.MonthlyUsageKWh, req.SquareFootage)

	return &models.EnergyAudit{
		UserID:              userID,
		SquareFootage:       req.SquareFootage,
		YearBuilt:           req.YearBuilt,
		Occupants:           req.Occupants,
		ZipCode:             req.ZipCode,
		State:               req.State,
		HeatingSystem:       req.HeatingSystem,
		HeatingSystemAge:    req.HeatingSystemAge,
		HeatingEfficiency:   req.HeatingEfficiency,
		CoolingSystem:       req.CoolingSystem,
		CoolingEfficiency:   req.CoolingEfficiency,
		BulbsIncandescent:   req.BulbsIncandescent,
		BulbsCFL:            req.BulbsCFL,
		BulbsLED:            req.BulbsLED,
		MonthlyUsageKWh:     req.MonthlyUsageKWh,
		MonthlyCost:         req.MonthlyCost,
		HVACScore:           hvacScore,
		LightingScore:       lightingScore,
		OverallScore:        analysis.OverallScore(hvacScore, lightingScore),
		EstimatedAnnualKWh:  annualKWh,
		EstimatedAnnualCost: analysis.EstimatedAnnualCost(req.MonthlyCost, annualKWh),
	}
}

// annualDegreeDays resolves the audit's location against the weather
// dataset and aggregates heating/cooling degree days for the trailing
// year. Audits with no matchable location get the generic totals.
func (h *AuditHandlers) annualDegreeDays(ctx context.Context, zipCode, state string) (hdd, cdd float64) {
	if h.WeatherStore == nil || zipCode == "" {
		return genericAnnualHDD, genericAnnualCDD
	}

	location, err := h.WeatherStore.FindNearestLocation(ctx, zipCode, state)
	if err != nil {
		log.Printf("No weather location for zip %s: %v", zipCode, err)
		return genericAnnualHDD, genericAnnualCDD
	}

	end := time.Now().UTC()
	degreeDays, err := h.WeatherStore.GetDegreeDays(ctx, location.LocationID, end.AddDate(-1, 0, 0), end)
	if err != nil {
		log.Printf("Error aggregating degree days for %s: %v", location.LocationID, err)
		return genericAnnualHDD, genericAnnualCDD
	}

	return degreeDays.TotalHDD, degreeDays.TotalCDD
}

// buildRecommendations maps low scores to concrete upgrade suggestions.
func buildRecommendations(audit *models.EnergyAudit, annualHDD, annualCDD float64) []models.Recommendation {
	var recs []models.Recommendation

	if audit.HVACScore < 70 {
		// Savings scale with the local climate load and how far the
		// system is from a modern one.
		impact := analysis.WeatherImpactForHVAC(
			annualHDD, annualCDD,
			audit.SquareFootage, audit.HeatingEfficiency)
		cost := audit.SquareFootage * 3.5
		recs = append(recs, models.Recommendation{
			AuditID:          audit.ID,
			Category:         "hvac",
			Priority:         "high",
			Title:            "Upgrade HVAC system",
			Description:      "Your heating and cooling setup scores below average for its age and efficiency. A modern high-efficiency system would cut the largest share of your energy bill.",
			EstimatedCost:    cost,
			EstimatedSavings: impact.PotentialAnnualSavings,
			PaybackYears:     analysis.PaybackYears(cost, impact.PotentialAnnualSavings),
		})
	}

	if audit.BulbsIncandescent+audit.BulbsCFL > 0 && audit.LightingScore < 80 {
		savings := analysis.LEDConversionSavings(audit.BulbsIncandescent, audit.BulbsCFL)
		cost := float64(audit.BulbsIncandescent+audit.BulbsCFL) * 4.0
		recs = append(recs, models.Recommendation{
			AuditID:          audit.ID,
			Category:         "lighting",
			Priority:         "medium",
			Title:            "Replace remaining bulbs with LEDs",
			Description:      "Swapping the remaining incandescent and CFL bulbs for LEDs reduces lighting energy use by up to 85% with no change in light output.",
			EstimatedCost:    cost,
			EstimatedSavings: savings,
			PaybackYears:     analysis.PaybackYears(cost, savings),
		})
	}

	if audit.YearBuilt > 0 && audit.YearBuilt < 1990 {
		cost := audit.SquareFootage * 1.2
		savings := audit.EstimatedAnnualCost * 0.12
		recs = append(recs, models.Recommendation{
			AuditID:          audit.ID,
			Category:         "insulation",
			Priority:         "medium",
			Title:            "Improve attic and wall insulation",
			Description:      "Homes built before 1990 typically fall short of current insulation standards. Air sealing and added insulation reduce both heating and cooling load.",
			EstimatedCost:    cost,
			EstimatedSavings: savings,
			PaybackYears:     analysis.PaybackYears(cost, savings),
		})
	}

	return recs
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
