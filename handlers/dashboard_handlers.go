package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"wattwise/api/models"
	"wattwise/api/store"
)

type DashboardHandlers struct {
	AuditStore  *store.AuditStore
	RecStore    *store.RecommendationStore
	BadgeStore  *store.BadgeStore
	SurveyStore *store.SurveyStore
	cache       *gocache.Cache
}

func NewDashboardHandlers(audits *store.AuditStore, recs *store.RecommendationStore, badges *store.BadgeStore, surveys *store.SurveyStore) *DashboardHandlers {
	return &DashboardHandlers{
		AuditStore:  audits,
		RecStore:    recs,
		BadgeStore:  badges,
		SurveyStore: surveys,
		cache:       gocache.New(60*time.Second, 5*time.Minute),
	}
}

// GetDashboard aggregates the signed-in user's activity, cached per
// user for 60 seconds. Each block is best-effort: a failing query logs
// and leaves its field zero-valued rather than failing the whole
// dashboard.
func (h *DashboardHandlers) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("dashboard:%d", userID)
	if cached, found := h.cache.Get(cacheKey); found {
		if summary, ok := cached.(models.DashboardSummary); ok {
			c.JSON(http.StatusOK, summary)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	summary := models.DashboardSummary{RecentAudits: []models.EnergyAudit{}}

	if count, err := h.AuditStore.CountAuditsForUser(ctx, userID); err != nil {
		log.Printf("Dashboard: error counting audits for user %d: %v", userID, err)
	} else {
		summary.AuditCount = count
	}

	if count, err := h.RecStore.CountImplementedForUser(ctx, userID); err != nil {
		log.Printf("Dashboard: error counting implemented recs for user %d: %v", userID, err)
	} else {
		summary.ImplementedRecCount = count
	}

	if total, err := h.RecStore.SumEstimatedSavingsForUser(ctx, userID); err != nil {
		log.Printf("Dashboard: error summing estimated savings for user %d: %v", userID, err)
	} else {
		summary.TotalEstimatedSavings = total
	}

	if total, err := h.RecStore.SumActualSavingsForUser(ctx, userID); err != nil {
		log.Printf("Dashboard: error summing actual savings for user %d: %v", userID, err)
	} else {
		summary.TotalActualSavings = total
	}

	if points, err := h.BadgeStore.TotalPoints(ctx, userID); err != nil {
		log.Printf("Dashboard: error summing badge points for user %d: %v", userID, err)
	} else {
		summary.BadgePoints = points
	}

	if audits, err := h.AuditStore.ListAudits(ctx, userID, 5, 0); err != nil {
		log.Printf("Dashboard: error listing recent audits for user %d: %v", userID, err)
	} else if audits != nil {
		summary.RecentAudits = audits
	}

	if averages, err := h.SurveyStore.Averages(ctx, userID); err != nil {
		log.Printf("Dashboard: error aggregating surveys for user %d: %v", userID, err)
	} else {
		summary.SurveyAverages = averages
	}

	h.cache.Set(cacheKey, summary, gocache.DefaultExpiration)
	c.JSON(http.StatusOK, summary)
}
