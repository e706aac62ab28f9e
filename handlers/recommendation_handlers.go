package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wattwise/api/models"
	"wattwise/api/store"
	"wattwise/api/utils"
)

type RecommendationHandlers struct {
	RecStore   *store.RecommendationStore
	BadgeStore *store.BadgeStore
}

func NewRecommendationHandlers(recs *store.RecommendationStore, badges *store.BadgeStore) *RecommendationHandlers {
	return &RecommendationHandlers{RecStore: recs, BadgeStore: badges}
}

func (h *RecommendationHandlers) UpdateStatus(c *gin.Context) {
	recID := c.Param("id")
	if !utils.IsValidUUID(recID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recommendation id"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateRecommendationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if !models.IsValidRecStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.RecStore.UpdateStatus(ctx, recID, userID, req.Status); err != nil {
		log.Printf("Error updating status for recommendation %s: %v", recID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Recommendation not found"})
		return
	}

	if req.Status == models.RecStatusImplemented {
		if _, err := h.BadgeStore.EvaluateRelevantBadges(ctx, userID, "recommendation_implemented"); err != nil {
			log.Printf("Error evaluating badges after implementation: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}

// UpdateSavings writes the actual savings and the 12-month breakdown in
// one transaction via the store.
func (h *RecommendationHandlers) UpdateSavings(c *gin.Context) {
	recID := c.Param("id")
	if !utils.IsValidUUID(recID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recommendation id"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if len(req.MonthlySavings) != 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monthlySavings must contain exactly 12 values"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.RecStore.UpdateSavings(ctx, recID, userID, req.ActualSavings, req.ActualCost, req.MonthlySavings); err != nil {
		log.Printf("Error updating savings for recommendation %s: %v", recID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update savings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Savings updated"})
}
