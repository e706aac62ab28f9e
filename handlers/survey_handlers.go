package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wattwise/api/models"
	"wattwise/api/store"
)

type SurveyHandlers struct {
	SurveyStore *store.SurveyStore
	BadgeStore  *store.BadgeStore
}

func NewSurveyHandlers(surveys *store.SurveyStore, badges *store.BadgeStore) *SurveyHandlers {
	return &SurveyHandlers{SurveyStore: surveys, BadgeStore: badges}
}

func (h *SurveyHandlers) SubmitSurvey(c *gin.Context) {
	var req models.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.SurveyStore.SaveResponse(ctx, userID, req)
	if err != nil {
		log.Printf("Error saving survey response for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save survey response"})
		return
	}

	if _, err := h.BadgeStore.EvaluateRelevantBadges(ctx, userID, "survey_submitted"); err != nil {
		log.Printf("Error evaluating badges after survey: %v", err)
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SurveyHandlers) ListSurveys(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	responses, err := h.SurveyStore.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("Error listing survey responses for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list survey responses"})
		return
	}

	if responses == nil {
		responses = []models.SurveyResponse{}
	}
	c.JSON(http.StatusOK, responses)
}
