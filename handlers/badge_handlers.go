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

type BadgeHandlers struct {
	BadgeStore *store.BadgeStore
}

func NewBadgeHandlers(badges *store.BadgeStore) *BadgeHandlers {
	return &BadgeHandlers{BadgeStore: badges}
}

func (h *BadgeHandlers) ListBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	badges, err := h.BadgeStore.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("Error listing badges for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list badges"})
		return
	}

	points, err := h.BadgeStore.TotalPoints(ctx, userID)
	if err != nil {
		log.Printf("Error summing badge points for user %d: %v", userID, err)
		points = 0
	}

	if badges == nil {
		badges = []models.UserBadge{}
	}
	c.JSON(http.StatusOK, gin.H{
		"badges":      badges,
		"totalPoints": points,
	})
}
