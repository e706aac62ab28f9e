package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wattwise/api/models"
	"wattwise/api/store"
	"wattwise/api/utils"
)

type AnalyticsHandlers struct {
	EventStore   *store.EventStore
	SessionStore *store.SessionStore
	MetricsStore *store.MetricsStore
}

func NewAnalyticsHandlers(events *store.EventStore, sessions *store.SessionStore, metrics *store.MetricsStore) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		EventStore:   events,
		SessionStore: sessions,
		MetricsStore: metrics,
	}
}

// TrackEvent ingests a batch of client events. The session id is
// validated before anything is inserted; events without a type are
// skipped rather than failing the batch.
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	var incomingEvents []models.AnalyticsEvent
	if err := c.ShouldBindJSON(&incomingEvents); err != nil {
		log.Printf("Error binding incoming analytics JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(incomingEvents) == 0 {
		c.Status(http.StatusOK)
		return
	}

	sessionID := incomingEvents[0].SessionID
	if !utils.IsValidUUID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	var eventsToInsert []models.AnalyticsEvent
	for _, event := range incomingEvents {
		if event.EventType == "" {
			log.Printf("Skipping event without a type (session %s)", sessionID)
			continue
		}
		event.EventID = uuid.New().String()
		event.SessionID = sessionID
		event.IPAddress = c.ClientIP()
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}

		eventsToInsert = append(eventsToInsert, event)
	}

	if len(eventsToInsert) == 0 {
		c.Status(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.EventStore.InsertEvents(ctx, eventsToInsert); err != nil {
		log.Printf("Error inserting analytics events into ClickHouse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record analytics events"})
		return
	}

	// Session bookkeeping: increment by exactly the number of events that
	// made it into the batch.
	if err := h.SessionStore.RecordEvents(ctx, sessionID, eventsToInsert[0].UserID, len(eventsToInsert)); err != nil {
		log.Printf("Error updating session %s bookkeeping: %v", sessionID, err)
	}

	c.Status(http.StatusOK)
}

func (h *AnalyticsHandlers) GetEventCountsOverTime(c *gin.Context) {
	interval := c.Query("interval")
	if interval == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interval query parameter is required (e.g., 'Day', 'Hour')"})
		return
	}

	eventTypeFilter := c.Query("eventType")

	start, end, err := utils.ParseTimeRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.EventStore.GetEventCountsOverTime(ctx, interval, start, end, eventTypeFilter)
	if err != nil {
		log.Printf("Error getting event counts over time: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event statistics"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *AnalyticsHandlers) GetAverageEventDuration(c *gin.Context) {
	eventTypeFilter := c.Query("eventType")

	start, end, err := utils.ParseTimeRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	avgDuration, err := h.EventStore.GetAverageEventDuration(ctx, eventTypeFilter, start, end)
	if err != nil {
		log.Printf("Error getting average event duration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve average event duration statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eventType":         eventTypeFilter,
		"startDate":         start.Format(time.RFC3339),
		"endDate":           end.Format(time.RFC3339),
		"averageDurationMs": avgDuration,
	})
}

func (h *AnalyticsHandlers) GetAverageCustomEventParameter(c *gin.Context) {
	eventTypeFilter := c.Query("eventType")
	paramName := c.Query("paramName")

	if eventTypeFilter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventType query parameter is required"})
		return
	}
	if paramName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramName query parameter is required (e.g., 'revenue', 'score')"})
		return
	}

	start, end, err := utils.ParseTimeRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	avgValue, err := h.EventStore.GetAverageCustomEventParameter(ctx, eventTypeFilter, paramName, start, end)
	if err != nil {
		log.Printf("Error getting average of custom event parameter '%s' for eventType '%s': %v", paramName, eventTypeFilter, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve average custom event parameter statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eventType":    eventTypeFilter,
		"paramName":    paramName,
		"startDate":    start.Format(time.RFC3339),
		"endDate":      end.Format(time.RFC3339),
		"averageValue": avgValue,
	})
}

func (h *AnalyticsHandlers) GetUniqueUsersOverTime(c *gin.Context) {
	interval := c.Query("interval")
	if interval == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interval query parameter is required (e.g., 'Day', 'Hour')"})
		return
	}

	start, end, err := utils.ParseTimeRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.EventStore.GetUniqueUsersOverTime(ctx, interval, start, end)
	if err != nil {
		log.Printf("Error getting unique users over time: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve unique user statistics"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *AnalyticsHandlers) GetTopNPagePaths(c *gin.Context) {
	start, end, err := utils.ParseTimeRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
		return
	}

	var limit uint64 = 10
	limitParam := c.Query("limit")
	if limitParam != "" {
		parsedLimit, err := strconv.ParseUint(limitParam, 10, 64)
		if err != nil || parsedLimit == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsedLimit
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.EventStore.GetTopNPagePaths(ctx, start, end, limit)
	if err != nil {
		log.Printf("Error getting top page paths: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top page paths statistics"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *AnalyticsHandlers) GetPlatformMetrics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	metrics, err := h.MetricsStore.GetPlatformMetrics(ctx)
	if err != nil {
		log.Printf("Error getting platform metrics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve platform metrics"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
