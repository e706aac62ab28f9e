package models

import (
	"encoding/json"
	"time"
)

// AnalyticsEvent represents a single client-emitted interaction record.
type AnalyticsEvent struct {
	EventID    string          `json:"eventId"`
	EventType  string          `json:"eventType"`
	UserID     string          `json:"userId"`
	SessionID  string          `json:"sessionId"`
	Timestamp  time.Time       `json:"timestamp"`
	PagePath   string          `json:"pagePath"`
	Referrer   string          `json:"referrer"`
	UserAgent  string          `json:"userAgent"`
	IPAddress  string          `json:"ipAddress"`
	DurationMs int64           `json:"durationMs"`
	EventData  json.RawMessage `json:"eventData,omitempty"`
}

// AnalyticsSession groups events under a client-generated session id. The
// event count is only ever incremented, inside the same transaction that
// touches last_seen.
type AnalyticsSession struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	EventCount int       `json:"eventCount"`
	FirstSeen  time.Time `json:"firstSeen"`
	LastSeen   time.Time `json:"lastSeen"`
}

type TopPathResult struct {
	PagePath string `json:"pagePath"`
	Count    uint64 `json:"count"`
}

// PlatformMetrics is the merged result of the five platform-level
// COUNT/AVG queries.
type PlatformMetrics struct {
	TotalUsers          uint64  `json:"totalUsers"`
	TotalAudits         uint64  `json:"totalAudits"`
	TotalEvents         uint64  `json:"totalEvents"`
	ActiveSessions      uint64  `json:"activeSessions"`
	AvgEventsPerSession float64 `json:"avgEventsPerSession"`
}
