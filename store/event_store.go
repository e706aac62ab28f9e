package store

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"wattwise/api/database"
	"wattwise/api/models"
	"wattwise/api/utils"
)

// EventStore reads and writes the ClickHouse analytics_events table.
type EventStore struct {
	DB *database.ClickHouseClient
}

type EventTypeCountByTime struct {
	Time      time.Time `json:"time"`
	EventType *string   `json:"eventType,omitempty"`
	Count     uint64    `json:"count"`
}

func NewEventStore(chClient *database.ClickHouseClient) *EventStore {
	return &EventStore{DB: chClient}
}

func (s *EventStore) InsertEvents(ctx context.Context, events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column names and order must exactly match the ClickHouse table schema.
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO analytics_events (
			event_id, event_type, user_id, session_id, timestamp, page_path, referrer, user_agent,
			ip_address, duration_ms, event_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.EventID,
			event.EventType,
			event.UserID,
			event.SessionID,
			event.Timestamp,
			event.PagePath,
			event.Referrer,
			event.UserAgent,
			event.IPAddress,
			event.DurationMs,
			string(event.EventData),
		)
		if err != nil {
			log.Printf("Error appending event to batch (EventID: %s): %v", event.EventID, err)
		}
	}

	err = batch.Send()
	if err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Successfully inserted %d analytics events.", len(events))
	return nil
}

func (s *EventStore) GetEventCountsOverTime(ctx context.Context, interval string, start, end time.Time, eventTypeFilter string) ([]EventTypeCountByTime, error) {
	var query string
	var args []interface{}
	args = append(args, start, end)

	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	// Dynamically build SELECT, GROUP BY, and WHERE clauses
	selectCols := fmt.Sprintf("toStartOf%s(timestamp) as time_bucket, count() as total_events", interval)
	groupByCols := "time_bucket"
	whereClause := "WHERE timestamp >= ? AND timestamp <= ?"
	orderByCols := "time_bucket ASC"
	isFilteringByType := eventTypeFilter != ""

	if isFilteringByType {
		selectCols += ", event_type"
		groupByCols += ", event_type"
		whereClause += " AND event_type = ?"
		args = append(args, eventTypeFilter)
		orderByCols += ", event_type ASC"
	}

	query = fmt.Sprintf(`
		SELECT %s
		FROM analytics_events
		%s
		GROUP BY %s
		ORDER BY %s
	`, selectCols, whereClause, groupByCols, orderByCols)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts over time: %w", err)
	}
	defer rows.Close()

	var results []EventTypeCountByTime
	for rows.Next() {
		var (
			timeBucket    time.Time
			count         uint64
			eventTypeDB   string
			currentResult EventTypeCountByTime
		)

		if isFilteringByType {
			if err := rows.Scan(&timeBucket, &count, &eventTypeDB); err != nil {
				log.Printf("Error scanning row for event counts over time (with type filter): %v", err)
				continue
			}
			currentResult.EventType = &eventTypeDB
		} else {
			if err := rows.Scan(&timeBucket, &count); err != nil {
				log.Printf("Error scanning row for event counts over time (no type filter): %v", err)
				continue
			}
			currentResult.EventType = nil
		}

		currentResult.Time = timeBucket
		currentResult.Count = count
		results = append(results, currentResult)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during event counts over time query: %w", err)
	}

	return results, nil
}

func (s *EventStore) GetAverageEventDuration(ctx context.Context, eventTypeFilter string, start, end time.Time) (float64, error) {
	var query string
	var args []interface{}

	query = `SELECT avg(duration_ms) FROM analytics_events WHERE timestamp >= ? AND timestamp <= ?`
	args = append(args, start, end)

	if eventTypeFilter != "" {
		query += ` AND event_type = ?`
		args = append(args, eventTypeFilter)
	}

	var avgDuration float64
	err := s.DB.Conn.QueryRow(ctx, query, args...).Scan(&avgDuration)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return 0.0, nil
		}
		return 0.0, fmt.Errorf("failed to query average event duration: %w", err)
	}

	// avg() over zero rows yields NaN, which JSON marshalling rejects.
	if math.IsNaN(avgDuration) {
		return 0.0, nil
	}

	return avgDuration, nil
}

func (s *EventStore) GetAverageCustomEventParameter(ctx context.Context, eventTypeFilter, paramName string, start, end time.Time) (float64, error) {
	if paramName == "" {
		return 0.0, fmt.Errorf("parameter name for average calculation cannot be empty")
	}

	// event_data is stored as a JSON string; JSONExtractFloat pulls the
	// requested numeric parameter out of it. The parameter name is bound
	// like any other value, never spliced into the query text.
	query := `
		SELECT avg(JSONExtractFloat(event_data, ?))
		FROM analytics_events
		WHERE event_type = ? AND timestamp >= ? AND timestamp <= ?
	`

	args := []interface{}{paramName, eventTypeFilter, start, end}

	var avgValue float64
	err := s.DB.Conn.QueryRow(ctx, query, args...).Scan(&avgValue)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return 0.0, nil
		}
		return 0.0, fmt.Errorf("failed to query average of custom event parameter '%s': %w", paramName, err)
	}

	if math.IsNaN(avgValue) {
		return 0.0, nil
	}

	return avgValue, nil
}

func (s *EventStore) GetUniqueUsersOverTime(ctx context.Context, interval string, start, end time.Time) ([]EventTypeCountByTime, error) {
	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	query := fmt.Sprintf(`
		SELECT toStartOf%s(timestamp) AS time_bucket, uniq(user_id) AS unique_users
		FROM analytics_events
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY time_bucket
		ORDER BY time_bucket ASC
	`, interval)

	rows, err := s.DB.Conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query unique users over time: %w", err)
	}
	defer rows.Close()

	var results []EventTypeCountByTime
	for rows.Next() {
		var timeBucket time.Time
		var uniqueUsers uint64
		if err := rows.Scan(&timeBucket, &uniqueUsers); err != nil {
			log.Printf("Error scanning row for unique users: %v", err)
			continue
		}
		results = append(results, EventTypeCountByTime{
			Time:  timeBucket,
			Count: uniqueUsers,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for unique users: %w", err)
	}

	return results, nil
}

func (s *EventStore) GetTopNPagePaths(ctx context.Context, start, end time.Time, limit uint64) ([]models.TopPathResult, error) {
	if limit == 0 {
		limit = 10
	}

	query := `
		SELECT page_path, count() as view_count
		FROM analytics_events
		WHERE event_type = 'page_view' AND timestamp >= ? AND timestamp <= ?
		GROUP BY page_path
		ORDER BY view_count DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top page paths: %w", err)
	}
	defer rows.Close()

	var results []models.TopPathResult
	for rows.Next() {
		var pagePath string
		var count uint64
		if err := rows.Scan(&pagePath, &count); err != nil {
			log.Printf("Error scanning row for top page paths: %v", err)
			continue
		}
		results = append(results, models.TopPathResult{
			PagePath: pagePath,
			Count:    count,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top page paths: %w", err)
	}

	return results, nil
}

// CountEvents backs the platform metrics view.
func (s *EventStore) CountEvents(ctx context.Context) (uint64, error) {
	var count uint64
	err := s.DB.Conn.QueryRow(ctx, `SELECT count() FROM analytics_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
