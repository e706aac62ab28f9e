package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"wattwise/api/models"
)

// SessionStore keeps the analytics_sessions bookkeeping rows in Postgres.
// The raw events themselves go to ClickHouse via EventStore.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// RecordEvents upserts the session row and increments its event count by
// exactly eventCount, in a single transaction.
func (s *SessionStore) RecordEvents(ctx context.Context, sessionID, userID string, eventCount int) error {
	if eventCount <= 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO analytics_sessions (id, user_id, event_count, first_seen, last_seen)
		VALUES ($1, $2, 0, now(), now())
		ON CONFLICT (id) DO NOTHING;`, sessionID, userID); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE analytics_sessions
		SET event_count = event_count + $1, last_seen = now()
		WHERE id = $2;`, eventCount, sessionID); err != nil {
		return fmt.Errorf("failed to increment session event count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session transaction: %w", err)
	}

	return nil
}

func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*models.AnalyticsSession, error) {
	session := &models.AnalyticsSession{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, event_count, first_seen, last_seen
		FROM analytics_sessions WHERE id = $1;`, sessionID).Scan(
		&session.ID, &session.UserID, &session.EventCount, &session.FirstSeen, &session.LastSeen,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session '%s' not found", sessionID)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// CountActiveSessions counts sessions seen in the last 24 hours, for the
// platform metrics view.
func (s *SessionStore) CountActiveSessions(ctx context.Context) (uint64, error) {
	var count uint64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM analytics_sessions
		WHERE last_seen >= now() - interval '24 hours';`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return count, nil
}

func (s *SessionStore) AvgEventsPerSession(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(event_count) FROM analytics_sessions;`).Scan(&avg)
	if err != nil {
		log.Printf("Error querying average events per session: %v", err)
		return 0, fmt.Errorf("failed to average events per session: %w", err)
	}
	return avg.Float64, nil
}
