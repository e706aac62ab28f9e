package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"wattwise/api/models"
)

const platformMetricsCacheKey = "platform_metrics"

// MetricsStore serves the platform-wide metrics view. The five underlying
// COUNT/AVG queries run concurrently and the merged result sits behind a
// short TTL so dashboards don't hammer both databases.
type MetricsStore struct {
	db       *sql.DB
	events   *EventStore
	sessions *SessionStore
	cache    *gocache.Cache
}

func NewMetricsStore(db *sql.DB, events *EventStore, sessions *SessionStore) *MetricsStore {
	return &MetricsStore{
		db:       db,
		events:   events,
		sessions: sessions,
		cache:    gocache.New(60*time.Second, 5*time.Minute),
	}
}

func (s *MetricsStore) GetPlatformMetrics(ctx context.Context) (*models.PlatformMetrics, error) {
	if cached, found := s.cache.Get(platformMetricsCacheKey); found {
		if metrics, ok := cached.(*models.PlatformMetrics); ok {
			return metrics, nil
		}
	}

	metrics := &models.PlatformMetrics{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.db.QueryRowContext(gctx, `SELECT COUNT(*) FROM users;`).Scan(&metrics.TotalUsers)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := s.db.QueryRowContext(gctx, `SELECT COUNT(*) FROM energy_audits;`).Scan(&metrics.TotalAudits)
		if err != nil {
			return fmt.Errorf("failed to count audits: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		count, err := s.events.CountEvents(gctx)
		if err != nil {
			return err
		}
		metrics.TotalEvents = count
		return nil
	})
	g.Go(func() error {
		count, err := s.sessions.CountActiveSessions(gctx)
		if err != nil {
			return err
		}
		metrics.ActiveSessions = count
		return nil
	})
	g.Go(func() error {
		avg, err := s.sessions.AvgEventsPerSession(gctx)
		if err != nil {
			return err
		}
		metrics.AvgEventsPerSession = avg
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("Error collecting platform metrics: %v", err)
		// Degrade to whatever was gathered rather than failing the request.
		return metrics, nil
	}

	s.cache.Set(platformMetricsCacheKey, metrics, gocache.DefaultExpiration)
	return metrics, nil
}
