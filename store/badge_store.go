package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"wattwise/api/models"
)

// badgeDef ties a badge to the activity types that can advance it and the
// metric threshold that earns it.
type badgeDef struct {
	Key          string
	ActivityType string
	Threshold    float64
	Points       int
	metric       func(*BadgeStore, context.Context, int) (float64, error)
}

var badgeDefs = []badgeDef{
	{Key: "first_audit", ActivityType: "audit_completed", Threshold: 1, Points: 10, metric: (*BadgeStore).auditCount},
	{Key: "audit_veteran", ActivityType: "audit_completed", Threshold: 5, Points: 50, metric: (*BadgeStore).auditCount},
	{Key: "first_implementation", ActivityType: "recommendation_implemented", Threshold: 1, Points: 25, metric: (*BadgeStore).implementedCount},
	{Key: "savings_hunter", ActivityType: "recommendation_implemented", Threshold: 500, Points: 75, metric: (*BadgeStore).estimatedSavingsSum},
	{Key: "voice_heard", ActivityType: "survey_submitted", Threshold: 1, Points: 5, metric: (*BadgeStore).surveyCount},
}

type BadgeStore struct {
	db *sql.DB
}

func NewBadgeStore(db *sql.DB) *BadgeStore {
	return &BadgeStore{db: db}
}

func (s *BadgeStore) auditCount(ctx context.Context, userID int) (float64, error) {
	var count float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM energy_audits WHERE user_id = $1;`, userID).Scan(&count)
	return count, err
}

func (s *BadgeStore) implementedCount(ctx context.Context, userID int) (float64, error) {
	var count float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM audit_recommendations r
		JOIN energy_audits a ON a.id = r.audit_id
		WHERE a.user_id = $1 AND r.status = 'implemented';`, userID).Scan(&count)
	return count, err
}

func (s *BadgeStore) estimatedSavingsSum(ctx context.Context, userID int) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(r.estimated_savings)
		FROM audit_recommendations r
		JOIN energy_audits a ON a.id = r.audit_id
		WHERE a.user_id = $1;`, userID).Scan(&total)
	return total.Float64, err
}

func (s *BadgeStore) surveyCount(ctx context.Context, userID int) (float64, error) {
	var count float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM survey_responses WHERE user_id = $1;`, userID).Scan(&count)
	return count, err
}

// EvaluateRelevantBadges checks every badge tied to the given activity
// type against its COUNT/SUM metric and awards the ones whose threshold
// is met. The earned flag is monotonic: the upsert only ever sets it.
// Returns the keys of newly earned badges.
func (s *BadgeStore) EvaluateRelevantBadges(ctx context.Context, userID int, activityType string) ([]string, error) {
	var earned []string

	for _, def := range badgeDefs {
		if def.ActivityType != activityType {
			continue
		}

		value, err := def.metric(s, ctx, userID)
		if err != nil {
			log.Printf("Error evaluating badge %s for user %d: %v", def.Key, userID, err)
			continue
		}

		progress := value / def.Threshold
		if progress > 1 {
			progress = 1
		}

		if value >= def.Threshold {
			newlyEarned, err := s.award(ctx, userID, def.Key, def.Points, progress)
			if err != nil {
				log.Printf("Error awarding badge %s to user %d: %v", def.Key, userID, err)
				continue
			}
			if newlyEarned {
				earned = append(earned, def.Key)
				log.Printf("Badge earned: user=%d badge=%s points=%d", userID, def.Key, def.Points)
			}
		} else {
			if err := s.upsertProgress(ctx, userID, def.Key, progress); err != nil {
				log.Printf("Error recording badge progress %s for user %d: %v", def.Key, userID, err)
			}
		}
	}

	return earned, nil
}

// award sets earned/points/progress. The WHERE on the conflict branch
// keeps an already-earned badge untouched, so earned never flips back.
func (s *BadgeStore) award(ctx context.Context, userID int, badgeKey string, points int, progress float64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO user_badges (user_id, badge_key, earned, points, progress, earned_at)
		VALUES ($1, $2, TRUE, $3, $4, now())
		ON CONFLICT (user_id, badge_key) DO UPDATE
		SET earned = TRUE, points = EXCLUDED.points, progress = EXCLUDED.progress, earned_at = now()
		WHERE user_badges.earned = FALSE;`,
		userID, badgeKey, points, progress)
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check award result: %w", err)
	}
	return affected > 0, nil
}

func (s *BadgeStore) upsertProgress(ctx context.Context, userID int, badgeKey string, progress float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_badges (user_id, badge_key, earned, points, progress)
		VALUES ($1, $2, FALSE, 0, $3)
		ON CONFLICT (user_id, badge_key) DO UPDATE
		SET progress = GREATEST(user_badges.progress, EXCLUDED.progress);`,
		userID, badgeKey, progress)
	if err != nil {
		return fmt.Errorf("failed to record badge progress: %w", err)
	}
	return nil
}

func (s *BadgeStore) ListForUser(ctx context.Context, userID int) ([]models.UserBadge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, badge_key, earned, points, progress, earned_at
		FROM user_badges WHERE user_id = $1 ORDER BY id;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []models.UserBadge
	for rows.Next() {
		var b models.UserBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeKey, &b.Earned, &b.Points, &b.Progress, &b.EarnedAt); err != nil {
			log.Printf("Error scanning badge row: %v", err)
			continue
		}
		badges = append(badges, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing badges: %w", err)
	}

	return badges, nil
}

func (s *BadgeStore) TotalPoints(ctx context.Context, userID int) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(points) FROM user_badges WHERE user_id = $1 AND earned = TRUE;`,
		userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum badge points: %w", err)
	}
	return int(total.Int64), nil
}
