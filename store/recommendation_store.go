package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"wattwise/api/models"
)

type RecommendationStore struct {
	db *sql.DB
}

func NewRecommendationStore(db *sql.DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

const recColumns = `id, audit_id, category, priority, title, description, status,
		estimated_cost, actual_cost, estimated_savings, actual_savings, payback_years,
		monthly_savings, created_at, updated_at`

func scanRecommendation(row interface{ Scan(...interface{}) error }) (*models.Recommendation, error) {
	r := &models.Recommendation{}
	var monthlyRaw []byte
	err := row.Scan(
		&r.ID, &r.AuditID, &r.Category, &r.Priority, &r.Title, &r.Description, &r.Status,
		&r.EstimatedCost, &r.ActualCost, &r.EstimatedSavings, &r.ActualSavings, &r.PaybackYears,
		&monthlyRaw, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(monthlyRaw) > 0 {
		if err := json.Unmarshal(monthlyRaw, &r.MonthlySavings); err != nil {
			log.Printf("Error decoding monthly savings for recommendation %s: %v", r.ID, err)
			r.MonthlySavings = nil
		}
	}
	return r, nil
}

// CreateRecommendations inserts the generated recommendations for an audit.
func (s *RecommendationStore) CreateRecommendations(ctx context.Context, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	query := `
		INSERT INTO audit_recommendations
			(id, audit_id, category, priority, title, description, status,
			 estimated_cost, estimated_savings, payback_years, monthly_savings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for i := range recs {
		rec := &recs[i]
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.Status == "" {
			rec.Status = models.RecStatusActive
		}
		monthly, err := json.Marshal(rec.MonthlySavings)
		if err != nil {
			monthly = []byte("[]")
		}
		if _, err := s.db.ExecContext(ctx, query,
			rec.ID, rec.AuditID, rec.Category, rec.Priority, rec.Title, rec.Description,
			rec.Status, rec.EstimatedCost, rec.EstimatedSavings, rec.PaybackYears, monthly,
		); err != nil {
			return fmt.Errorf("failed to insert recommendation '%s': %w", rec.Title, err)
		}
	}

	log.Printf("Inserted %d recommendations for audit %s.", len(recs), recs[0].AuditID)
	return nil
}

// ListForAudit returns all recommendations belonging to one audit.
func (s *RecommendationStore) ListForAudit(ctx context.Context, auditID string) ([]models.Recommendation, error) {
	query := `SELECT ` + recColumns + ` FROM audit_recommendations
		WHERE audit_id = $1 ORDER BY created_at ASC;`
	rows, err := s.db.QueryContext(ctx, query, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			log.Printf("Error scanning recommendation row: %v", err)
			continue
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing recommendations: %w", err)
	}

	return recs, nil
}

// UpdateStatus is owner-scoped: the update joins through the parent
// audit, so a recommendation id belonging to another user's audit
// reports not-found.
func (s *RecommendationStore) UpdateStatus(ctx context.Context, recID string, userID int, status string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE audit_recommendations SET status = $1, updated_at = now()
		FROM energy_audits
		WHERE audit_recommendations.id = $2
		  AND energy_audits.id = audit_recommendations.audit_id
		  AND energy_audits.user_id = $3;`,
		status, recID, userID)
	if err != nil {
		return fmt.Errorf("failed to update recommendation status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recommendation '%s' not found", recID)
	}

	return nil
}

// UpdateSavings writes the actual savings figure and its monthly breakdown
// together inside one transaction, so a partial write never survives.
func (s *RecommendationStore) UpdateSavings(ctx context.Context, recID string, userID int, actualSavings, actualCost float64, monthlySavings []float64) error {
	monthly, err := json.Marshal(monthlySavings)
	if err != nil {
		return fmt.Errorf("failed to encode monthly savings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE audit_recommendations
		SET actual_savings = $1, actual_cost = $2, updated_at = now()
		FROM energy_audits
		WHERE audit_recommendations.id = $3
		  AND energy_audits.id = audit_recommendations.audit_id
		  AND energy_audits.user_id = $4;`,
		actualSavings, actualCost, recID, userID)
	if err != nil {
		return fmt.Errorf("failed to update actual savings: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check savings update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recommendation '%s' not found", recID)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE audit_recommendations SET monthly_savings = $1 WHERE id = $2;`,
		monthly, recID); err != nil {
		return fmt.Errorf("failed to update monthly breakdown: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit savings update: %w", err)
	}

	log.Printf("Savings updated for recommendation %s: actual=%.2f", recID, actualSavings)
	return nil
}

// CountImplementedForUser and SumEstimatedSavingsForUser back the badge
// threshold checks and the dashboard.
func (s *RecommendationStore) CountImplementedForUser(ctx context.Context, userID int) (uint64, error) {
	var count uint64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM audit_recommendations r
		JOIN energy_audits a ON a.id = r.audit_id
		WHERE a.user_id = $1 AND r.status = 'implemented';`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count implemented recommendations: %w", err)
	}
	return count, nil
}

func (s *RecommendationStore) SumEstimatedSavingsForUser(ctx context.Context, userID int) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(r.estimated_savings)
		FROM audit_recommendations r
		JOIN energy_audits a ON a.id = r.audit_id
		WHERE a.user_id = $1;`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum estimated savings: %w", err)
	}
	return total.Float64, nil
}

func (s *RecommendationStore) SumActualSavingsForUser(ctx context.Context, userID int) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(r.actual_savings)
		FROM audit_recommendations r
		JOIN energy_audits a ON a.id = r.audit_id
		WHERE a.user_id = $1 AND r.actual_savings IS NOT NULL;`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum actual savings: %w", err)
	}
	return total.Float64, nil
}
