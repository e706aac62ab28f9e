package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"wattwise/api/models"
)

type AuditStore struct {
	db *sql.DB
}

func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

const auditColumns = `id, user_id, square_footage, year_built, occupants, zip_code, state,
		heating_system, heating_system_age, heating_efficiency, cooling_system, cooling_efficiency,
		bulbs_incandescent, bulbs_cfl, bulbs_led, monthly_usage_kwh, monthly_cost,
		hvac_score, lighting_score, overall_score, estimated_annual_usage_kwh, estimated_annual_cost,
		created_at, updated_at`

// CreateAudit inserts a new audit row. The derived scores on the model
// must already be filled in by the caller.
func (s *AuditStore) CreateAudit(ctx context.Context, audit *models.EnergyAudit) (*models.EnergyAudit, error) {
	if audit.ID == "" {
		audit.ID = uuid.New().String()
	}

	query := `
		INSERT INTO energy_audits (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, now(), now())
		RETURNING created_at, updated_at;
	`
	err := s.db.QueryRowContext(ctx, query,
		audit.ID, audit.UserID, audit.SquareFootage, audit.YearBuilt, audit.Occupants,
		audit.ZipCode, audit.State,
		audit.HeatingSystem, audit.HeatingSystemAge, audit.HeatingEfficiency,
		audit.CoolingSystem, audit.CoolingEfficiency,
		audit.BulbsIncandescent, audit.BulbsCFL, audit.BulbsLED,
		audit.MonthlyUsageKWh, audit.MonthlyCost,
		audit.HVACScore, audit.LightingScore, audit.OverallScore,
		audit.EstimatedAnnualKWh, audit.EstimatedAnnualCost,
	).Scan(&audit.CreatedAt, &audit.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit: %w", err)
	}

	log.Printf("Audit created in DB: ID=%s, UserID=%d", audit.ID, audit.UserID)
	return audit, nil
}

func scanAudit(row interface{ Scan(...interface{}) error }) (*models.EnergyAudit, error) {
	a := &models.EnergyAudit{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.SquareFootage, &a.YearBuilt, &a.Occupants, &a.ZipCode, &a.State,
		&a.HeatingSystem, &a.HeatingSystemAge, &a.HeatingEfficiency, &a.CoolingSystem, &a.CoolingEfficiency,
		&a.BulbsIncandescent, &a.BulbsCFL, &a.BulbsLED, &a.MonthlyUsageKWh, &a.MonthlyCost,
		&a.HVACScore, &a.LightingScore, &a.OverallScore, &a.EstimatedAnnualKWh, &a.EstimatedAnnualCost,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAudit fetches an audit by id, scoped to its owner.
func (s *AuditStore) GetAudit(ctx context.Context, auditID string, userID int) (*models.EnergyAudit, error) {
	query := `SELECT ` + auditColumns + ` FROM energy_audits WHERE id = $1 AND user_id = $2;`
	audit, err := scanAudit(s.db.QueryRowContext(ctx, query, auditID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("audit '%s' not found", auditID)
		}
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}
	return audit, nil
}

// ListAudits returns a page of the user's audits, most recent first.
func (s *AuditStore) ListAudits(ctx context.Context, userID, limit, offset int) ([]models.EnergyAudit, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + auditColumns + ` FROM energy_audits
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var audits []models.EnergyAudit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			log.Printf("Error scanning audit row: %v", err)
			continue
		}
		audits = append(audits, *audit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing audits: %w", err)
	}

	return audits, nil
}

func (s *AuditStore) DeleteAudit(ctx context.Context, auditID string, userID int) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM energy_audits WHERE id = $1 AND user_id = $2;`, auditID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete audit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("audit '%s' not found", auditID)
	}

	log.Printf("Audit deleted: ID=%s, UserID=%d", auditID, userID)
	return nil
}

// CountAuditsForUser backs the badge threshold checks.
func (s *AuditStore) CountAuditsForUser(ctx context.Context, userID int) (uint64, error) {
	var count uint64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM energy_audits WHERE user_id = $1;`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audits: %w", err)
	}
	return count, nil
}
