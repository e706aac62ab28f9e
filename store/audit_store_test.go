package store

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wattwise/api/models"
)

func auditColumnNames() []string {
	return []string{
		"id", "user_id", "square_footage", "year_built", "occupants", "zip_code", "state",
		"heating_system", "heating_system_age", "heating_efficiency", "cooling_system", "cooling_efficiency",
		"bulbs_incandescent", "bulbs_cfl", "bulbs_led", "monthly_usage_kwh", "monthly_cost",
		"hvac_score", "lighting_score", "overall_score", "estimated_annual_usage_kwh", "estimated_annual_cost",
		"created_at", "updated_at",
	}
}

func auditRow(id string, userID int) []driver.Value {
	return []driver.Value{
		id, userID, 1800.0, 1985, 3, "80301", "CO",
		"gas furnace", 12, 0.8, "central AC", 0.75,
		10, 5, 5, 900.0, 126.0,
		62.0, 55.0, 60.0, 10800.0, 1512.0,
		testTime(), testTime(),
	}
}

func TestCreateAuditAssignsIDAndTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO energy_audits").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(testTime(), testTime()))

	s := NewAuditStore(db)
	created, err := s.CreateAudit(context.Background(), &models.EnergyAudit{UserID: 7, SquareFootage: 1800})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, testTime(), created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAuditScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	auditID := "c7f2a1fe-4a0b-4b55-9a48-6a2e8f2a3171"
	mock.ExpectQuery("SELECT (.+) FROM energy_audits WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(auditID, 7).
		WillReturnRows(sqlmock.NewRows(auditColumnNames()).AddRow(auditRow(auditID, 7)...))

	s := NewAuditStore(db)
	audit, err := s.GetAudit(context.Background(), auditID, 7)
	require.NoError(t, err)
	assert.Equal(t, auditID, audit.ID)
	assert.Equal(t, 1800.0, audit.SquareFootage)
	assert.Equal(t, 62.0, audit.HVACScore)
}

func TestGetAuditNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM energy_audits").
		WillReturnRows(sqlmock.NewRows(auditColumnNames()))

	_, err = NewAuditStore(db).GetAudit(context.Background(), "missing", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListAuditsClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// limit 5000 and negative offset fall back to 20 and 0.
	mock.ExpectQuery("SELECT (.+) FROM energy_audits").
		WithArgs(7, 20, 0).
		WillReturnRows(sqlmock.NewRows(auditColumnNames()).
			AddRow(auditRow("a1", 7)...).
			AddRow(auditRow("a2", 7)...))

	audits, err := NewAuditStore(db).ListAudits(context.Background(), 7, 5000, -3)
	require.NoError(t, err)
	assert.Len(t, audits, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAuditNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM energy_audits").
		WithArgs("missing", 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewAuditStore(db).DeleteAudit(context.Background(), "missing", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteAudit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM energy_audits").
		WithArgs("a1", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewAuditStore(db).DeleteAudit(context.Background(), "a1", 7))
}
