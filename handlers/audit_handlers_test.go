package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wattwise/api/models"
	"wattwise/api/store"
)

func TestCreateAuditRejectsInvalidBody(t *testing.T) {
	h := NewAuditHandlers(nil, nil, nil, nil, nil)

	// Missing required squareFootage.
	w := performRequest(h.CreateAudit, http.MethodPost, "/api/audits", `{"yearBuilt":1980}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(h.CreateAudit, http.MethodPost, "/api/audits", `{"squareFootage":-100}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAuditRejectsInvalidID(t *testing.T) {
	h := NewAuditHandlers(nil, nil, nil, nil, nil)
	w := performRecRequest(h.GetAudit, "abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid audit id")
}

func TestDeleteAuditRejectsInvalidID(t *testing.T) {
	h := NewAuditHandlers(nil, nil, nil, nil, nil)
	w := performRecRequest(h.DeleteAudit, "1; DROP TABLE energy_audits", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildAuditComputesDerivedMetrics(t *testing.T) {
	req := models.CreateAuditRequest{
		SquareFootage:     2000,
		YearBuilt:         1985,
		HeatingEfficiency: 0.8,
		CoolingEfficiency: 0.7,
		HeatingSystemAge:  10,
		BulbsIncandescent: 10,
		BulbsCFL:          0,
		BulbsLED:          10,
		MonthlyUsageKWh:   1000,
		MonthlyCost:       140,
	}

	audit := buildAudit(7, req)

	assert.Equal(t, 7, audit.UserID)
	assert.Greater(t, audit.HVACScore, 0.0)
	assert.LessOrEqual(t, audit.HVACScore, 100.0)
	assert.Greater(t, audit.LightingScore, 0.0)
	assert.InDelta(t, 12000.0, audit.EstimatedAnnualKWh, 0.001)
	assert.InDelta(t, 140*12.0, audit.EstimatedAnnualCost, 0.001)
	// Overall is a weighted blend, so it sits between the two inputs.
	low, high := audit.HVACScore, audit.LightingScore
	if low > high {
		low, high = high, low
	}
	assert.GreaterOrEqual(t, audit.OverallScore, low)
	assert.LessOrEqual(t, audit.OverallScore, high)
}

func TestBuildRecommendationsForInefficientOldHome(t *testing.T) {
	audit := buildAudit(1, models.CreateAuditRequest{
		SquareFootage:     1800,
		YearBuilt:         1975,
		HeatingEfficiency: 0.6,
		CoolingEfficiency: 0.6,
		HeatingSystemAge:  20,
		BulbsIncandescent: 15,
		MonthlyUsageKWh:   900,
		MonthlyCost:       130,
	})

	recs := buildRecommendations(audit, genericAnnualHDD, genericAnnualCDD)

	categories := make(map[string]models.Recommendation, len(recs))
	for _, rec := range recs {
		categories[rec.Category] = rec
	}
	require.Contains(t, categories, "hvac")
	require.Contains(t, categories, "lighting")
	require.Contains(t, categories, "insulation")

	for _, rec := range recs {
		assert.Greater(t, rec.EstimatedCost, 0.0, rec.Category)
		assert.Greater(t, rec.EstimatedSavings, 0.0, rec.Category)
		assert.GreaterOrEqual(t, rec.PaybackYears, 0.0, rec.Category)
	}
}

func TestBuildRecommendationsForEfficientNewHome(t *testing.T) {
	audit := buildAudit(1, models.CreateAuditRequest{
		SquareFootage:     1500,
		YearBuilt:         2021,
		HeatingEfficiency: 0.97,
		CoolingEfficiency: 0.95,
		HeatingSystemAge:  2,
		BulbsLED:          25,
		MonthlyUsageKWh:   500,
		MonthlyCost:       70,
	})

	recs := buildRecommendations(audit, genericAnnualHDD, genericAnnualCDD)
	assert.Empty(t, recs)
}

func TestBuildRecommendationsSavingsScaleWithClimateLoad(t *testing.T) {
	audit := buildAudit(1, models.CreateAuditRequest{
		SquareFootage:     1800,
		YearBuilt:         1995,
		HeatingEfficiency: 0.6,
		CoolingEfficiency: 0.6,
		HeatingSystemAge:  20,
		BulbsLED:          25,
		MonthlyUsageKWh:   900,
		MonthlyCost:       130,
	})

	mild := buildRecommendations(audit, 1200, 400)
	harsh := buildRecommendations(audit, 6000, 2000)

	require.Len(t, mild, 1)
	require.Len(t, harsh, 1)
	assert.Greater(t, harsh[0].EstimatedSavings, mild[0].EstimatedSavings)
}

func TestAnnualDegreeDaysResolvesLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	locCols := []string{"location_id", "zip_code", "city", "state", "climate_zone"}
	mock.ExpectQuery("WHERE zip_code = \\$1").
		WithArgs("80301").
		WillReturnRows(sqlmock.NewRows(locCols).AddRow("loc-co", "80301", "Boulder", "CO", 5))
	mock.ExpectQuery("FROM daily_weather").
		WillReturnRows(sqlmock.NewRows([]string{"sum_hdd", "sum_cdd", "avg_hdd", "avg_cdd", "count"}).
			AddRow(5200.0, 700.0, 14.2, 1.9, 365))

	h := NewAuditHandlers(nil, nil, nil, store.NewWeatherStore(db), nil)
	hdd, cdd := h.annualDegreeDays(context.Background(), "80301", "CO")
	assert.InDelta(t, 5200.0, hdd, 0.001)
	assert.InDelta(t, 700.0, cdd, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnualDegreeDaysFallsBackWithoutLocation(t *testing.T) {
	// No weather store at all.
	h := NewAuditHandlers(nil, nil, nil, nil, nil)
	hdd, cdd := h.annualDegreeDays(context.Background(), "80301", "CO")
	assert.Equal(t, float64(genericAnnualHDD), hdd)
	assert.Equal(t, float64(genericAnnualCDD), cdd)

	// A store with no locations degrades the same way.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	locCols := []string{"location_id", "zip_code", "city", "state", "climate_zone"}
	mock.ExpectQuery("WHERE zip_code = \\$1").WillReturnRows(sqlmock.NewRows(locCols))
	mock.ExpectQuery("WHERE state = \\$1").WillReturnRows(sqlmock.NewRows(locCols))
	mock.ExpectQuery("FROM weather_locations LIMIT 1").WillReturnRows(sqlmock.NewRows(locCols))

	h = NewAuditHandlers(nil, nil, nil, store.NewWeatherStore(db), nil)
	hdd, cdd = h.annualDegreeDays(context.Background(), "80301", "CO")
	assert.Equal(t, float64(genericAnnualHDD), hdd)
	assert.Equal(t, float64(genericAnnualCDD), cdd)
}
