package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherWindow() (time.Time, time.Time) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

func TestGetDegreeDaysUsesDailyObservations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM daily_weather").
		WillReturnRows(sqlmock.NewRows([]string{"sum_hdd", "sum_cdd", "avg_hdd", "avg_cdd", "count"}).
			AddRow(310.0, 0.0, 10.0, 0.0, 31))

	start, end := weatherWindow()
	dd, err := NewWeatherStore(db).GetDegreeDays(context.Background(), "loc-1", start, end)
	require.NoError(t, err)
	assert.False(t, dd.IsEstimated)
	assert.Equal(t, 310.0, dd.TotalHDD)
	assert.Equal(t, 31, dd.DaysCount)
}

func TestGetDegreeDaysFallsBackToMonthlyAverages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM daily_weather").
		WillReturnRows(sqlmock.NewRows([]string{"sum_hdd", "sum_cdd", "avg_hdd", "avg_cdd", "count"}).
			AddRow(nil, nil, nil, nil, 0))
	mock.ExpectQuery("FROM monthly_weather_stats").
		WillReturnRows(sqlmock.NewRows([]string{"avg_hdd", "avg_cdd"}).AddRow(9.5, 0.2))

	start, end := weatherWindow()
	dd, err := NewWeatherStore(db).GetDegreeDays(context.Background(), "loc-1", start, end)
	require.NoError(t, err)
	assert.True(t, dd.IsEstimated)
	assert.Equal(t, "monthly_average", dd.EstimationMethod)
	assert.Equal(t, 31, dd.DaysCount)
	assert.InDelta(t, 9.5*31, dd.TotalHDD, 0.001)
}

func TestGetDegreeDaysFallsBackToClimateZone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM daily_weather").
		WillReturnRows(sqlmock.NewRows([]string{"sum_hdd", "sum_cdd", "avg_hdd", "avg_cdd", "count"}).
			AddRow(nil, nil, nil, nil, 0))
	mock.ExpectQuery("FROM monthly_weather_stats").
		WillReturnRows(sqlmock.NewRows([]string{"avg_hdd", "avg_cdd"}).AddRow(nil, nil))
	mock.ExpectQuery("SELECT climate_zone FROM weather_locations").
		WillReturnRows(sqlmock.NewRows([]string{"climate_zone"}).AddRow(5))

	start, end := weatherWindow()
	dd, err := NewWeatherStore(db).GetDegreeDays(context.Background(), "loc-1", start, end)
	require.NoError(t, err)
	assert.True(t, dd.IsEstimated)
	assert.Equal(t, "climate_zone", dd.EstimationMethod)
	// Zone 5 is the coldest bucket: 12 HDD / 0.5 CDD per day.
	assert.InDelta(t, 12.0, dd.AvgHDD, 0.001)
	assert.InDelta(t, 0.5, dd.AvgCDD, 0.001)
}

func TestGetDegreeDaysFallsBackToGenericEstimate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM daily_weather").
		WillReturnRows(sqlmock.NewRows([]string{"sum_hdd", "sum_cdd", "avg_hdd", "avg_cdd", "count"}).
			AddRow(nil, nil, nil, nil, 0))
	mock.ExpectQuery("FROM monthly_weather_stats").
		WillReturnRows(sqlmock.NewRows([]string{"avg_hdd", "avg_cdd"}).AddRow(nil, nil))
	mock.ExpectQuery("SELECT climate_zone FROM weather_locations").
		WillReturnError(sql.ErrNoRows)

	start, end := weatherWindow()
	dd, err := NewWeatherStore(db).GetDegreeDays(context.Background(), "unknown", start, end)
	require.NoError(t, err)
	assert.Equal(t, "generic", dd.EstimationMethod)
	assert.InDelta(t, 5.0, dd.AvgHDD, 0.001)
	assert.InDelta(t, 3.0, dd.AvgCDD, 0.001)
}

func TestFindNearestLocationFallsThroughZipThenStateThenAny(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	locCols := []string{"location_id", "zip_code", "city", "state", "climate_zone"}
	mock.ExpectQuery("WHERE zip_code = \\$1").
		WithArgs("99999").
		WillReturnRows(sqlmock.NewRows(locCols))
	mock.ExpectQuery("WHERE state = \\$1").
		WithArgs("CO").
		WillReturnRows(sqlmock.NewRows(locCols).AddRow("loc-co", "80301", "Boulder", "CO", 5))

	loc, err := NewWeatherStore(db).FindNearestLocation(context.Background(), "99999", "CO")
	require.NoError(t, err)
	assert.Equal(t, "loc-co", loc.LocationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindNearestLocationNoneAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	locCols := []string{"location_id", "zip_code", "city", "state", "climate_zone"}
	mock.ExpectQuery("WHERE zip_code = \\$1").WillReturnRows(sqlmock.NewRows(locCols))
	mock.ExpectQuery("FROM weather_locations LIMIT 1").WillReturnRows(sqlmock.NewRows(locCols))

	_, err = NewWeatherStore(db).FindNearestLocation(context.Background(), "99999", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no weather locations")
}
