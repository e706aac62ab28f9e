package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"wattwise/api/analysis"
	"wattwise/api/models"
)

// WeatherStore reads the imported weather dataset used to weather-adjust
// HVAC estimates.
type WeatherStore struct {
	db *sql.DB
}

func NewWeatherStore(db *sql.DB) *WeatherStore {
	return &WeatherStore{db: db}
}

// FindNearestLocation resolves a zip code to a weather location: exact
// zip match first, then any location in the same state, then any
// location at all.
func (s *WeatherStore) FindNearestLocation(ctx context.Context, zipCode, state string) (*models.WeatherLocation, error) {
	queries := []struct {
		query string
		args  []interface{}
	}{
		{`SELECT location_id, zip_code, city, state, climate_zone
		  FROM weather_locations WHERE zip_code = $1 LIMIT 1;`, []interface{}{zipCode}},
	}
	if state != "" {
		queries = append(queries, struct {
			query string
			args  []interface{}
		}{`SELECT location_id, zip_code, city, state, climate_zone
		   FROM weather_locations WHERE state = $1 LIMIT 1;`, []interface{}{state}})
	}
	queries = append(queries, struct {
		query string
		args  []interface{}
	}{`SELECT location_id, zip_code, city, state, climate_zone
	   FROM weather_locations LIMIT 1;`, nil})

	for _, q := range queries {
		loc := &models.WeatherLocation{}
		err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(
			&loc.LocationID, &loc.ZipCode, &loc.City, &loc.State, &loc.ClimateZone)
		if err == nil {
			return loc, nil
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to look up weather location: %w", err)
		}
	}

	return nil, fmt.Errorf("no weather locations available")
}

// GetDegreeDays aggregates daily HDD/CDD for a location and period.
// Falls back to monthly averages, then to a climate-zone estimate, then
// to a generic estimate, so callers always get usable numbers.
func (s *WeatherStore) GetDegreeDays(ctx context.Context, locationID string, start, end time.Time) (*models.DegreeDays, error) {
	var totalHDD, totalCDD, avgHDD, avgCDD sql.NullFloat64
	var days int

	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(heating_degree_days), SUM(cooling_degree_days),
		       AVG(heating_degree_days), AVG(cooling_degree_days), COUNT(*)
		FROM daily_weather
		WHERE location_id = $1 AND date >= $2 AND date <= $3;`,
		locationID, start, end,
	).Scan(&totalHDD, &totalCDD, &avgHDD, &avgCDD, &days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate degree days: %w", err)
	}

	if days > 0 {
		return &models.DegreeDays{
			TotalHDD:  totalHDD.Float64,
			TotalCDD:  totalCDD.Float64,
			AvgHDD:    avgHDD.Float64,
			AvgCDD:    avgCDD.Float64,
			DaysCount: days,
		}, nil
	}

	daysDiff := int(end.Sub(start).Hours()/24) + 1
	if daysDiff < 1 {
		daysDiff = 1
	}

	// No daily observations for the window: try monthly averages.
	var avgDailyHDD, avgDailyCDD sql.NullFloat64
	err = s.db.QueryRowContext(ctx, `
		SELECT AVG(total_heating_degree_days/30), AVG(total_cooling_degree_days/30)
		FROM monthly_weather_stats
		WHERE location_id = $1 AND
		      ((year = $2 AND month >= $3) OR (year > $2)) AND
		      ((year = $4 AND month <= $5) OR (year < $4));`,
		locationID, start.Year(), int(start.Month()), end.Year(), int(end.Month()),
	).Scan(&avgDailyHDD, &avgDailyCDD)
	if err != nil {
		log.Printf("Error querying monthly degree-day averages for %s: %v", locationID, err)
	}

	if err == nil && avgDailyHDD.Valid {
		return &models.DegreeDays{
			TotalHDD:         avgDailyHDD.Float64 * float64(daysDiff),
			TotalCDD:         avgDailyCDD.Float64 * float64(daysDiff),
			AvgHDD:           avgDailyHDD.Float64,
			AvgCDD:           avgDailyCDD.Float64,
			DaysCount:        daysDiff,
			IsEstimated:      true,
			EstimationMethod: "monthly_average",
		}, nil
	}

	// Still nothing: estimate from the location's climate zone.
	var climateZone int
	err = s.db.QueryRowContext(ctx,
		`SELECT climate_zone FROM weather_locations WHERE location_id = $1;`,
		locationID).Scan(&climateZone)
	method := "climate_zone"
	if err != nil {
		method = "generic"
		climateZone = 0
	}

	hdd, cdd := analysis.ClimateZoneDailyEstimate(climateZone)
	return &models.DegreeDays{
		TotalHDD:         hdd * float64(daysDiff),
		TotalCDD:         cdd * float64(daysDiff),
		AvgHDD:           hdd,
		AvgCDD:           cdd,
		DaysCount:        daysDiff,
		IsEstimated:      true,
		EstimationMethod: method,
	}, nil
}

// GetMonthlyDegreeDays returns per-month HDD/CDD averages for the
// seasonal adjustment factors.
func (s *WeatherStore) GetMonthlyDegreeDays(ctx context.Context, locationID string) (map[int]analysis.MonthlyDegreeDays, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT month, AVG(total_heating_degree_days), AVG(total_cooling_degree_days)
		FROM monthly_weather_stats
		WHERE location_id = $1
		GROUP BY month
		ORDER BY month;`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly degree days: %w", err)
	}
	defer rows.Close()

	monthly := make(map[int]analysis.MonthlyDegreeDays)
	for rows.Next() {
		var month int
		var hdd, cdd sql.NullFloat64
		if err := rows.Scan(&month, &hdd, &cdd); err != nil {
			log.Printf("Error scanning monthly degree-day row: %v", err)
			continue
		}
		monthly[month] = analysis.MonthlyDegreeDays{HDD: hdd.Float64, CDD: cdd.Float64}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while reading monthly degree days: %w", err)
	}

	return monthly, nil
}
