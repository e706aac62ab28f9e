package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wattwise/api/database"
)

// recordingConn captures the query text and bound arguments handed to
// QueryRow so tests can inspect them.
type recordingConn struct {
	driver.Conn

	query string
	args  []interface{}
}

func (c *recordingConn) QueryRow(ctx context.Context, query string, args ...interface{}) driver.Row {
	c.query = query
	c.args = args
	return staticRow{value: 42.5}
}

type staticRow struct {
	value float64
}

func (r staticRow) Err() error { return nil }

func (r staticRow) Scan(dest ...interface{}) error {
	if len(dest) == 1 {
		if f, ok := dest[0].(*float64); ok {
			*f = r.value
		}
	}
	return nil
}

func (r staticRow) ScanStruct(dest interface{}) error { return nil }

func TestGetAverageCustomEventParameterBindsParamName(t *testing.T) {
	conn := &recordingConn{}
	s := NewEventStore(&database.ClickHouseClient{Conn: conn})

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	avg, err := s.GetAverageCustomEventParameter(context.Background(),
		"purchase", "revenue'); DROP TABLE analytics_events; --", start, end)
	require.NoError(t, err)
	assert.Equal(t, 42.5, avg)

	// The parameter name travels as a bound argument, so hostile input
	// never reaches the query text.
	assert.Contains(t, conn.query, "JSONExtractFloat(event_data, ?)")
	assert.NotContains(t, conn.query, "DROP TABLE")
	require.Len(t, conn.args, 4)
	assert.Equal(t, "revenue'); DROP TABLE analytics_events; --", conn.args[0])
	assert.Equal(t, "purchase", conn.args[1])
}

func TestGetAverageCustomEventParameterRejectsEmptyName(t *testing.T) {
	s := NewEventStore(&database.ClickHouseClient{})

	_, err := s.GetAverageCustomEventParameter(context.Background(),
		"purchase", "", time.Now(), time.Now())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "cannot be empty"))
}
