package infrastructure

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.DBDriver = "oracle"
	_, err := NewConnection(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, Ping(context.Background(), db))
}

func TestNewMetrics(t *testing.T) {
	db := newTestDB(t)
	m, err := NewMetrics(db)
	require.NoError(t, err)

	m.RequestsTotal.WithLabelValues("/jobs", "GET", "200").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/jobs", "GET", "200")))

	expected := `
# HELP jobboard_http_requests_total HTTP requests by route, method and status code.
# TYPE jobboard_http_requests_total counter
jobboard_http_requests_total{method="GET",route="/jobs",status="200"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "jobboard_http_requests_total"))

	// A second registry over the same DB must not collide.
	_, err = NewMetrics(db)
	assert.NoError(t, err)
}
