package service

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cycle-count-api/pkg/jobs"
)

func TestMetricsServiceRegisterQueueExportsStats(t *testing.T) {
	metrics := NewMetricsService()
	stats := jobs.Stats{Processed: 7, Retried: 2, Dropped: 1}

	require.NoError(t, metrics.RegisterQueue("production-events", func() jobs.Stats { return stats }))

	expected := `
# HELP queue_jobs_dropped_total Jobs dropped by a background queue after a full buffer or exhausted retries
# TYPE queue_jobs_dropped_total counter
queue_jobs_dropped_total{queue="production-events"} 1
# HELP queue_jobs_processed_total Jobs handled successfully by a background queue
# TYPE queue_jobs_processed_total counter
queue_jobs_processed_total{queue="production-events"} 7
# HELP queue_jobs_retried_total Job retries scheduled by a background queue
# TYPE queue_jobs_retried_total counter
queue_jobs_retried_total{queue="production-events"} 2
`
	err := testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected),
		"queue_jobs_processed_total", "queue_jobs_retried_total", "queue_jobs_dropped_total")
	assert.NoError(t, err)

	stats.Processed = 9
	err = testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(`
# HELP queue_jobs_processed_total Jobs handled successfully by a background queue
# TYPE queue_jobs_processed_total counter
queue_jobs_processed_total{queue="production-events"} 9
`), "queue_jobs_processed_total")
	assert.NoError(t, err)
}

func TestMetricsServiceRegisterQueueTwiceFails(t *testing.T) {
	metrics := NewMetricsService()
	stats := func() jobs.Stats { return jobs.Stats{} }

	require.NoError(t, metrics.RegisterQueue("production-events", stats))
	assert.Error(t, metrics.RegisterQueue("production-events", stats))

	var nilMetrics *MetricsService
	assert.NoError(t, nilMetrics.RegisterQueue("production-events", stats))
}
