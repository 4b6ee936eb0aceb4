package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	rec.RecordTransition("accepted")
	rec.RecordTransition("accepted")
	rec.RecordRejected("assign", "alert_busy")
	rec.RecordLocationUpdate(false)
	rec.RecordAssignLatency(5 * time.Millisecond)
	rec.RecordDelivery("officer", true)
	rec.RecordDropped()

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.transitions.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.rejected.WithLabelValues("assign", "alert_busy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.locations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.deliveries.WithLabelValues("officer", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.droppedEvents))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.assignLatency))
}

func TestRecorder_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRecorder(reg)
	require.NoError(t, err)
	second, err := NewRecorder(reg)
	require.NoError(t, err)

	first.RecordDropped()
	second.RecordDropped()
	assert.Equal(t, 2.0, testutil.ToFloat64(first.droppedEvents))
}
