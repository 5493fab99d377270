package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordEvent(t *testing.T) {
	recorder := NewRecorder()

	recorder.RecordEvent("products", "created", "applied", 20*time.Millisecond)
	recorder.RecordEvent("products", "created", "applied", 10*time.Millisecond)
	recorder.RecordEvent("products", "created", "failed", time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(recorder.events.WithLabelValues("products", "created", "applied")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.events.WithLabelValues("products", "created", "failed")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.eventDuration))
}

func TestRecorder_DeliveriesAndResets(t *testing.T) {
	recorder := NewRecorder()

	recorder.RecordNotificationDelivery(nil)
	recorder.RecordNotificationDelivery(errors.New("unavailable"))
	recorder.RecordDailyReset(500, nil)
	recorder.RecordDailyReset(120, errors.New("batch failed"))

	assert.InDelta(t, 1, testutil.ToFloat64(recorder.deliveries.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.deliveries.WithLabelValues("error")), 0)
	assert.InDelta(t, 620, testutil.ToFloat64(recorder.resetDocs), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.resetRuns.WithLabelValues("error")), 0)
}

func TestRecorder_Handler(t *testing.T) {
	recorder := NewRecorder()
	recorder.RecordEvent("users", "created", "duplicate", time.Millisecond)

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `marketbridge_events_total{collection="users",kind="created",outcome="duplicate"} 1`)
}
