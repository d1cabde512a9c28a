package metrics

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/segment"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := NewManager()
	m.RecordHTTPRequest("overview", "GET", "200", 5*time.Millisecond)
	m.RecordHTTPRequest("overview", "GET", "200", 7*time.Millisecond)
	m.RecordHTTPRequest("rules", "GET", "400", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("overview", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("rules", "GET", "400")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpRequestDuration))
}

func TestObserveCompute(t *testing.T) {
	m := NewManager()
	start := time.Now()
	m.ObserveCompute("batsman_clusters", start, nil)
	wrapped := fmt.Errorf("cluster players: %w", &segment.InsufficientDataError{Distinct: 1, K: 3})
	m.ObserveCompute("batsman_clusters", start, wrapped)
	m.ObserveCompute("rules", start, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.computeErrors.WithLabelValues("batsman_clusters", "insufficient_data")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.computeErrors.WithLabelValues("rules", "other")))
}

func TestSetDatasetAndHandler(t *testing.T) {
	m := NewManager()
	m.SetDataset(&model.Dataset{
		Matches:    make([]model.Match, 3),
		Deliveries: make([]model.Delivery, 11),
		Synthetic:  true,
	})
	assert.Equal(t, 11.0, testutil.ToFloat64(m.datasetRows.WithLabelValues("deliveries")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.datasetSynthetic))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `cricmetrics_dataset_rows{relation="matches"} 3`), body)
	assert.False(t, strings.Contains(body, "go_goroutines"), "runtime collectors are not registered")
}
