package metric

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMeasureRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)

	p.MeasureRequest(200, 0, 10*time.Millisecond)
	p.MeasureRequest(200, 2, 20*time.Millisecond)
	p.MeasureRequest(500, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.requests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requests.WithLabelValues("500")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.fieldErrors))
	assert.Equal(t, 2, testutil.CollectAndCount(p.duration))
}

func TestNewPrometheusRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	assert.Error(t, err)
}

func TestServerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)
	p.MeasureRequest(200, 0, time.Millisecond)

	svr := NewServer(zap.NewNop(), "127.0.0.1:0", "/metrics", reg)

	rec := httptest.NewRecorder()
	svr.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "wpgraphql_requests_total")
}

func TestNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Noop{}.MeasureRequest(200, 1, time.Second)
	})
}
