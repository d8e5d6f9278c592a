package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordCountsRequests(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/api/v1/employees", http.StatusOK, 10*time.Millisecond)
	c.Record(http.MethodGet, "/api/v1/employees", http.StatusOK, 20*time.Millisecond)
	c.Record(http.MethodPost, "/api/v1/leave/requests", http.StatusTooManyRequests, time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/api/v1/employees", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(c.rateLimited))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	c.Fallback("pending_leave")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `hrportal_http_requests_total{method="GET",route="unmatched",status="404"} 1`))
	require.True(t, strings.Contains(string(body), `hrportal_dashboard_query_fallbacks_total{query="pending_leave"} 1`))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.Record(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	c.Fallback("x")
}
