package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountersAndHandler(t *testing.T) {
	m := New()
	m.Uploads.WithLabelValues(OutcomeOK).Inc()
	m.Uploads.WithLabelValues(OutcomeError).Inc()
	m.UploadRejections.WithLabelValues("MISSING_COLUMNS").Inc()
	m.Reports.WithLabelValues(OutcomeWarning).Add(2)
	m.ActiveSessions.Set(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Uploads.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Reports.WithLabelValues(OutcomeWarning)))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `dss_uploads_total{outcome="error"} 1`)
	assert.Contains(t, string(body), `dss_upload_rejections_total{code="MISSING_COLUMNS"} 1`)
	assert.Contains(t, string(body), "dss_active_sessions 3")
}
