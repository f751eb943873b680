package observability_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/observability"
)

func TestMetrics_ObserveGeneration(t *testing.T) {
	m := observability.NewMetrics()

	m.ObserveGeneration(domain.FormatXLSX, 3*time.Millisecond, nil)
	m.ObserveGeneration(domain.FormatXLSX, 2*time.Millisecond, nil)
	m.ObserveGeneration(domain.FormatCSV, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GeneratedCount(domain.FormatXLSX, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeneratedCount(domain.FormatCSV, "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GeneratedCount(domain.FormatCSV, "ok")))
}

func TestMetrics_AuthDenied(t *testing.T) {
	m := observability.NewMetrics()
	m.AuthDenied("unauthenticated")
	m.AuthDenied("unauthenticated")
	m.AuthDenied("forbidden")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DenialCount("unauthenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DenialCount("forbidden")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveGeneration(domain.FormatCSV, time.Millisecond, nil)
		m.AuthDenied("forbidden")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveGeneration(domain.FormatCSV, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `admission_templates_generated_total{format="csv",status="ok"} 1`)
}
