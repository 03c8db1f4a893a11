package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelic/bookstand/internal/middleware"
	"github.com/avelic/bookstand/internal/telemetry/metrics"
)

func TestPanicRecovery(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("oops")
	})

	req, err := http.NewRequest("GET", "/books", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		middleware.PanicRecovery(metrics.NewTestManager())(panicky).ServeHTTP(rr, req)
	})
}

func TestPanicRecovery_NilMetrics(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("oops")
	})

	req, err := http.NewRequest("GET", "/books", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		middleware.PanicRecovery(nil)(panicky).ServeHTTP(rr, req)
	})
}

func TestPanicRecovery_PassThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req, err := http.NewRequest("GET", "/books", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()

	middleware.PanicRecovery(metrics.NewTestManager())(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
