package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method, path, status string
}

type fakeMetrics struct {
	observed []observation
}

func (f *fakeMetrics) ObserveHTTPRequest(method, path, status string, _ float64) {
	f.observed = append(f.observed, observation{method, path, status})
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, "INFO "+fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.lines = append(l.lines, "WARN "+fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.lines = append(l.lines, "ERROR "+fmt.Sprintf(format, v...))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	metrics := &fakeMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(metrics))
	r.HandleFunc("/api/v1/branches/{branchId}/availability", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/branches/12/availability", nil))

	require.Len(t, metrics.observed, 1)
	assert.Equal(t, observation{"GET", "/api/v1/branches/{branchId}/availability", "409"}, metrics.observed[0])
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestLogging_LevelByStatus(t *testing.T) {
	logger := &recordingLogger{}

	r := mux.NewRouter()
	r.Use(Logging(logger))
	r.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.HandleFunc("/bad", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadRequest) })
	r.HandleFunc("/fail", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) })

	for _, path := range []string{"/ok", "/bad", "/fail"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, logger.lines, 3)
	assert.Contains(t, logger.lines[0], "INFO GET /ok - status=200")
	assert.Contains(t, logger.lines[1], "WARN GET /bad - status=400")
	assert.Contains(t, logger.lines[2], "ERROR GET /fail - status=503")
}

func TestRecovery(t *testing.T) {
	logger := &recordingLogger{}
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, logger.lines, 1)
	assert.Contains(t, logger.lines[0], "panic: boom")
}
