package invalidate_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	branchID int64
	err      error
}

func (s *stubService) Invalidate(_ context.Context, branchID int64) error {
	s.branchID = branchID
	return s.err
}

func post(svc ScheduleService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/branches/{branchId}/schedule/invalidate", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := post(svc, "/api/v1/branches/8/schedule/invalidate")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(8), svc.branchID)

	assert.Equal(t, http.StatusBadRequest, post(&stubService{}, "/api/v1/branches/-2/schedule/invalidate").Code)
	assert.Equal(t, http.StatusInternalServerError, post(&stubService{err: errors.New("redis down")}, "/api/v1/branches/8/schedule/invalidate").Code)
}
