package get_branch_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	resp *models.SnapshotResponse
	err  error
}

func (s stubService) Describe(context.Context, int64) (*models.SnapshotResponse, error) {
	return s.resp, s.err
}

func get(svc ScheduleService) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/branches/{branchId}/schedule", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/branches/2/schedule", nil))
	return rec
}

func TestHandle_InvalidConfigurationIsReported(t *testing.T) {
	resp := &models.SnapshotResponse{BranchID: 2, Valid: false, Error: "ConfigurationInvalid", Weekly: domain.WeeklySchedule{}}

	rec := get(stubService{resp: resp})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":false`)
	assert.Contains(t, rec.Body.String(), `"error":"ConfigurationInvalid"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(stubService{err: schedule.ErrScheduleNotFound}).Code)
	assert.Equal(t, http.StatusInternalServerError, get(stubService{err: schedule.ErrInternal}).Code)
}
