package get_order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	order *models.OrderResponse
	err   error
}

func (s stubService) GetByID(context.Context, int64, int64) (*models.OrderResponse, error) {
	return s.order, s.err
}

func get(svc OrderService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/branches/{branchId}/orders/{orderId}", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := get(stubService{order: &models.OrderResponse{ID: 3, Status: "placed"}}, "/api/v1/branches/1/orders/3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"placed"`)

	rec = get(stubService{err: orders.ErrOrderNotFound}, "/api/v1/branches/1/orders/3")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(stubService{}, "/api/v1/branches/1/orders/zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(stubService{err: orders.ErrInternal}, "/api/v1/branches/1/orders/3")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
