package place_order

import (
	"time"

	placeOrder "github.com/EarneyGit/restaurent-kockraco-sub000/internal/usecase/place_order"
)

// idempotencyHeader заголовок с ключом идемпотентности; поле тела запроса имеет приоритет
const idempotencyHeader = "Idempotency-Key"

// PlaceOrderRequest HTTP request model
type PlaceOrderRequest struct {
	ServiceType    string `json:"serviceType"`
	Total          int64  `json:"total"` // В минимальных единицах валюты
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID                 int64      `json:"id"`
	BranchID           int64      `json:"branchId"`
	ServiceType        string     `json:"serviceType"`
	Total              int64      `json:"total"`
	IdempotencyKey     string     `json:"idempotencyKey"`
	Status             string     `json:"status"`
	PlacedAt           time.Time  `json:"placedAt"`
	DisplayedReadyTime string     `json:"displayedReadyTime,omitempty"`
	ReadyAt            *time.Time `json:"readyAt,omitempty"`
}

// NotAvailableResponse тело ответа 409 с вердиктом
type NotAvailableResponse struct {
	Error                string     `json:"error"`
	Reason               string     `json:"reason"`
	NextAvailableInstant *time.Time `json:"nextAvailableInstant"`
	Degraded             bool       `json:"degraded,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PlaceOrderRequest) ToUseCaseRequest(branchID int64, headerKey string) *placeOrder.Request {
	key := r.IdempotencyKey
	if key == "" {
		key = headerKey
	}

	return &placeOrder.Request{
		BranchID:       branchID,
		ServiceType:    r.ServiceType,
		Total:          r.Total,
		IdempotencyKey: key,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *placeOrder.Response) *OrderResponse {
	return &OrderResponse{
		ID:                 resp.ID,
		BranchID:           resp.BranchID,
		ServiceType:        string(resp.ServiceType),
		Total:              resp.Total,
		IdempotencyKey:     resp.IdempotencyKey,
		Status:             string(resp.Status),
		PlacedAt:           resp.PlacedAt,
		DisplayedReadyTime: resp.DisplayedReadyTime.String(),
		ReadyAt:            resp.ReadyAt,
	}
}

// FromNotAvailable конвертирует отказ в HTTP response
func FromNotAvailable(message string, err *placeOrder.NotAvailableError) *NotAvailableResponse {
	return &NotAvailableResponse{
		Error:                message,
		Reason:               string(err.Verdict.Reason),
		NextAvailableInstant: err.Verdict.NextAvailableInstant,
		Degraded:             err.Verdict.Degraded,
	}
}
