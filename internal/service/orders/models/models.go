package models

import (
	"fmt"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// CancelOrderRequest запрос на отмену заказа
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID             int64     `json:"id"`
	BranchID       int64     `json:"branchId"`
	ServiceType    string    `json:"serviceType"`
	Total          int64     `json:"total"`
	IdempotencyKey string    `json:"idempotencyKey"`
	Status         string    `json:"status"`
	PlacedAt       time.Time `json:"placedAt"`
}

// FromDomainOrder конвертирует domain модель в response
func FromDomainOrder(order *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:             order.ID,
		BranchID:       order.BranchID,
		ServiceType:    string(order.ServiceType),
		Total:          order.Total,
		IdempotencyKey: order.IdempotencyKey,
		Status:         string(order.Status),
		PlacedAt:       order.PlacedAt,
	}
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ListOrdersRequest запрос списка заказов филиала
type ListOrdersRequest struct {
	BranchID    int64
	ServiceType *string
	Status      *string
	From        *time.Time
	To          *time.Time
	Limit       int
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []*OrderResponse `json:"orders"`
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListOrdersRequest) ToDomainFilter() (domain.OrderFilter, error) {
	filter := domain.OrderFilter{
		BranchID: r.BranchID,
		From:     r.From,
		To:       r.To,
		Limit:    DefaultListLimit,
	}

	if r.BranchID <= 0 {
		return filter, fmt.Errorf("branch id must be positive")
	}

	if r.ServiceType != nil {
		serviceType, err := domain.ParseServiceType(*r.ServiceType)
		if err != nil {
			return filter, err
		}
		filter.ServiceType = &serviceType
	}

	if r.Status != nil {
		status := domain.OrderStatus(*r.Status)
		if status != domain.OrderStatusPlaced && status != domain.OrderStatusCancelled {
			return filter, fmt.Errorf("unknown order status %q", *r.Status)
		}
		filter.Status = &status
	}

	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return filter, fmt.Errorf("from must be before to")
	}

	switch {
	case r.Limit < 0 || r.Limit > MaxListLimit:
		return filter, fmt.Errorf("limit must be between 1 and %d", MaxListLimit)
	case r.Limit > 0:
		filter.Limit = uint64(r.Limit)
	}

	return filter, nil
}

// FromDomainOrderList конвертирует список domain моделей в response
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{Orders: make([]*OrderResponse, 0, len(orders))}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, FromDomainOrder(order))
	}
	return resp
}
