package place_order

import (
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

// Request модель запроса на оформление заказа
type Request struct {
	BranchID       int64  `validate:"gt=0"`
	ServiceType    string `validate:"required,oneof=collection delivery tableOrdering"`
	Total          int64  `validate:"gte=0"` // В минимальных единицах валюты
	IdempotencyKey string `validate:"omitempty,max=64"`
}

// Response модель ответа с оформленным заказом
type Response struct {
	ID             int64
	BranchID       int64
	ServiceType    domain.ServiceType
	Total          int64
	IdempotencyKey string
	Status         domain.OrderStatus
	PlacedAt       time.Time

	// Created = false, если заказ с этим ключом идемпотентности уже был оформлен
	Created bool

	DisplayedReadyTime types.TimeString
	ReadyAt            *time.Time
}
