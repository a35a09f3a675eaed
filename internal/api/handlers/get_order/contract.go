package get_order

import (
	"context"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders/models"
)

type OrderService interface {
	GetByID(ctx context.Context, branchID, orderID int64) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
