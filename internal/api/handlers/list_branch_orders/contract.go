package list_branch_orders

import (
	"context"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders/models"
)

type OrderService interface {
	List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
