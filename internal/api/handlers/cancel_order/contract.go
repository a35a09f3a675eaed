package cancel_order

import (
	"context"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders/models"
)

type OrderService interface {
	Cancel(ctx context.Context, branchID, orderID int64, req *models.CancelOrderRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
