package place_order

import (
	"context"

	placeOrder "github.com/EarneyGit/restaurent-kockraco-sub000/internal/usecase/place_order"
)

type PlaceOrderUseCase interface {
	Execute(ctx context.Context, req *placeOrder.Request) (*placeOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
