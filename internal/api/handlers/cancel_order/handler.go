package cancel_order

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заказ не найден"
	msgCannotCancel       = "заказ не может быть отменен"
)

var validate = validator.New()

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/branches/{branchId}/orders/{orderId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathID(r, "branchId")
	if err != nil {
		h.logger.Warn("PATCH /branches/{id}/orders/{id}/cancel - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	orderID, err := handlers.PathID(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /branches/{id}/orders/{id}/cancel - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	// Тело необязательно
	var req models.CancelOrderRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /branches/{id}/orders/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		if err := validate.Struct(&req); err != nil {
			h.logger.Warn("PATCH /branches/{id}/orders/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	err = h.service.Cancel(r.Context(), branchID, orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /branches/{id}/orders/{id}/cancel - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrCannotCancel):
			h.logger.Warn("PATCH /branches/{id}/orders/{id}/cancel - Cannot cancel: order_id=%d", orderID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /branches/{id}/orders/{id}/cancel - Failed to cancel order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /branches/{id}/orders/{id}/cancel - Order cancelled: branch_id=%d, order_id=%d", branchID, orderID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
