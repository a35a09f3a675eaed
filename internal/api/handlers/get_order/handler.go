package get_order

import (
	"errors"
	"net/http"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidOrderID  = "некорректный ID заказа"
	msgNotFound        = "заказ не найден"
)

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

// Handle GET /api/v1/branches/{branchId}/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathID(r, "branchId")
	if err != nil {
		h.logger.Warn("GET /branches/{id}/orders/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	orderID, err := handlers.PathID(r, "orderId")
	if err != nil {
		h.logger.Warn("GET /branches/{id}/orders/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	order, err := h.service.GetByID(r.Context(), branchID, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			h.logger.Warn("GET /branches/{id}/orders/{id} - Order not found: branch_id=%d, order_id=%d", branchID, orderID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /branches/{id}/orders/{id} - Failed to get order: order_id=%d, error=%v", orderID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, order)
}
