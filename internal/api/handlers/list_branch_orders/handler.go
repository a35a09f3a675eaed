package list_branch_orders

import (
	"errors"
	"net/http"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidParams   = "некорректные параметры запроса"
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

// Handle GET /api/v1/branches/{branchId}/orders
// Query params: serviceType, status, from, to (RFC3339), limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathID(r, "branchId")
	if err != nil {
		h.logger.Warn("GET /branches/{id}/orders - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	serviceReq, err := ToServiceRequest(branchID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /branches/{id}/orders - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/orders - Invalid filter: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET /branches/{id}/orders - Failed to list orders: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/orders - Orders retrieved successfully: branch_id=%d, count=%d",
		branchID, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}
