package place_order

import (
	"errors"
	"net/http"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers"
	placeOrder "github.com/EarneyGit/restaurent-kockraco-sub000/internal/usecase/place_order"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заказа"
	msgBranchNotFound     = "филиал не найден"
	msgScheduleNotFound   = "расписание филиала не найдено"
	msgNotAvailable       = "заказ сейчас не может быть принят"
)

type Handler struct {
	useCase PlaceOrderUseCase
	logger  Logger
}

func NewHandler(useCase PlaceOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/branches/{branchId}/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathID(r, "branchId")
	if err != nil {
		h.logger.Warn("POST /branches/{id}/orders - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req PlaceOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches/{id}/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(branchID, r.Header.Get(idempotencyHeader)))
	if err != nil {
		var notAvailable *placeOrder.NotAvailableError
		switch {
		case errors.As(err, &notAvailable):
			h.logger.Warn("POST /branches/{id}/orders - Not available: branch_id=%d, reason=%s", branchID, notAvailable.Verdict.Reason)
			handlers.RespondJSON(w, http.StatusConflict, FromNotAvailable(msgNotAvailable, notAvailable))

		case errors.Is(err, placeOrder.ErrInvalidInput):
			h.logger.Warn("POST /branches/{id}/orders - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, placeOrder.ErrBranchNotFound):
			h.logger.Warn("POST /branches/{id}/orders - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, placeOrder.ErrScheduleNotFound):
			h.logger.Warn("POST /branches/{id}/orders - Schedule not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, placeOrder.ErrConfigurationInvalid):
			h.logger.Error("POST /branches/{id}/orders - Configuration invalid: branch_id=%d, error=%v", branchID, err)
			handlers.RespondConfigurationInvalid(w)

		case errors.Is(err, placeOrder.ErrCancelled):
			h.logger.Warn("POST /branches/{id}/orders - Cancelled: branch_id=%d", branchID)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /branches/{id}/orders - Failed to place order: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}

	h.logger.Info("POST /branches/{id}/orders - Order placed: order_id=%d, branch_id=%d, created=%t",
		result.ID, branchID, result.Created)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
