package check_availability

import (
	"errors"
	"net/http"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers"
	checkAvailability "github.com/EarneyGit/restaurent-kockraco-sub000/internal/usecase/check_availability"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgMissingServiceType = "тип обслуживания обязателен"
	msgInvalidAt          = "некорректный формат параметра at, ожидается RFC3339"
	msgInvalidInput       = "некорректные параметры запроса"
	msgBranchNotFound     = "филиал не найден"
	msgScheduleNotFound   = "расписание филиала не найдено"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/availability
// Query params: serviceType (required), at (optional, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathID(r, "branchId")
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	serviceType := r.URL.Query().Get("serviceType")
	if serviceType == "" {
		h.logger.Warn("GET /branches/{id}/availability - Missing service type")
		handlers.RespondBadRequest(w, msgMissingServiceType)
		return
	}

	useCaseReq, err := ToUseCaseRequest(branchID, serviceType, r.URL.Query().Get("at"))
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid at: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/availability - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkAvailability.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/availability - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, checkAvailability.ErrScheduleNotFound):
			h.logger.Warn("GET /branches/{id}/availability - Schedule not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, checkAvailability.ErrConfigurationInvalid):
			h.logger.Error("GET /branches/{id}/availability - Configuration invalid: branch_id=%d, error=%v", branchID, err)
			handlers.RespondConfigurationInvalid(w)

		case errors.Is(err, checkAvailability.ErrCancelled):
			h.logger.Warn("GET /branches/{id}/availability - Cancelled: branch_id=%d", branchID)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /branches/{id}/availability - Failed to check availability: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/availability - branch_id=%d, service_type=%s, available=%t, reason=%q",
		branchID, result.ServiceType, result.Available, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
