package get_branch_schedule

import (
	"errors"
	"net/http"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgNotFound        = "расписание филиала не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/schedule
// Возвращает снимок конфигурации и результат его валидации; некорректная конфигурация - не ошибка запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathID(r, "branchId")
	if err != nil {
		h.logger.Warn("GET /branches/{id}/schedule - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.Describe(r.Context(), branchID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			h.logger.Warn("GET /branches/{id}/schedule - Schedule not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /branches/{id}/schedule - Failed to get schedule: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches/{id}/schedule - Schedule retrieved: branch_id=%d, valid=%t", branchID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
