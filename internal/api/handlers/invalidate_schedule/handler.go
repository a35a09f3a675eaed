package invalidate_schedule

import (
	"net/http"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers"
)

const msgInvalidBranchID = "некорректный ID филиала"

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

// Handle POST /api/v1/branches/{branchId}/schedule/invalidate
// Сигнал от административной части после изменения расписания филиала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := handlers.PathID(r, "branchId")
	if err != nil {
		h.logger.Warn("POST /branches/{id}/schedule/invalidate - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	if err := h.service.Invalidate(r.Context(), branchID); err != nil {
		h.logger.Error("POST /branches/{id}/schedule/invalidate - Failed: branch_id=%d, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /branches/{id}/schedule/invalidate - Snapshot invalidated: branch_id=%d", branchID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
