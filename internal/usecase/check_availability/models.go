package check_availability

import (
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

// Request модель запроса проверки доступности
type Request struct {
	BranchID         int64      `validate:"gt=0"`
	ServiceType      string     `validate:"required,oneof=collection delivery tableOrdering"`
	RequestedInstant *time.Time // Момент проверки; nil - текущее время
}

// Response модель ответа с вердиктом
type Response struct {
	BranchID    int64
	ServiceType domain.ServiceType
	EvaluatedAt time.Time // Момент проверки в часовом поясе филиала

	Available            bool
	Reason               domain.Reason
	NextAvailableInstant *time.Time
	DisplayedReadyTime   types.TimeString // Только для отображения, "HH:MM" по модулю суток
	ReadyAt              *time.Time
	Degraded             bool // Вердикт вынесен fail-политикой
}
