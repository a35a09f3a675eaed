package admission

import (
	"context"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// VolumeSource источник объема заказов
type VolumeSource interface {
	// CountInWindow возвращает число заказов в полуинтервале [windowStart, windowEnd)
	// и время самого старого из посчитанных заказов (nil, если неизвестно)
	CountInWindow(ctx context.Context, branchID int64, scope domain.RestrictionScope, windowStart, windowEnd time.Time) (int, *time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс метрик admission control
type Metrics interface {
	IncAdmission(scope, outcome string)
	ObserveVolumeQuery(seconds float64)
	IncVolumeError(kind string)
	IncFailPolicy(policy string)
}
