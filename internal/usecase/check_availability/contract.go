package check_availability

import (
	"context"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// LocationResolver определяет часовой пояс филиала
type LocationResolver interface {
	Location(ctx context.Context, branchID int64) (*time.Location, error)
}

// SnapshotProvider интерфейс чтения снимка конфигурации филиала
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context, branchID int64) (*domain.ScheduleSnapshot, error)
}

// Decider выносит решение о доступности по снимку
type Decider interface {
	Decide(ctx context.Context, snapshot *domain.ScheduleSnapshot, serviceType domain.ServiceType, now time.Time) (domain.AvailabilityResult, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
