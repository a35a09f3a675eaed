package place_order

import (
	"context"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByIdempotencyKey(ctx context.Context, branchID int64, key string) (*domain.Order, error)
}

// SnapshotLoader читает снимок конфигурации напрямую из хранилища (в транзакции из контекста)
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, branchID int64) (*domain.ScheduleSnapshot, error)
}

// LocationResolver определяет часовой пояс филиала
type LocationResolver interface {
	Location(ctx context.Context, branchID int64) (*time.Location, error)
}

// Decider выносит решение о доступности
// Для оформления заказа admission control должен считать заказы в той же транзакции
type Decider interface {
	Decide(ctx context.Context, snapshot *domain.ScheduleSnapshot, serviceType domain.ServiceType, now time.Time) (domain.AvailabilityResult, error)
}

// VolumeRecorder дублирует заказ во внешний источник объема заказов
type VolumeRecorder interface {
	Record(ctx context.Context, order *domain.Order) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
