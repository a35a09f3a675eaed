package orders

import (
	"context"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, branchID, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	Cancel(ctx context.Context, branchID, id int64, reason string, cancelledAt time.Time) error
}

// VolumeForgetter убирает отмененный заказ из внешнего источника объема заказов
type VolumeForgetter interface {
	Forget(ctx context.Context, order *domain.Order) error
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
