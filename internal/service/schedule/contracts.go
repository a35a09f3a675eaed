package schedule

import (
	"context"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// ScheduleRepository интерфейс хранилища конфигурации расписания
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, branchID int64) (domain.WeeklySchedule, error)
	GetClosedDates(ctx context.Context, branchID int64) (domain.ClosedDates, error)
	GetRestrictionConfig(ctx context.Context, branchID int64) (domain.RestrictionConfig, error)
}

// SnapshotCache интерфейс кэша снимков
type SnapshotCache interface {
	Get(ctx context.Context, branchID int64) (*domain.ScheduleSnapshot, error)
	Set(ctx context.Context, snapshot *domain.ScheduleSnapshot) error
	Invalidate(ctx context.Context, branchID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс метрик кэша
type Metrics interface {
	IncScheduleCache(result string)
}
