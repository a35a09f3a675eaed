package invalidate_schedule

import "context"

type ScheduleService interface {
	Invalidate(ctx context.Context, branchID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
