package get_branch_schedule

import (
	"context"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	Describe(ctx context.Context, branchID int64) (*models.SnapshotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
