package branchtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/integrations/branchservice"
)

var (
	// ErrBranchNotFound возвращается, когда филиал не найден в BranchService
	ErrBranchNotFound = errors.New("branchtime: branch not found")

	// ErrCancelled возвращается при отмене запроса вызывающей стороной
	ErrCancelled = errors.New("branchtime: cancelled")
)

// BranchClient интерфейс клиента BranchService
type BranchClient interface {
	GetBranchWithGracefulDegradation(ctx context.Context, branchID int64) (*branchservice.Branch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Resolver определяет часовой пояс филиала
// При недоступности BranchService используется часовой пояс по умолчанию из конфига
type Resolver struct {
	client   BranchClient
	fallback *time.Location
	logger   Logger
}

// NewResolver создает резолвер; client может быть nil (всегда часовой пояс по умолчанию)
func NewResolver(client BranchClient, fallback *time.Location, logger Logger) *Resolver {
	if fallback == nil {
		fallback = time.UTC
	}
	return &Resolver{client: client, fallback: fallback, logger: logger}
}

// Location возвращает локацию филиала
func (r *Resolver) Location(ctx context.Context, branchID int64) (*time.Location, error) {
	if r.client == nil {
		return r.fallback, nil
	}

	branch, err := r.client.GetBranchWithGracefulDegradation(ctx, branchID)
	if err != nil {
		switch {
		case errors.Is(err, branchservice.ErrBranchNotFound):
			return nil, ErrBranchNotFound
		case errors.Is(err, branchservice.ErrServiceDegraded):
			r.logger.Warn("Location: using default timezone %s for branch=%d", r.fallback, branchID)
			return r.fallback, nil
		case ctx.Err() != nil:
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		default:
			r.logger.Warn("Location: branch=%d lookup failed, using default timezone %s: %v", branchID, r.fallback, err)
			return r.fallback, nil
		}
	}

	if branch.Timezone == "" {
		return r.fallback, nil
	}

	loc, err := time.LoadLocation(branch.Timezone)
	if err != nil {
		r.logger.Warn("Location: branch=%d has unknown timezone %q, using default %s", branchID, branch.Timezone, r.fallback)
		return r.fallback, nil
	}
	return loc, nil
}
