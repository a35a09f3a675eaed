package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/admission"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/branchtime"
	scheduleService "github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule"
)

// UseCase use case проверки, можно ли сейчас оформить заказ
// Проверка рекомендательная: окончательное решение принимается при оформлении заказа
type UseCase struct {
	locations    LocationResolver
	snapshots    SnapshotProvider
	decider      Decider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	locations LocationResolver,
	snapshots SnapshotProvider,
	decider Decider,
	logger Logger,
) *UseCase {
	return &UseCase{
		locations:    locations,
		snapshots:    snapshots,
		decider:      decider,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}
	serviceType := domain.ServiceType(req.ServiceType)

	uc.logger.Info("CheckAvailability: branch=%d, serviceType=%s", req.BranchID, serviceType)

	// 2. Часовой пояс филиала
	loc, err := uc.locations.Location(ctx, req.BranchID)
	if err != nil {
		return nil, uc.mapError("resolve location", req.BranchID, err)
	}

	// 3. Момент проверки в локальном времени филиала
	now := uc.timeProvider.Now()
	if req.RequestedInstant != nil {
		now = *req.RequestedInstant
	}
	now = now.In(loc)

	// 4. Снимок конфигурации
	snapshot, err := uc.snapshots.GetSnapshot(ctx, req.BranchID)
	if err != nil {
		return nil, uc.mapError("get snapshot", req.BranchID, err)
	}

	// 5. Решение: расписание, затем admission control
	result, err := uc.decider.Decide(ctx, snapshot, serviceType, now)
	if err != nil {
		return nil, uc.mapError("decide", req.BranchID, err)
	}

	uc.logger.Info("CheckAvailability: branch=%d, serviceType=%s, at=%s, available=%t, reason=%q",
		req.BranchID, serviceType, now.Format(time.RFC3339), result.Available, result.Reason)

	return &Response{
		BranchID:             req.BranchID,
		ServiceType:          serviceType,
		EvaluatedAt:          now,
		Available:            result.Available,
		Reason:               result.Reason,
		NextAvailableInstant: result.NextAvailableInstant,
		DisplayedReadyTime:   result.DisplayedReadyTime,
		ReadyAt:              result.ReadyAt,
		Degraded:             result.Degraded,
	}, nil
}

// mapError переводит ошибки нижних слоев в ошибки usecase
func (uc *UseCase) mapError(step string, branchID int64, err error) error {
	switch {
	case errors.Is(err, branchtime.ErrBranchNotFound):
		uc.logger.Warn("CheckAvailability: branch=%d not found", branchID)
		return ErrBranchNotFound
	case errors.Is(err, scheduleService.ErrScheduleNotFound):
		uc.logger.Warn("CheckAvailability: branch=%d has no schedule", branchID)
		return ErrScheduleNotFound
	case errors.Is(err, scheduleService.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrConfigurationInvalid):
		uc.logger.Error("CheckAvailability: branch=%d configuration invalid: %v", branchID, err)
		return fmt.Errorf("%w: %v", ErrConfigurationInvalid, err)
	case errors.Is(err, branchtime.ErrCancelled),
		errors.Is(err, admission.ErrCancelled),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		uc.logger.Warn("CheckAvailability: branch=%d cancelled during %s: %v", branchID, step, err)
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	default:
		uc.logger.Error("CheckAvailability: branch=%d failed to %s: %v", branchID, step, err)
		return fmt.Errorf("%w: CheckAvailability - %s: %v", ErrInternal, step, err)
	}
}
