package place_order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	ordersRepo "github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/storage/orders"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/admission"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/branchtime"
	scheduleService "github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule"
)

// UseCase use case оформления заказа
// Проверка доступности повторяется внутри сериализуемой транзакции вместе со вставкой заказа
type UseCase struct {
	orderRepo    OrderRepository
	snapshots    SnapshotLoader
	locations    LocationResolver
	decider      Decider
	recorder     VolumeRecorder
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil, если объем заказов считается по таблице orders
func NewUseCase(
	orderRepo OrderRepository,
	snapshots SnapshotLoader,
	locations LocationResolver,
	decider Decider,
	recorder VolumeRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		snapshots:    snapshots,
		locations:    locations,
		decider:      decider,
		recorder:     recorder,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оформления заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlaceOrder: validation failed: %v", err)
		return nil, err
	}
	serviceType := domain.ServiceType(req.ServiceType)

	idempotencyKey := strings.TrimSpace(req.IdempotencyKey)
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	uc.logger.Info("PlaceOrder: branch=%d, serviceType=%s, total=%d, key=%s",
		req.BranchID, serviceType, req.Total, idempotencyKey)

	// 2. Часовой пояс филиала
	loc, err := uc.locations.Location(ctx, req.BranchID)
	if err != nil {
		return nil, uc.mapError("resolve location", req.BranchID, err)
	}

	// 3. Текущее время в локальном времени филиала
	now := uc.timeProvider.Now().In(loc)

	var (
		result  *domain.Order
		created bool
		verdict domain.AvailabilityResult
	)

	// 4. Повторная проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Повтор запроса с тем же ключом возвращает уже оформленный заказ
		existing, err := uc.orderRepo.GetByIdempotencyKey(txCtx, req.BranchID, idempotencyKey)
		switch {
		case err == nil:
			result = existing
			created = false
			return nil
		case !errors.Is(err, ordersRepo.ErrOrderNotFound):
			return fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
		}

		// 4.2. Снимок конфигурации в той же транзакции
		snapshot, err := uc.snapshots.LoadSnapshot(txCtx, req.BranchID)
		if err != nil {
			return err
		}

		// 4.3. Расписание и лимиты; объем заказов считается в этой транзакции
		verdict, err = uc.decider.Decide(txCtx, snapshot, serviceType, now)
		if err != nil {
			return err
		}
		if !verdict.Available {
			return &NotAvailableError{Verdict: verdict}
		}

		// 4.4. Сохраняем заказ
		order, err := uc.orderRepo.Create(txCtx, &domain.Order{
			BranchID:       req.BranchID,
			ServiceType:    serviceType,
			Total:          req.Total,
			IdempotencyKey: idempotencyKey,
			Status:         domain.OrderStatusPlaced,
			PlacedAt:       now,
		})
		if err != nil {
			return err
		}

		result = order
		created = true
		return nil
	})

	if err != nil {
		// параллельный запрос с тем же ключом успел зафиксировать заказ
		if errors.Is(err, ordersRepo.ErrDuplicateOrder) {
			existing, getErr := uc.orderRepo.GetByIdempotencyKey(ctx, req.BranchID, idempotencyKey)
			if getErr != nil {
				return nil, uc.mapError("load duplicate order", req.BranchID, getErr)
			}
			result, created = existing, false
		} else {
			return nil, uc.mapError("place order", req.BranchID, err)
		}
	}

	// 5. После фиксации дублируем заказ во внешний источник объема
	if created && uc.recorder != nil {
		if err := uc.recorder.Record(ctx, result); err != nil {
			uc.logger.Error("PlaceOrder: order id=%d committed but not recorded in volume source: %v", result.ID, err)
		}
	}

	if created {
		uc.logger.Info("PlaceOrder: created order id=%d, branch=%d, serviceType=%s", result.ID, result.BranchID, result.ServiceType)
	} else {
		uc.logger.Info("PlaceOrder: replayed order id=%d for key=%s", result.ID, idempotencyKey)
	}

	return toResponse(result, created, verdict), nil
}

func toResponse(order *domain.Order, created bool, verdict domain.AvailabilityResult) *Response {
	resp := &Response{
		ID:             order.ID,
		BranchID:       order.BranchID,
		ServiceType:    order.ServiceType,
		Total:          order.Total,
		IdempotencyKey: order.IdempotencyKey,
		Status:         order.Status,
		PlacedAt:       order.PlacedAt,
		Created:        created,
	}
	if created {
		resp.DisplayedReadyTime = verdict.DisplayedReadyTime
		resp.ReadyAt = verdict.ReadyAt
	}
	return resp
}

// mapError переводит ошибки нижних слоев в ошибки usecase
func (uc *UseCase) mapError(step string, branchID int64, err error) error {
	var notAvailable *NotAvailableError
	switch {
	case errors.As(err, &notAvailable):
		uc.logger.Warn("PlaceOrder: branch=%d not available: reason=%s", branchID, notAvailable.Verdict.Reason)
		return notAvailable
	case errors.Is(err, ErrInternal):
		uc.logger.Error("PlaceOrder: branch=%d failed to %s: %v", branchID, step, err)
		return err
	case errors.Is(err, branchtime.ErrBranchNotFound):
		uc.logger.Warn("PlaceOrder: branch=%d not found", branchID)
		return ErrBranchNotFound
	case errors.Is(err, scheduleService.ErrScheduleNotFound):
		uc.logger.Warn("PlaceOrder: branch=%d has no schedule", branchID)
		return ErrScheduleNotFound
	case errors.Is(err, domain.ErrConfigurationInvalid):
		uc.logger.Error("PlaceOrder: branch=%d configuration invalid: %v", branchID, err)
		return fmt.Errorf("%w: %v", ErrConfigurationInvalid, err)
	case errors.Is(err, branchtime.ErrCancelled),
		errors.Is(err, admission.ErrCancelled),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		uc.logger.Warn("PlaceOrder: branch=%d cancelled during %s: %v", branchID, step, err)
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	default:
		uc.logger.Error("PlaceOrder: branch=%d failed to %s: %v", branchID, step, err)
		return fmt.Errorf("%w: PlaceOrder - %s: %v", ErrInternal, step, err)
	}
}
