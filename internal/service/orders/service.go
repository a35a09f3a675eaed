package orders

import (
	"context"
	"errors"
	"fmt"

	ordersRepo "github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/storage/orders"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders/models"
)

// Service сервис для работы с оформленными заказами
type Service struct {
	repo         OrderRepository
	volume       VolumeForgetter
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
// volume может быть nil, если объем заказов считается по таблице orders
func NewService(repo OrderRepository, volume VolumeForgetter, logger Logger) *Service {
	return &Service{
		repo:         repo,
		volume:       volume,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает заказ филиала по ID
func (s *Service) GetByID(ctx context.Context, branchID, orderID int64) (*models.OrderResponse, error) {
	if branchID <= 0 || orderID <= 0 {
		return nil, fmt.Errorf("%w: branch and order ids must be positive", ErrInvalidInput)
	}

	order, err := s.repo.GetByID(ctx, branchID, orderID)
	if err != nil {
		if errors.Is(err, ordersRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found in branch=%d", orderID, branchID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOrder(order), nil
}

// List получает заказы филиала с фильтрацией по типу обслуживания, статусу и периоду
func (s *Service) List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d orders for branch=%d", len(orders), req.BranchID)
	return models.FromDomainOrderList(orders), nil
}

// Cancel отменяет заказ; отмененный заказ освобождает место в окне ограничения
func (s *Service) Cancel(ctx context.Context, branchID, orderID int64, req *models.CancelOrderRequest) error {
	if branchID <= 0 || orderID <= 0 {
		return fmt.Errorf("%w: branch and order ids must be positive", ErrInvalidInput)
	}

	s.logger.Info("Cancel: cancelling order id=%d in branch=%d", orderID, branchID)

	order, err := s.repo.GetByID(ctx, branchID, orderID)
	if err != nil {
		if errors.Is(err, ordersRepo.ErrOrderNotFound) {
			s.logger.Warn("Cancel: order id=%d not found in branch=%d", orderID, branchID)
			return ErrOrderNotFound
		}
		s.logger.Error("Cancel: repository error for order id=%d: %v", orderID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !order.IsActive() {
		s.logger.Warn("Cancel: order id=%d cannot be cancelled, status=%s", orderID, order.Status)
		return ErrCannotCancel
	}

	reason := ""
	if req != nil {
		reason = req.Reason
	}

	if err := s.repo.Cancel(ctx, branchID, orderID, reason, s.timeProvider.Now()); err != nil {
		if errors.Is(err, ordersRepo.ErrOrderNotFound) {
			// заказ отменили параллельно между чтением и обновлением
			s.logger.Warn("Cancel: order id=%d already cancelled", orderID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for order id=%d: %v", orderID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if s.volume != nil {
		if err := s.volume.Forget(ctx, order); err != nil {
			s.logger.Error("Cancel: order id=%d cancelled but still counted in volume source: %v", orderID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled order id=%d", orderID)
	return nil
}
