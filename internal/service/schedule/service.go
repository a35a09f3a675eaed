package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	scheduleCache "github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/cache/schedule"
	scheduleRepo "github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/storage/schedule"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule/models"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// Service сервис чтения конфигурации расписания филиала
// Снимок конфигурации неизменяем в рамках одной проверки доступности
type Service struct {
	repo    ScheduleRepository
	cache   SnapshotCache
	logger  Logger
	metrics Metrics
}

// NewService создает новый экземпляр сервиса расписаний
// cache может быть nil, тогда снимок всегда читается из хранилища
func NewService(repo ScheduleRepository, cache SnapshotCache, logger Logger, metrics Metrics) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// GetSnapshot возвращает снимок конфигурации филиала, используя кэш
// Ошибки кэша не прерывают чтение: снимок берется из хранилища
func (s *Service) GetSnapshot(ctx context.Context, branchID int64) (*domain.ScheduleSnapshot, error) {
	if branchID <= 0 {
		return nil, fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}

	if s.cache != nil {
		snapshot, err := s.cache.Get(ctx, branchID)
		switch {
		case err == nil:
			s.metrics.IncScheduleCache(cacheHit)
			return snapshot, nil
		case errors.Is(err, scheduleCache.ErrCacheMiss):
			s.metrics.IncScheduleCache(cacheMiss)
		default:
			s.metrics.IncScheduleCache(cacheError)
			s.logger.Warn("GetSnapshot: cache read failed for branch=%d: %v", branchID, err)
		}
	}

	snapshot, err := s.LoadSnapshot(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshot); err != nil {
			s.logger.Warn("GetSnapshot: cache write failed for branch=%d: %v", branchID, err)
		}
	}

	return snapshot, nil
}

// LoadSnapshot читает снимок напрямую из хранилища, минуя кэш
// Если в контексте есть транзакция, чтение выполняется в ней
func (s *Service) LoadSnapshot(ctx context.Context, branchID int64) (*domain.ScheduleSnapshot, error) {
	weekly, err := s.repo.GetWeeklySchedule(ctx, branchID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("LoadSnapshot: no schedule for branch=%d", branchID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("LoadSnapshot: failed to get weekly schedule for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: LoadSnapshot - weekly schedule: %v", ErrInternal, err)
	}

	closedDates, err := s.repo.GetClosedDates(ctx, branchID)
	if err != nil {
		s.logger.Error("LoadSnapshot: failed to get closed dates for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: LoadSnapshot - closed dates: %v", ErrInternal, err)
	}

	restrictions, err := s.repo.GetRestrictionConfig(ctx, branchID)
	if err != nil {
		s.logger.Error("LoadSnapshot: failed to get restriction config for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: LoadSnapshot - restriction config: %v", ErrInternal, err)
	}

	return &domain.ScheduleSnapshot{
		BranchID:     branchID,
		Weekly:       weekly,
		ClosedDates:  closedDates,
		Restrictions: restrictions,
	}, nil
}

// Describe возвращает снимок с результатом валидации (диагностика конфигурации)
func (s *Service) Describe(ctx context.Context, branchID int64) (*models.SnapshotResponse, error) {
	s.logger.Info("Describe: fetching schedule for branch=%d", branchID)

	snapshot, err := s.GetSnapshot(ctx, branchID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSnapshot(snapshot, snapshot.Validate()), nil
}

// Invalidate сбрасывает кэшированный снимок филиала
// Сигнал приходит от административной части после изменения расписания
func (s *Service) Invalidate(ctx context.Context, branchID int64) error {
	if branchID <= 0 {
		return fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}

	if s.cache == nil {
		s.logger.Info("Invalidate: cache disabled, nothing to do for branch=%d", branchID)
		return nil
	}

	if err := s.cache.Invalidate(ctx, branchID); err != nil {
		s.logger.Error("Invalidate: failed for branch=%d: %v", branchID, err)
		return fmt.Errorf("%w: Invalidate: %v", ErrInternal, err)
	}

	s.logger.Info("Invalidate: schedule snapshot dropped for branch=%d", branchID)
	return nil
}
