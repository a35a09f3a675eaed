package decision

import (
	"context"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// AvailabilityEvaluator проверка доступности по расписанию
type AvailabilityEvaluator interface {
	Evaluate(schedule domain.WeeklySchedule, closedDates domain.ClosedDates, serviceType domain.ServiceType, now time.Time) (domain.AvailabilityVerdict, error)
}

// AdmissionEvaluator проверка ограничений пропускной способности
type AdmissionEvaluator interface {
	Evaluate(ctx context.Context, branchID int64, restrictions domain.RestrictionConfig, serviceType domain.ServiceType, now time.Time) (domain.AdmissionVerdict, error)
}

// Metrics интерфейс метрик вердиктов
type Metrics interface {
	IncVerdict(serviceType, reason string)
}

// Service объединяет проверку расписания и admission control в одно решение
// Проверка расписания дешевая и локальная, поэтому выполняется первой:
// если по расписанию заказ невозможен, источник объема заказов не опрашивается
type Service struct {
	availability AvailabilityEvaluator
	admission    AdmissionEvaluator
	metrics      Metrics
}

// NewService создает сервис принятия решения
func NewService(availability AvailabilityEvaluator, admission AdmissionEvaluator, metrics Metrics) *Service {
	return &Service{
		availability: availability,
		admission:    admission,
		metrics:      metrics,
	}
}

// WithAdmission возвращает копию сервиса с другим оценщиком admission control
func (s *Service) WithAdmission(admission AdmissionEvaluator) *Service {
	clone := *s
	clone.admission = admission
	return &clone
}

// Decide выносит решение по снимку конфигурации для момента now (локальное время филиала)
// Ошибки конфигурации и отмена возвращаются как есть, без вердикта
func (s *Service) Decide(
	ctx context.Context,
	snapshot *domain.ScheduleSnapshot,
	serviceType domain.ServiceType,
	now time.Time,
) (domain.AvailabilityResult, error) {
	if err := snapshot.Validate(); err != nil {
		return domain.AvailabilityResult{}, err
	}

	// 1. Расписание
	verdict, err := s.availability.Evaluate(snapshot.Weekly, snapshot.ClosedDates, serviceType, now)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}

	if !verdict.Available {
		s.metrics.IncVerdict(string(serviceType), string(verdict.Reason))
		return domain.AvailabilityResult{
			Available:            false,
			Reason:               verdict.Reason,
			NextAvailableInstant: verdict.NextAvailableInstant,
		}, nil
	}

	// 2. Admission control
	admission, err := s.admission.Evaluate(ctx, snapshot.BranchID, snapshot.Restrictions, serviceType, now)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}

	if !admission.Admitted {
		s.metrics.IncVerdict(string(serviceType), string(domain.ReasonThroughputLimitReached))
		return domain.AvailabilityResult{
			Available:            false,
			Reason:               domain.ReasonThroughputLimitReached,
			NextAvailableInstant: admission.RetryAfterInstant,
			Degraded:             admission.Degraded,
		}, nil
	}

	s.metrics.IncVerdict(string(serviceType), string(domain.ReasonNone))
	return domain.AvailabilityResult{
		Available:            true,
		Reason:               domain.ReasonNone,
		NextAvailableInstant: verdict.NextAvailableInstant,
		DisplayedReadyTime:   verdict.DisplayedReadyTime,
		ReadyAt:              verdict.ReadyAt,
		Degraded:             admission.Degraded,
	}, nil
}
