package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/ptr"
)

// Evaluator проверяет ограничения пропускной способности по скользящему окну
// Проверка носит рекомендательный характер: ничего не резервирует и не изменяет
type Evaluator struct {
	source  VolumeSource
	cfg     Config
	logger  Logger
	metrics Metrics
}

// NewEvaluator создает новый экземпляр оценщика
func NewEvaluator(source VolumeSource, cfg Config, logger Logger, metrics Metrics) *Evaluator {
	if cfg.VolumeTimeout <= 0 {
		cfg.VolumeTimeout = defaultVolumeTimeout
	}
	if cfg.FailPolicy == "" {
		cfg.FailPolicy = FailClosed
	}
	return &Evaluator{
		source:  source,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// WithSource возвращает копию оценщика с другим источником объема заказов
// Используется при повторной проверке внутри транзакции оформления заказа
func (e *Evaluator) WithSource(source VolumeSource) *Evaluator {
	clone := *e
	clone.source = source
	return &clone
}

// Evaluate решает, допускается ли заказ типа serviceType в момент now
// now должен быть в локальном времени филиала
func (e *Evaluator) Evaluate(
	ctx context.Context,
	branchID int64,
	restrictions domain.RestrictionConfig,
	serviceType domain.ServiceType,
	now time.Time,
) (domain.AdmissionVerdict, error) {
	// 1. Ограничения не настроены
	if restrictions.IsNone() {
		return domain.AdmissionVerdict{Admitted: true}, nil
	}

	// 2. Выбираем счетчик и настройки дня
	scope := restrictions.ScopeFor(serviceType)
	settings := restrictions.DaySettings(scope, domain.WeekdayOf(now))

	// 3. Ограничение выключено на этот день
	if !settings.Enabled {
		e.metrics.IncAdmission(string(scope), outcomeDisabled)
		return domain.AdmissionVerdict{Admitted: true, Scope: scope}, nil
	}

	if err := settings.Validate(); err != nil {
		return domain.AdmissionVerdict{}, err
	}

	if err := ctx.Err(); err != nil {
		return domain.AdmissionVerdict{}, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	// 4. Считаем заказы в [now - window, now)
	window := time.Duration(settings.WindowSizeMinutes) * time.Minute
	windowStart := now.Add(-window)

	count, oldest, err := e.countWithTimeout(ctx, branchID, scope, windowStart, now)
	if err != nil {
		if ctx.Err() != nil {
			e.logger.Warn("AdmissionEvaluate: branch=%d, scope=%s cancelled by caller: %v", branchID, scope, err)
			return domain.AdmissionVerdict{}, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		return e.applyFailPolicy(branchID, scope, settings, now, err), nil
	}

	verdict := domain.AdmissionVerdict{
		Admitted: true,
		Scope:    scope,
		Count:    count,
		Limit:    settings.OrderTotal,
	}

	// 5. Лимит исчерпан
	if count >= settings.OrderTotal {
		verdict.Admitted = false
		verdict.Reason = domain.ReasonThroughputLimitReached
		verdict.RetryAfterInstant = ptr.Ptr(retryAfter(now, oldest, window))

		e.metrics.IncAdmission(string(scope), outcomeDenied)
		e.logger.Info("AdmissionEvaluate: branch=%d, scope=%s denied: count=%d, limit=%d, window=%dm",
			branchID, scope, count, settings.OrderTotal, settings.WindowSizeMinutes)
		return verdict, nil
	}

	// 6. Заказ допускается
	e.metrics.IncAdmission(string(scope), outcomeAdmitted)
	return verdict, nil
}

// countWithTimeout выполняет запрос к источнику с таймаутом из конфига
func (e *Evaluator) countWithTimeout(
	ctx context.Context,
	branchID int64,
	scope domain.RestrictionScope,
	windowStart, windowEnd time.Time,
) (int, *time.Time, error) {
	queryCtx, cancel := context.WithTimeout(ctx, e.cfg.VolumeTimeout)
	defer cancel()

	started := time.Now()
	count, oldest, err := e.source.CountInWindow(queryCtx, branchID, scope, windowStart, windowEnd)
	e.metrics.ObserveVolumeQuery(time.Since(started).Seconds())

	if err == nil && queryCtx.Err() != nil && ctx.Err() == nil {
		// источник вернул результат, проигнорировав дедлайн
		err = queryCtx.Err()
	}
	return count, oldest, err
}

// applyFailPolicy выносит вердикт при отказе источника объема заказов
// Ошибка всегда логируется и никогда не превращается молча в admitted=true
func (e *Evaluator) applyFailPolicy(
	branchID int64,
	scope domain.RestrictionScope,
	settings domain.RestrictionDaySettings,
	now time.Time,
	cause error,
) domain.AdmissionVerdict {
	kind := volumeErrFailure
	if errors.Is(cause, context.DeadlineExceeded) {
		kind = volumeErrTimeout
	}
	e.metrics.IncVolumeError(kind)
	e.metrics.IncFailPolicy(string(e.cfg.FailPolicy))
	e.metrics.IncAdmission(string(scope), outcomeDegraded)

	e.logger.Error("AdmissionEvaluate: branch=%d, scope=%s volume source failed (%s), applying fail policy %q: %v",
		branchID, scope, kind, e.cfg.FailPolicy, cause)

	verdict := domain.AdmissionVerdict{
		Scope:    scope,
		Limit:    settings.OrderTotal,
		Degraded: true,
	}

	if e.cfg.FailPolicy == FailOpen {
		verdict.Admitted = true
		return verdict
	}

	verdict.Admitted = false
	verdict.Reason = domain.ReasonThroughputLimitReached
	verdict.RetryAfterInstant = ptr.Ptr(now.Add(time.Duration(settings.WindowSizeMinutes) * time.Minute))
	return verdict
}

// retryAfter момент, когда самый старый заказ выйдет из окна
// Без времени самого старого заказа берется консервативное now + window
func retryAfter(now time.Time, oldest *time.Time, window time.Duration) time.Time {
	if oldest == nil {
		return now.Add(window)
	}
	next := oldest.In(now.Location()).Add(window).Add(retryGranularity).Truncate(retryGranularity)
	if !next.After(now) {
		return now.Add(retryGranularity)
	}
	return next
}
