package availability

import (
	"fmt"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/timeresolver"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/ptr"
)

// Evaluator вычисляет доступность приема заказов по расписанию филиала
// Не имеет состояния и не обращается к внешним источникам
type Evaluator struct {
	maxScanDays int
}

// NewEvaluator создает новый экземпляр оценщика доступности
func NewEvaluator() *Evaluator {
	return &Evaluator{maxScanDays: domain.MaxScanDays}
}

// Evaluate возвращает вердикт доступности для типа обслуживания в момент now
// now должен быть в локальном времени филиала
//
// Порядок проверок строгий: закрытые даты, недельное расписание, перерыв, границы окна.
// Некорректная конфигурация возвращает domain.ErrConfigurationInvalid вместо вердикта
func (e *Evaluator) Evaluate(
	schedule domain.WeeklySchedule,
	closedDates domain.ClosedDates,
	serviceType domain.ServiceType,
	now time.Time,
) (domain.AvailabilityVerdict, error) {
	if !serviceType.IsValid() {
		return domain.AvailabilityVerdict{}, fmt.Errorf("%w: unknown service type %q", ErrInvalidServiceType, serviceType)
	}
	if err := schedule.Validate(); err != nil {
		return domain.AvailabilityVerdict{}, err
	}
	if err := closedDates.Validate(); err != nil {
		return domain.AvailabilityVerdict{}, err
	}

	// 1. Закрытая дата перекрывает все остальное
	if closedDates.Covers(timeresolver.DateOf(now)) {
		return e.scanForward(schedule, closedDates, serviceType, now, domain.ReasonClosedDate)
	}

	// 2. Тип обслуживания выключен в этот день недели
	day, err := schedule.Day(now)
	if err != nil {
		return domain.AvailabilityVerdict{}, err
	}
	if !day.IsAllowed(serviceType) {
		return e.scanForward(schedule, closedDates, serviceType, now, domain.ReasonServiceTypeDisabledForDay)
	}

	window := day.EffectiveWindow(serviceType)

	// 3. Перерыв
	if day.HasBreak() {
		onBreak, err := timeresolver.IsWithin(*day.BreakWindow, now)
		if err != nil {
			return domain.AvailabilityVerdict{}, err
		}
		if onBreak {
			breakEnd, err := timeresolver.MinutesOf(day.BreakWindow.End)
			if err != nil {
				return domain.AvailabilityVerdict{}, err
			}
			next, ok, err := firstOpenMinute(day, serviceType, breakEnd)
			if err != nil {
				return domain.AvailabilityVerdict{}, err
			}
			if !ok {
				return e.scanForward(schedule, closedDates, serviceType, now, domain.ReasonOnBreak)
			}
			return closedVerdict(domain.ReasonOnBreak, timeresolver.AtMinutes(now, next)), nil
		}
	}

	// 4-5. Границы окна
	start, end, err := window.Bounds()
	if err != nil {
		return domain.AvailabilityVerdict{}, err
	}
	current := timeresolver.MinutesSinceMidnight(now)

	if current < start {
		next, ok, err := firstOpenMinute(day, serviceType, start)
		if err != nil {
			return domain.AvailabilityVerdict{}, err
		}
		if !ok {
			return e.scanForward(schedule, closedDates, serviceType, now, domain.ReasonNotYetOpen)
		}
		return closedVerdict(domain.ReasonNotYetOpen, timeresolver.AtMinutes(now, next)), nil
	}

	if current >= end {
		return e.scanForward(schedule, closedDates, serviceType, now, domain.ReasonServiceTypeDisabledForDay)
	}

	// 6. Заказ можно оформить сейчас; время готовности только для отображения
	lead := day.Service(serviceType).LeadTimeMinutes
	return domain.AvailabilityVerdict{
		Available:            true,
		Reason:               domain.ReasonNone,
		NextAvailableInstant: ptr.Ptr(now),
		DisplayedReadyTime:   timeresolver.AddMinutes(now, lead),
		ReadyAt:              ptr.Ptr(now.Add(time.Duration(lead) * time.Minute)),
	}, nil
}

// scanForward ищет первый день после now, в который тип обслуживания разрешен и день не закрыт
// Поиск ограничен maxScanDays итерациями; если день не найден - NoUpcomingSlot
func (e *Evaluator) scanForward(
	schedule domain.WeeklySchedule,
	closedDates domain.ClosedDates,
	serviceType domain.ServiceType,
	now time.Time,
	reason domain.Reason,
) (domain.AvailabilityVerdict, error) {
	for i := 1; i <= e.maxScanDays; i++ {
		day := timeresolver.AddDays(now, i)

		if closedDates.Covers(timeresolver.DateOf(day)) {
			continue
		}

		settings, err := schedule.Day(day)
		if err != nil {
			return domain.AvailabilityVerdict{}, err
		}
		if !settings.IsAllowed(serviceType) {
			continue
		}

		next, ok, err := firstOpenMinute(settings, serviceType, 0)
		if err != nil {
			return domain.AvailabilityVerdict{}, err
		}
		if ok {
			return closedVerdict(reason, timeresolver.AtMinutes(day, next)), nil
		}
	}

	return domain.AvailabilityVerdict{Available: false, Reason: domain.ReasonNoUpcomingSlot}, nil
}

// firstOpenMinute возвращает первую минуту не раньше from, которая лежит в эффективном окне
// и не попадает в перерыв
func firstOpenMinute(day domain.DaySettings, serviceType domain.ServiceType, from int) (int, bool, error) {
	start, end, err := day.EffectiveWindow(serviceType).Bounds()
	if err != nil {
		return 0, false, err
	}

	candidate := from
	if candidate < start {
		candidate = start
	}

	if day.HasBreak() {
		breakStart, breakEnd, err := day.BreakWindow.Bounds()
		if err != nil {
			return 0, false, err
		}
		if candidate >= breakStart && candidate < breakEnd {
			candidate = breakEnd
		}
	}

	if candidate >= end {
		return 0, false, nil
	}
	return candidate, true, nil
}

func closedVerdict(reason domain.Reason, next time.Time) domain.AvailabilityVerdict {
	return domain.AvailabilityVerdict{
		Available:            false,
		Reason:               reason,
		NextAvailableInstant: ptr.Ptr(next),
	}
}
