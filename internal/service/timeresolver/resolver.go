package timeresolver

import (
	"fmt"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

// Все функции пакета чистые: "сейчас" всегда передается явно,
// локация берется из самого времени (локальное время филиала)

// MinutesSinceMidnight возвращает количество минут с начала суток (0..1439)
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsWithin проверяет попадание момента в окно [start, end)
// Окно, переходящее через полночь, считается ошибкой конфигурации
func IsWithin(window domain.TimeWindow, instant time.Time) (bool, error) {
	start, end, err := window.Bounds()
	if err != nil {
		return false, err
	}
	m := MinutesSinceMidnight(instant)
	return m >= start && m < end, nil
}

// AddMinutes вычисляет отображаемое время готовности
// При переходе через полночь результат берется по модулю 1440 (только для отображения)
func AddMinutes(t time.Time, lead int) types.TimeString {
	minutes := (MinutesSinceMidnight(t) + lead) % domain.MinutesPerDay
	if minutes < 0 {
		minutes += domain.MinutesPerDay
	}
	ts, _ := types.NewTimeStringFromMinutes(minutes)
	return ts
}

// NextBoundary возвращает ближайший момент приема заказов в окне на тот же день:
// до начала окна - начало окна, внутри окна - сам момент,
// после конца окна - false (сегодня слотов больше нет)
func NextBoundary(window domain.TimeWindow, instant time.Time) (time.Time, bool, error) {
	start, end, err := window.Bounds()
	if err != nil {
		return time.Time{}, false, err
	}

	m := MinutesSinceMidnight(instant)
	switch {
	case m < start:
		return AtMinutes(instant, start), true, nil
	case m < end:
		return instant, true, nil
	default:
		return time.Time{}, false, nil
	}
}

// At возвращает конкретный момент времени ts в день day (в локации day)
func At(day time.Time, ts types.TimeString) (time.Time, error) {
	minutes, err := MinutesOf(ts)
	if err != nil {
		return time.Time{}, err
	}
	return AtMinutes(day, minutes), nil
}

// MinutesOf переводит время HH:MM в минуты; некорректное значение - ошибка конфигурации
func MinutesOf(ts types.TimeString) (int, error) {
	minutes, err := ts.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrConfigurationInvalid, err)
	}
	return minutes, nil
}

// AtMinutes возвращает момент с указанным количеством минут от начала суток day
func AtMinutes(day time.Time, minutes int) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, minutes/60, minutes%60, 0, 0, day.Location())
}

// StartOfDay возвращает полночь дня t
func StartOfDay(t time.Time) time.Time {
	return AtMinutes(t, 0)
}

// AddDays сдвигает полночь дня t на n календарных дней
// Используется календарная арифметика, поэтому переходы на летнее время не смещают дату
func AddDays(t time.Time, n int) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d+n, 0, 0, 0, 0, t.Location())
}

// DateOf возвращает календарную дату момента в его локации
func DateOf(t time.Time) types.Date {
	return types.NewDate(t)
}

// SameDay проверяет, что два момента относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
