package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate возвращается, если строка не соответствует формату YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date format")

// Date календарная дата в формате YYYY-MM-DD без времени и часового пояса
// Формат позволяет сравнивать даты лексикографически
type Date string

// NewDate берет календарную дату из времени в его собственной локации
func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate парсит строку YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

// MustDate используется в тестах
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String возвращает строковое представление
func (d Date) String() string {
	return string(d)
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d == ""
}

// Validate проверяет формат YYYY-MM-DD
func (d Date) Validate() error {
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return nil
}

// Before возвращает true, если d строго раньше other
func (d Date) Before(other Date) bool {
	return d < other
}

// After возвращает true, если d строго позже other
func (d Date) After(other Date) bool {
	return d > other
}

// In возвращает полночь этой даты в указанной локации
func (d Date) In(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return t, nil
}

// Scan реализует sql.Scanner (поддерживает колонки DATE и TEXT)
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}
