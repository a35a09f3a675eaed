package place_order

import (
	"errors"
	"fmt"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("place_order: invalid input data")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("place_order: branch not found")

	// ErrScheduleNotFound возвращается, когда у филиала нет расписания
	ErrScheduleNotFound = errors.New("place_order: schedule not found")

	// ErrConfigurationInvalid возвращается, когда конфигурация филиала нарушает инварианты
	ErrConfigurationInvalid = errors.New("ConfigurationInvalid")

	// ErrNotAvailable возвращается, когда заказ сейчас не может быть принят
	ErrNotAvailable = errors.New("place_order: ordering is not available")

	// ErrCancelled возвращается при отмене запроса
	ErrCancelled = errors.New("place_order: cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("place_order: internal error")
)

// NotAvailableError несет вердикт, по которому заказ отклонен
// errors.Is(err, ErrNotAvailable) == true
type NotAvailableError struct {
	Verdict domain.AvailabilityResult
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotAvailable, e.Verdict.Reason)
}

func (e *NotAvailableError) Unwrap() error {
	return ErrNotAvailable
}
