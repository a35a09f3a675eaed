package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrScheduleNotFound возвращается, когда у филиала нет расписания
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrConfigurationInvalid возвращается, когда конфигурация филиала нарушает инварианты
	ErrConfigurationInvalid = errors.New("ConfigurationInvalid")

	// ErrCancelled возвращается при отмене запроса; вердикт не выносится
	ErrCancelled = errors.New("availability check cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
