package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у филиала нет расписания
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
