package availability

import "errors"

var (
	// ErrInvalidServiceType возвращается для неизвестного типа обслуживания
	ErrInvalidServiceType = errors.New("availability: invalid service type")
)
