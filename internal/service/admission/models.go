package admission

import (
	"fmt"
	"time"
)

// FailPolicy определяет решение при недоступности источника объема заказов
type FailPolicy string

const (
	// FailClosed отказывает в приеме заказа (защита кухни от перегрузки)
	FailClosed FailPolicy = "closed"
	// FailOpen принимает заказ
	FailOpen FailPolicy = "open"
)

// ParseFailPolicy разбирает значение из конфига; пустое значение - FailClosed
func ParseFailPolicy(raw string) (FailPolicy, error) {
	switch FailPolicy(raw) {
	case "", FailClosed:
		return FailClosed, nil
	case FailOpen:
		return FailOpen, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFailPolicy, raw)
	}
}

// Config настройки оценщика
type Config struct {
	// VolumeTimeout ограничивает запрос к источнику объема заказов
	VolumeTimeout time.Duration
	FailPolicy    FailPolicy
}

const (
	defaultVolumeTimeout = 500 * time.Millisecond

	// retryGranularity сдвиг retryAfter за границу окна: в момент oldest+window заказ еще внутри [start, end)
	retryGranularity = time.Second
)

const (
	outcomeAdmitted  = "admitted"
	outcomeDenied    = "denied"
	outcomeDisabled  = "disabled"
	outcomeDegraded  = "degraded"
	volumeErrTimeout = "timeout"
	volumeErrFailure = "error"
)
