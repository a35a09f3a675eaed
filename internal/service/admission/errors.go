package admission

import "errors"

var (
	// ErrCancelled возвращается, если вызывающая сторона отменила запрос; вердикт не выносится
	ErrCancelled = errors.New("admission: evaluation cancelled")

	// ErrInvalidFailPolicy возвращается для неизвестной fail-политики
	ErrInvalidFailPolicy = errors.New("admission: invalid fail policy")
)
