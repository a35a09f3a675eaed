package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders.repository: order not found")

	// ErrDuplicateOrder возвращается при повторном ключе идемпотентности
	ErrDuplicateOrder = errors.New("orders.repository: duplicate idempotency key")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("orders.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("orders.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("orders.repository: failed to scan row")
)
