package branchservice

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("branchservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("branchservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что BranchService недоступен и следует использовать часовой пояс по умолчанию
	ErrServiceDegraded = errors.New("branchservice unavailable: graceful degradation applied")
)
