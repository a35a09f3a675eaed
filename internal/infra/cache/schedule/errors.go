package schedule

import "errors"

var (
	// ErrCacheMiss возвращается, когда снимка нет в кэше
	ErrCacheMiss = errors.New("schedule.cache: miss")

	// ErrRedis возвращается при ошибке выполнения команды Redis
	ErrRedis = errors.New("schedule.cache: redis command failed")

	// ErrCodec возвращается при ошибке сериализации снимка
	ErrCodec = errors.New("schedule.cache: codec error")
)
