package redisvolume

import "errors"

var (
	// ErrRedis возвращается при ошибке выполнения команды Redis
	ErrRedis = errors.New("redisvolume: redis command failed")

	// ErrInvalidOrder возвращается, если заказ нельзя записать в окно
	ErrInvalidOrder = errors.New("redisvolume: invalid order")
)
