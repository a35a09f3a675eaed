package redisvolume

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

const (
	defaultPrefix    = "orders"
	defaultRetention = 7 * 24 * time.Hour
)

// Source источник объема заказов на Redis sorted set
// Для каждого филиала ведутся два множества: общее (combined) и по типу обслуживания.
// Score - время оформления заказа в миллисекундах, member - ID заказа
type Source struct {
	rdb       redis.Cmdable
	prefix    string
	retention time.Duration
}

// NewSource создает источник; retention - сколько хранить записи (не меньше максимального окна)
func NewSource(rdb redis.Cmdable, prefix string, retention time.Duration) *Source {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Source{rdb: rdb, prefix: prefix, retention: retention}
}

// Record добавляет заказ в общее множество и множество его типа обслуживания
// Записи старше retention удаляются в той же транзакции
func (s *Source) Record(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ID == 0 || !order.ServiceType.IsValid() {
		return ErrInvalidOrder
	}

	score := float64(order.PlacedAt.UnixMilli())
	member := strconv.FormatInt(order.ID, 10)
	expireBefore := "(" + strconv.FormatInt(order.PlacedAt.Add(-s.retention).UnixMilli(), 10)

	keys := []string{
		s.key(order.BranchID, domain.ScopeCombined),
		s.key(order.BranchID, domain.ScopeOf(order.ServiceType)),
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: member})
			pipe.ZRemRangeByScore(ctx, key, "-inf", expireBefore)
			pipe.Expire(ctx, key, s.retention)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Record - order=%d: %v", ErrRedis, order.ID, err)
	}

	return nil
}

// Forget удаляет заказ из окон (отмена заказа)
func (s *Source) Forget(ctx context.Context, order *domain.Order) error {
	member := strconv.FormatInt(order.ID, 10)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, s.key(order.BranchID, domain.ScopeCombined), member)
		pipe.ZRem(ctx, s.key(order.BranchID, domain.ScopeOf(order.ServiceType)), member)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Forget - order=%d: %v", ErrRedis, order.ID, err)
	}
	return nil
}

// CountInWindow считает заказы в полуинтервале [windowStart, windowEnd)
// и возвращает время самого старого из них
func (s *Source) CountInWindow(
	ctx context.Context,
	branchID int64,
	scope domain.RestrictionScope,
	windowStart, windowEnd time.Time,
) (int, *time.Time, error) {
	key := s.key(branchID, scope)
	lower := strconv.FormatInt(windowStart.UnixMilli(), 10)
	upper := "(" + strconv.FormatInt(windowEnd.UnixMilli(), 10)

	var countCmd *redis.IntCmd
	var oldestCmd *redis.ZSliceCmd

	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		countCmd = pipe.ZCount(ctx, key, lower, upper)
		oldestCmd = pipe.ZRangeByScoreWithScores(ctx, key, &redis.ZRangeBy{Min: lower, Max: upper, Offset: 0, Count: 1})
		return nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("%w: CountInWindow - key=%s: %v", ErrRedis, key, err)
	}

	count := int(countCmd.Val())
	oldest := oldestCmd.Val()
	if count == 0 || len(oldest) == 0 {
		return count, nil, nil
	}

	placedAt := time.UnixMilli(int64(oldest[0].Score)).In(windowEnd.Location())
	return count, &placedAt, nil
}

func (s *Source) key(branchID int64, scope domain.RestrictionScope) string {
	return fmt.Sprintf("%s:%d:%s", s.prefix, branchID, scope)
}
