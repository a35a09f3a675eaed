package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

const defaultTTL = 5 * time.Minute

// Cache кэш снимков конфигурации филиала в Redis
// Снимок живет до истечения TTL или до явной инвалидации
type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewCache создает кэш снимков
func NewCache(rdb redis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get возвращает снимок филиала или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, branchID int64) (*domain.ScheduleSnapshot, error) {
	data, err := c.rdb.Get(ctx, key(branchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - branch=%d: %v", ErrRedis, branchID, err)
	}

	var snapshot domain.ScheduleSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: Get - branch=%d: %v", ErrCodec, branchID, err)
	}
	return &snapshot, nil
}

// Set сохраняет снимок филиала
func (c *Cache) Set(ctx context.Context, snapshot *domain.ScheduleSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: Set - branch=%d: %v", ErrCodec, snapshot.BranchID, err)
	}

	if err := c.rdb.Set(ctx, key(snapshot.BranchID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - branch=%d: %v", ErrRedis, snapshot.BranchID, err)
	}
	return nil
}

// Invalidate удаляет снимок филиала
func (c *Cache) Invalidate(ctx context.Context, branchID int64) error {
	if err := c.rdb.Del(ctx, key(branchID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - branch=%d: %v", ErrRedis, branchID, err)
	}
	return nil
}

func key(branchID int64) string {
	return fmt.Sprintf("schedule:snapshot:%d", branchID)
}
