package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb, time.Minute), mr
}

func snapshot() *domain.ScheduleSnapshot {
	end := types.MustDate("2025-01-02")
	return &domain.ScheduleSnapshot{
		BranchID: 3,
		Weekly: domain.WeeklySchedule{
			domain.Monday: {
				CollectionAllowed: true,
				DefaultWindow:     domain.TimeWindow{Start: "11:45", End: "21:50"},
				BreakWindow:       &domain.TimeWindow{Start: "15:00", End: "16:00"},
				Delivery:          domain.ServiceSettings{LeadTimeMinutes: 30},
			},
		},
		ClosedDates: domain.ClosedDates{
			{Date: "2024-12-31", Type: domain.ClosedDateRange, EndDate: &end, Reason: "New Year"},
		},
		Restrictions: domain.RestrictionConfig{
			Type: domain.RestrictionSplitTotal,
			Days: map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings{
				domain.ScopeOf(domain.ServiceTypeDelivery): {domain.Monday: {Enabled: true, OrderTotal: 3, WindowSizeMinutes: 30}},
			},
		},
	}
}

func TestCache_SetGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, snapshot()))
	assert.Equal(t, time.Minute, mr.TTL("schedule:snapshot:3"))

	got, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, snapshot(), got)
}

func TestCache_Expires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, snapshot()))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, snapshot()))
	require.NoError(t, c.Invalidate(ctx, 3))

	_, err := c.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrCacheMiss)

	// повторная инвалидация не ошибка
	assert.NoError(t, c.Invalidate(ctx, 3))
}

func TestCache_CorruptedEntry(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set("schedule:snapshot:3", "{not json"))

	_, err := c.Get(context.Background(), 3)
	assert.ErrorIs(t, err, ErrCodec)
}
