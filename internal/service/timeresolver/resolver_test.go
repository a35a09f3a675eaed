package timeresolver

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

func window(start, end string) domain.TimeWindow {
	return domain.TimeWindow{Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 12, 23, hour, minute, 0, 0, time.UTC)
}

func TestMinutesSinceMidnight(t *testing.T) {
	assert.Equal(t, 0, MinutesSinceMidnight(at(0, 0)))
	assert.Equal(t, 705, MinutesSinceMidnight(at(11, 45)))
	assert.Equal(t, 1439, MinutesSinceMidnight(at(23, 59)))
}

func TestIsWithin(t *testing.T) {
	w := window("11:45", "21:50")

	tests := []struct {
		name    string
		instant time.Time
		want    bool
	}{
		{name: "before start", instant: at(11, 44), want: false},
		{name: "at start", instant: at(11, 45), want: true},
		{name: "inside", instant: at(15, 0), want: true},
		{name: "last minute", instant: at(21, 49), want: true},
		{name: "at end", instant: at(21, 50), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsWithin(w, tt.instant)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWithin_OvernightWindowIsConfigurationError(t *testing.T) {
	_, err := IsWithin(window("22:00", "02:00"), at(23, 0))
	assert.ErrorIs(t, err, domain.ErrConfigurationInvalid)
}

func TestAddMinutes(t *testing.T) {
	assert.Equal(t, types.TimeString("12:05"), AddMinutes(at(11, 50), 15))
	assert.Equal(t, types.TimeString("00:20"), AddMinutes(at(23, 50), 30))
	assert.Equal(t, types.TimeString("23:50"), AddMinutes(at(23, 50), 0))
}

func TestNextBoundary(t *testing.T) {
	w := window("11:45", "21:50")

	next, ok, err := NextBoundary(w, at(11, 0))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, at(11, 45), next)

	now := at(12, 30).Add(17 * time.Second)
	next, ok, err = NextBoundary(w, now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, now, next)

	_, ok, err = NextBoundary(w, at(21, 50))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddDays_KeepsCalendarAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// 2024-03-31 is a 23-hour day in London
	day := time.Date(2024, 3, 30, 22, 0, 0, 0, loc)
	next := AddDays(day, 2)
	assert.Equal(t, types.Date("2024-04-01"), DateOf(next))
	assert.Equal(t, 0, MinutesSinceMidnight(next))
}

func TestAt(t *testing.T) {
	got, err := At(at(3, 0), types.MustTimeString("17:30"))
	require.NoError(t, err)
	assert.Equal(t, at(17, 30), got)

	_, err = At(at(3, 0), types.TimeString("bad"))
	assert.ErrorIs(t, err, domain.ErrConfigurationInvalid)
}
