package decision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/admission"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/availability"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/ptr"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

type mockAdmission struct {
	mock.Mock
}

func (m *mockAdmission) Evaluate(ctx context.Context, branchID int64, restrictions domain.RestrictionConfig, st domain.ServiceType, now time.Time) (domain.AdmissionVerdict, error) {
	args := m.Called(ctx, branchID, restrictions, st, now)
	return args.Get(0).(domain.AdmissionVerdict), args.Error(1)
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) CountInWindow(ctx context.Context, branchID int64, scope domain.RestrictionScope, start, end time.Time) (int, *time.Time, error) {
	args := m.Called(ctx, branchID, scope, start, end)
	oldest, _ := args.Get(1).(*time.Time)
	return args.Int(0), oldest, args.Error(2)
}

type nopMetrics struct{}

func (nopMetrics) IncVerdict(string, string)   {}
func (nopMetrics) IncAdmission(string, string) {}
func (nopMetrics) ObserveVolumeQuery(float64)  {}
func (nopMetrics) IncVolumeError(string)       {}
func (nopMetrics) IncFailPolicy(string)        {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2024-12-23 - понедельник
func monday(hour, minute int) time.Time {
	return time.Date(2024, 12, 23, hour, minute, 0, 0, time.UTC)
}

func snapshot(restrictions domain.RestrictionConfig) *domain.ScheduleSnapshot {
	weekly := domain.WeeklySchedule{}
	for _, d := range domain.AllWeekdays {
		weekly[d] = domain.DaySettings{
			CollectionAllowed:    true,
			DeliveryAllowed:      true,
			TableOrderingAllowed: true,
			DefaultWindow:        domain.TimeWindow{Start: "11:45", End: "21:50"},
			BreakWindow:          &domain.TimeWindow{Start: "15:00", End: "16:00"},
			Delivery:             domain.ServiceSettings{LeadTimeMinutes: 30},
		}
	}
	return &domain.ScheduleSnapshot{BranchID: 9, Weekly: weekly, Restrictions: restrictions}
}

func TestDecide_ScheduleFailureSkipsAdmission(t *testing.T) {
	adm := &mockAdmission{}
	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	got, err := svc.Decide(context.Background(), snapshot(domain.RestrictionConfig{}), domain.ServiceTypeDelivery, monday(11, 0))
	require.NoError(t, err)

	assert.False(t, got.Available)
	assert.Equal(t, domain.ReasonNotYetOpen, got.Reason)
	adm.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_BreakWinsOverAdmission(t *testing.T) {
	adm := &mockAdmission{}
	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})
	restrictions := domain.RestrictionConfig{
		Type: domain.RestrictionCombinedTotal,
		Days: map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings{
			domain.ScopeCombined: {domain.Monday: {Enabled: true, OrderTotal: 0, WindowSizeMinutes: 60}},
		},
	}

	for minute := 0; minute < 60; minute += 7 {
		got, err := svc.Decide(context.Background(), snapshot(restrictions), domain.ServiceTypeCollection, monday(15, minute))
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonOnBreak, got.Reason)
		assert.Equal(t, monday(16, 0), *got.NextAvailableInstant)
	}
	adm.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_AdmissionDenialMapsToThroughputLimit(t *testing.T) {
	adm := &mockAdmission{}
	retry := monday(13, 20)
	adm.On("Evaluate", mock.Anything, int64(9), mock.Anything, domain.ServiceTypeDelivery, monday(13, 0)).
		Return(domain.AdmissionVerdict{Admitted: false, Reason: domain.ReasonThroughputLimitReached, RetryAfterInstant: &retry}, nil)

	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	got, err := svc.Decide(context.Background(), snapshot(domain.RestrictionConfig{}), domain.ServiceTypeDelivery, monday(13, 0))
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, domain.ReasonThroughputLimitReached, got.Reason)
	assert.Equal(t, retry, *got.NextAvailableInstant)
	assert.Empty(t, got.DisplayedReadyTime)
}

func TestDecide_Available(t *testing.T) {
	adm := &mockAdmission{}
	adm.On("Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.AdmissionVerdict{Admitted: true}, nil)

	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	got, err := svc.Decide(context.Background(), snapshot(domain.RestrictionConfig{}), domain.ServiceTypeDelivery, monday(11, 50))
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, domain.ReasonNone, got.Reason)
	assert.Equal(t, "12:20", got.DisplayedReadyTime.String())
}

func TestDecide_NoneNeverThrottles(t *testing.T) {
	source := &mockSource{}
	adm := admission.NewEvaluator(source, admission.Config{}, nopLogger{}, nopMetrics{})
	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	for hour := 0; hour < 24; hour++ {
		for _, st := range domain.AllServiceTypes {
			got, err := svc.Decide(context.Background(), snapshot(domain.RestrictionConfig{Type: domain.RestrictionNone}), st, monday(hour, 30))
			require.NoError(t, err)
			assert.NotEqual(t, domain.ReasonThroughputLimitReached, got.Reason)
		}
	}
	source.AssertNotCalled(t, "CountInWindow", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_Idempotent(t *testing.T) {
	source := &mockSource{}
	oldest := monday(12, 40)
	source.On("CountInWindow", mock.Anything, int64(9), domain.ScopeCombined, monday(12, 30), monday(13, 0)).
		Return(3, &oldest, nil)

	restrictions := domain.RestrictionConfig{
		Type: domain.RestrictionCombinedTotal,
		Days: map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings{
			domain.ScopeCombined: {domain.Monday: {Enabled: true, OrderTotal: 3, WindowSizeMinutes: 30}},
		},
	}
	adm := admission.NewEvaluator(source, admission.Config{}, nopLogger{}, nopMetrics{})
	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	first, err := svc.Decide(context.Background(), snapshot(restrictions), domain.ServiceTypeCollection, monday(13, 0))
	require.NoError(t, err)
	second, err := svc.Decide(context.Background(), snapshot(restrictions), domain.ServiceTypeCollection, monday(13, 0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.ReasonThroughputLimitReached, first.Reason)
	assert.Equal(t, monday(13, 10).Add(time.Second), *first.NextAvailableInstant)
}

func TestDecide_SplitTotalScenario(t *testing.T) {
	source := &mockSource{}
	oldest := monday(12, 40)
	source.On("CountInWindow", mock.Anything, int64(9), domain.ScopeOf(domain.ServiceTypeDelivery), mock.Anything, mock.Anything).
		Return(3, &oldest, nil)

	restrictions := domain.RestrictionConfig{
		Type: domain.RestrictionSplitTotal,
		Days: map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings{
			domain.ScopeOf(domain.ServiceTypeDelivery): {domain.Monday: {Enabled: true, OrderTotal: 3, WindowSizeMinutes: 30}},
		},
	}
	adm := admission.NewEvaluator(source, admission.Config{}, nopLogger{}, nopMetrics{})
	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	delivery, err := svc.Decide(context.Background(), snapshot(restrictions), domain.ServiceTypeDelivery, monday(13, 0))
	require.NoError(t, err)
	assert.False(t, delivery.Available)
	assert.Equal(t, domain.ReasonThroughputLimitReached, delivery.Reason)

	// для collection ограничение выключено: источник не опрашивается
	collection, err := svc.Decide(context.Background(), snapshot(restrictions), domain.ServiceTypeCollection, monday(13, 0))
	require.NoError(t, err)
	assert.True(t, collection.Available)
	source.AssertNumberOfCalls(t, "CountInWindow", 1)
}

func TestDecide_ConfigurationInvalid(t *testing.T) {
	adm := &mockAdmission{}
	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	broken := snapshot(domain.RestrictionConfig{
		Type: domain.RestrictionCombinedTotal,
		Days: map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings{
			domain.ScopeCombined: {domain.Monday: {Enabled: true, OrderTotal: 3, WindowSizeMinutes: 0}},
		},
	})

	_, err := svc.Decide(context.Background(), broken, domain.ServiceTypeCollection, monday(13, 0))
	assert.ErrorIs(t, err, domain.ErrConfigurationInvalid)

	closed := snapshot(domain.RestrictionConfig{})
	closed.ClosedDates = domain.ClosedDates{{Date: types.MustDate("2024-12-23"), Type: domain.ClosedDateRange, EndDate: ptr.Ptr(types.MustDate("2024-12-01"))}}
	_, err = svc.Decide(context.Background(), closed, domain.ServiceTypeCollection, monday(13, 0))
	assert.ErrorIs(t, err, domain.ErrConfigurationInvalid)
}

func TestDecide_CancelledPassesThrough(t *testing.T) {
	adm := &mockAdmission{}
	adm.On("Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.AdmissionVerdict{}, admission.ErrCancelled)

	svc := NewService(availability.NewEvaluator(), adm, nopMetrics{})

	_, err := svc.Decide(context.Background(), snapshot(domain.RestrictionConfig{}), domain.ServiceTypeCollection, monday(13, 0))
	assert.ErrorIs(t, err, admission.ErrCancelled)
}
