package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/admission"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/availability"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/branchtime"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/decision"
	scheduleService "github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/ptr"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopMetrics struct{}

func (nopMetrics) IncVerdict(string, string)   {}
func (nopMetrics) IncAdmission(string, string) {}
func (nopMetrics) ObserveVolumeQuery(float64)  {}
func (nopMetrics) IncVolumeError(string)       {}
func (nopMetrics) IncFailPolicy(string)        {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubLocations struct {
	loc *time.Location
	err error
}

func (s stubLocations) Location(context.Context, int64) (*time.Location, error) {
	return s.loc, s.err
}

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) GetSnapshot(ctx context.Context, branchID int64) (*domain.ScheduleSnapshot, error) {
	args := m.Called(ctx, branchID)
	snapshot, _ := args.Get(0).(*domain.ScheduleSnapshot)
	return snapshot, args.Error(1)
}

type countSource struct {
	count int
	err   error
}

func (s countSource) CountInWindow(context.Context, int64, domain.RestrictionScope, time.Time, time.Time) (int, *time.Time, error) {
	return s.count, nil, s.err
}

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func branchSnapshot() *domain.ScheduleSnapshot {
	weekly := domain.WeeklySchedule{}
	for _, d := range domain.AllWeekdays {
		weekly[d] = domain.DaySettings{
			CollectionAllowed:    true,
			DeliveryAllowed:      true,
			TableOrderingAllowed: true,
			DefaultWindow:        domain.TimeWindow{Start: "11:45", End: "21:50"},
			Delivery:             domain.ServiceSettings{LeadTimeMinutes: 30},
		}
	}
	return &domain.ScheduleSnapshot{
		BranchID: 7,
		Weekly:   weekly,
		ClosedDates: domain.ClosedDates{
			{Date: types.MustDate("2024-12-25"), Type: domain.ClosedDateSingle, Reason: "Christmas"},
		},
	}
}

func newUseCase(loc *time.Location, snapshots SnapshotProvider, source admission.VolumeSource, now time.Time) *UseCase {
	adm := admission.NewEvaluator(source, admission.Config{}, nopLogger{}, nopMetrics{})
	decider := decision.NewService(availability.NewEvaluator(), adm, nopMetrics{})

	uc := NewUseCase(stubLocations{loc: loc}, snapshots, decider, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_Scenarios(t *testing.T) {
	loc := london(t)

	tests := []struct {
		name          string
		now           time.Time
		serviceType   string
		wantAvailable bool
		wantReason    domain.Reason
		wantNext      *time.Time
		wantDisplayed types.TimeString
	}{
		{
			name:        "before opening",
			now:         time.Date(2024, 12, 23, 11, 0, 0, 0, loc),
			serviceType: "delivery",
			wantReason:  domain.ReasonNotYetOpen,
			wantNext:    ptr.Ptr(time.Date(2024, 12, 23, 11, 45, 0, 0, loc)),
		},
		{
			name:          "open with lead time",
			now:           time.Date(2024, 12, 23, 11, 50, 0, 0, loc),
			serviceType:   "delivery",
			wantAvailable: true,
			wantNext:      ptr.Ptr(time.Date(2024, 12, 23, 11, 50, 0, 0, loc)),
			wantDisplayed: "12:20",
		},
		{
			name:        "closed date",
			now:         time.Date(2024, 12, 25, 13, 0, 0, 0, loc),
			serviceType: "collection",
			wantReason:  domain.ReasonClosedDate,
			wantNext:    ptr.Ptr(time.Date(2024, 12, 26, 11, 45, 0, 0, loc)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshots := &mockSnapshots{}
			snapshots.On("GetSnapshot", mock.Anything, int64(7)).Return(branchSnapshot(), nil)

			uc := newUseCase(loc, snapshots, countSource{}, tt.now)

			resp, err := uc.Execute(context.Background(), &Request{BranchID: 7, ServiceType: tt.serviceType})
			require.NoError(t, err)

			assert.Equal(t, tt.wantAvailable, resp.Available)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.Equal(t, tt.wantDisplayed, resp.DisplayedReadyTime)
			require.NotNil(t, resp.NextAvailableInstant)
			assert.True(t, tt.wantNext.Equal(*resp.NextAvailableInstant), "next=%s", resp.NextAvailableInstant)
		})
	}
}

func TestExecute_RequestedInstantUsesBranchZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	snapshots := &mockSnapshots{}
	snapshots.On("GetSnapshot", mock.Anything, int64(7)).Return(branchSnapshot(), nil)

	// текущее время провайдера не должно использоваться
	uc := newUseCase(ny, snapshots, countSource{}, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	at := time.Date(2024, 12, 23, 16, 0, 0, 0, time.UTC) // 11:00 в Нью-Йорке
	resp, err := uc.Execute(context.Background(), &Request{BranchID: 7, ServiceType: "collection", RequestedInstant: &at})
	require.NoError(t, err)

	assert.Equal(t, domain.ReasonNotYetOpen, resp.Reason)
	assert.Equal(t, "America/New_York", resp.EvaluatedAt.Location().String())
	assert.True(t, time.Date(2024, 12, 23, 16, 45, 0, 0, time.UTC).Equal(*resp.NextAvailableInstant))
}

func TestExecute_ThroughputLimit(t *testing.T) {
	loc := london(t)
	snapshot := branchSnapshot()
	snapshot.Restrictions = domain.RestrictionConfig{
		Type: domain.RestrictionCombinedTotal,
		Days: map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings{
			domain.ScopeCombined: {domain.Monday: {Enabled: true, OrderTotal: 2, WindowSizeMinutes: 15}},
		},
	}

	snapshots := &mockSnapshots{}
	snapshots.On("GetSnapshot", mock.Anything, int64(7)).Return(snapshot, nil)

	now := time.Date(2024, 12, 23, 13, 0, 0, 0, loc)
	uc := newUseCase(loc, snapshots, countSource{count: 2}, now)

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 7, ServiceType: "tableOrdering"})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, domain.ReasonThroughputLimitReached, resp.Reason)
	assert.Equal(t, now.Add(15*time.Minute), *resp.NextAvailableInstant)
}

func TestExecute_FailClosedIsDegraded(t *testing.T) {
	loc := london(t)
	snapshot := branchSnapshot()
	snapshot.Restrictions = domain.RestrictionConfig{
		Type: domain.RestrictionCombinedTotal,
		Days: map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings{
			domain.ScopeCombined: {domain.Monday: {Enabled: true, OrderTotal: 2, WindowSizeMinutes: 15}},
		},
	}

	snapshots := &mockSnapshots{}
	snapshots.On("GetSnapshot", mock.Anything, int64(7)).Return(snapshot, nil)

	uc := newUseCase(loc, snapshots, countSource{err: errors.New("connection refused")}, time.Date(2024, 12, 23, 13, 0, 0, 0, loc))

	resp, err := uc.Execute(context.Background(), &Request{BranchID: 7, ServiceType: "collection"})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.True(t, resp.Degraded)
	assert.Equal(t, domain.ReasonThroughputLimitReached, resp.Reason)
}

func TestExecute_Errors(t *testing.T) {
	loc := london(t)
	now := time.Date(2024, 12, 23, 13, 0, 0, 0, loc)

	invalid := branchSnapshot()
	invalid.Weekly[domain.Friday] = domain.DaySettings{DefaultWindow: domain.TimeWindow{Start: "22:00", End: "10:00"}}

	tests := []struct {
		name      string
		req       *Request
		locations LocationResolver
		snapshot  *domain.ScheduleSnapshot
		snapErr   error
		wantErr   error
	}{
		{name: "nil request", req: nil, wantErr: ErrInvalidInput},
		{name: "bad branch", req: &Request{BranchID: 0, ServiceType: "delivery"}, wantErr: ErrInvalidInput},
		{name: "bad service type", req: &Request{BranchID: 7, ServiceType: "drone"}, wantErr: ErrInvalidInput},
		{
			name:      "branch not found",
			req:       &Request{BranchID: 7, ServiceType: "delivery"},
			locations: stubLocations{err: branchtime.ErrBranchNotFound},
			wantErr:   ErrBranchNotFound,
		},
		{
			name:      "location cancelled",
			req:       &Request{BranchID: 7, ServiceType: "delivery"},
			locations: stubLocations{err: branchtime.ErrCancelled},
			wantErr:   ErrCancelled,
		},
		{
			name:    "no schedule",
			req:     &Request{BranchID: 7, ServiceType: "delivery"},
			snapErr: scheduleService.ErrScheduleNotFound,
			wantErr: ErrScheduleNotFound,
		},
		{
			name:    "store failure",
			req:     &Request{BranchID: 7, ServiceType: "delivery"},
			snapErr: scheduleService.ErrInternal,
			wantErr: ErrInternal,
		},
		{
			name:     "configuration invalid",
			req:      &Request{BranchID: 7, ServiceType: "delivery"},
			snapshot: invalid,
			wantErr:  ErrConfigurationInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshots := &mockSnapshots{}
			snapshots.On("GetSnapshot", mock.Anything, mock.Anything).Return(tt.snapshot, tt.snapErr)

			uc := newUseCase(loc, snapshots, countSource{}, now)
			if tt.locations != nil {
				uc.locations = tt.locations
			}

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
