package domain

import (
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

// Reason explains why an order cannot be placed. Empty when available.
type Reason string

const (
	ReasonNone                      Reason = ""
	ReasonClosedDate                Reason = "ClosedDate"
	ReasonServiceTypeDisabledForDay Reason = "ServiceTypeDisabledForDay"
	ReasonOnBreak                   Reason = "OnBreak"
	ReasonNotYetOpen                Reason = "NotYetOpen"
	ReasonNoUpcomingSlot            Reason = "NoUpcomingSlot"
	ReasonThroughputLimitReached    Reason = "ThroughputLimitReached"
)

// ScheduleSnapshot is the read-only branch configuration used for one evaluation
type ScheduleSnapshot struct {
	BranchID     int64             `json:"branchId"`
	Weekly       WeeklySchedule    `json:"weeklySchedule"`
	ClosedDates  ClosedDates       `json:"closedDates"`
	Restrictions RestrictionConfig `json:"restrictionConfig"`
}

// Validate checks all parts of the snapshot
func (s ScheduleSnapshot) Validate() error {
	if err := s.Weekly.Validate(); err != nil {
		return err
	}
	if err := s.ClosedDates.Validate(); err != nil {
		return err
	}
	return s.Restrictions.Validate()
}

// AvailabilityVerdict is the schedule-only answer
type AvailabilityVerdict struct {
	Available            bool
	Reason               Reason
	NextAvailableInstant *time.Time

	// Display-only values, set when available
	DisplayedReadyTime types.TimeString
	ReadyAt            *time.Time
}

// AdmissionVerdict is the throughput-limit answer
type AdmissionVerdict struct {
	Admitted          bool
	Reason            Reason
	RetryAfterInstant *time.Time
	Scope             RestrictionScope
	Count             int
	Limit             int
	// Degraded is set when the volume source failed and the fail policy decided
	Degraded bool
}

// AvailabilityResult is the combined decision returned to callers
type AvailabilityResult struct {
	Available            bool
	Reason               Reason
	NextAvailableInstant *time.Time
	DisplayedReadyTime   types.TimeString
	ReadyAt              *time.Time
	Degraded             bool
}
