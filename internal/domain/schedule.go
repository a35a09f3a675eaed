package domain

import (
	"fmt"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

// Weekday is the configuration key of a day in a weekly schedule
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists weekday keys starting from Monday
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the configuration key for the weekday of t
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsValid returns true for one of the seven weekday keys
func (w Weekday) IsValid() bool {
	for _, d := range AllWeekdays {
		if d == w {
			return true
		}
	}
	return false
}

// TimeWindow is a same-day wall-clock interval [Start, End)
type TimeWindow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Bounds returns the window as minutes since midnight.
// A window with Start >= End is a configuration error; overnight windows are not supported.
func (w TimeWindow) Bounds() (start, end int, err error) {
	start, err = w.Start.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: window start: %v", ErrConfigurationInvalid, err)
	}
	end, err = w.End.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: window end: %v", ErrConfigurationInvalid, err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: window %s-%s must start before it ends", ErrConfigurationInvalid, w.Start, w.End)
	}
	return start, end, nil
}

// Contains returns true if other lies fully inside w
func (w TimeWindow) Contains(other TimeWindow) (bool, error) {
	ws, we, err := w.Bounds()
	if err != nil {
		return false, err
	}
	os, oe, err := other.Bounds()
	if err != nil {
		return false, err
	}
	return os >= ws && oe <= we, nil
}

// ServiceSettings holds per-service-type settings of a day
type ServiceSettings struct {
	LeadTimeMinutes int        `json:"leadTimeMinutes"`
	UseCustomWindow bool       `json:"useCustomWindow"`
	CustomWindow    TimeWindow `json:"customWindow"`
}

// DaySettings is the ordering configuration of one weekday for a branch
type DaySettings struct {
	CollectionAllowed    bool `json:"collectionAllowed"`
	DeliveryAllowed      bool `json:"deliveryAllowed"`
	TableOrderingAllowed bool `json:"tableOrderingAllowed"`

	DefaultWindow TimeWindow  `json:"defaultWindow"`
	BreakWindow   *TimeWindow `json:"breakWindow,omitempty"`

	Collection    ServiceSettings `json:"collection"`
	Delivery      ServiceSettings `json:"delivery"`
	TableOrdering ServiceSettings `json:"tableOrdering"`
}

// IsAllowed returns the "allowed" flag for the service type
func (d DaySettings) IsAllowed(st ServiceType) bool {
	switch st {
	case ServiceTypeCollection:
		return d.CollectionAllowed
	case ServiceTypeDelivery:
		return d.DeliveryAllowed
	case ServiceTypeTableOrdering:
		return d.TableOrderingAllowed
	default:
		return false
	}
}

// Service returns the per-service-type settings
func (d DaySettings) Service(st ServiceType) ServiceSettings {
	switch st {
	case ServiceTypeCollection:
		return d.Collection
	case ServiceTypeDelivery:
		return d.Delivery
	case ServiceTypeTableOrdering:
		return d.TableOrdering
	default:
		return ServiceSettings{}
	}
}

// EffectiveWindow returns the custom window if enabled, otherwise the default window
func (d DaySettings) EffectiveWindow(st ServiceType) TimeWindow {
	s := d.Service(st)
	if s.UseCustomWindow {
		return s.CustomWindow
	}
	return d.DefaultWindow
}

// HasBreak returns true if a break window is configured
func (d DaySettings) HasBreak() bool {
	return d.BreakWindow != nil
}

// Validate checks day invariants
func (d DaySettings) Validate() error {
	if _, _, err := d.DefaultWindow.Bounds(); err != nil {
		return fmt.Errorf("defaultWindow: %w", err)
	}

	if d.BreakWindow != nil {
		inside, err := d.DefaultWindow.Contains(*d.BreakWindow)
		if err != nil {
			return fmt.Errorf("breakWindow: %w", err)
		}
		if !inside {
			return fmt.Errorf("%w: breakWindow %s-%s is outside defaultWindow %s-%s", ErrConfigurationInvalid,
				d.BreakWindow.Start, d.BreakWindow.End, d.DefaultWindow.Start, d.DefaultWindow.End)
		}
	}

	for _, st := range AllServiceTypes {
		s := d.Service(st)
		if s.LeadTimeMinutes < 0 || s.LeadTimeMinutes > MaxLeadTimeMinutes {
			return fmt.Errorf("%w: %s leadTimeMinutes must be between 0 and %d", ErrConfigurationInvalid, st, MaxLeadTimeMinutes)
		}
		if s.UseCustomWindow {
			if _, _, err := s.CustomWindow.Bounds(); err != nil {
				return fmt.Errorf("%s customWindow: %w", st, err)
			}
		}
	}

	return nil
}

// WeeklySchedule maps every weekday key to its settings
type WeeklySchedule map[Weekday]DaySettings

// Validate checks that exactly the seven weekday keys are present and every day is valid
func (s WeeklySchedule) Validate() error {
	if len(s) != len(AllWeekdays) {
		return fmt.Errorf("%w: weekly schedule must have %d days, got %d", ErrConfigurationInvalid, len(AllWeekdays), len(s))
	}
	for _, day := range AllWeekdays {
		settings, ok := s[day]
		if !ok {
			return fmt.Errorf("%w: weekly schedule has no %s", ErrConfigurationInvalid, day)
		}
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// Day returns the settings for the weekday of t
func (s WeeklySchedule) Day(t time.Time) (DaySettings, error) {
	settings, ok := s[WeekdayOf(t)]
	if !ok {
		return DaySettings{}, fmt.Errorf("%w: weekly schedule has no %s", ErrConfigurationInvalid, WeekdayOf(t))
	}
	return settings, nil
}
