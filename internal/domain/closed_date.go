package domain

import (
	"fmt"

	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

// ClosedDateType distinguishes one-day closures from inclusive ranges
type ClosedDateType string

const (
	ClosedDateSingle ClosedDateType = "single"
	ClosedDateRange  ClosedDateType = "range"
)

// ClosedDate is an explicit calendar exception that overrides the weekly schedule
type ClosedDate struct {
	ID      int64          `json:"id,omitempty"`
	Date    types.Date     `json:"date"`
	Type    ClosedDateType `json:"type"`
	EndDate *types.Date    `json:"endDate,omitempty"`
	Reason  string         `json:"reason"`
}

// Validate checks closed date invariants
func (c ClosedDate) Validate() error {
	if err := c.Date.Validate(); err != nil {
		return fmt.Errorf("%w: closed date: %v", ErrConfigurationInvalid, err)
	}
	if len(c.Reason) > MaxClosedDateReason {
		return fmt.Errorf("%w: closed date %s reason is too long", ErrConfigurationInvalid, c.Date)
	}

	switch c.Type {
	case ClosedDateSingle:
		return nil
	case ClosedDateRange:
		if c.EndDate == nil {
			return fmt.Errorf("%w: range closed date %s has no endDate", ErrConfigurationInvalid, c.Date)
		}
		if err := c.EndDate.Validate(); err != nil {
			return fmt.Errorf("%w: closed date endDate: %v", ErrConfigurationInvalid, err)
		}
		if c.EndDate.Before(c.Date) {
			return fmt.Errorf("%w: range closed date ends %s before it starts %s", ErrConfigurationInvalid, *c.EndDate, c.Date)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown closed date type %q", ErrConfigurationInvalid, c.Type)
	}
}

// Covers returns true if the closure blocks the given calendar date
func (c ClosedDate) Covers(d types.Date) bool {
	if c.Type == ClosedDateRange && c.EndDate != nil {
		return !d.Before(c.Date) && !d.After(*c.EndDate)
	}
	return d == c.Date
}

// ClosedDates is the closure list of a branch
type ClosedDates []ClosedDate

// Validate validates every entry
func (cs ClosedDates) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("closedDates[%d]: %w", i, err)
		}
	}
	return nil
}

// Covers returns true if any entry blocks the date
func (cs ClosedDates) Covers(d types.Date) bool {
	for _, c := range cs {
		if c.Covers(d) {
			return true
		}
	}
	return false
}
