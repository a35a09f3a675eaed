package domain

import "fmt"

// RestrictionType selects how order throughput is limited
type RestrictionType string

const (
	RestrictionNone          RestrictionType = "None"
	RestrictionCombinedTotal RestrictionType = "CombinedTotal"
	RestrictionSplitTotal    RestrictionType = "SplitTotal"
)

// RestrictionScope identifies a counter: the combined pseudo-type or one service type
type RestrictionScope string

// ScopeCombined is the shared counter across all service types
const ScopeCombined RestrictionScope = "combined"

// ScopeOf returns the scope counting only the given service type
func ScopeOf(st ServiceType) RestrictionScope {
	return RestrictionScope(st)
}

// IsCombined returns true for the shared counter
func (s RestrictionScope) IsCombined() bool {
	return s == ScopeCombined
}

// ServiceType returns the concrete service type of a split scope
func (s RestrictionScope) ServiceType() (ServiceType, bool) {
	st := ServiceType(s)
	return st, st.IsValid()
}

// RestrictionDaySettings limits orders inside a trailing window for one weekday
type RestrictionDaySettings struct {
	Enabled           bool `json:"enabled"`
	OrderTotal        int  `json:"orderTotal"`
	WindowSizeMinutes int  `json:"windowSizeMinutes"`
}

// Validate checks restriction day invariants. Disabled days are not checked.
func (r RestrictionDaySettings) Validate() error {
	if !r.Enabled {
		return nil
	}
	if r.WindowSizeMinutes < MinWindowSizeMinutes || r.WindowSizeMinutes > MaxWindowSizeMinutes {
		return fmt.Errorf("%w: windowSizeMinutes must be between %d and %d", ErrConfigurationInvalid, MinWindowSizeMinutes, MaxWindowSizeMinutes)
	}
	if r.OrderTotal < 0 {
		return fmt.Errorf("%w: orderTotal must not be negative", ErrConfigurationInvalid)
	}
	return nil
}

// RestrictionConfig is the throughput limit configuration of a branch
type RestrictionConfig struct {
	Type RestrictionType                                         `json:"type"`
	Days map[RestrictionScope]map[Weekday]RestrictionDaySettings `json:"days,omitempty"`
}

// Scopes returns the scopes that are active for the restriction type
func (c RestrictionConfig) Scopes() []RestrictionScope {
	switch c.Type {
	case RestrictionCombinedTotal:
		return []RestrictionScope{ScopeCombined}
	case RestrictionSplitTotal:
		scopes := make([]RestrictionScope, 0, len(AllServiceTypes))
		for _, st := range AllServiceTypes {
			scopes = append(scopes, ScopeOf(st))
		}
		return scopes
	default:
		return nil
	}
}

// ScopeFor returns the counter consulted for the service type
func (c RestrictionConfig) ScopeFor(st ServiceType) RestrictionScope {
	if c.Type == RestrictionCombinedTotal {
		return ScopeCombined
	}
	return ScopeOf(st)
}

// DaySettings returns the settings of a scope for the weekday.
// A missing entry reads as disabled.
func (c RestrictionConfig) DaySettings(scope RestrictionScope, day Weekday) RestrictionDaySettings {
	days, ok := c.Days[scope]
	if !ok {
		return RestrictionDaySettings{}
	}
	return days[day]
}

// Validate checks the restriction type and every active scope
func (c RestrictionConfig) Validate() error {
	switch c.Type {
	case RestrictionNone, "":
		return nil
	case RestrictionCombinedTotal, RestrictionSplitTotal:
	default:
		return fmt.Errorf("%w: unknown restriction type %q", ErrConfigurationInvalid, c.Type)
	}

	for _, scope := range c.Scopes() {
		for day, settings := range c.Days[scope] {
			if !day.IsValid() {
				return fmt.Errorf("%w: restriction %s has unknown weekday %q", ErrConfigurationInvalid, scope, day)
			}
			if err := settings.Validate(); err != nil {
				return fmt.Errorf("restriction %s %s: %w", scope, day, err)
			}
		}
	}
	return nil
}

// IsNone returns true if no throughput limit is configured
func (c RestrictionConfig) IsNone() bool {
	return c.Type == RestrictionNone || c.Type == ""
}
