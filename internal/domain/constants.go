package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Evaluation constants
const (
	// MaxScanDays bounds the day-by-day forward scan for the next open day
	MaxScanDays = 366

	MinutesPerDay = 24 * 60
)

// Business validation constants
const (
	MinWindowSizeMinutes = 1
	MaxWindowSizeMinutes = 7 * MinutesPerDay
	MaxLeadTimeMinutes   = MinutesPerDay
	MaxClosedDateReason  = 500
)
