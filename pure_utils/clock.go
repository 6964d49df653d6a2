package pure_utils

import "time"

// ClockLayout is the 12-hour wall clock format used by cohort windows and
// location opening hours ("09:30 PM").
const ClockLayout = "03:04 PM"

// ParseClockMinutes parses a 12-hour wall clock value into minutes since
// midnight.
func ParseClockMinutes(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// InClockWindow reports whether now (minutes since midnight) falls inside
// [start, end]. A window with end < start wraps past midnight.
func InClockWindow(now, start, end int) bool {
	if start <= end {
		return now >= start && now <= end
	}
	return now >= start || now <= end
}
