package textproc

import "time"

// DayKey derives the locale-neutral YYYY-MM-DD key from a UTC-basis
// timestamp, used as the grouping key for daily volume/burst detection.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey derives the locale-neutral YYYY-MM key, used for monthly trend
// series (timing, heatmap, integrative complexity, intimacy, temporal focus).
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// HourOfDay returns the local clock hour in [0,23] used to bucket messages
// for heatmaps and circular-midpoint computation.
func HourOfDay(t time.Time) int {
	return t.Hour()
}

// IsLateNight reports whether hour falls in the late-night band 22:00-03:59
// inclusive (§4.4), wrapping past midnight.
func IsLateNight(hour int) bool {
	return hour >= 22 || hour <= 3
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
