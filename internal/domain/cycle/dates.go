package cycle

import "time"

const secondsPerDay = 24 * 60 * 60

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC. Surrounding whitespace is rejected.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ElapsedDays counts whole calendar days from start to observed. Negative when observed is earlier.
// Both values are expected at midnight UTC; unix seconds avoid the ~292 year limit of time.Duration.
func ElapsedDays(start, observed time.Time) int {
	return int((observed.Unix() - start.Unix()) / secondsPerDay)
}

// CycleDay maps elapsed days onto the 1-indexed day of the current cycle.
// elapsed must be non-negative and cycleLength positive.
func CycleDay(elapsed, cycleLength int) int {
	return elapsed%cycleLength + 1
}
