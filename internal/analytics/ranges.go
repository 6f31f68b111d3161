package analytics

import "time"

// timeNow is swapped out in tests; summary and range math are date-sensitive.
var timeNow = time.Now

// Window is a half-open [Start, now) interval. A nil Start means all time.
type Window struct {
	Start *time.Time
}

const (
	Range7d  = "7d"
	Range30d = "30d"
	Range90d = "90d"
	RangeAll = "all"
)

// ParseRange resolves a range token to a window anchored at the current UTC
// instant. Unknown tokens fall back to all time, matching the original
// dashboard's behavior for its "All time" selector.
func ParseRange(token string) Window {
	now := timeNow().UTC()
	var days int
	switch token {
	case Range7d:
		days = 7
	case Range30d:
		days = 30
	case Range90d:
		days = 90
	default:
		return Window{}
	}
	start := now.AddDate(0, 0, -days)
	return Window{Start: &start}
}
