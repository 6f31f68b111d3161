package analytics

import (
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	now := time.Date(2026, 8, 23, 15, 0, 0, 0, time.UTC)
	fixClock(t, now)

	cases := []struct {
		token string
		days  int
	}{
		{Range7d, 7},
		{Range30d, 30},
		{Range90d, 90},
	}
	for _, tc := range cases {
		w := ParseRange(tc.token)
		if w.Start == nil {
			t.Fatalf("%s: expected a lower bound", tc.token)
		}
		want := now.AddDate(0, 0, -tc.days)
		if !w.Start.Equal(want) {
			t.Fatalf("%s: want start %v, got %v", tc.token, want, *w.Start)
		}
	}

	if w := ParseRange(RangeAll); w.Start != nil {
		t.Fatalf("all: expected no lower bound, got %v", *w.Start)
	}
	if w := ParseRange("garbage"); w.Start != nil {
		t.Fatalf("unknown token should mean all time, got %v", *w.Start)
	}
}
