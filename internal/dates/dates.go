// Package dates normalizes the heterogeneous date strings accepted by the
// journal into canonical calendar dates (UTC midnight, no time component).
package dates

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/common"
)

// ISO is the canonical boundary format. All dates the API emits use it.
const ISO = "2006-01-02"

// Layouts are the accepted entry date formats, tried in order; the first
// successful parse wins. ISO is deliberately first: an ambiguous string
// like "01-02-2024" is always tried as YYYY-MM-DD before the legacy
// MM-DD-YYYY form is considered. Append here to accept more formats
// without touching call sites.
var Layouts = []string{ISO, "01-02-2006"}

// Parse attempts each accepted layout in order and returns the first
// successful parse as a UTC calendar date. Returns an error wrapping
// common.ErrUnparsableDate when no layout matches.
func Parse(s string) (time.Time, error) {
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", common.ErrUnparsableDate, s)
}

// ParseISO parses strictly as YYYY-MM-DD. Used for query bounds, where the
// legacy ingestion fallback does not apply.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISO, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Day truncates t to midnight UTC, the canonical representation of a
// calendar date throughout the engine.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return Day(time.Now())
}

// Window is an inclusive [Start, End] calendar date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the window, bounds included.
// A zero Start acts as "earliest representable date".
func (w Window) Contains(d time.Time) bool {
	if d.Before(w.Start) {
		return false
	}
	return !d.After(w.End)
}

// LastNDays returns the trailing n-day window ending at today, today
// included. LastNDays(7, t) covers [t-6, t].
func LastNDays(n int, today time.Time) Window {
	end := Day(today)
	return Window{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}
