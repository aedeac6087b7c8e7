// Package overlap detects time conflicts between events. haru runs it
// before committing a create or edit so the user can be warned about
// double-booking.
package overlap

import (
	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/event"
)

// DateRange is the concrete time interval an event occupies. It is derived
// on demand and never stored; malformed event fields surface as invalid
// endpoint instants.
type DateRange struct {
	Start calendar.Instant
	End   calendar.Instant
}

// Range converts an event's date and start/end times into a DateRange.
func Range(ev event.Event) DateRange {
	return DateRange{
		Start: calendar.ParseDateTime(ev.Date, ev.StartTime),
		End:   calendar.ParseDateTime(ev.Date, ev.EndTime),
	}
}

// Overlapping reports whether two ranges intersect. Intervals are half-open:
// a range ending exactly when another starts does not overlap it. A range
// with an invalid endpoint overlaps nothing.
func Overlapping(a, b DateRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Find returns every event in existing whose range overlaps candidate's,
// preserving the order of existing. An event with candidate's own ID is
// skipped, so editing an event never reports a conflict with itself.
func Find(candidate event.Event, existing []event.Event) []event.Event {
	r := Range(candidate)
	conflicts := []event.Event{}
	for _, ev := range existing {
		if ev.ID == candidate.ID {
			continue
		}
		if Overlapping(r, Range(ev)) {
			conflicts = append(conflicts, ev)
		}
	}
	return conflicts
}
