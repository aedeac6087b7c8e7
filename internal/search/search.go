// Package search selects the subset of an event collection visible in the
// current calendar window, optionally narrowed by a text query. Filtering
// is stable: survivors keep their relative order from the input.
package search

import (
	"strings"
	"time"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/event"
)

// View is the granularity of the displayed calendar window.
type View string

const (
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// MatchesTerm reports whether term occurs, case-insensitively, in the
// event's title, description, or location. The empty term matches every
// event.
func MatchesTerm(ev event.Event, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(ev.Title), needle) ||
		strings.Contains(strings.ToLower(ev.Description), needle) ||
		strings.Contains(strings.ToLower(ev.Location), needle)
}

// MatchesView reports whether the event's date falls inside the window
// anchored at ref: the Sunday-to-Saturday week containing ref, or ref's
// calendar month, both inclusive. Events with malformed dates match no
// view.
func MatchesView(ev event.Event, ref time.Time, view View) bool {
	d := calendar.ParseDate(ev.Date)

	switch view {
	case ViewWeek:
		week := calendar.WeekDates(ref)
		return calendar.IsDateInRange(d, calendar.At(week[0]), calendar.At(week[6]))
	case ViewMonth:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 0, calendar.DaysInMonth(ref.Year(), int(ref.Month()))-1)
		return calendar.IsDateInRange(d, calendar.At(first), calendar.At(last))
	default:
		return false
	}
}

// Filtered returns the events matching both the view window and the search
// term, in their original relative order.
func Filtered(events []event.Event, term string, ref time.Time, view View) []event.Event {
	out := []event.Event{}
	for _, ev := range events {
		if MatchesView(ev, ref, view) && MatchesTerm(ev, term) {
			out = append(out, ev)
		}
	}
	return out
}
