// Package event defines the calendar event value type shared by every
// other package. Events are immutable once constructed; updates happen by
// replacement, never in place.
package event

import (
	"time"

	"github.com/teambition/rrule-go"
)

// RepeatType enumerates the supported recurrence kinds.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Repeat describes how an event recurs. The scheduling kernel treats it as
// opaque metadata — haru never expands a descriptor into occurrences; it is
// carried for display and for ICS export.
type Repeat struct {
	Type     RepeatType
	Interval int
	Until    string // YYYY-MM-DD end date, empty when open-ended
}

// RRule renders the descriptor as an iCalendar recurrence rule, e.g.
// "FREQ=WEEKLY;INTERVAL=2". The second return is false for non-repeating
// descriptors and for descriptors the RRULE grammar cannot express.
func (r Repeat) RRule() (string, bool) {
	var freq rrule.Frequency
	switch r.Type {
	case RepeatDaily:
		freq = rrule.DAILY
	case RepeatWeekly:
		freq = rrule.WEEKLY
	case RepeatMonthly:
		freq = rrule.MONTHLY
	case RepeatYearly:
		freq = rrule.YEARLY
	default:
		return "", false
	}

	opt := rrule.ROption{Freq: freq, Interval: r.Interval}
	if r.Until != "" {
		if until, err := time.ParseInLocation("2006-01-02", r.Until, time.UTC); err == nil {
			opt.Until = until
		}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return "", false
	}
	return rule.String(), true
}

// Event is a single calendar entry. Date is YYYY-MM-DD; StartTime and
// EndTime are HH:MM wall-clock strings. The kernel does not require
// StartTime <= EndTime — a reversed pair simply never overlaps anything.
// NotificationTime is the lead time, in minutes before StartTime, at which
// a notification becomes due; zero disables the lead window entirely.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	Category    string

	Date      string
	StartTime string
	EndTime   string

	Repeat           Repeat
	NotificationTime int
}
