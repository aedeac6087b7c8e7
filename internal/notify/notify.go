// Package notify decides which events should fire a notification at a
// given instant. The decision is a pure function of (events, now,
// already-notified set); recording an id as notified is the caller's move,
// which keeps polling idempotent and the kernel stateless.
package notify

import (
	"fmt"
	"time"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/event"
)

// Due returns the events whose notification window contains now, skipping
// ids present in notified. The window is [start - NotificationTime minutes,
// start): an event exactly at its threshold is due, an event already
// started is not. Events with malformed dates or times are never due.
// The notified set is read-only here; appending newly fired ids to it
// between polls is what prevents duplicate notifications.
func Due(events []event.Event, now time.Time, notified map[string]bool) []event.Event {
	at := calendar.At(now)
	due := []event.Event{}
	for _, ev := range events {
		if notified[ev.ID] {
			continue
		}
		start := calendar.ParseDateTime(ev.Date, ev.StartTime)
		opens := start.AddMinutes(-ev.NotificationTime)
		if !at.Before(opens) && at.Before(start) {
			due = append(due, ev)
		}
	}
	return due
}

// Message renders the notification line for an event, e.g.
// "30분 후 팀 회의 일정이 시작됩니다."
func Message(ev event.Event) string {
	return fmt.Sprintf("%d분 후 %s 일정이 시작됩니다.", ev.NotificationTime, ev.Title)
}
