// Package ics renders the event collection as an iCalendar document for
// import into external calendar apps.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/event"
	"github.com/haeun-lim/haru/internal/overlap"
)

const productID = "-//haru//calendar//KO"

// Export serializes events into an iCalendar (RFC 5545) document. Timed
// events become DTSTART/DTEND pairs; events without a start time become
// all-day entries. Events whose date cannot be parsed are skipped rather
// than producing a broken component. Repeat settings are carried as
// RRULE lines.
func Export(events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	now := time.Now().UTC()
	for _, ev := range events {
		date := calendar.ParseDate(ev.Date)
		if !date.Valid() {
			continue
		}

		e := cal.AddEvent(ev.ID)
		e.SetDtStampTime(now)
		e.SetSummary(ev.Title)
		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			e.SetLocation(ev.Location)
		}
		if ev.Category != "" {
			e.AddProperty(ical.ComponentPropertyCategories, ev.Category)
		}

		r := overlap.Range(ev)
		if r.Start.Valid() && r.End.Valid() {
			e.SetStartAt(r.Start.Time())
			e.SetEndAt(r.End.Time())
		} else {
			e.SetAllDayStartAt(date.Time())
			e.SetAllDayEndAt(date.Time().AddDate(0, 0, 1))
		}

		if rr, ok := ev.Repeat.RRule(); ok {
			e.AddRrule(rr)
		}
	}

	return cal.Serialize()
}
