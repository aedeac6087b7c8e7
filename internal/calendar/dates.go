// Package calendar provides the pure date arithmetic behind haru's views:
// month/week grid layout, date formatting, and range containment. All
// functions are side-effect-free and never mutate their arguments.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/haeun-lim/haru/internal/event"
)

// DaysInMonth returns the number of days in the 1-based month of year.
// Out-of-range months roll over through date normalization: month 13 is
// January of year+1, month 0 is December of year-1, recursively for any
// integer. Day zero of the following month is its last day.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDay returns midnight of the same calendar day in UTC.
func StartOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekDates returns the seven dates of the Sunday-to-Saturday week
// containing d, in order, crossing month and year boundaries transparently.
func WeekDates(d time.Time) []time.Time {
	sunday := StartOfDay(d).AddDate(0, 0, -int(d.Weekday()))
	week := make([]time.Time, 7)
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// WeeksOfMonth lays out d's month as Sunday-aligned rows of seven cells.
// A cell holds the day-of-month, or 0 for leading/trailing cells that
// belong to the adjacent month. Five or six rows, as the month requires.
func WeeksOfMonth(d time.Time) [][]int {
	days := DaysInMonth(d.Year(), int(d.Month()))
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday())

	rows := (lead + days + 6) / 7
	weeks := make([][]int, rows)
	day := 1 - lead
	for r := range weeks {
		row := make([]int, 7)
		for c := range row {
			if day >= 1 && day <= days {
				row[c] = day
			}
			day++
		}
		weeks[r] = row
	}
	return weeks
}

// FormatDate renders d as zero-padded YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return FormatDateWithDay(d, d.Day())
}

// FormatDateWithDay renders YYYY-MM-DD with the day-of-month component
// replaced by day while year and month come from d. Used by the month grid
// to name cells without constructing intermediate dates.
func FormatDateWithDay(d time.Time, day int) string {
	return fmt.Sprintf("%d-%s-%s",
		d.Year(), FillZero(float64(d.Month()), 2), FillZero(float64(day), 2))
}

// FormatMonth renders d's month heading, e.g. "2024년 7월".
func FormatMonth(d time.Time) string {
	return fmt.Sprintf("%d년 %d월", d.Year(), int(d.Month()))
}

// FormatWeek renders d's week heading, e.g. "2024년 7월 3주". The week
// belongs to the month and year containing its Thursday (the midpoint of a
// Sunday-aligned week); the index counts that month's Sunday-aligned rows
// from 1, so a year-end week can land in January of the next year.
func FormatWeek(d time.Time) string {
	thursday := StartOfDay(d).AddDate(0, 0, 4-int(d.Weekday()))
	first := time.Date(thursday.Year(), thursday.Month(), 1, 0, 0, 0, 0, time.UTC)
	week := (thursday.Day()+int(first.Weekday())-1)/7 + 1
	return fmt.Sprintf("%d년 %d월 %d주", thursday.Year(), int(thursday.Month()), week)
}

// IsDateInRange reports whether d falls within [start, end], inclusive on
// both ends. An inverted range (start after end) contains nothing, and is
// never silently normalized. Invalid instants are in no range.
func IsDateInRange(d, start, end Instant) bool {
	if !d.ok || !start.ok || !end.ok {
		return false
	}
	if start.t.After(end.t) {
		return false
	}
	return !d.t.Before(start.t) && !d.t.After(end.t)
}

// FillZero renders value left-padded with zeros to at least width
// characters. Decimal digits count toward the width and values already at
// or past it are returned unchanged; nothing is ever truncated.
func FillZero(value float64, width int) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// EventsForDay filters events whose date's day-of-month component equals
// day; a day outside 1-31 matches nothing. Month and year are deliberately
// ignored here — month-view callers pre-filter to the visible month first.
func EventsForDay(events []event.Event, day int) []event.Event {
	out := []event.Event{}
	if day < 1 || day > 31 {
		return out
	}
	for _, ev := range events {
		d := ParseDate(ev.Date)
		if d.Valid() && d.Time().Day() == day {
			out = append(out, ev)
		}
	}
	return out
}
