package calendar

import (
	"strconv"
	"strings"
	"time"
)

// Instant is a point in time resolved to minute precision. The zero value
// is the invalid sentinel: every comparison involving an invalid Instant
// answers false, so malformed user input falls out of range checks and
// overlap tests as "no match" instead of an error.
type Instant struct {
	t  time.Time
	ok bool
}

// At wraps a time.Time as a valid Instant, truncated to the minute.
func At(t time.Time) Instant {
	return Instant{t: t.Truncate(time.Minute), ok: true}
}

// Valid reports whether the Instant carries a real point in time.
func (i Instant) Valid() bool { return i.ok }

// Time returns the underlying time. The zero time is returned for the
// invalid sentinel.
func (i Instant) Time() time.Time { return i.t }

// Before reports i < o. False when either side is invalid.
func (i Instant) Before(o Instant) bool {
	return i.ok && o.ok && i.t.Before(o.t)
}

// After reports i > o. False when either side is invalid.
func (i Instant) After(o Instant) bool {
	return i.ok && o.ok && i.t.After(o.t)
}

// Equal reports i == o. False when either side is invalid.
func (i Instant) Equal(o Instant) bool {
	return i.ok && o.ok && i.t.Equal(o.t)
}

// AddMinutes returns the Instant shifted by n minutes. Invalid stays invalid.
func (i Instant) AddMinutes(n int) Instant {
	if !i.ok {
		return Instant{}
	}
	return Instant{t: i.t.Add(time.Duration(n) * time.Minute), ok: true}
}

// ParseDate parses a strict YYYY-MM-DD calendar date into an Instant at
// midnight. Wrong field counts, non-numeric fields, and out-of-range
// month or day values yield the invalid sentinel.
func ParseDate(s string) Instant {
	year, month, day, ok := splitDate(s)
	if !ok {
		return Instant{}
	}
	return At(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:MM time of day into a
// single Instant. Either part being malformed yields the invalid sentinel.
func ParseDateTime(date, clock string) Instant {
	year, month, day, ok := splitDate(date)
	if !ok {
		return Instant{}
	}
	hour, minute, ok := splitClock(clock)
	if !ok {
		return Instant{}
	}
	return At(time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC))
}

func splitDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	day, err = strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > DaysInMonth(year, month) {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func splitClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
