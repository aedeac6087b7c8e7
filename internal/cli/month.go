package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/event"
	"github.com/haeun-lim/haru/internal/holiday"
	"github.com/haeun-lim/haru/internal/search"
	"github.com/haeun-lim/haru/internal/storage"
)

// dayNames are the Korean weekday headers, Sunday first.
var dayNames = []string{"일", "월", "화", "수", "목", "금", "토"}

// Execute implements the go-flags Commander interface for MonthCommand.
func (c *MonthCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	holidays, err := loadHolidays(cfg)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, holidays)
}

// executeWithStore runs the month view against a provided store (used by tests).
func (c *MonthCommand) executeWithStore(store storage.Store, holidays holiday.Map) error {
	ref, err := refDate(c.Date)
	if err != nil {
		return err
	}

	all, err := store.ListEvents(context.Background())
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	visible := search.Filtered(all, "", ref, search.ViewMonth)

	weeks := calendar.WeeksOfMonth(ref)

	if c.globals.JSON {
		out := struct {
			Heading  string            `json:"heading"`
			Weeks    [][]int           `json:"weeks"`
			Holidays map[string]string `json:"holidays"`
			Events   []eventJSON       `json:"events"`
		}{
			Heading:  calendar.FormatMonth(ref),
			Weeks:    weeks,
			Holidays: map[string]string{},
			Events:   make([]eventJSON, 0, len(visible)),
		}
		for _, date := range holidays.ForMonth(ref.Year(), int(ref.Month())) {
			name, _ := holidays.Name(date)
			out.Holidays[date] = name
		}
		for _, ev := range visible {
			out.Events = append(out.Events, toEventJSON(ev))
		}
		return printJSON(out)
	}

	fmt.Println(calendar.FormatMonth(ref))
	fmt.Println(strings.Join(dayNames, "  "))
	for _, row := range weeks {
		var b strings.Builder
		for _, day := range row {
			if day == 0 {
				b.WriteString("    ")
				continue
			}
			b.WriteString(fmt.Sprintf("%3d%s", day, c.dayMarker(ref, day, visible, holidays)))
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}

	monthHolidays := holidays.ForMonth(ref.Year(), int(ref.Month()))
	if len(monthHolidays) > 0 {
		fmt.Println()
		fmt.Println("Holidays:")
		for _, date := range monthHolidays {
			name, _ := holidays.Name(date)
			fmt.Printf("  %s  %s\n", date, name)
		}
	}

	if len(visible) > 0 {
		fmt.Println()
		fmt.Println("Events:")
		for _, ev := range visible {
			fmt.Printf("  %s\n", eventLine(ev))
		}
	}
	return nil
}

// dayMarker returns the one-character cell suffix: "*" for a holiday, "."
// for a day with events, a space otherwise.
func (c *MonthCommand) dayMarker(ref time.Time, day int, visible []event.Event, holidays holiday.Map) string {
	date := calendar.FormatDateWithDay(ref, day)
	if _, ok := holidays.Name(date); ok {
		return "*"
	}
	for _, ev := range visible {
		if ev.Date == date {
			return "."
		}
	}
	return " "
}
