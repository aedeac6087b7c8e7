package cli

import (
	"context"
	"fmt"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/holiday"
	"github.com/haeun-lim/haru/internal/storage"
)

// Execute implements the go-flags Commander interface for WeekCommand.
func (c *WeekCommand) Execute(args []string) error {
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

// executeWithStore runs the week view against a provided store (used by tests).
func (c *WeekCommand) executeWithStore(store storage.Store, holidays holiday.Map) error {
	ref, err := refDate(c.Date)
	if err != nil {
		return err
	}

	all, err := store.ListEvents(context.Background())
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	week := calendar.WeekDates(ref)

	if c.globals.JSON {
		type dayJSON struct {
			Date    string      `json:"date"`
			Weekday string      `json:"weekday"`
			Holiday string      `json:"holiday,omitempty"`
			Events  []eventJSON `json:"events"`
		}
		out := struct {
			Heading string    `json:"heading"`
			Days    []dayJSON `json:"days"`
		}{Heading: calendar.FormatWeek(ref)}

		for i, day := range week {
			date := calendar.FormatDate(day)
			d := dayJSON{Date: date, Weekday: dayNames[i], Events: []eventJSON{}}
			d.Holiday, _ = holidays.Name(date)
			for _, ev := range all {
				if ev.Date == date {
					d.Events = append(d.Events, toEventJSON(ev))
				}
			}
			out.Days = append(out.Days, d)
		}
		return printJSON(out)
	}

	fmt.Println(calendar.FormatWeek(ref))
	for i, day := range week {
		date := calendar.FormatDate(day)
		header := fmt.Sprintf("%s %s", dayNames[i], date)
		if name, ok := holidays.Name(date); ok {
			header += "  *" + name
		}
		fmt.Println(header)
		for _, ev := range all {
			if ev.Date != date {
				continue
			}
			row := "    "
			if ev.StartTime != "" {
				row += ev.StartTime
				if ev.EndTime != "" {
					row += "-" + ev.EndTime
				}
				row += "  "
			}
			row += ev.Title
			if ev.Location != "" {
				row += "  @" + ev.Location
			}
			fmt.Println(row)
		}
	}
	return nil
}
