package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/event"
	"github.com/haeun-lim/haru/internal/overlap"
	"github.com/haeun-lim/haru/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.Title == "" {
		return fmt.Errorf("--title is required for add command")
	}
	if c.Date == "" {
		return fmt.Errorf("--date is required for add command")
	}

	store, db, err := openConfiguredStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the add logic against a provided store (used by tests).
func (c *AddCommand) executeWithStore(store storage.Store) error {
	ev, err := c.buildEvent()
	if err != nil {
		return err
	}

	ctx := context.Background()

	existing, err := store.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	conflicts := overlap.Find(*ev, existing)

	// Double-bookings are refused unless --force; the error carries the
	// conflict listing so the user can see what they collided with.
	if len(conflicts) > 0 && !c.Force {
		var b strings.Builder
		fmt.Fprintf(&b, "overlaps %d existing event(s) (use --force to add anyway):", len(conflicts))
		for _, conflict := range conflicts {
			fmt.Fprintf(&b, "\n  %s (%s)", eventLine(conflict), conflict.ID)
		}
		return errors.New(b.String())
	}

	if err := store.AddEvent(ctx, ev); err != nil {
		return fmt.Errorf("storing event: %w", err)
	}

	if c.globals.JSON {
		out := struct {
			Event     eventJSON   `json:"event"`
			Conflicts []eventJSON `json:"conflicts"`
		}{
			Event:     toEventJSON(*ev),
			Conflicts: make([]eventJSON, 0, len(conflicts)),
		}
		for _, conflict := range conflicts {
			out.Conflicts = append(out.Conflicts, toEventJSON(conflict))
		}
		return printJSON(out)
	}

	fmt.Printf("Added event %s\n", ev.ID)
	fmt.Printf("  %s\n", eventLine(*ev))
	if len(conflicts) > 0 {
		fmt.Printf("Warning: overlaps %d existing event(s):\n", len(conflicts))
		for _, conflict := range conflicts {
			fmt.Printf("  %s (%s)\n", eventLine(conflict), conflict.ID)
		}
	}
	return nil
}

// buildEvent validates the flags and assembles the event value.
func (c *AddCommand) buildEvent() (*event.Event, error) {
	if !calendar.ParseDate(c.Date).Valid() {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", c.Date)
	}
	if c.Start != "" && !calendar.ParseDateTime(c.Date, c.Start).Valid() {
		return nil, fmt.Errorf("invalid start time %q (want HH:MM)", c.Start)
	}
	if c.End != "" && !calendar.ParseDateTime(c.Date, c.End).Valid() {
		return nil, fmt.Errorf("invalid end time %q (want HH:MM)", c.End)
	}
	if c.Notify < 0 {
		return nil, fmt.Errorf("--notify must not be negative")
	}
	if c.Notify > 0 && c.Start == "" {
		return nil, fmt.Errorf("--notify requires --start")
	}

	repeatType, err := parseRepeat(c.Repeat)
	if err != nil {
		return nil, err
	}
	if repeatType != event.RepeatNone {
		if c.Interval < 1 {
			return nil, fmt.Errorf("--interval must be at least 1")
		}
		if c.Until != "" && !calendar.ParseDate(c.Until).Valid() {
			return nil, fmt.Errorf("invalid until date %q (want YYYY-MM-DD)", c.Until)
		}
	}

	ev := &event.Event{
		Title:            c.Title,
		Description:      c.Description,
		Location:         c.Location,
		Category:         c.Category,
		Date:             c.Date,
		StartTime:        c.Start,
		EndTime:          c.End,
		NotificationTime: c.Notify,
	}
	if repeatType != event.RepeatNone {
		ev.Repeat = event.Repeat{Type: repeatType, Interval: c.Interval, Until: c.Until}
	} else {
		ev.Repeat = event.Repeat{Type: event.RepeatNone}
	}
	return ev, nil
}
