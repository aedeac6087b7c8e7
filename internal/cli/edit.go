package cli

import (
	"context"
	"fmt"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/event"
	"github.com/haeun-lim/haru/internal/overlap"
	"github.com/haeun-lim/haru/internal/storage"
)

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for edit command")
	}

	store, db, err := openConfiguredStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the edit logic against a provided store (used by tests).
func (c *EditCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()

	ev, err := store.GetEvent(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := c.apply(ev); err != nil {
		return err
	}

	existing, err := store.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	// Find skips the event's own ID, so the edit never conflicts with its
	// stored version.
	conflicts := overlap.Find(*ev, existing)

	if err := store.UpdateEvent(ctx, ev); err != nil {
		return fmt.Errorf("updating event: %w", err)
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

	fmt.Printf("Updated event %s\n", ev.ID)
	fmt.Printf("  %s\n", eventLine(*ev))
	if len(conflicts) > 0 {
		fmt.Printf("Warning: overlaps %d existing event(s):\n", len(conflicts))
		for _, conflict := range conflicts {
			fmt.Printf("  %s (%s)\n", eventLine(conflict), conflict.ID)
		}
	}
	return nil
}

// apply overlays the given flags onto the stored event, validating each
// changed field.
func (c *EditCommand) apply(ev *event.Event) error {
	if c.Title != nil {
		if *c.Title == "" {
			return fmt.Errorf("--title must not be empty")
		}
		ev.Title = *c.Title
	}
	if c.Date != nil {
		if !calendar.ParseDate(*c.Date).Valid() {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", *c.Date)
		}
		ev.Date = *c.Date
	}
	if c.Start != nil {
		if *c.Start != "" && !calendar.ParseDateTime(ev.Date, *c.Start).Valid() {
			return fmt.Errorf("invalid start time %q (want HH:MM)", *c.Start)
		}
		ev.StartTime = *c.Start
	}
	if c.End != nil {
		if *c.End != "" && !calendar.ParseDateTime(ev.Date, *c.End).Valid() {
			return fmt.Errorf("invalid end time %q (want HH:MM)", *c.End)
		}
		ev.EndTime = *c.End
	}
	if c.Description != nil {
		ev.Description = *c.Description
	}
	if c.Location != nil {
		ev.Location = *c.Location
	}
	if c.Category != nil {
		ev.Category = *c.Category
	}
	if c.Repeat != nil {
		repeatType, err := parseRepeat(*c.Repeat)
		if err != nil {
			return err
		}
		ev.Repeat.Type = repeatType
		if repeatType == event.RepeatNone {
			ev.Repeat = event.Repeat{Type: event.RepeatNone}
		} else if ev.Repeat.Interval < 1 {
			ev.Repeat.Interval = 1
		}
	}
	if c.Interval != nil {
		if *c.Interval < 1 {
			return fmt.Errorf("--interval must be at least 1")
		}
		ev.Repeat.Interval = *c.Interval
	}
	if c.Until != nil {
		if *c.Until != "" && !calendar.ParseDate(*c.Until).Valid() {
			return fmt.Errorf("invalid until date %q (want YYYY-MM-DD)", *c.Until)
		}
		ev.Repeat.Until = *c.Until
	}
	if c.Notify != nil {
		if *c.Notify < 0 {
			return fmt.Errorf("--notify must not be negative")
		}
		ev.NotificationTime = *c.Notify
	}
	return nil
}
