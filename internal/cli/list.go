package cli

import (
	"context"
	"fmt"

	"github.com/haeun-lim/haru/internal/search"
	"github.com/haeun-lim/haru/internal/storage"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, cfg.Calendar.DefaultView)
}

// executeWithStore runs the list logic against a provided store (used by tests).
func (c *ListCommand) executeWithStore(store storage.Store, defaultView string) error {
	view := c.View
	if view == "" {
		view = defaultView
	}
	switch search.View(view) {
	case search.ViewWeek, search.ViewMonth:
	default:
		return fmt.Errorf("invalid view %q (use week or month)", view)
	}

	ref, err := refDate(c.Date)
	if err != nil {
		return err
	}

	events, err := store.ListEvents(context.Background())
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	matched := search.Filtered(events, c.Query, ref, search.View(view))

	if c.globals.JSON {
		out := make([]eventJSON, 0, len(matched))
		for _, ev := range matched {
			out = append(out, toEventJSON(ev))
		}
		return printJSON(out)
	}

	if len(matched) == 0 {
		fmt.Println("No events found.")
		return nil
	}
	for _, ev := range matched {
		fmt.Printf("%s  (%s)\n", eventLine(ev), ev.ID)
	}
	return nil
}
