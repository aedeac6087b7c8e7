package cli

import (
	"context"
	"fmt"

	"github.com/haeun-lim/haru/internal/storage"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for delete command")
	}

	store, db, err := openConfiguredStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the delete logic against a provided store (used by tests).
func (c *DeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()

	ev, err := store.GetEvent(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := store.DeleteEvent(ctx, c.ID); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(map[string]any{
			"deleted": true,
			"id":      ev.ID,
			"title":   ev.Title,
		})
	}

	fmt.Printf("Deleted event %s (%s)\n", ev.ID, ev.Title)
	return nil
}
