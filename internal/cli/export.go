package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/haeun-lim/haru/internal/ics"
	"github.com/haeun-lim/haru/internal/storage"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	store, db, err := openConfiguredStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the export against a provided store (used by tests).
func (c *ExportCommand) executeWithStore(store storage.Store) error {
	events, err := store.ListEvents(context.Background())
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	doc := ics.Export(events)

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(doc), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", c.Output, err)
		}
		fmt.Printf("Exported %d event(s) to %s\n", len(events), c.Output)
		return nil
	}

	fmt.Print(doc)
	return nil
}
