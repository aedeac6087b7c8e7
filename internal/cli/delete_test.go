package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-lim/haru/internal/event"
)

func TestDeleteCommand(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	id := seedEvent(t, store, event.Event{Title: "지울 일정", Date: "2025-07-15"})

	cmd := &DeleteCommand{ID: id, globals: &GlobalFlags{}}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})
	assert.Contains(t, out, "Deleted event")
	assert.Contains(t, out, "지울 일정")

	events, err := store.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDeleteCommand_UnknownID(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	cmd := &DeleteCommand{ID: "no-such-id", globals: &GlobalFlags{}}
	err := cmd.executeWithStore(store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteCommand_JSONOutput(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	id := seedEvent(t, store, event.Event{Title: "회의", Date: "2025-07-15"})

	cmd := &DeleteCommand{ID: id, globals: &GlobalFlags{JSON: true}}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})
	assert.Contains(t, out, `"deleted": true`)
	assert.Contains(t, out, id)
}
