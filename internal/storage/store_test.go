package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-lim/haru/internal/event"
)

// openTestStore creates a migrated in-memory Store for testing.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func sampleEvent(title, date, start, end string) *event.Event {
	return &event.Event{
		Title:     title,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

// --- AddEvent + GetEvent roundtrip ---

func TestAddEvent_GetEvent_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ev := &event.Event{
		Title:       "팀 회의",
		Description: "주간 스프린트 점검",
		Location:    "회의실 A",
		Category:    "work",
		Date:        "2025-07-15",
		StartTime:   "10:00",
		EndTime:     "11:00",
		Repeat: event.Repeat{
			Type:     event.RepeatWeekly,
			Interval: 1,
			Until:    "2025-12-31",
		},
		NotificationTime: 10,
	}

	require.NoError(t, store.AddEvent(ctx, ev))
	assert.NotEmpty(t, ev.ID, "event ID should be populated")

	got, err := store.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, "팀 회의", got.Title)
	assert.Equal(t, "주간 스프린트 점검", got.Description)
	assert.Equal(t, "회의실 A", got.Location)
	assert.Equal(t, "work", got.Category)
	assert.Equal(t, "2025-07-15", got.Date)
	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, "11:00", got.EndTime)
	assert.Equal(t, event.RepeatWeekly, got.Repeat.Type)
	assert.Equal(t, 1, got.Repeat.Interval)
	assert.Equal(t, "2025-12-31", got.Repeat.Until)
	assert.Equal(t, 10, got.NotificationTime)
}

func TestAddEvent_GeneratesUniqueIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	e1 := sampleEvent("A", "2025-07-01", "09:00", "10:00")
	e2 := sampleEvent("B", "2025-07-01", "09:00", "10:00")

	require.NoError(t, store.AddEvent(ctx, e1))
	require.NoError(t, store.AddEvent(ctx, e2))

	assert.NotEqual(t, e1.ID, e2.ID, "IDs should be unique")
}

func TestAddEvent_KeepsProvidedID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ev := sampleEvent("Fixed", "2025-07-01", "09:00", "10:00")
	ev.ID = "ev-fixed"

	require.NoError(t, store.AddEvent(ctx, ev))
	assert.Equal(t, "ev-fixed", ev.ID)

	got, err := store.GetEvent(ctx, "ev-fixed")
	require.NoError(t, err)
	assert.Equal(t, "Fixed", got.Title)
}

func TestGetEvent_NotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	got, err := store.GetEvent(ctx, "nonexistent")
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "not found")
}

// --- UpdateEvent ---

func TestUpdateEvent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ev := sampleEvent("원래 제목", "2025-07-15", "10:00", "11:00")
	require.NoError(t, store.AddEvent(ctx, ev))

	ev.Title = "바뀐 제목"
	ev.StartTime = "14:00"
	ev.EndTime = "15:30"
	ev.NotificationTime = 30
	require.NoError(t, store.UpdateEvent(ctx, ev))

	got, err := store.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "바뀐 제목", got.Title)
	assert.Equal(t, "14:00", got.StartTime)
	assert.Equal(t, "15:30", got.EndTime)
	assert.Equal(t, 30, got.NotificationTime)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ev := sampleEvent("Ghost", "2025-07-15", "10:00", "11:00")
	ev.ID = "no-such-id"
	err := store.UpdateEvent(ctx, ev)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- DeleteEvent ---

func TestDeleteEvent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ev := sampleEvent("Delete Me", "2025-07-15", "10:00", "11:00")
	require.NoError(t, store.AddEvent(ctx, ev))

	require.NoError(t, store.DeleteEvent(ctx, ev.ID))

	got, err := store.GetEvent(ctx, ev.ID)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.DeleteEvent(ctx, "nonexistent")
	assert.Error(t, err)
}

func TestDeleteEvent_CascadesNotified(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ev := sampleEvent("Notified", "2025-07-15", "10:00", "11:00")
	require.NoError(t, store.AddEvent(ctx, ev))
	require.NoError(t, store.MarkNotified(ctx, ev.ID))

	require.NoError(t, store.DeleteEvent(ctx, ev.ID))

	notified, err := store.ListNotified(ctx)
	require.NoError(t, err)
	assert.False(t, notified[ev.ID], "notified marker should be cascade-deleted")
}

// --- ListEvents ---

func TestListEvents_Empty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestListEvents_OrderedByDateThenStart(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	late := sampleEvent("Late", "2025-07-20", "09:00", "10:00")
	earlySameDay := sampleEvent("Early same day", "2025-07-10", "08:00", "09:00")
	lateSameDay := sampleEvent("Late same day", "2025-07-10", "13:00", "14:00")

	require.NoError(t, store.AddEvent(ctx, late))
	require.NoError(t, store.AddEvent(ctx, lateSameDay))
	require.NoError(t, store.AddEvent(ctx, earlySameDay))

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Early same day", events[0].Title)
	assert.Equal(t, "Late same day", events[1].Title)
	assert.Equal(t, "Late", events[2].Title)
}

// --- MarkNotified / ListNotified ---

func TestMarkNotified_Idempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ev := sampleEvent("Meeting", "2025-07-15", "10:00", "11:00")
	require.NoError(t, store.AddEvent(ctx, ev))

	require.NoError(t, store.MarkNotified(ctx, ev.ID))
	require.NoError(t, store.MarkNotified(ctx, ev.ID))

	notified, err := store.ListNotified(ctx)
	require.NoError(t, err)
	assert.True(t, notified[ev.ID])
	assert.Len(t, notified, 1)
}

func TestListNotified_Empty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	notified, err := store.ListNotified(ctx)
	require.NoError(t, err)
	assert.NotNil(t, notified)
	assert.Empty(t, notified)
}

// --- GetStats ---

func TestGetStats_EmptyDB(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalEvents)
	assert.Equal(t, int64(0), stats.TotalNotified)
	assert.Empty(t, stats.FirstDate)
	assert.Empty(t, stats.LastDate)
}

func TestGetStats_WithData(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	e1 := sampleEvent("A", "2025-07-01", "09:00", "10:00")
	e1.Category = "work"
	e2 := sampleEvent("B", "2025-07-15", "09:00", "10:00")
	e2.Category = "work"
	e3 := sampleEvent("C", "2025-08-01", "09:00", "10:00")
	e3.Category = "personal"

	require.NoError(t, store.AddEvent(ctx, e1))
	require.NoError(t, store.AddEvent(ctx, e2))
	require.NoError(t, store.AddEvent(ctx, e3))
	require.NoError(t, store.MarkNotified(ctx, e1.ID))

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalEvents)
	assert.Equal(t, int64(1), stats.TotalNotified)
	assert.Equal(t, "2025-07-01", stats.FirstDate)
	assert.Equal(t, "2025-08-01", stats.LastDate)
	require.Len(t, stats.Categories, 2)
	assert.Equal(t, "work", stats.Categories[0].Category)
	assert.Equal(t, int64(2), stats.Categories[0].Count)
}

// --- PurgeAll ---

func TestPurgeAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	e1 := sampleEvent("A", "2025-07-01", "09:00", "10:00")
	e2 := sampleEvent("B", "2025-07-02", "09:00", "10:00")
	require.NoError(t, store.AddEvent(ctx, e1))
	require.NoError(t, store.AddEvent(ctx, e2))
	require.NoError(t, store.MarkNotified(ctx, e1.ID))

	require.NoError(t, store.PurgeAll(ctx))

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	notified, err := store.ListNotified(ctx)
	require.NoError(t, err)
	assert.Empty(t, notified)
}

// --- Close ---

func TestClose(t *testing.T) {
	store := openTestStore(t)
	err := store.Close()
	assert.NoError(t, err)
}
