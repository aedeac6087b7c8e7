package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/haeun-lim/haru/internal/event"
)

// Store defines the interface for haru data operations. The store is the
// only writer of the event collection; the scheduling kernel only reads
// snapshots of it.
type Store interface {
	AddEvent(ctx context.Context, ev *event.Event) error
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	UpdateEvent(ctx context.Context, ev *event.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]event.Event, error)
	MarkNotified(ctx context.Context, id string) error
	ListNotified(ctx context.Context) (map[string]bool, error)
	GetStats(ctx context.Context) (*Stats, error)
	PurgeAll(ctx context.Context) error
	Close() error
}

// Stats holds aggregate statistics about the haru database.
type Stats struct {
	TotalEvents   int64
	TotalNotified int64
	FirstDate     string
	LastDate      string
	Categories    []CategoryCount
}

// CategoryCount pairs a category with its event count.
type CategoryCount struct {
	Category string
	Count    int64
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertEvent  *sql.Stmt
	getEvent     *sql.Stmt
	updateEvent  *sql.Stmt
	deleteEvent  *sql.Stmt
	markNotified *sql.Stmt
}

// NewSQLiteStore creates a SQLiteStore from an already-opened and migrated
// database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

const eventColumns = `id, title, description, location, category,
	date, start_time, end_time,
	repeat_type, repeat_interval, repeat_until, notification_time`

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertEvent, err = s.db.Prepare(`
		INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getEvent, err = s.db.Prepare(`
		SELECT ` + eventColumns + ` FROM events WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.updateEvent, err = s.db.Prepare(`
		UPDATE events SET title = ?, description = ?, location = ?, category = ?,
			date = ?, start_time = ?, end_time = ?,
			repeat_type = ?, repeat_interval = ?, repeat_until = ?,
			notification_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.deleteEvent, err = s.db.Prepare(`DELETE FROM events WHERE id = ?`)
	if err != nil {
		return err
	}

	s.markNotified, err = s.db.Prepare(`
		INSERT OR IGNORE INTO notified (event_id) VALUES (?)
	`)
	return err
}

// AddEvent inserts a new event. A missing ID is populated with a fresh
// UUID before the insert.
func (s *SQLiteStore) AddEvent(ctx context.Context, ev *event.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	_, err := s.insertEvent.ExecContext(ctx,
		ev.ID, ev.Title, ev.Description, ev.Location, ev.Category,
		ev.Date, ev.StartTime, ev.EndTime,
		string(ev.Repeat.Type), ev.Repeat.Interval, ev.Repeat.Until,
		ev.NotificationTime,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetEvent retrieves a single event by ID.
func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	ev, err := scanEvent(s.getEvent.QueryRowContext(ctx, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event %s not found", id)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

// UpdateEvent replaces the stored row for ev.ID with ev's fields.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, ev *event.Event) error {
	res, err := s.updateEvent.ExecContext(ctx,
		ev.Title, ev.Description, ev.Location, ev.Category,
		ev.Date, ev.StartTime, ev.EndTime,
		string(ev.Repeat.Type), ev.Repeat.Interval, ev.Repeat.Until,
		ev.NotificationTime,
		ev.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %s not found", ev.ID)
	}
	return nil
}

// DeleteEvent removes an event by ID. Its notified marker is
// cascade-deleted by the schema.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.deleteEvent.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

// ListEvents returns the whole collection ordered by date, start time,
// then ID for a stable tiebreak.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		ORDER BY date, start_time, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []event.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// MarkNotified records an event id in the notified-set. Re-marking an
// already-notified id is a no-op, keeping the set append-only and
// idempotent.
func (s *SQLiteStore) MarkNotified(ctx context.Context, id string) error {
	if _, err := s.markNotified.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	return nil
}

// ListNotified returns the set of event ids that already fired.
func (s *SQLiteStore) ListNotified(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT event_id FROM notified")
	if err != nil {
		return nil, fmt.Errorf("query notified: %w", err)
	}
	defer rows.Close()

	notified := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan notified: %w", err)
		}
		notified[id] = true
	}
	return notified, rows.Err()
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&stats.TotalEvents)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notified").Scan(&stats.TotalNotified)
	if err != nil {
		return nil, fmt.Errorf("count notified: %w", err)
	}

	if stats.TotalEvents > 0 {
		err = s.db.QueryRowContext(ctx, "SELECT MIN(date), MAX(date) FROM events").
			Scan(&stats.FirstDate, &stats.LastDate)
		if err != nil {
			return nil, fmt.Errorf("event date range: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS cnt FROM events
		WHERE category != '' GROUP BY category ORDER BY cnt DESC, category
	`)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		stats.Categories = append(stats.Categories, cc)
	}

	return stats, rows.Err()
}

// PurgeAll deletes all events and notified markers.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM notified",
		"DELETE FROM events",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed — that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertEvent, s.getEvent, s.updateEvent,
		s.deleteEvent, s.markNotified,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}

// scanTarget is satisfied by both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanEvent(row scanTarget) (*event.Event, error) {
	var ev event.Event
	var repeatType string
	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Location, &ev.Category,
		&ev.Date, &ev.StartTime, &ev.EndTime,
		&repeatType, &ev.Repeat.Interval, &ev.Repeat.Until,
		&ev.NotificationTime,
	)
	if err != nil {
		return nil, err
	}
	ev.Repeat.Type = event.RepeatType(repeatType)
	return &ev, nil
}
