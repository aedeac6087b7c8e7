package storage

import "database/sql"

// migrateV001 creates the initial haru schema: the event collection, the
// notified-set, and their indexes. Every statement uses IF NOT EXISTS for
// idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS events (
			id                TEXT PRIMARY KEY,
			title             TEXT NOT NULL,
			description       TEXT NOT NULL DEFAULT '',
			location          TEXT NOT NULL DEFAULT '',
			category          TEXT NOT NULL DEFAULT '',
			date              TEXT NOT NULL,
			start_time        TEXT NOT NULL DEFAULT '',
			end_time          TEXT NOT NULL DEFAULT '',
			repeat_type       TEXT NOT NULL DEFAULT 'none',
			repeat_interval   INTEGER NOT NULL DEFAULT 0,
			repeat_until      TEXT NOT NULL DEFAULT '',
			notification_time INTEGER NOT NULL DEFAULT 0,
			created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS notified (
			event_id    TEXT PRIMARY KEY REFERENCES events(id) ON DELETE CASCADE,
			notified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_events_date       ON events(date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_category   ON events(category)`,
		`CREATE INDEX IF NOT EXISTS idx_events_date_start ON events(date, start_time)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
