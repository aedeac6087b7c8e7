package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/haeun-lim/haru/internal/calendar"
	"github.com/haeun-lim/haru/internal/config"
	"github.com/haeun-lim/haru/internal/event"
	"github.com/haeun-lim/haru/internal/holiday"
	"github.com/haeun-lim/haru/internal/storage"
)

// loadConfig resolves the configuration. An explicit --config path must
// exist; the default path is created with defaults on first use.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// openStore opens the configured database, runs migrations, and returns a
// ready-to-use store and the underlying *sql.DB.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// openConfiguredStore is the common Execute preamble: load config, open DB.
func openConfiguredStore(globals *GlobalFlags) (*storage.SQLiteStore, *sql.DB, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, err
	}
	return openStore(cfg)
}

// loadHolidays returns the configured holiday set, falling back to the
// built-in defaults when no file is configured.
func loadHolidays(cfg *config.Config) (holiday.Map, error) {
	path, err := cfg.HolidaysPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return holiday.Defaults(), nil
	}
	return holiday.LoadFile(path)
}

// refDate parses a --date flag, defaulting to today's local calendar date.
func refDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d := calendar.ParseDate(s)
	if !d.Valid() {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d.Time(), nil
}

// parseRepeat validates a --repeat flag value.
func parseRepeat(s string) (event.RepeatType, error) {
	switch event.RepeatType(s) {
	case event.RepeatNone, event.RepeatDaily, event.RepeatWeekly,
		event.RepeatMonthly, event.RepeatYearly:
		return event.RepeatType(s), nil
	default:
		return "", fmt.Errorf("invalid repeat %q (use none, daily, weekly, monthly, or yearly)", s)
	}
}

// eventLine renders one event as a single list row.
func eventLine(ev event.Event) string {
	line := ev.Date
	if ev.StartTime != "" {
		line += " " + ev.StartTime
		if ev.EndTime != "" {
			line += "-" + ev.EndTime
		}
	}
	line += "  " + ev.Title
	if ev.Category != "" {
		line += "  [" + ev.Category + "]"
	}
	if ev.Location != "" {
		line += "  @" + ev.Location
	}
	return line
}

// eventJSON is the JSON output shape shared by add, edit, and list.
type eventJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Repeat      string `json:"repeat,omitempty"`
	Interval    int    `json:"interval,omitempty"`
	Until       string `json:"until,omitempty"`
	Notify      int    `json:"notify,omitempty"`
}

func toEventJSON(ev event.Event) eventJSON {
	out := eventJSON{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Category:    ev.Category,
		Date:        ev.Date,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		Notify:      ev.NotificationTime,
	}
	if ev.Repeat.Type != "" && ev.Repeat.Type != event.RepeatNone {
		out.Repeat = string(ev.Repeat.Type)
		out.Interval = ev.Repeat.Interval
		out.Until = ev.Repeat.Until
	}
	return out
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
