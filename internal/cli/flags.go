package cli

import "database/sql"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AddCommand — create a new event.
type AddCommand struct {
	Title       string `long:"title" description:"Event title (required)"`
	Date        string `long:"date" description:"Event date, YYYY-MM-DD (required)"`
	Start       string `long:"start" description:"Start time, HH:MM"`
	End         string `long:"end" description:"End time, HH:MM"`
	Description string `long:"description" description:"Free-text description"`
	Location    string `long:"location" description:"Location"`
	Category    string `long:"category" description:"Category label"`
	Repeat      string `long:"repeat" description:"Recurrence: none | daily | weekly | monthly | yearly" default:"none"`
	Interval    int    `long:"interval" description:"Recurrence interval" default:"1"`
	Until       string `long:"until" description:"Recurrence end date, YYYY-MM-DD"`
	Notify      int    `long:"notify" description:"Notification lead time in minutes (0 disables)" default:"0"`
	Force       bool   `long:"force" description:"Add the event even when it overlaps existing events"`

	globals *GlobalFlags
	version string
}

// EditCommand — modify an existing event. Only the flags given change.
type EditCommand struct {
	ID          string  `long:"id" description:"Event ID (required)"`
	Title       *string `long:"title" description:"New title"`
	Date        *string `long:"date" description:"New date, YYYY-MM-DD"`
	Start       *string `long:"start" description:"New start time, HH:MM"`
	End         *string `long:"end" description:"New end time, HH:MM"`
	Description *string `long:"description" description:"New description"`
	Location    *string `long:"location" description:"New location"`
	Category    *string `long:"category" description:"New category"`
	Repeat      *string `long:"repeat" description:"New recurrence: none | daily | weekly | monthly | yearly"`
	Interval    *int    `long:"interval" description:"New recurrence interval"`
	Until       *string `long:"until" description:"New recurrence end date"`
	Notify      *int    `long:"notify" description:"New notification lead time in minutes"`

	globals *GlobalFlags
	version string
}

// DeleteCommand — remove an event by ID.
type DeleteCommand struct {
	ID string `long:"id" description:"Event ID (required)"`

	globals *GlobalFlags
	version string
}

// ListCommand — list events in the current view window, optionally
// narrowed by a search term.
type ListCommand struct {
	Query string `long:"query" description:"Case-insensitive search over title, description, and location"`
	View  string `long:"view" description:"Window: week | month (default from config)"`
	Date  string `long:"date" description:"Reference date, YYYY-MM-DD (default today)"`

	globals *GlobalFlags
	version string
}

// MonthCommand — render the month grid with holidays and events.
type MonthCommand struct {
	Date string `long:"date" description:"Reference date, YYYY-MM-DD (default today)"`

	globals *GlobalFlags
	version string
}

// WeekCommand — render the week view with events per day.
type WeekCommand struct {
	Date string `long:"date" description:"Reference date, YYYY-MM-DD (default today)"`

	globals *GlobalFlags
	version string
}

// WatchCommand — run the notification watcher.
type WatchCommand struct {
	Spec string `long:"spec" description:"Override the cron poll schedule"`
	Once bool   `long:"once" description:"Run a single poll and exit"`

	globals *GlobalFlags
	version string
}

// ExportCommand — serialize the event collection as iCalendar.
type ExportCommand struct {
	Output string `long:"output" description:"Write to file instead of stdout"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show database statistics and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PurgeCommand — delete ALL haru data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open the configured DB
}
