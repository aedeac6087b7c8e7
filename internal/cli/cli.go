package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Add    *AddCommand
	Edit   *EditCommand
	Delete *DeleteCommand
	List   *ListCommand
	Month  *MonthCommand
	Week   *WeekCommand
	Watch  *WatchCommand
	Export *ExportCommand
	Status *StatusCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "haru"
	parser.LongDescription = "Personal calendar and event manager: month/week views, conflict checks, and start-time notifications."

	cmds := &commands{
		Add:    &AddCommand{globals: &globals, version: version},
		Edit:   &EditCommand{globals: &globals, version: version},
		Delete: &DeleteCommand{globals: &globals, version: version},
		List:   &ListCommand{globals: &globals, version: version},
		Month:  &MonthCommand{globals: &globals, version: version},
		Week:   &WeekCommand{globals: &globals, version: version},
		Watch:  &WatchCommand{globals: &globals, version: version},
		Export: &ExportCommand{globals: &globals, version: version},
		Status: &StatusCommand{globals: &globals, version: version},
		Purge:  &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("add", "Create a new event", "Create a new event, warning about time conflicts with existing events.", cmds.Add)
	parser.AddCommand("edit", "Modify an existing event", "Modify an existing event. Only the given flags change; the rest keep their stored values.", cmds.Edit)
	parser.AddCommand("delete", "Delete an event", "Delete an event by ID.", cmds.Delete)
	parser.AddCommand("list", "List events in a view window", "List events in the week or month containing a reference date, optionally narrowed by a search term.", cmds.List)
	parser.AddCommand("month", "Show the month calendar", "Render the month grid with day numbers, holidays, and scheduled events.", cmds.Month)
	parser.AddCommand("week", "Show the week view", "Render the Sunday-to-Saturday week containing a reference date, with events per day.", cmds.Week)
	parser.AddCommand("watch", "Run the notification watcher", "Poll for events entering their notification window and print reminders.", cmds.Watch)
	parser.AddCommand("export", "Export events as iCalendar", "Serialize the whole event collection as an iCalendar (.ics) document.", cmds.Export)
	parser.AddCommand("status", "Show database statistics", "Show database statistics and configuration summary.", cmds.Status)
	parser.AddCommand("purge", "Delete ALL haru data", "Delete ALL haru data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the haru CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("haru %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
