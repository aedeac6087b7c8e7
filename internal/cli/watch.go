package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haeun-lim/haru/internal/event"
	applog "github.com/haeun-lim/haru/internal/log"
	"github.com/haeun-lim/haru/internal/notify"
)

// terminalSender delivers notifications to stdout. It is the only sender
// haru ships; desktop or chat transports would implement notify.Sender
// the same way.
type terminalSender struct{}

func (terminalSender) Send(ev event.Event, message string) error {
	_, err := fmt.Println(message)
	return err
}

// Execute implements the go-flags Commander interface for WatchCommand.
func (c *WatchCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	if c.globals.Verbose {
		applog.SetLevel(applog.LevelDebug)
	} else {
		switch cfg.Logging.Level {
		case "debug":
			applog.SetLevel(applog.LevelDebug)
		case "error":
			applog.SetLevel(applog.LevelError)
		default:
			applog.SetLevel(applog.LevelInfo)
		}
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	spec := c.Spec
	if spec == "" {
		spec = cfg.Notify.PollSpec
	}

	w := notify.NewWatcher(store, terminalSender{}, spec, nil)

	if c.Once {
		w.Poll(context.Background())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Start(ctx)
}
