package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/haeun-lim/haru/internal/event"
	applog "github.com/haeun-lim/haru/internal/log"
)

// Source supplies the event collection and the persisted notified-set the
// watcher polls against. The sqlite store satisfies it.
type Source interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	ListNotified(ctx context.Context) (map[string]bool, error)
	MarkNotified(ctx context.Context, id string) error
}

// Sender delivers one rendered notification. The CLI wires a terminal
// sender; a chat or desktop transport would attach here instead.
type Sender interface {
	Send(ev event.Event, message string) error
}

// Watcher polls the Source on a cron schedule and fires notifications for
// newly due events. Each tick is an independent snapshot: the events, the
// clock, and the notified-set are read fresh, Due is computed, and every
// delivered id is recorded back through the Source so the next tick skips
// it. A single cron runner serializes ticks, so an id can never be decided
// twice concurrently.
type Watcher struct {
	cron   *cron.Cron
	source Source
	sender Sender
	clock  func() time.Time
	spec   string
}

// NewWatcher builds a watcher that polls on the given cron spec (e.g.
// "* * * * *" for every minute). clock may be nil for time.Now.
func NewWatcher(source Source, sender Sender, spec string, clock func() time.Time) *Watcher {
	if clock == nil {
		clock = time.Now
	}
	return &Watcher{
		cron:   cron.New(),
		source: source,
		sender: sender,
		clock:  clock,
		spec:   spec,
	}
}

// Start registers the polling job, runs one immediate poll so a freshly
// started watcher does not sit silent until the first tick, and then blocks
// until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.spec, func() { w.Poll(context.Background()) }); err != nil {
		return fmt.Errorf("add poll job: %w", err)
	}

	w.Poll(ctx)
	w.cron.Start()
	applog.Info("watcher started", "spec", w.spec)

	<-ctx.Done()
	stopped := w.cron.Stop()
	<-stopped.Done()
	applog.Info("watcher stopped")
	return nil
}

// Poll runs a single notification pass: snapshot, decide, deliver, record.
// Delivery failures leave the id unrecorded so a later tick retries while
// the window is still open.
func (w *Watcher) Poll(ctx context.Context) {
	events, err := w.source.ListEvents(ctx)
	if err != nil {
		applog.Error("watcher: list events", err)
		return
	}
	notified, err := w.source.ListNotified(ctx)
	if err != nil {
		applog.Error("watcher: list notified", err)
		return
	}

	now := wallClock(w.clock())
	for _, ev := range Due(events, now, notified) {
		if err := w.sender.Send(ev, Message(ev)); err != nil {
			applog.Error("watcher: send", err, "id", ev.ID, "title", ev.Title)
			continue
		}
		if err := w.source.MarkNotified(ctx, ev.ID); err != nil {
			applog.Error("watcher: mark notified", err, "id", ev.ID)
		}
	}
}

// wallClock maps t's local wall-clock reading into the UTC frame the
// kernel parses event dates in, so "14:00" in the store compares against
// 14:00 on the user's clock regardless of host timezone.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}
