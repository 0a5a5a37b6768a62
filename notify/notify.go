// Package notify delivers local reminders and completion alerts through
// desktop notifications.
package notify

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"

	"github.com/perchapp/perch/config"
)

// Desktop schedules desktop notifications backed by timers it owns.
// Scheduling never blocks and a failed delivery is logged, not surfaced.
type Desktop struct {
	pending map[int]*time.Timer
	sound   string
	nextID  int
	enabled bool
	mu      sync.Mutex
}

// NewDesktop returns a notification scheduler. When enabled is false every
// schedule call is a no-op, which saves callers from guarding each one.
func NewDesktop(enabled bool, sound string) *Desktop {
	return &Desktop{
		pending: make(map[int]*time.Timer),
		sound:   sound,
		enabled: enabled,
	}
}

// ScheduleCompletion arranges a completion alert to fire once the session's
// remaining time elapses. It returns the id of the pending notification.
func (d *Desktop) ScheduleCompletion(after time.Duration) int {
	return d.schedule(
		after,
		"Session complete",
		"Great work! You've earned your break.",
		true,
	)
}

// ScheduleReminder arranges a reminder that the session is still running,
// used when the user switches away mid-session.
func (d *Desktop) ScheduleReminder(after time.Duration) int {
	return d.schedule(
		after,
		"Still with us?",
		"Your focus session is waiting for you to return.",
		false,
	)
}

// CancelAll stops every pending notification.
func (d *Desktop) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, timer := range d.pending {
		timer.Stop()
		delete(d.pending, id)
	}
}

func (d *Desktop) schedule(
	after time.Duration,
	title, msg string,
	playSound bool,
) int {
	if !d.enabled {
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID

	d.pending[id] = time.AfterFunc(after, func() {
		d.mu.Lock()
		delete(d.pending, id)
		d.mu.Unlock()

		d.deliver(title, msg, playSound)
	})

	return id
}

func (d *Desktop) deliver(title, msg string, playSound bool) {
	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(config.Dir(), "static", "icon.png"),
	)

	err := beeep.Notify(title, msg, pathToIcon)
	if err != nil {
		slog.Error("unable to display notification",
			slog.String("title", title),
			slog.Any("error", err),
		)
	}

	if !playSound || d.sound == "" {
		return
	}

	err = play(d.sound)
	if err != nil {
		slog.Error("unable to play notification sound",
			slog.String("sound", d.sound),
			slog.Any("error", err),
		)
	}
}
