// Package lifecycle classifies raw host-process lifecycle transitions into
// the events the session engine reacts to: screen locks, deliberate app
// switches, and returns to the foreground.
package lifecycle

import (
	"sync"
	"time"
)

// State is one of the three states the host process reports.
type State string

const (
	StateActive     State = "active"
	StateInactive   State = "inactive"
	StateBackground State = "background"
)

// Events receives classified transitions. Any handler may be nil. Handlers
// run on the goroutine that called Observe.
type Events struct {
	// OnScreenLock fires when the process backgrounds so quickly that the
	// only plausible cause is the screen locking.
	OnScreenLock func()
	// OnAppSwitch fires when the user deliberately left for another app.
	OnAppSwitch func()
	// OnForeground fires on return to the foreground with the total time
	// spent away.
	OnForeground func(awayFor time.Duration)
}

// Monitor consumes the host's lifecycle stream and tells screen locks and
// app switches apart. Both look identical at the event level (active →
// inactive → background); the difference is how long the process sat in
// inactive before backgrounding. A lock passes through almost instantly,
// a switch dwells at least the threshold.
//
// The threshold is a tunable heuristic, not a protocol: host platforms
// vary in how fast they walk the lock transition, so the value comes from
// configuration rather than being fixed here.
type Monitor struct {
	mu         sync.Mutex
	events     Events
	threshold  time.Duration
	state      State
	inactiveAt time.Time
	leftAt     time.Time
}

const defaultThreshold = 200 * time.Millisecond

// NewMonitor creates a monitor that classifies background transitions
// using the given inactive-dwell threshold.
func NewMonitor(threshold time.Duration, events Events) *Monitor {
	if threshold <= 0 {
		threshold = defaultThreshold
	}

	return &Monitor{
		events:    events,
		threshold: threshold,
		state:     StateActive,
	}
}

// Threshold reports the configured inactive-dwell threshold.
func (m *Monitor) Threshold() time.Duration {
	return m.threshold
}

// Observe feeds one raw lifecycle event, stamped with when it happened,
// into the monitor.
func (m *Monitor) Observe(state State, at time.Time) {
	m.mu.Lock()

	prev := m.state
	m.state = state

	var fire func()

	switch state {
	case StateInactive:
		if prev == StateActive {
			m.inactiveAt = at
			m.leftAt = at
		}
	case StateBackground:
		switch prev {
		case StateInactive:
			if at.Sub(m.inactiveAt) < m.threshold {
				fire = m.events.OnScreenLock
			} else {
				fire = m.events.OnAppSwitch
			}
		case StateActive:
			// No inactive dwell to measure. A lock always walks through
			// inactive, so a direct drop reads as a deliberate switch.
			m.leftAt = at
			fire = m.events.OnAppSwitch
		}
	case StateActive:
		if prev != StateActive {
			awayFor := at.Sub(m.leftAt)
			if handler := m.events.OnForeground; handler != nil {
				fire = func() { handler(awayFor) }
			}
		}
	}

	m.mu.Unlock()

	if fire != nil {
		fire()
	}
}
