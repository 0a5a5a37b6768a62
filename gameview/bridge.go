package gameview

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/perchapp/perch/engine"
	"github.com/perchapp/perch/lifecycle"
)

// Bridge connects the engine to the terminal surface. The engine drives it
// through the GameView interface and the bridge forwards those calls as
// messages into the running program. In the other direction it feeds the
// terminal's focus changes into the lifecycle monitor.
//
// Terminals only report focus and blur, not the three-state lifecycle the
// monitor expects, so the inactive-to-background walk is synthesized: a
// blur observes inactive immediately, and a probe observes background once
// the dwell threshold passes without focus returning. A quick refocus
// cancels the probe, which classifies the blip as lock-like and leaves the
// session alone.
type Bridge struct {
	eng     *engine.Engine
	monitor *lifecycle.Monitor

	mu      sync.Mutex
	prog    *tea.Program
	probe   *time.Timer
	blurred bool
}

// NewBridge creates the bridge between the engine and the terminal
// surface.
func NewBridge(eng *engine.Engine, monitor *lifecycle.Monitor) *Bridge {
	return &Bridge{
		eng:     eng,
		monitor: monitor,
	}
}

// Run starts the terminal UI and blocks until the user leaves it.
func (b *Bridge) Run() error {
	model := newModel(b.eng, b)

	prog := tea.NewProgram(model, tea.WithReportFocus())

	b.mu.Lock()
	b.prog = prog
	b.mu.Unlock()

	_, err := prog.Run()

	b.mu.Lock()
	b.prog = nil

	if b.probe != nil {
		b.probe.Stop()
		b.probe = nil
	}
	b.mu.Unlock()

	return err
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	prog := b.prog
	b.mu.Unlock()

	if prog != nil {
		prog.Send(msg)
	}
}

// Start arms the visual session clock.
func (b *Bridge) Start(sess *engine.ActiveSession) {
	b.send(sessionStartedMsg{sess: sess})
}

// End stops the visual session clock.
func (b *Bridge) End() {
	b.send(sessionEndedMsg{})
}

// CancelSetup tells the surface that setup was dismissed.
func (b *Bridge) CancelSetup() {
	b.send(setupCancelledMsg{})
}

// StartBreakView arms the visual break clock.
func (b *Bridge) StartBreakView(brk *engine.BreakSession) {
	b.send(breakStartedMsg{brk: brk})
}

// EndBreakView stops the visual break clock.
func (b *Bridge) EndBreakView() {
	b.send(breakEndedMsg{})
}

func (b *Bridge) reportBlur() {
	now := time.Now()

	b.mu.Lock()

	if b.blurred {
		b.mu.Unlock()
		return
	}

	b.blurred = true

	if b.probe != nil {
		b.probe.Stop()
	}

	b.probe = time.AfterFunc(b.monitor.Threshold(), b.probeExpired)

	b.mu.Unlock()

	b.monitor.Observe(lifecycle.StateInactive, now)
}

func (b *Bridge) probeExpired() {
	b.mu.Lock()
	stillBlurred := b.blurred
	b.probe = nil
	b.mu.Unlock()

	if stillBlurred {
		b.monitor.Observe(lifecycle.StateBackground, time.Now())
	}
}

func (b *Bridge) reportFocus() {
	now := time.Now()

	b.mu.Lock()

	if !b.blurred {
		b.mu.Unlock()
		return
	}

	b.blurred = false

	if b.probe != nil {
		b.probe.Stop()
		b.probe = nil
	}

	b.mu.Unlock()

	b.monitor.Observe(lifecycle.StateActive, now)
}

// reportSuspend maps a process suspension onto an inactive and background
// pair with zero dwell, which classifies as a screen lock: the session
// keeps counting against the wall clock and catches up on resume.
func (b *Bridge) reportSuspend() {
	now := time.Now()

	b.mu.Lock()

	if b.blurred {
		b.mu.Unlock()
		return
	}

	b.blurred = true

	if b.probe != nil {
		b.probe.Stop()
		b.probe = nil
	}

	b.mu.Unlock()

	b.monitor.Observe(lifecycle.StateInactive, now)
	b.monitor.Observe(lifecycle.StateBackground, now)
}

func (b *Bridge) reportResume() {
	b.reportFocus()
}
