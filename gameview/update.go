package gameview

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	btimer "github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/perchapp/perch/engine"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.abandonForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Batch(tea.ClearScreen, tea.Quit)
		}

		slog.Debug(spew.Sdump(msg))

		form, formCmd := m.abandonForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.abandonForm = f

			if m.abandonForm.State == huh.StateCompleted {
				confirmed := m.abandonForm.GetBool(abandonFormKey)
				m.abandonForm = nil

				if confirmed {
					_ = m.eng.ConfirmAbandon()
				} else {
					_ = m.eng.CancelAbandonConfirmation()
				}
			}

			return m, formCmd
		}
	}

	switch msg := msg.(type) {
	case sessionStartedMsg:
		m.total = time.Duration(msg.sess.TotalSeconds()) * time.Second
		m.clock = btimer.New(m.total)
		m.clockOn = true

		return m, m.clock.Init()

	case sessionEndedMsg:
		m.clockOn = false
		return m, nil

	case setupCancelledMsg:
		return m, nil

	case breakStartedMsg:
		m.total = time.Duration(msg.brk.DurationSeconds) * time.Second
		m.clock = btimer.New(m.total)
		m.clockOn = true

		return m, m.clock.Init()

	case breakEndedMsg:
		m.clockOn = false
		return m, nil

	case btimer.TickMsg:
		m.clock, cmd = m.clock.Update(msg)
		return m, cmd

	case btimer.StartStopMsg:
		m.clock, cmd = m.clock.Update(msg)
		return m, cmd

	case btimer.TimeoutMsg:
		return m.handleClockTimeout()

	case tea.FocusMsg:
		m.bridge.reportFocus()
		return m, nil

	case tea.BlurMsg:
		m.bridge.reportBlur()
		return m, nil

	case tea.SuspendMsg:
		m.bridge.reportSuspend()
		return m, nil

	case tea.ResumeMsg:
		m.bridge.reportResume()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

		// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		var progressModel tea.Model

		progressModel, cmd = m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}

// handleClockTimeout reports the visual clock's expiry. The engine's own
// countdown may already have completed the session; whichever signal
// arrives second is absorbed by the engine's reconciliation.
func (m *Model) handleClockTimeout() (tea.Model, tea.Cmd) {
	m.clockOn = false

	switch m.eng.Phase() {
	case engine.Active:
		m.eng.HandleNaturalEnd(int(m.total.Seconds()), 0)
	case engine.Break:
		_ = m.eng.EndBreak()
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, defaultKeymap.quit) {
		m.quitting = true
		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	if key.Matches(msg, defaultKeymap.suspend) {
		return m, tea.Suspend
	}

	switch m.eng.Phase() {
	case engine.Idle:
		return m.handleIdleKey(msg)
	case engine.Setup:
		return m.handleSetupKey(msg)
	case engine.Active:
		return m.handleActiveKey(msg)
	case engine.Complete:
		return m.handleCompleteKey(msg)
	case engine.Abandoned:
		return m.handleAbandonedKey(msg)
	case engine.Break:
		return m.handleBreakKey(msg)
	}

	return m, nil
}

func (m *Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.sit):
		_ = m.eng.SeatAt("")
		return m, nil

	case key.Matches(msg, defaultKeymap.leave):
		m.quitting = true
		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return m, nil
}

func (m *Model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.longer):
		minutes := m.eng.Config().DurationMinutes + durationStep
		_ = m.eng.UpdateConfig(engine.ConfigPatch{DurationMinutes: &minutes})

		return m, nil

	case key.Matches(msg, defaultKeymap.shorter):
		minutes := m.eng.Config().DurationMinutes - durationStep
		if minutes < durationStep {
			minutes = durationStep
		}

		_ = m.eng.UpdateConfig(engine.ConfigPatch{DurationMinutes: &minutes})

		return m, nil

	case key.Matches(msg, defaultKeymap.deepFocus):
		deep := !m.eng.Config().DeepFocus
		_ = m.eng.UpdateConfig(engine.ConfigPatch{DeepFocus: &deep})

		return m, nil

	case key.Matches(msg, defaultKeymap.start):
		if err := m.eng.StartSession(); err != nil {
			slog.Error("unable to start session", slog.Any("error", err))
		}

		return m, nil

	case key.Matches(msg, defaultKeymap.cancel), key.Matches(msg, defaultKeymap.leave):
		_ = m.eng.CancelSetup()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleActiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, defaultKeymap.abandon) {
		if err := m.eng.RequestAbandon(); err != nil {
			return m, nil
		}

		m.abandonForm = newAbandonForm()

		return m, m.abandonForm.Init()
	}

	return m, nil
}

func (m *Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.eng.BreakSetupShowing() {
		switch {
		case key.Matches(msg, defaultKeymap.longer):
			_ = m.eng.SetBreakDuration(m.eng.BreakDraftMinutes() + durationStep)
			return m, nil

		case key.Matches(msg, defaultKeymap.shorter):
			minutes := m.eng.BreakDraftMinutes() - durationStep
			if minutes >= durationStep {
				_ = m.eng.SetBreakDuration(minutes)
			}

			return m, nil

		case key.Matches(msg, defaultKeymap.start):
			_ = m.eng.StartBreak()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, defaultKeymap.home):
		_ = m.eng.GoHome()
		return m, nil

	case key.Matches(msg, defaultKeymap.takeBreak):
		_ = m.eng.ShowBreakSetup()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleAbandonedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.home):
		_ = m.eng.GoHome()
		return m, nil

	case key.Matches(msg, defaultKeymap.retry):
		_ = m.eng.ContinueAfterAbandon()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleBreakKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, defaultKeymap.endBreak) {
		_ = m.eng.EndBreak()
		return m, nil
	}

	return m, nil
}
