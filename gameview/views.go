package gameview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/perchapp/perch/engine"
	"github.com/perchapp/perch/internal/timeutil"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var view string

	switch m.eng.Phase() {
	case engine.Idle:
		view = m.idleView()
	case engine.Setup:
		view = m.setupView()
	case engine.Active:
		view = m.activeView()
	case engine.Complete:
		view = m.completeView()
	case engine.Abandoned:
		view = m.abandonedView()
	case engine.Break:
		view = m.breakView()
	}

	return m.styles.Base.Render(view)
}

func (m *Model) idleView() string {
	var s strings.Builder

	s.WriteString(m.styles.Title.Render("perch"))

	if loc := m.eng.Location(); loc != "" {
		s.WriteString("\n\n" + m.styles.Secondary.Render("You're at "+loc+"."))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.sit,
		defaultKeymap.leave,
	}))

	return s.String()
}

func (m *Model) setupView() string {
	cfg := m.eng.Config()

	deep := "off"
	if cfg.DeepFocus {
		deep = "on"
	}

	var s strings.Builder

	s.WriteString(m.styles.Title.Render("Set up your session"))
	s.WriteString("\n\n" + m.styles.Clock.Render(
		fmt.Sprintf("%d minutes", cfg.DurationMinutes),
	))
	s.WriteString("\n" + m.styles.Secondary.Render("deep focus: "+deep))

	if cfg.DeepFocus {
		s.WriteString("\n" + m.styles.Hint.Render(
			"leaving the app fails the session immediately",
		))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.longer,
		defaultKeymap.deepFocus,
		defaultKeymap.start,
		defaultKeymap.cancel,
	}))

	return s.String()
}

// formatClockRemaining renders the visual clock's remaining time.
func (m *Model) formatClockRemaining() string {
	return timeutil.FormatClock(int(m.clock.Timeout.Seconds()))
}

func (m *Model) activeView() string {
	var s strings.Builder

	title := "Focusing"
	if loc := m.eng.Location(); loc != "" {
		title = "Focusing at " + loc
	}

	s.WriteString(m.styles.Title.Render(title))

	if sess := m.eng.ActiveSession(); sess != nil {
		if sess.Config.DeepFocus {
			s.WriteString(" " + m.styles.Warn.Render("[deep focus]"))
		}

		total := time.Duration(sess.TotalSeconds()) * time.Second
		end := sess.StartedAt.Add(total)

		s.WriteString("\n" + m.styles.Hint.Render("until "+end.Format("15:04")))
	}

	s.WriteString("\n\n" + m.styles.Clock.Render(m.formatClockRemaining()))

	if m.total > 0 {
		percent := m.clock.Timeout.Seconds() / m.total.Seconds()

		s.WriteString("\n\n")
		s.WriteString(m.progress.ViewAs(1 - percent))
	}

	if m.abandonForm != nil {
		s.WriteString("\n\n" + m.abandonForm.View())

		return s.String()
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.abandon,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) completeView() string {
	var s strings.Builder

	s.WriteString(m.styles.Title.Render("Session complete!"))

	if done := m.eng.CompletedSession(); done != nil {
		mins := done.DurationSeconds / 60

		s.WriteString("\n\n" + m.styles.Coin.Render(
			fmt.Sprintf("+%d coins", done.CoinsEarned),
		))
		s.WriteString("\n" + m.styles.Secondary.Render(
			fmt.Sprintf("%d focused minutes", mins),
		))

		hrs, rem := timeutil.MinsToHoursAndMins(int(done.TotalTimeToday.Minutes()))
		s.WriteString("\n" + m.styles.Hint.Render(
			fmt.Sprintf("%dh %02dm today", hrs, rem),
		))
	}

	if m.eng.BreakSetupShowing() {
		s.WriteString("\n\n" + m.styles.Secondary.Render(
			fmt.Sprintf("break: %d minutes", m.eng.BreakDraftMinutes()),
		))
		s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
			defaultKeymap.longer,
			defaultKeymap.start,
		}))

		return s.String()
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.takeBreak,
		defaultKeymap.home,
	}))

	return s.String()
}

func (m *Model) abandonedView() string {
	var s strings.Builder

	s.WriteString(m.styles.Warn.Render("Session abandoned"))
	s.WriteString("\n\n" + m.styles.Secondary.Render("No coins this time."))
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.retry,
		defaultKeymap.home,
	}))

	return s.String()
}

func (m *Model) breakView() string {
	var s strings.Builder

	s.WriteString(m.styles.Title.Render("Break"))
	s.WriteString("\n\n" + m.styles.Clock.Render(m.formatClockRemaining()))

	if m.total > 0 {
		percent := m.clock.Timeout.Seconds() / m.total.Seconds()

		s.WriteString("\n\n")
		s.WriteString(m.progress.ViewAs(1 - percent))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.endBreak,
		defaultKeymap.quit,
	}))

	return s.String()
}
