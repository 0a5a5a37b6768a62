// Package gameview renders the interactive session surface in the
// terminal. It is the engine's game-view bridge: the engine arms and stops
// it around transitions, and it runs its own visual clock whose expiry is
// reported back as the session's natural end.
package gameview

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	btimer "github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/perchapp/perch/engine"
)

const (
	padding  = 2
	maxWidth = 80

	// durationStep is how much one keypress moves a pending duration.
	durationStep = 5
)

type keymap struct {
	sit       key.Binding
	start     key.Binding
	longer    key.Binding
	shorter   key.Binding
	deepFocus key.Binding
	cancel    key.Binding
	abandon   key.Binding
	home      key.Binding
	takeBreak key.Binding
	endBreak  key.Binding
	retry     key.Binding
	leave     key.Binding
	suspend   key.Binding
	quit      key.Binding
}

var defaultKeymap = keymap{
	sit: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "sit down"),
	),
	start: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start"),
	),
	longer: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/↓", "duration"),
	),
	shorter: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↑/↓", "duration"),
	),
	deepFocus: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "deep focus"),
	),
	cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	abandon: key.NewBinding(
		key.WithKeys("a", "q", "esc"),
		key.WithHelp("a", "abandon"),
	),
	home: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "home"),
	),
	takeBreak: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "break"),
	),
	endBreak: key.NewBinding(
		key.WithKeys("e", "esc", "enter"),
		key.WithHelp("e", "end break"),
	),
	retry: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "continue"),
	),
	leave: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "leave"),
	),
	suspend: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "suspend"),
	),
	quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Messages the bridge sends into the program on behalf of the engine.
type (
	sessionStartedMsg struct{ sess *engine.ActiveSession }
	sessionEndedMsg   struct{}
	setupCancelledMsg struct{}
	breakStartedMsg   struct{ brk *engine.BreakSession }
	breakEndedMsg     struct{}
)

// Model is the bubbletea model for the session surface. All session state
// lives in the engine; the model only holds what rendering needs, chiefly
// the visual clock, which deliberately runs on its own so that its expiry
// exercises the engine's completion reconciliation.
type Model struct {
	eng         *engine.Engine
	bridge      *Bridge
	abandonForm *huh.Form
	styles      Styles
	clock       btimer.Model
	progress    progress.Model
	help        help.Model
	total       time.Duration
	width       int
	clockOn     bool
	quitting    bool
}

func newModel(eng *engine.Engine, bridge *Bridge) *Model {
	return &Model{
		eng:      eng,
		bridge:   bridge,
		styles:   defaultStyles(),
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

const abandonFormKey = "confirm"

func newAbandonForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(abandonFormKey).
				Title("Give up this session?").
				Description("Leaving now forfeits the session's coins.").
				Affirmative("Give up").
				Negative("Keep going"),
		),
	)
}
