// Package app hosts the Bubble Tea program: the screen router inside a
// header/footer frame.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/input"
	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/router"
	"github.com/abhisek/dojo/internal/screen"
	"github.com/abhisek/dojo/internal/screens/home"
	"github.com/abhisek/dojo/internal/screens/training"
	"github.com/abhisek/dojo/internal/screens/welcome"
	"github.com/abhisek/dojo/internal/store"
	"github.com/abhisek/dojo/internal/ui/layout"
)

// Options wires the program to its collaborators.
type Options struct {
	Engine training.Engine
	// Repo may be nil when the event log is unavailable.
	Repo store.EventRepo
	// Kata, when set, is pushed straight onto the home screen.
	Kata *kata.Kata
	// Splash shows the bow animation before home. Ignored when Kata is set.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	ruleset *kata.Ruleset
	initial *training.TrainingScreen
	width   int
	height  int
}

// NewAppModel creates an AppModel rooted at the home screen, or at the
// welcome splash which replaces itself with home.
func NewAppModel(opts Options) AppModel {
	rs := opts.Engine.Ruleset()
	mapper := input.FromRuleset(rs)
	newHome := func() screen.Screen {
		return home.New(opts.Engine, mapper, opts.Repo)
	}

	var root screen.Screen
	if opts.Splash && opts.Kata == nil {
		root = welcome.New(rs.Title, newHome)
	} else {
		root = newHome()
	}

	m := AppModel{
		router:  router.New(root),
		ruleset: rs,
	}
	if opts.Kata != nil {
		m.initial = training.New(opts.Engine, mapper, opts.Kata)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.initial != nil {
		initial := m.initial
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: initial} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			// Abandon a running kata before exiting.
			return m, tea.Sequence(m.router.PopToRoot(), tea.Quit)
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, fmt.Sprintf("%s %s", m.ruleset.Name, m.ruleset.Version), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
