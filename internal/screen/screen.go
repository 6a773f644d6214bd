// Package screen defines what the router needs from a screen, plus the
// optional lifecycle hooks it honours.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dojo/internal/ui/layout"
)

// Screen is one page of the dojo: home, training, history, the splash.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is told when the screen is popped or replaced, so it can release
// what it holds (a subscription, a running kata).
type Leaver interface {
	Leave() tea.Cmd
}

// Resumer is told when the screen becomes active again after the one above
// it was popped.
type Resumer interface {
	Resume() tea.Cmd
}
