// Package welcome is the splash shown before the dojo opens.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/router"
	"github.com/abhisek/dojo/internal/screen"
	"github.com/abhisek/dojo/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bowEnd       = 600 * time.Millisecond
	bannerAt     = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

// The student bows, then rises.
const (
	poseStanding = `   ___
  (• •)
  /|黒|\
   / \`

	poseBowing = `
   ___
  (- -)\
   |黒|
   / \`
)

type tickMsg time.Time

// WelcomeScreen shows a short bow animation, then replaces itself with the
// screen produced by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	tagline      string
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. tagline is shown under the banner.
func New(tagline string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next:    next,
		tagline: tagline,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		// Keys are ignored until the bow is finished.
		if w.elapsed >= bannerAt {
			return w, w.transition()
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	pose := poseStanding
	if w.elapsed > 0 && w.elapsed < bowEnd {
		pose = poseBowing
	}
	sections := []string{lipgloss.NewStyle().Foreground(theme.Accent).Render(pose)}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.tagline),
			"",
			theme.Hint.Render("press any key to step onto the mat"),
		)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
