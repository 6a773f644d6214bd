// Package history lists past kata attempts.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/screen"
	"github.com/abhisek/dojo/internal/store"
	"github.com/abhisek/dojo/internal/ui/layout"
	"github.com/abhisek/dojo/internal/ui/theme"
)

// pageSize caps how many attempts are loaded.
const pageSize = 50

// AttemptSource is the query side of the attempt journal.
type AttemptSource interface {
	QueryAttempts(ctx context.Context, opts store.QueryOpts) ([]store.AttemptRecord, error)
}

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen displays past attempts for the active ruleset.
type HistoryScreen struct {
	source   AttemptSource
	ruleset  *kata.Ruleset
	attempts []store.AttemptRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source AttemptSource, ruleset *kata.Ruleset) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		ruleset:  ruleset,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	source, name := s.source, s.ruleset.Name
	return func() tea.Msg {
		attempts, err := source.QueryAttempts(context.Background(), store.QueryOpts{
			Ruleset: name,
			Limit:   pageSize,
		})
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No katas performed yet. Step onto the mat!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		mark := theme.Correct.Render("✓")
		if a.Outcome != store.OutcomeSuccess {
			mark = theme.Incorrect.Render("✗")
		}

		line := fmt.Sprintf("%s%s  %-18s  %d/%d moves  %s",
			prefix, a.Timestamp.Local().Format("Jan 02 15:04"), a.KataName,
			a.StepsCompleted, a.TotalSteps, formatDuration(a))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+"  "+mark))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render(s.detail(a))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) detail(a store.AttemptRecord) string {
	if a.Outcome == store.OutcomeSuccess {
		return fmt.Sprintf("    performed in full · session %s", shortID(a.SessionID))
	}
	vocab := s.ruleset.Vocabulary
	return fmt.Sprintf("    step %d: expected %s %s, got %s %s · session %s",
		a.StepsCompleted+1,
		vocab.Glyph(kata.Move(a.Expected)), a.Expected,
		vocab.Glyph(kata.Move(a.Got)), a.Got,
		shortID(a.SessionID))
}

func formatDuration(a store.AttemptRecord) string {
	secs := int(a.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
