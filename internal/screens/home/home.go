// Package home is the dojo screen: kata selection, key bindings and the
// sensei's welcome.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/input"
	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/router"
	"github.com/abhisek/dojo/internal/screen"
	"github.com/abhisek/dojo/internal/screens/history"
	"github.com/abhisek/dojo/internal/screens/training"
	"github.com/abhisek/dojo/internal/store"
	"github.com/abhisek/dojo/internal/ui/components"
	"github.com/abhisek/dojo/internal/ui/layout"
	"github.com/abhisek/dojo/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats map[string]store.KataStats
	Err   error
}

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	engine  training.Engine
	mapper  *input.Mapper
	repo    store.EventRepo
	ruleset *kata.Ruleset

	menu  components.Menu
	stats map[string]store.KataStats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. repo may be nil, in which case attempt counts
// and history are unavailable.
func New(eng training.Engine, mapper *input.Mapper, repo store.EventRepo) *HomeScreen {
	h := &HomeScreen{
		engine:  eng,
		mapper:  mapper,
		repo:    repo,
		ruleset: eng.Ruleset(),
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes attempt counts after a kata or the history screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) Title() string {
	return h.ruleset.Title
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose kata"},
		{Key: "Enter", Description: "Begin"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err == nil {
			h.stats = msg.Stats
			selected := h.menu.Selected
			h.menu = components.NewMenu(h.menuItems())
			h.menu.Select(selected)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 72)

	title := theme.Title.Width(cw).Render(strings.ToUpper(h.ruleset.Title))

	welcome := h.engine.Snapshot().Advisory
	sensei := lipgloss.JoinHorizontal(lipgloss.Center,
		RenderSensei(welcome.Mood),
		"  ",
		theme.Sensei(welcome.Mood).Width(cw-14).Render(theme.Body.Render(welcome.Text)),
	)

	sections := []string{title, sensei, h.menu.View()}
	if !layout.IsCompact(height) {
		sections = append(sections, h.renderCommands(cw))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderCommands lists the ruleset's key bindings.
func (h *HomeScreen) renderCommands(width int) string {
	var b strings.Builder
	b.WriteString(theme.Hint.Render("COMMANDS"))
	for _, binding := range h.mapper.Bindings(h.ruleset.Vocabulary) {
		help := binding.Help()
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(16).Render(help.Key))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(help.Desc))
	}
	return theme.Card.Width(width).Render(b.String())
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	katas := h.ruleset.Katas()
	items := make([]components.MenuItem, 0, len(katas)+2)
	for _, k := range katas {
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(k.Name),
			Detail: h.kataDetail(k),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: training.New(h.engine, h.mapper, k)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Disabled: h.repo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.repo, h.ruleset)}
				}
			},
		},
		components.MenuItem{
			Label:  "LEAVE DOJO",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (h *HomeScreen) kataDetail(k *kata.Kata) string {
	detail := fmt.Sprintf("%s · %d moves", k.Tier, k.Len())
	if st, ok := h.stats[k.ID]; ok && st.Attempts > 0 {
		detail += fmt.Sprintf(" · %d/%d mastered", st.Successes, st.Attempts)
	}
	return detail
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.repo == nil {
		return nil
	}
	repo, rulesetName := h.repo, h.ruleset.Name
	return func() tea.Msg {
		stats, err := repo.AttemptStats(context.Background(), rulesetName)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		byKata := make(map[string]store.KataStats, len(stats))
		for _, st := range stats {
			byKata[st.KataID] = st
		}
		return statsLoadedMsg{Stats: byKata}
	}
}
