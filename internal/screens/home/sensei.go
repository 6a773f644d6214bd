package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/ui/theme"
	"github.com/abhisek/dojo/internal/wisdom"
)

const senseiPeaceful = `  ___
 (- -)
 /|黒|\
  / \`

const senseiStrict = `  ___
 (ò ó)
 /|黒|\
  / \`

const senseiProud = `  ___
 (^ ^)
 \|黒|/
  / \`

// RenderSensei returns the sensei portrait for a mood.
func RenderSensei(m wisdom.Mood) string {
	art := senseiPeaceful
	switch m {
	case wisdom.MoodStrict:
		art = senseiStrict
	case wisdom.MoodProud:
		art = senseiProud
	}
	return lipgloss.NewStyle().
		Foreground(theme.MoodColor(m)).
		Render(art)
}
