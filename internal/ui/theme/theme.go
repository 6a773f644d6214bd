package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/wisdom"
)

// Color palette: lacquer red, paper and ink.
var (
	Primary   = lipgloss.Color("#DC2626") // Lacquer Red
	Secondary = lipgloss.Color("#F59E0B") // Amber
	Accent    = lipgloss.Color("#FACC15") // Gold
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F5F5F4") // Paper
	TextDim   = lipgloss.Color("#A8A29E") // Stone
	BgDark    = lipgloss.Color("#0C0A09") // Ink
	BgCard    = lipgloss.Color("#1C1917") // Dark Stone
	Border    = lipgloss.Color("#44403C") // Stone
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Kiai highlights a shout move while it is the last move.
	Kiai = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Accent).
		Bold(true).
		Padding(0, 1)
)

// MoodColor returns the accent color for a sensei mood.
func MoodColor(m wisdom.Mood) color.Color {
	switch m {
	case wisdom.MoodStrict:
		return Error
	case wisdom.MoodProud:
		return Accent
	default:
		return Secondary
	}
}

// Sensei frames an advisory in the given mood.
func Sensei(m wisdom.Mood) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MoodColor(m)).
		Padding(0, 2)
}
