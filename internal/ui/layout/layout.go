// Package layout frames every screen: a header bar, the screen content and
// a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/ui/theme"
)

const (
	// The training view needs room for the fighter, two gauges and the
	// sensei box side by side.
	MinWidth  = 64
	MinHeight = 22

	// CompactHeight is the content height below which screens drop their
	// secondary panels.
	CompactHeight = 24
)

const hintSep = "  ·  "

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether a screen with contentHeight rows should drop
// its secondary panels.
func IsCompact(contentHeight int) bool {
	return contentHeight < CompactHeight
}

// RenderMinSizeMessage asks the player to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("The mat is too small."),
			"",
			theme.Body.Render(fmt.Sprintf("Resize to at least %d x %d", MinWidth, MinHeight)),
			theme.Hint.Render(fmt.Sprintf("now %d x %d", width, height)),
		))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// RenderHeader renders the brand, the screen title centred, and status on
// the right (typically the active ruleset and its version).
func RenderHeader(title, status string, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	side := inner / 4

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(side).Foreground(theme.Primary).Bold(true).Render("道 Dojo"),
		lipgloss.NewStyle().Width(inner-2*side).Align(lipgloss.Center).Foreground(theme.Text).Render(title),
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Foreground(theme.Accent).Render(status),
	)
	return bar.Width(width).Render(row)
}

// RenderFooter renders as many key hints as fit in width, in order. A
// trailing ellipsis marks dropped hints.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var row string
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if i > 0 {
			next = row + descStyle.Render(hintSep) + part
		}
		if lipgloss.Width(next) > inner-2 {
			row += descStyle.Render(" …")
			break
		}
		row = next
	}
	return bar.Width(width).Render(row)
}

// RenderFrame stacks header, content and footer, sizing the content to fill
// the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).MaxHeight(contentHeight).Render(content)
	return strings.Join([]string{header, body, footer}, "\n")
}

// HintsFromBindings converts key bindings into footer hints, skipping
// disabled bindings and bindings without help text.
func HintsFromBindings(bindings []key.Binding) []KeyHint {
	hints := make([]KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if h := b.Help(); b.Enabled() && h.Key != "" {
			hints = append(hints, KeyHint{Key: h.Key, Description: h.Desc})
		}
	}
	return hints
}
