package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/ui/theme"
)

// Gauge displays a horizontal bar for a value in [0, Max].
type Gauge struct {
	Label     string
	Value     int
	Max       int
	ShowValue bool
	Width     int
	Fill      color.Color
}

// NewGauge creates a gauge filled with the theme's secondary color.
func NewGauge(label string, value, total, width int) Gauge {
	return Gauge{
		Label:     label,
		Value:     value,
		Max:       total,
		ShowValue: true,
		Width:     width,
		Fill:      theme.Secondary,
	}
}

// Filled returns the number of filled cells for a bar of barWidth cells.
func (g Gauge) Filled(barWidth int) int {
	if g.Max <= 0 || g.Value <= 0 {
		return 0
	}
	filled := barWidth * g.Value / g.Max
	return min(filled, barWidth)
}

// View renders the gauge.
func (g Gauge) View() string {
	var result string

	if g.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(g.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	valueWidth := 0
	if g.ShowValue {
		valueWidth = 6 // "  100%"
	}

	barWidth := g.Width - labelWidth - valueWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := g.Filled(barWidth)
	fill := g.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if g.ShowValue {
		pct := 0
		if g.Max > 0 {
			pct = g.Value * 100 / g.Max
		}
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", pct))
	}

	return result
}
