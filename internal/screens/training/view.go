package training

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojo/internal/engine"
	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/ui/components"
	"github.com/abhisek/dojo/internal/ui/theme"
)

const (
	poseReady = "( •_•)  ━"
	poseError = "( ✖_✖)  ✗"
)

func (s *TrainingScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n%s\n\nPress any key to return.", s.errMsg))
	}

	var sections []string
	switch s.snap.Phase {
	case engine.Starting:
		sections = append(sections, s.renderStarting())
	case engine.Performing:
		sections = append(sections,
			s.renderTarget(),
			s.renderProgress(),
			s.renderFighter(),
			s.renderBreath(width),
		)
	case engine.Success:
		sections = append(sections, s.renderSuccess(), s.renderProgress())
	case engine.Fail:
		sections = append(sections, s.renderFail(), s.renderFighter())
	default:
		sections = append(sections, theme.Subtitle.Render("The dojo is quiet."))
	}
	sections = append(sections, s.renderAdvisory(width))

	body := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *TrainingScreen) renderStarting() string {
	title := theme.Title.Render(strings.ToUpper(s.kata.Name))
	sub := theme.Subtitle.Render(fmt.Sprintf("%s · %d moves", s.kata.Tier, s.kata.Len()))
	return lipgloss.JoinVertical(lipgloss.Center, title, sub, "", theme.Hint.Render("Prepare..."))
}

// renderTarget shows the next expected move with its glyph and translation.
func (s *TrainingScreen) renderTarget() string {
	target, ok := s.snap.Target()
	if !ok {
		return ""
	}
	step := theme.Hint.Render(fmt.Sprintf("STEP %d / %d", s.snap.Step(), s.kata.Len()))
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(s.vocab.Glyph(target) + "  " + strings.ToUpper(target.String()))

	lines := []string{step, name}
	if tr, ok := s.kata.Translation(target); ok {
		lines = append(lines, theme.Hint.Render(tr))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderProgress lays out the performed moves as glyphs, followed by dim
// placeholders for the moves still to come.
func (s *TrainingScreen) renderProgress() string {
	cells := make([]string, 0, s.kata.Len())
	for i := range s.kata.Len() {
		if i < len(s.snap.Progress) {
			cells = append(cells, theme.Correct.Render(s.vocab.Glyph(s.snap.Progress[i])))
			continue
		}
		cells = append(cells, lipgloss.NewStyle().Foreground(theme.Border).Render("·"))
	}
	return strings.Join(cells, " ")
}

// renderFighter draws the fighter: the last move flashes, a shout move in
// the kiai style, and a miss shows the error pose.
func (s *TrainingScreen) renderFighter() string {
	if s.snap.Phase == engine.Fail {
		return theme.Incorrect.Render(poseError)
	}
	if s.snap.LastMove == "" {
		return theme.Body.Render(poseReady)
	}
	label := s.vocab.Glyph(s.snap.LastMove) + " " + strings.ToUpper(s.snap.LastMove.String())
	if s.vocab.IsShout(s.snap.LastMove) {
		return theme.Kiai.Render(label + "!")
	}
	return theme.Selected.Render(label)
}

func (s *TrainingScreen) renderBreath(width int) string {
	return components.NewGauge("BREATH", s.snap.Breath, 100, min(width-8, 50)).View()
}

func (s *TrainingScreen) renderSuccess() string {
	title := theme.Correct.Render("KATA COMPLETE")
	sub := theme.Subtitle.Render(fmt.Sprintf("%s performed in full", s.kata.Name))
	return lipgloss.JoinVertical(lipgloss.Center, title, sub)
}

func (s *TrainingScreen) renderFail() string {
	title := theme.Incorrect.Render("FORM BROKEN")
	if s.snap.Miss == nil {
		return title
	}
	m := s.snap.Miss
	detail := theme.Subtitle.Render(fmt.Sprintf("Step %d: expected %s, got %s",
		m.Step, moveLabel(s.vocab, m.Expected), moveLabel(s.vocab, m.Got)))
	return lipgloss.JoinVertical(lipgloss.Center, title, detail)
}

// renderAdvisory frames the sensei's line in the color of its mood; while a
// request is in flight the box is dimmed behind a spinner.
func (s *TrainingScreen) renderAdvisory(width int) string {
	boxWidth := min(width-8, 64)
	if s.snap.AdvisoryPending {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			Width(boxWidth).
			Render(s.spinner.View() + theme.Hint.Render(" The sensei is watching..."))
	}
	adv := s.snap.Advisory
	if adv.Text == "" {
		return ""
	}
	return theme.Sensei(adv.Mood).Width(boxWidth).Render(theme.Body.Render(adv.Text))
}

func moveLabel(vocab kata.Vocabulary, m kata.Move) string {
	return vocab.Glyph(m) + " " + m.String()
}
