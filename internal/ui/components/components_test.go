package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg struct{ label string }

func testMenu() Menu {
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return pickedMsg{label} }
		}
	}
	return NewMenu([]MenuItem{
		{Label: "LOCKED", Disabled: true},
		{Label: "HEIAN SHODAN", Detail: "Beginner", Action: pick("heian")},
		{Label: "ENPI", Action: pick("enpi")},
	})
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuNavigationSkipsDisabledAndWraps(t *testing.T) {
	m := testMenu()
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	steps := []struct {
		key  rune
		want int
	}{
		{tea.KeyDown, 2},
		{tea.KeyDown, 1}, // wraps past the disabled first item
		{tea.KeyUp, 2},   // wraps the other way
		{tea.KeyUp, 1},
	}
	for i, st := range steps {
		m, _ = m.Update(press(st.key))
		if m.Selected != st.want {
			t.Fatalf("step %d: selection = %d, want %d", i, m.Selected, st.want)
		}
	}
}

func TestMenuDigitChoosesItem(t *testing.T) {
	m := testMenu()

	m, cmd := m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil || m.Selected != 2 {
		t.Fatalf("digit 3: selection %d, cmd %v", m.Selected, cmd)
	}
	if got := cmd().(pickedMsg); got.label != "enpi" {
		t.Errorf("picked %q, want enpi", got.label)
	}

	if _, cmd := m.Update(tea.KeyPressMsg{Code: '1', Text: "1"}); cmd != nil {
		t.Error("a disabled item must not be chosen by digit")
	}
}

func TestMenuSelect(t *testing.T) {
	m := testMenu()
	m.Select(0)
	if m.Selected != 1 {
		t.Errorf("selecting a disabled item moved selection to %d", m.Selected)
	}
	m.Select(2)
	if m.Selected != 2 {
		t.Errorf("selection = %d, want 2", m.Selected)
	}
}

func TestMenuAllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}})
	m, cmd := m.Update(press(tea.KeyEnter))
	if cmd != nil || m.Selected != -1 {
		t.Errorf("selection %d, cmd %v", m.Selected, cmd)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(press(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}
	if got := cmd().(pickedMsg); got.label != "heian" {
		t.Errorf("picked %q, want heian", got.label)
	}
}

func TestMenuViewMarksSelection(t *testing.T) {
	out := testMenu().View()
	if !strings.Contains(out, "▸ HEIAN SHODAN") {
		t.Errorf("selected item not marked:\n%s", out)
	}
	if !strings.Contains(out, "Beginner") {
		t.Errorf("detail missing:\n%s", out)
	}
}

func TestGaugeFilled(t *testing.T) {
	tests := []struct {
		value, max, width, want int
	}{
		{0, 100, 20, 0},
		{50, 100, 20, 10},
		{95, 100, 20, 19},
		{150, 100, 20, 20},
		{5, 0, 20, 0},
	}
	for _, tt := range tests {
		g := NewGauge("", tt.value, tt.max, tt.width)
		if got := g.Filled(tt.width); got != tt.want {
			t.Errorf("Filled(value=%d, max=%d, width=%d) = %d, want %d",
				tt.value, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestGaugeViewShowsPercent(t *testing.T) {
	out := NewGauge("BREATH", 45, 100, 40).View()
	if !strings.Contains(out, "BREATH") || !strings.Contains(out, "45%") {
		t.Errorf("unexpected gauge view %q", out)
	}
}
