package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dojo/internal/screen"
)

// fakeScreen counts its lifecycle calls.
type fakeScreen struct {
	title   string
	inits   int
	left    int
	resumed int
}

func (s *fakeScreen) Init() tea.Cmd                           { s.inits++; return nil }
func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *fakeScreen) View(int, int) string                    { return s.title }
func (s *fakeScreen) Title() string                           { return s.title }
func (s *fakeScreen) Leave() tea.Cmd                          { s.left++; return nil }
func (s *fakeScreen) Resume() tea.Cmd                         { s.resumed++; return nil }

// plainScreen implements only screen.Screen.
type plainScreen struct{ title string }

func (s plainScreen) Init() tea.Cmd                           { return nil }
func (s plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s plainScreen) View(int, int) string                    { return s.title }
func (s plainScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	home := &fakeScreen{title: "home"}
	training := &fakeScreen{title: "training"}
	r := New(home)

	r.Update(PushScreenMsg{Screen: training})
	if r.Depth() != 2 || r.Active() != training || training.inits != 1 {
		t.Fatalf("after push: depth %d, active %q, inits %d", r.Depth(), r.Active().Title(), training.inits)
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("after pop: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if training.left != 1 || home.resumed != 1 || home.left != 0 {
		t.Errorf("left %d, resumed %d, home left %d", training.left, home.resumed, home.left)
	}
}

func TestRootIsNeverPopped(t *testing.T) {
	home := &fakeScreen{title: "home"}
	r := New(home)

	if cmd := r.Pop(); cmd != nil {
		t.Error("pop at the root should return no command")
	}
	if cmd := r.PopToRoot(); cmd != nil {
		t.Error("pop to root at the root should return no command")
	}
	if r.Depth() != 1 || home.left != 0 || home.resumed != 0 {
		t.Errorf("depth %d, left %d, resumed %d", r.Depth(), home.left, home.resumed)
	}
}

func TestPopToRoot(t *testing.T) {
	home := &fakeScreen{title: "home"}
	history := &fakeScreen{title: "history"}
	training := &fakeScreen{title: "training"}
	r := New(home)
	r.Push(history)
	r.Push(training)

	r.PopToRoot()

	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if training.left != 1 || history.left != 1 {
		t.Errorf("every screen above the root should be left: training %d, history %d", training.left, history.left)
	}
	if history.resumed != 0 || home.resumed != 1 {
		t.Errorf("only the root should resume: history %d, home %d", history.resumed, home.resumed)
	}
}

func TestReplace(t *testing.T) {
	splash := &fakeScreen{title: "splash"}
	home := &fakeScreen{title: "home"}
	r := New(splash)

	r.Update(ReplaceScreenMsg{Screen: home})

	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if splash.left != 1 || home.inits != 1 || home.resumed != 0 {
		t.Errorf("splash left %d, home inits %d, home resumed %d", splash.left, home.inits, home.resumed)
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(plainScreen{"home"})
	r.Push(plainScreen{"first"})
	r.Replace(plainScreen{"second"})

	if r.Depth() != 2 || r.Active().Title() != "second" {
		t.Errorf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestNilScreensIgnored(t *testing.T) {
	r := New(plainScreen{"home"})
	r.Push(nil)
	r.Replace(nil)

	if r.Depth() != 1 || r.Active().Title() != "home" {
		t.Errorf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestViewRendersActive(t *testing.T) {
	r := New(plainScreen{"home"})
	r.Push(plainScreen{"training"})
	if got := r.View(80, 24); got != "training" {
		t.Errorf("view = %q", got)
	}
}
