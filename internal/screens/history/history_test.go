package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/store"
)

type fakeSource struct {
	attempts []store.AttemptRecord
	err      error
	opts     store.QueryOpts
}

func (f *fakeSource) QueryAttempts(_ context.Context, opts store.QueryOpts) ([]store.AttemptRecord, error) {
	f.opts = opts
	return f.attempts, f.err
}

func testRuleset(t *testing.T) *kata.Ruleset {
	t.Helper()
	rs, err := kata.Load("shotokan")
	if err != nil {
		t.Fatalf("load ruleset: %v", err)
	}
	return rs
}

func loaded(t *testing.T, src *fakeSource) *HistoryScreen {
	t.Helper()
	s := New(src, testRuleset(t))
	s.Update(s.Init()())
	return s
}

func TestLoadScopesToRuleset(t *testing.T) {
	src := &fakeSource{}
	loaded(t, src)

	if src.opts.Ruleset != "shotokan" || src.opts.Limit != pageSize {
		t.Errorf("unexpected query opts %+v", src.opts)
	}
}

func TestEmptyHistory(t *testing.T) {
	s := loaded(t, &fakeSource{})
	if !strings.Contains(s.View(100, 20), "No katas performed yet") {
		t.Error("expected empty-state message")
	}
}

func TestLoadError(t *testing.T) {
	s := loaded(t, &fakeSource{err: errors.New("disk on fire")})
	if !strings.Contains(s.View(100, 20), "disk on fire") {
		t.Error("expected error in view")
	}
}

func TestExpandShowsMiss(t *testing.T) {
	src := &fakeSource{attempts: []store.AttemptRecord{
		{
			Timestamp: time.Now(),
			AttemptEventData: store.AttemptEventData{
				SessionID: "0123456789abcdef", KataID: "enpi", KataName: "Enpi",
				Outcome: store.OutcomeFail, StepsCompleted: 2, TotalSteps: 8,
				Expected: "Block", Got: "Kick", Duration: 65 * time.Second,
			},
		},
		{
			Timestamp: time.Now(),
			AttemptEventData: store.AttemptEventData{
				SessionID: "s2", KataID: "heian-shodan", KataName: "Heian Shodan",
				Outcome: store.OutcomeSuccess, StepsCompleted: 4, TotalSteps: 4,
			},
		},
	}}
	s := loaded(t, src)

	view := s.View(120, 20)
	if !strings.Contains(view, "2/8 moves") || !strings.Contains(view, "1:05") {
		t.Errorf("unexpected list view:\n%s", view)
	}
	if strings.Contains(view, "expected") {
		t.Error("details should be collapsed initially")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 20)
	if !strings.Contains(view, "step 3: expected") || !strings.Contains(view, "session 01234567") {
		t.Errorf("expanded details missing:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selection = %d, want 1 (clamped)", s.selected)
	}
}
