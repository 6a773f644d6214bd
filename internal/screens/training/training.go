// Package training is the screen where a kata is performed.
package training

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dojo/internal/engine"
	"github.com/abhisek/dojo/internal/input"
	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/router"
	"github.com/abhisek/dojo/internal/screen"
	"github.com/abhisek/dojo/internal/ui/layout"
	"github.com/abhisek/dojo/internal/ui/theme"
)

// Engine is the part of *engine.Engine the screen drives.
type Engine interface {
	Ruleset() *kata.Ruleset
	StartKata(k *kata.Kata) error
	HandleMove(m kata.Move)
	Reset()
	Snapshot() engine.Snapshot
	Subscribe() (<-chan engine.Snapshot, func())
}

// TrainingScreen performs one kata against the engine. It subscribes on
// Init and unsubscribes and resets the engine when it leaves the stack.
type TrainingScreen struct {
	engine  Engine
	mapper  *input.Mapper
	vocab   kata.Vocabulary
	kata    *kata.Kata
	spinner spinner.Model

	updates     <-chan engine.Snapshot
	unsubscribe func()
	snap        engine.Snapshot
	errMsg      string
}

var _ screen.Screen = (*TrainingScreen)(nil)
var _ screen.KeyHintProvider = (*TrainingScreen)(nil)
var _ screen.Leaver = (*TrainingScreen)(nil)

// New creates a TrainingScreen for k.
func New(eng Engine, mapper *input.Mapper, k *kata.Kata) *TrainingScreen {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Hint),
	)
	return &TrainingScreen{
		engine:  eng,
		mapper:  mapper,
		vocab:   eng.Ruleset().Vocabulary,
		kata:    k,
		spinner: sp,
	}
}

func (s *TrainingScreen) Init() tea.Cmd {
	s.updates, s.unsubscribe = s.engine.Subscribe()
	return tea.Batch(
		s.start(),
		waitForState(s.updates),
		s.spinner.Tick,
	)
}

func (s *TrainingScreen) Title() string {
	return s.kata.Name
}

// Leave releases the subscription and abandons any unfinished attempt.
func (s *TrainingScreen) Leave() tea.Cmd {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.engine.Reset()
	return nil
}

func (s *TrainingScreen) KeyHints() []layout.KeyHint {
	switch s.snap.Phase {
	case engine.Performing:
		return append(layout.HintsFromBindings(s.mapper.Bindings(s.vocab)),
			layout.KeyHint{Key: "Esc", Description: "Abort"})
	case engine.Success, engine.Fail, engine.Idle:
		var hints []layout.KeyHint
		if _, bound := s.mapper.Lookup("enter"); bound {
			hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Return to dojo"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Return to dojo"})
		}
		if _, bound := s.mapper.Lookup("r"); !bound {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Again"})
		}
		return hints
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Abort"},
	}
}

func (s *TrainingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		if msg.from != s.updates || !msg.ok {
			return s, nil
		}
		s.snap = msg.snapshot
		return s, waitForState(s.updates)

	case startFailedMsg:
		s.errMsg = msg.Err.Error()
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TrainingScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, popCmd
	}

	// Move keys never navigate: a held or repeated final move must not leave
	// the result, and the engine ignores them outside Performing.
	if mv, ok := s.mapper.Lookup(msg.String()); ok {
		if s.snap.Phase != engine.Idle {
			s.engine.HandleMove(mv)
		}
		return s, nil
	}

	switch s.snap.Phase {
	case engine.Success, engine.Fail, engine.Idle:
		switch msg.String() {
		case "enter":
			return s, popCmd
		case "r", "R":
			return s, s.start()
		}
	}
	return s, nil
}

func (s *TrainingScreen) start() tea.Cmd {
	if err := s.engine.StartKata(s.kata); err != nil {
		return func() tea.Msg { return startFailedMsg{Err: err} }
	}
	return nil
}

func waitForState(ch <-chan engine.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		return stateChangedMsg{from: ch, snapshot: snap, ok: ok}
	}
}

func popCmd() tea.Msg {
	return router.PopScreenMsg{}
}
