// Package router keeps the stack of screens: home at the bottom, the
// training or history screen above it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dojo/internal/screen"
)

// PushScreenMsg opens a screen above the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen, revealing the one below.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen without changing the depth.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router manages a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New creates a Router rooted at root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s above the active screen and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	if s == nil {
		return nil
	}
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the active screen unless it is the root. The closed screen is
// told through screen.Leaver; the revealed one through screen.Resumer.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	return tea.Batch(r.drop(), resume(r.Active()))
}

// PopToRoot closes every screen above the root, top first, and resumes the
// root once.
func (r *Router) PopToRoot() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	var cmds []tea.Cmd
	for len(r.stack) > 1 {
		cmds = append(cmds, r.drop())
	}
	return tea.Batch(append(cmds, resume(r.Active()))...)
}

// Replace swaps the active screen for s. The old screen is left, s is
// initialised; nothing is resumed.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if s == nil {
		return nil
	}
	top := len(r.stack) - 1
	old := r.stack[top]
	r.stack[top] = s
	return tea.Batch(leave(old), s.Init())
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

// drop removes the top screen and returns its leave command.
func (r *Router) drop() tea.Cmd {
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return leave(top)
}

func resume(s screen.Screen) tea.Cmd {
	if rs, ok := s.(screen.Resumer); ok {
		return rs.Resume()
	}
	return nil
}

func leave(s screen.Screen) tea.Cmd {
	if l, ok := s.(screen.Leaver); ok {
		return l.Leave()
	}
	return nil
}
