// Package audio plays the game's sound cues.
package audio

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/dojo/internal/kata"
)

// Player produces sound cues. Calls are fire-and-forget: they return
// nothing and must never panic or block for long.
type Player interface {
	PlayMove(m kata.Move)
	PlaySuccess()
	PlayFail()
	PlayAmbience()
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) PlayMove(kata.Move) {}
func (Nop) PlaySuccess()       {}
func (Nop) PlayFail()          {}
func (Nop) PlayAmbience()      {}

// Bell rings the terminal bell for the cues that matter during play: the
// shout move, completion and failure. Ordinary moves stay silent so the bell
// does not drown the rhythm.
type Bell struct {
	mu    sync.Mutex
	w     io.Writer
	vocab kata.Vocabulary
	log   *zap.Logger
}

var _ Player = (*Bell)(nil)

// NewBell creates a Bell writing BEL characters to w.
func NewBell(w io.Writer, vocab kata.Vocabulary, log *zap.Logger) *Bell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bell{w: w, vocab: vocab, log: log}
}

func (b *Bell) PlayMove(m kata.Move) {
	if b.vocab.IsShout(m) {
		b.ring(1)
	}
}

func (b *Bell) PlaySuccess() { b.ring(2) }

func (b *Bell) PlayFail() { b.ring(1) }

// PlayAmbience is silent; a terminal has no ambient channel.
func (b *Bell) PlayAmbience() {}

func (b *Bell) ring(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for range n {
		if _, err := b.w.Write([]byte{'\a'}); err != nil {
			b.log.Debug("bell write failed", zap.Error(err))
			return
		}
	}
}
