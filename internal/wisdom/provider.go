package wisdom

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Situation describes what the student just did. Its String form is the
// context handed to the advisor.
type Situation struct {
	Kata    string
	Success bool

	// Step is the 1-indexed step of the mistake. Unused on success.
	Step     int
	Expected string
}

func (s Situation) String() string {
	if s.Success {
		return fmt.Sprintf("mastered %s with good rhythm", s.Kata)
	}
	return fmt.Sprintf("made a mistake at step %d (%s)", s.Step, s.Expected)
}

// Provider produces an advisory for a finished performance. Implementations
// may be slow and may fail; callers substitute Fallback on error.
type Provider interface {
	Advise(ctx context.Context, s Situation) (Advisory, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, s Situation) (Advisory, error)

func (f ProviderFunc) Advise(ctx context.Context, s Situation) (Advisory, error) {
	return f(ctx, s)
}

var (
	proudLines = []string{
		"The river does not hurry, yet it reaches the sea.",
		"Your body remembered what your mind forgot to fear.",
		"One kata, performed truly, is worth a thousand rehearsed.",
	}
	strictLines = []string{
		"The %s was waiting for you. Listen before you strike.",
		"A single wrong step at %s breaks the whole form. Begin again.",
		"Speed without order is only noise. Return to %s.",
	}
)

// Offline is a Provider that needs no network. It rotates through a small
// set of lines so consecutive attempts do not repeat.
type Offline struct {
	n atomic.Uint64
}

var _ Provider = (*Offline)(nil)

func (o *Offline) Advise(ctx context.Context, s Situation) (Advisory, error) {
	if err := ctx.Err(); err != nil {
		return Advisory{}, err
	}
	i := int(o.n.Add(1) - 1)
	if s.Success {
		return Advisory{Text: proudLines[i%len(proudLines)], Mood: MoodProud}, nil
	}
	line := fmt.Sprintf(strictLines[i%len(strictLines)], s.Expected)
	return Advisory{Text: line, Mood: MoodStrict}, nil
}
