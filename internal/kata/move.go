package kata

import "fmt"

// Move is one atomic technique from a ruleset's closed vocabulary.
// Moves compare by value.
type Move string

func (m Move) String() string {
	return string(m)
}

// MoveSpec describes a vocabulary entry.
type MoveSpec struct {
	Move  Move
	Glyph string

	// Label is the short uppercase name shown in key hints.
	Label string

	// Shout marks the spirit-shout move (kiai). The UI flashes it.
	Shout bool
}

// Vocabulary is the closed, ordered set of moves a ruleset allows.
type Vocabulary struct {
	specs []MoveSpec
	index map[Move]int
}

// NewVocabulary builds a vocabulary. Moves must be non-empty and unique.
func NewVocabulary(specs ...MoveSpec) (Vocabulary, error) {
	if len(specs) == 0 {
		return Vocabulary{}, fmt.Errorf("%w: vocabulary is empty", ErrInvalidRuleset)
	}
	v := Vocabulary{
		specs: make([]MoveSpec, len(specs)),
		index: make(map[Move]int, len(specs)),
	}
	for i, s := range specs {
		if s.Move == "" {
			return Vocabulary{}, fmt.Errorf("%w: move %d has no name", ErrInvalidRuleset, i)
		}
		if _, dup := v.index[s.Move]; dup {
			return Vocabulary{}, fmt.Errorf("%w: duplicate move %q", ErrInvalidRuleset, s.Move)
		}
		if s.Label == "" {
			s.Label = string(s.Move)
		}
		v.specs[i] = s
		v.index[s.Move] = i
	}
	return v, nil
}

// Contains reports whether m belongs to the vocabulary.
func (v Vocabulary) Contains(m Move) bool {
	_, ok := v.index[m]
	return ok
}

// Moves returns the moves in declaration order.
func (v Vocabulary) Moves() []Move {
	out := make([]Move, len(v.specs))
	for i, s := range v.specs {
		out[i] = s.Move
	}
	return out
}

// Spec returns the entry for m.
func (v Vocabulary) Spec(m Move) (MoveSpec, bool) {
	i, ok := v.index[m]
	if !ok {
		return MoveSpec{}, false
	}
	return v.specs[i], true
}

// Glyph returns the display glyph for m, or a default belt glyph.
func (v Vocabulary) Glyph(m Move) string {
	if s, ok := v.Spec(m); ok && s.Glyph != "" {
		return s.Glyph
	}
	return "🥋"
}

// IsShout reports whether m is the ruleset's shout move.
func (v Vocabulary) IsShout(m Move) bool {
	s, ok := v.Spec(m)
	return ok && s.Shout
}

// Len returns the number of moves.
func (v Vocabulary) Len() int {
	return len(v.specs)
}
