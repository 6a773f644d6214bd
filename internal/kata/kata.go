package kata

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrInvalidKata    = errors.New("invalid kata")
	ErrInvalidRuleset = errors.New("invalid ruleset")
	ErrUnknownRuleset = errors.New("unknown ruleset")
)

// Tier is the difficulty tier of a kata. Tiers are ordered.
type Tier int

const (
	TierBeginner Tier = iota
	TierIntermediate
	TierMaster
)

func (t Tier) String() string {
	switch t {
	case TierBeginner:
		return "Beginner"
	case TierIntermediate:
		return "Intermediate"
	case TierMaster:
		return "Master"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier converts a tier name (case-insensitive) to a Tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return TierBeginner, nil
	case "intermediate":
		return TierIntermediate, nil
	case "master":
		return TierMaster, nil
	}
	return 0, fmt.Errorf("%w: unknown tier %q", ErrInvalidKata, s)
}

// Kata is an ordered, immutable move sequence the player must reproduce.
type Kata struct {
	ID          string
	Name        string
	Tier        Tier
	Description string

	sequence     []Move
	translations map[Move]string
}

// New creates a Kata. The sequence and translations are copied so the
// caller's slices cannot alias kata state.
func New(id, name string, tier Tier, description string, sequence []Move, translations map[Move]string) (*Kata, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidKata)
	}
	if len(sequence) == 0 {
		return nil, fmt.Errorf("%w: %s has an empty sequence", ErrInvalidKata, id)
	}
	k := &Kata{
		ID:          id,
		Name:        name,
		Tier:        tier,
		Description: description,
		sequence:    slices.Clone(sequence),
	}
	if len(translations) > 0 {
		k.translations = maps.Clone(translations)
	}
	return k, nil
}

// Len returns the sequence length.
func (k *Kata) Len() int {
	return len(k.sequence)
}

// At returns the move expected at index i.
func (k *Kata) At(i int) Move {
	return k.sequence[i]
}

// Sequence returns a copy of the move sequence.
func (k *Kata) Sequence() []Move {
	return slices.Clone(k.sequence)
}

// Translation returns the human-readable explanation of m, if the kata has one.
func (k *Kata) Translation(m Move) (string, bool) {
	t, ok := k.translations[m]
	return t, ok
}

// Validate checks that the sequence is non-empty and that every move of it
// and every translated move belongs to vocab.
func (k *Kata) Validate(vocab Vocabulary) error {
	if len(k.sequence) == 0 {
		return fmt.Errorf("%w: %s has an empty sequence", ErrInvalidKata, k.ID)
	}
	for i, m := range k.sequence {
		if !vocab.Contains(m) {
			return fmt.Errorf("%w: %s step %d uses unknown move %q", ErrInvalidKata, k.ID, i+1, m)
		}
	}
	for m := range k.translations {
		if !vocab.Contains(m) {
			return fmt.Errorf("%w: %s translates unknown move %q", ErrInvalidKata, k.ID, m)
		}
	}
	return nil
}
