package kata

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/dojo/internal/wisdom"
)

// Messages holds the ruleset's static sensei lines.
type Messages struct {
	// Welcome is shown while idle.
	Welcome wisdom.Advisory

	// Begin replaces the prepare line once the performance starts.
	Begin wisdom.Advisory

	// Prepare is rendered with the kata as template data ({{.Name}},
	// {{.Description}}, {{.Tier}}).
	Prepare     *template.Template
	PrepareMood wisdom.Mood
}

// Ruleset is one complete configuration of the game: vocabulary, key table,
// katas and sensei lines. Rulesets are loaded once and never mutated.
type Ruleset struct {
	Name    string
	Title   string
	Version string

	Vocabulary Vocabulary
	Messages   Messages

	// FoldCase retries unmatched keys lower-cased.
	FoldCase bool

	katas []*Kata
	keys  map[string]Move
}

// Katas returns the katas in declaration order.
func (r *Ruleset) Katas() []*Kata {
	out := make([]*Kata, len(r.katas))
	copy(out, r.katas)
	return out
}

// Kata returns the kata with the given id.
func (r *Ruleset) Kata(id string) (*Kata, bool) {
	for _, k := range r.katas {
		if k.ID == id {
			return k, true
		}
	}
	return nil, false
}

// Keys returns a copy of the key table.
func (r *Ruleset) Keys() map[string]Move {
	out := make(map[string]Move, len(r.keys))
	for k, m := range r.keys {
		out[k] = m
	}
	return out
}

// PrepareAdvisory renders the kata-specific "prepare" line.
func (r *Ruleset) PrepareAdvisory(k *Kata) wisdom.Advisory {
	mood := r.Messages.PrepareMood
	if mood == "" {
		mood = wisdom.MoodPeaceful
	}
	if r.Messages.Prepare == nil {
		return wisdom.Advisory{Text: fmt.Sprintf("Prepare for %s.", k.Name), Mood: mood}
	}
	var b bytes.Buffer
	data := struct {
		Name        string
		Description string
		Tier        string
	}{k.Name, k.Description, k.Tier.String()}
	if err := r.Messages.Prepare.Execute(&b, data); err != nil {
		return wisdom.Advisory{Text: fmt.Sprintf("Prepare for %s.", k.Name), Mood: mood}
	}
	return wisdom.Advisory{Text: strings.TrimSpace(b.String()), Mood: mood}
}

func (r *Ruleset) validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRuleset)
	}
	if len(r.katas) == 0 {
		return fmt.Errorf("%w: %s has no katas", ErrInvalidRuleset, r.Name)
	}
	seen := make(map[string]bool, len(r.katas))
	for _, k := range r.katas {
		if seen[k.ID] {
			return fmt.Errorf("%w: %s has duplicate kata %q", ErrInvalidRuleset, r.Name, k.ID)
		}
		seen[k.ID] = true
		if err := k.Validate(r.Vocabulary); err != nil {
			return fmt.Errorf("ruleset %s: %w", r.Name, err)
		}
	}
	for key, m := range r.keys {
		if !r.Vocabulary.Contains(m) {
			return fmt.Errorf("%w: %s binds key %q to unknown move %q", ErrInvalidRuleset, r.Name, key, m)
		}
	}
	return nil
}
