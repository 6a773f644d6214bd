// Package input translates raw key identifiers into kata moves.
package input

import (
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/abhisek/dojo/internal/kata"
)

// Mapper is a static key → move table. It holds no state beyond the table
// and is safe for concurrent use.
type Mapper struct {
	table    map[string]kata.Move
	foldCase bool
}

// New creates a Mapper over a copy of table. With foldCase set, an unmatched
// key is retried lower-cased.
func New(table map[string]kata.Move, foldCase bool) *Mapper {
	t := make(map[string]kata.Move, len(table))
	for k, m := range table {
		t[k] = m
	}
	return &Mapper{table: t, foldCase: foldCase}
}

// FromRuleset builds the mapper for a ruleset's key table.
func FromRuleset(r *kata.Ruleset) *Mapper {
	return New(r.Keys(), r.FoldCase)
}

// Lookup returns the move bound to key.
func (m *Mapper) Lookup(k string) (kata.Move, bool) {
	if mv, ok := m.table[k]; ok {
		return mv, true
	}
	if m.foldCase {
		if mv, ok := m.table[strings.ToLower(k)]; ok {
			return mv, true
		}
	}
	return "", false
}

// Bindings returns one key binding per vocabulary move that has at least one
// key, in vocabulary order, with help text for hint rendering.
func (m *Mapper) Bindings(vocab kata.Vocabulary) []key.Binding {
	var out []key.Binding
	for _, mv := range vocab.Moves() {
		keys := m.keysFor(mv)
		if len(keys) == 0 {
			continue
		}
		label := string(mv)
		if spec, ok := vocab.Spec(mv); ok {
			label = spec.Label
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(displayKeys(keys), label),
		))
	}
	return out
}

func (m *Mapper) keysFor(mv kata.Move) []string {
	var keys []string
	for k, bound := range m.table {
		if bound == mv {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if (len(keys[i]) > 1) != (len(keys[j]) > 1) {
			return len(keys[i]) > 1
		}
		return keys[i] < keys[j]
	})
	return keys
}

var keyGlyphs = map[string]string{
	"up":    "↑",
	"down":  "↓",
	"left":  "←",
	"right": "→",
	"space": "SPACE",
	"enter": "ENTER",
	"tab":   "TAB",
}

func displayKeys(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if g, ok := keyGlyphs[k]; ok {
			parts[i] = g
		} else {
			parts[i] = strings.ToUpper(k)
		}
	}
	return strings.Join(parts, " / ")
}
