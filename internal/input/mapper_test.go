package input

import (
	"testing"

	"github.com/abhisek/dojo/internal/kata"
)

func TestLookup(t *testing.T) {
	m := New(map[string]kata.Move{
		"up":    "Punch",
		"w":     "Punch",
		"space": "Kiai",
	}, false)

	tests := []struct {
		key    string
		want   kata.Move
		wantOK bool
	}{
		{"up", "Punch", true},
		{"w", "Punch", true},
		{"space", "Kiai", true},
		{"W", "", false},
		{"x", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := m.Lookup(tt.key)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLookupFoldCase(t *testing.T) {
	m := New(map[string]kata.Move{"w": "Punch", "W": "Kick"}, true)

	if got, _ := m.Lookup("W"); got != "Kick" {
		t.Errorf("exact match must win over folding, got %q", got)
	}
	m = New(map[string]kata.Move{"w": "Punch"}, true)
	if got, ok := m.Lookup("W"); !ok || got != "Punch" {
		t.Errorf("Lookup(W) with folding = (%q, %v)", got, ok)
	}
}

func TestNewCopiesTable(t *testing.T) {
	table := map[string]kata.Move{"w": "Punch"}
	m := New(table, false)
	table["w"] = "Kick"
	if got, _ := m.Lookup("w"); got != "Punch" {
		t.Fatalf("mapper aliased the caller's table, got %q", got)
	}
}

func TestFromRulesetAndBindings(t *testing.T) {
	r, err := kata.Load("shotokan")
	if err != nil {
		t.Fatal(err)
	}
	m := FromRuleset(r)

	if got, ok := m.Lookup("left"); !ok || got != "Kick" {
		t.Errorf("left -> (%q, %v)", got, ok)
	}
	if got, ok := m.Lookup("D"); !ok || got != "Kick" {
		t.Errorf("D folds to d -> (%q, %v)", got, ok)
	}

	bindings := m.Bindings(r.Vocabulary)
	if len(bindings) != r.Vocabulary.Len() {
		t.Fatalf("expected %d bindings, got %d", r.Vocabulary.Len(), len(bindings))
	}
	punch := bindings[1].Help()
	if punch.Key != "↑ / W" || punch.Desc != "PUNCH" {
		t.Errorf("punch help = %+v", punch)
	}
}
