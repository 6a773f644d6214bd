package kata

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/dojo/internal/wisdom"
)

func TestBuiltinRulesetsLoad(t *testing.T) {
	all, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	for _, name := range []string{"shotokan", "heian"} {
		r, ok := all[name]
		if !ok {
			t.Fatalf("missing built-in ruleset %q", name)
		}
		if len(r.Katas()) == 0 {
			t.Errorf("%s: no katas", name)
		}
		if r.Messages.Welcome.Text == "" {
			t.Errorf("%s: empty welcome message", name)
		}
	}
}

func TestShotokanHeianShodan(t *testing.T) {
	r, err := Load("shotokan")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	k, ok := r.Kata("heian-shodan")
	if !ok {
		t.Fatal("heian-shodan not found")
	}
	want := []Move{"Block", "Punch", "Punch", "Kiai"}
	if diff := cmp.Diff(want, k.Sequence()); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}
	if k.Tier != TierBeginner {
		t.Errorf("expected Beginner tier, got %s", k.Tier)
	}
	if !r.Vocabulary.IsShout("Kiai") {
		t.Error("expected Kiai to be the shout move")
	}
}

func TestHeianTranslations(t *testing.T) {
	r, err := Load("heian")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	k, _ := r.Kata("heian-shodan")
	if got, ok := k.Translation("Yame"); !ok || got == "" {
		t.Fatalf("expected a Yame translation, got %q ok=%v", got, ok)
	}
	if k.At(k.Len()-1) != "Yame" {
		t.Errorf("expected the kata to end with Yame, got %s", k.At(k.Len()-1))
	}
}

func TestLoadUnknownRuleset(t *testing.T) {
	_, err := Load("wushu")
	if !errors.Is(err, ErrUnknownRuleset) {
		t.Fatalf("expected ErrUnknownRuleset, got %v", err)
	}
}

func TestSequenceIsCopied(t *testing.T) {
	seq := []Move{"Block", "Punch"}
	k, err := New("k", "K", TierBeginner, "", seq, nil)
	if err != nil {
		t.Fatal(err)
	}
	seq[0] = "Kick"
	if k.At(0) != "Block" {
		t.Fatal("kata aliased the caller's slice")
	}
	got := k.Sequence()
	got[1] = "Kick"
	if k.At(1) != "Punch" {
		t.Fatal("Sequence() exposed internal state")
	}
}

func TestNewRejectsEmptySequence(t *testing.T) {
	if _, err := New("k", "K", TierBeginner, "", nil, nil); !errors.Is(err, ErrInvalidKata) {
		t.Fatalf("expected ErrInvalidKata, got %v", err)
	}
}

func TestValidateRejectsZeroKata(t *testing.T) {
	vocab, err := NewVocabulary(MoveSpec{Move: "Punch"})
	if err != nil {
		t.Fatal(err)
	}
	if err := (&Kata{ID: "zero"}).Validate(vocab); !errors.Is(err, ErrInvalidKata) {
		t.Fatalf("expected ErrInvalidKata, got %v", err)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"beginner", TierBeginner, false},
		{"Intermediate", TierIntermediate, false},
		{" MASTER ", TierMaster, false},
		{"grandmaster", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTier(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTier(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if !(TierBeginner < TierIntermediate && TierIntermediate < TierMaster) {
		t.Error("tiers must be ordered")
	}
}

const validYAML = `
name: test
version: v1.2.0
moves:
  - id: Block
  - id: Punch
keys:
  s: Block
  w: Punch
messages:
  prepare:
    text: "Prepare for {{.Name}} ({{.Tier}})."
katas:
  - id: one
    name: One
    tier: beginner
    sequence: [Block, Punch]
`

func TestParseValid(t *testing.T) {
	r, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Version != "v1.2.0" {
		t.Errorf("version = %q", r.Version)
	}
	k, _ := r.Kata("one")
	adv := r.PrepareAdvisory(k)
	if adv.Text != "Prepare for One (Beginner)." {
		t.Errorf("prepare text = %q", adv.Text)
	}
	if adv.Mood != wisdom.MoodPeaceful {
		t.Errorf("prepare mood = %q", adv.Mood)
	}
	if r.Messages.Begin.Mood != wisdom.MoodStrict {
		t.Errorf("default begin mood = %q", r.Messages.Begin.Mood)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "bad version",
			yaml: "name: x\nversion: one\nmoves: [{id: A}]\nkatas: [{id: k, tier: beginner, sequence: [A]}]",
		},
		{
			name: "unknown move in sequence",
			yaml: "name: x\nversion: v1.0.0\nmoves: [{id: A}]\nkatas: [{id: k, tier: beginner, sequence: [A, B]}]",
		},
		{
			name: "key bound to unknown move",
			yaml: "name: x\nversion: v1.0.0\nmoves: [{id: A}]\nkeys: {q: Z}\nkatas: [{id: k, tier: beginner, sequence: [A]}]",
		},
		{
			name: "empty sequence",
			yaml: "name: x\nversion: v1.0.0\nmoves: [{id: A}]\nkatas: [{id: k, tier: beginner, sequence: []}]",
		},
		{
			name: "duplicate move",
			yaml: "name: x\nversion: v1.0.0\nmoves: [{id: A}, {id: A}]\nkatas: [{id: k, tier: beginner, sequence: [A]}]",
		},
		{
			name: "unknown mood",
			yaml: "name: x\nversion: v1.0.0\nmoves: [{id: A}]\nmessages: {welcome: {text: hi, mood: angry}}\nkatas: [{id: k, tier: beginner, sequence: [A]}]",
		},
		{
			name: "no katas",
			yaml: "name: x\nversion: v1.0.0\nmoves: [{id: A}]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadFSHighestVersionWins(t *testing.T) {
	older := "name: x\nversion: v1.0.0\nmoves: [{id: A}]\nkatas: [{id: old, tier: beginner, sequence: [A]}]"
	newer := "name: x\nversion: v1.10.0\nmoves: [{id: A}]\nkatas: [{id: new, tier: beginner, sequence: [A]}]"
	fsys := fstest.MapFS{
		"r/a.yaml": {Data: []byte(newer)},
		"r/b.yaml": {Data: []byte(older)},
	}
	all, err := LoadFS(fsys, "r")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if _, ok := all["x"].Kata("new"); !ok {
		t.Fatalf("expected v1.10.0 to win, got %s", all["x"].Version)
	}
}
