package kata

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"text/template"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/dojo/internal/wisdom"
)

// DefaultRuleset is used when no ruleset is configured.
const DefaultRuleset = "shotokan"

//go:embed rulesets/*.yaml
var builtin embed.FS

// rulesetFile is the on-disk YAML form of a ruleset.
type rulesetFile struct {
	Name     string            `yaml:"name"`
	Title    string            `yaml:"title"`
	Version  string            `yaml:"version"`
	FoldCase bool              `yaml:"fold_case"`
	Moves    []moveFile        `yaml:"moves"`
	Keys     map[string]string `yaml:"keys"`
	Messages messagesFile      `yaml:"messages"`
	Katas    []kataFile        `yaml:"katas"`
}

type moveFile struct {
	ID    string `yaml:"id"`
	Glyph string `yaml:"glyph"`
	Label string `yaml:"label"`
	Shout bool   `yaml:"shout"`
}

type lineFile struct {
	Text string `yaml:"text"`
	Mood string `yaml:"mood"`
}

type messagesFile struct {
	Welcome lineFile `yaml:"welcome"`
	Prepare lineFile `yaml:"prepare"`
	Begin   lineFile `yaml:"begin"`
}

type kataFile struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Tier         string            `yaml:"tier"`
	Description  string            `yaml:"description"`
	Sequence     []string          `yaml:"sequence"`
	Translations map[string]string `yaml:"translations"`
}

// Parse decodes and validates a YAML ruleset.
func Parse(data []byte) (*Ruleset, error) {
	var f rulesetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidRuleset, err)
	}
	return f.build()
}

func (f rulesetFile) build() (*Ruleset, error) {
	if !semver.IsValid(f.Version) {
		return nil, fmt.Errorf("%w: %s has invalid version %q", ErrInvalidRuleset, f.Name, f.Version)
	}

	specs := make([]MoveSpec, len(f.Moves))
	for i, m := range f.Moves {
		specs[i] = MoveSpec{Move: Move(m.ID), Glyph: m.Glyph, Label: m.Label, Shout: m.Shout}
	}
	vocab, err := NewVocabulary(specs...)
	if err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", f.Name, err)
	}

	msgs, err := f.Messages.build(f.Name)
	if err != nil {
		return nil, err
	}

	r := &Ruleset{
		Name:       f.Name,
		Title:      f.Title,
		Version:    semver.Canonical(f.Version),
		Vocabulary: vocab,
		Messages:   msgs,
		FoldCase:   f.FoldCase,
		keys:       make(map[string]Move, len(f.Keys)),
	}
	if r.Title == "" {
		r.Title = r.Name
	}
	for key, m := range f.Keys {
		r.keys[key] = Move(m)
	}

	for _, kf := range f.Katas {
		tier, err := ParseTier(kf.Tier)
		if err != nil {
			return nil, fmt.Errorf("ruleset %s kata %s: %w", f.Name, kf.ID, err)
		}
		seq := make([]Move, len(kf.Sequence))
		for i, m := range kf.Sequence {
			seq[i] = Move(m)
		}
		var tr map[Move]string
		if len(kf.Translations) > 0 {
			tr = make(map[Move]string, len(kf.Translations))
			for m, text := range kf.Translations {
				tr[Move(m)] = text
			}
		}
		k, err := New(kf.ID, kf.Name, tier, kf.Description, seq, tr)
		if err != nil {
			return nil, fmt.Errorf("ruleset %s: %w", f.Name, err)
		}
		r.katas = append(r.katas, k)
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (m messagesFile) build(ruleset string) (Messages, error) {
	var out Messages
	var err error

	if out.Welcome, err = m.Welcome.advisory(wisdom.MoodPeaceful); err != nil {
		return Messages{}, fmt.Errorf("%w: %s welcome: %v", ErrInvalidRuleset, ruleset, err)
	}
	if out.Begin, err = m.Begin.advisory(wisdom.MoodStrict); err != nil {
		return Messages{}, fmt.Errorf("%w: %s begin: %v", ErrInvalidRuleset, ruleset, err)
	}
	prep, err := m.Prepare.advisory(wisdom.MoodPeaceful)
	if err != nil {
		return Messages{}, fmt.Errorf("%w: %s prepare: %v", ErrInvalidRuleset, ruleset, err)
	}
	out.PrepareMood = prep.Mood
	if prep.Text != "" {
		tmpl, err := template.New(ruleset + "-prepare").Option("missingkey=error").Parse(prep.Text)
		if err != nil {
			return Messages{}, fmt.Errorf("%w: %s prepare template: %v", ErrInvalidRuleset, ruleset, err)
		}
		out.Prepare = tmpl
	}
	return out, nil
}

func (l lineFile) advisory(defaultMood wisdom.Mood) (wisdom.Advisory, error) {
	mood := defaultMood
	if l.Mood != "" {
		m, err := wisdom.ParseMood(l.Mood)
		if err != nil {
			return wisdom.Advisory{}, err
		}
		mood = m
	}
	return wisdom.Advisory{Text: l.Text, Mood: mood}, nil
}

// LoadFS parses every *.yaml file under dir in fsys. When two files declare
// the same ruleset name, the higher semantic version wins.
func LoadFS(fsys fs.FS, dir string) (map[string]*Ruleset, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob rulesets: %w", err)
	}
	out := make(map[string]*Ruleset, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		r, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if prev, ok := out[r.Name]; ok && semver.Compare(prev.Version, r.Version) >= 0 {
			continue
		}
		out[r.Name] = r
	}
	return out, nil
}

// Builtin returns the rulesets compiled into the binary.
func Builtin() (map[string]*Ruleset, error) {
	return LoadFS(builtin, "rulesets")
}

// Load returns the built-in ruleset with the given name.
func Load(name string) (*Ruleset, error) {
	all, err := Builtin()
	if err != nil {
		return nil, err
	}
	r, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownRuleset, name, sortedNames(all))
	}
	return r, nil
}

// Names lists the built-in ruleset names.
func Names() ([]string, error) {
	all, err := Builtin()
	if err != nil {
		return nil, err
	}
	return sortedNames(all), nil
}

func sortedNames(all map[string]*Ruleset) []string {
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
