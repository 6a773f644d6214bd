package wisdom

import "fmt"

// Mood is the tone of a sensei advisory.
type Mood string

const (
	MoodPeaceful Mood = "peaceful"
	MoodStrict   Mood = "strict"
	MoodProud    Mood = "proud"
)

// Moods lists every valid mood.
var Moods = []Mood{MoodPeaceful, MoodStrict, MoodProud}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodPeaceful, MoodStrict, MoodProud:
		return true
	}
	return false
}

// ParseMood validates a mood name.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// Advisory is a short sensei message and its mood.
type Advisory struct {
	Text string
	Mood Mood
}

// fallbackText is shown whenever an advisory cannot be produced.
const fallbackText = "The mountain does not bow to the wind. Focus, student."

// Fallback returns the fixed advisory used when a provider fails.
func Fallback() Advisory {
	return Advisory{Text: fallbackText, Mood: MoodStrict}
}
