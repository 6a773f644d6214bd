package wisdom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/dojo/internal/llm"
)

// Purpose labels sensei requests in the LLM event log.
const Purpose = "sensei-advisory"

var advisorySchema = llm.MustSchema("sensei-advisory", "One short line of karate wisdom and its mood",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "One sentence, cryptic but encouraging.",
			},
			"mood": map[string]any{
				"type": "string",
				"enum": []any{string(MoodPeaceful), string(MoodStrict), string(MoodProud)},
			},
		},
		"required":             []any{"text", "mood"},
		"additionalProperties": false,
	})

const systemPrompt = `You are {{.Name}}, a wise and mystical karate sensei watching a student perform a kata.
You answer with a single short sentence of wisdom, cryptic but encouraging{{if .Language}}, written in {{.Language}}{{end}}.
Pick the mood that fits: "proud" for a flawless kata, "strict" for a mistake, "peaceful" otherwise.`

const userPrompt = `The student just {{.Situation}}.`

var (
	systemTmpl = template.Must(template.New("system").Parse(systemPrompt))
	userTmpl   = template.Must(template.New("user").Parse(userPrompt))
)

// SenseiOption configures a Sensei.
type SenseiOption func(*Sensei)

// WithName sets the sensei's name used in the prompt.
func WithName(name string) SenseiOption {
	return func(s *Sensei) { s.name = name }
}

// WithLanguage asks for advisories in the given language.
func WithLanguage(lang string) SenseiOption {
	return func(s *Sensei) { s.language = lang }
}

// WithTimeout bounds each advisory request.
func WithTimeout(d time.Duration) SenseiOption {
	return func(s *Sensei) { s.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) SenseiOption {
	return func(s *Sensei) { s.log = log }
}

// Sensei is an LLM-backed Provider.
type Sensei struct {
	llm      llm.Provider
	name     string
	language string
	timeout  time.Duration
	log      *zap.Logger
}

var _ Provider = (*Sensei)(nil)

// NewSensei creates a Sensei generating advisories through p.
func NewSensei(p llm.Provider, opts ...SenseiOption) *Sensei {
	s := &Sensei{
		llm:     p,
		name:    "Sensei Hiroshi",
		timeout: 20 * time.Second,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type advisoryOutput struct {
	Text string `json:"text"`
	Mood string `json:"mood"`
}

func (s *Sensei) Advise(ctx context.Context, sit Situation) (Advisory, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	system, err := render(systemTmpl, map[string]string{"Name": s.name, "Language": s.language})
	if err != nil {
		return Advisory{}, err
	}
	user, err := render(userTmpl, map[string]string{"Situation": sit.String()})
	if err != nil {
		return Advisory{}, err
	}

	resp, err := s.llm.Generate(ctx, llm.Request{
		System:      system,
		Prompt:      user,
		Schema:      advisorySchema,
		MaxTokens:   256,
		Temperature: 0.8,
	})
	if err != nil {
		return Advisory{}, fmt.Errorf("sensei advisory: %w", err)
	}

	var out advisoryOutput
	if err := advisorySchema.Decode(resp.Content, &out); err != nil {
		return Advisory{}, fmt.Errorf("decode sensei advisory: %w", err)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return Advisory{}, errors.New("sensei advisory: empty text")
	}
	mood, err := ParseMood(out.Mood)
	if err != nil {
		return Advisory{}, fmt.Errorf("sensei advisory: %w", err)
	}

	s.log.Debug("sensei advised", zap.String("situation", sit.String()), zap.String("mood", string(mood)))
	return Advisory{Text: text, Mood: mood}, nil
}

func render(t *template.Template, data any) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return b.String(), nil
}
