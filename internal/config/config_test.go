package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dojo/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shotokan", cfg.Ruleset)
	assert.Equal(t, SoundBell, cfg.Sound)
	assert.Equal(t, 20*time.Second, cfg.AdvisoryTimeout)
	assert.Equal(t, engine.DefaultTiming(), cfg.Timing())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DOJO_RULESET", "heian")
	t.Setenv("DOJO_PREPARE_DELAY", "1.5s")
	t.Setenv("DOJO_LAST_MOVE_CLEAR", "300ms")
	t.Setenv("DOJO_SOUND", "off")
	t.Setenv("DOJO_OFFLINE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "heian", cfg.Ruleset)
	assert.Equal(t, 1500*time.Millisecond, cfg.PrepareDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.LastMoveClear)
	assert.Equal(t, SoundOff, cfg.Sound)
	assert.True(t, cfg.Offline)

	rs, err := cfg.LoadRuleset()
	require.NoError(t, err)
	assert.Equal(t, "heian", rs.Name)
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"prepare too short", map[string]string{"DOJO_PREPARE_DELAY": "1s"}},
		{"prepare too long", map[string]string{"DOJO_PREPARE_DELAY": "3s"}},
		{"clear too short", map[string]string{"DOJO_LAST_MOVE_CLEAR": "100ms"}},
		{"zero tick", map[string]string{"DOJO_BREATH_TICK": "0s"}},
		{"increment too large", map[string]string{"DOJO_BREATH_INCREMENT": "100"}},
		{"unknown sound", map[string]string{"DOJO_SOUND": "gong"}},
		{"not a duration", map[string]string{"DOJO_ADVISORY_TIMEOUT": "forever"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Config{Ruleset: "", Sound: "gong"}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"DOJO_RULESET", "DOJO_PREPARE_DELAY", "DOJO_SOUND"} {
		assert.Contains(t, err.Error(), want)
	}
}
