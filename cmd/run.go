package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dojo/internal/app"
	"github.com/abhisek/dojo/internal/audio"
	"github.com/abhisek/dojo/internal/config"
	"github.com/abhisek/dojo/internal/engine"
	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/llm"
	"github.com/abhisek/dojo/internal/logging"
	"github.com/abhisek/dojo/internal/store"
	"github.com/abhisek/dojo/internal/wisdom"
)

// runApp builds the engine and its collaborators and launches the TUI. A
// non-empty kataID starts that kata immediately.
func runApp(cmd *cobra.Command, kataID string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Verbose: verbose})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ruleset, err := cfg.LoadRuleset()
	if err != nil {
		return err
	}
	var k *kata.Kata
	if kataID != "" {
		var ok bool
		if k, ok = ruleset.Kata(kataID); !ok {
			return fmt.Errorf("ruleset %s has no kata %q (see: dojo katas)", ruleset.Name, kataID)
		}
	}

	// The event log is optional; the game runs without it.
	var repo store.EventRepo
	if dbPath, err := resolveDBPath(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Event log unavailable:", err)
	} else if st, err := store.Open(dbPath); err != nil {
		fmt.Fprintln(os.Stderr, "Event log unavailable:", err)
	} else {
		defer st.Close()
		repo = st.EventRepo()
	}

	opts := engine.Options{
		Ruleset: ruleset,
		Audio:   newAudio(cfg, ruleset, log),
		Wisdom:  newWisdom(cmd, cfg, repo, log),
		Clock:   engine.RealClock(),
		Logger:  log,
		Timing:  cfg.Timing(),
	}
	if repo != nil {
		opts.Journal = repo
	}
	eng, err := engine.New(opts)
	if err != nil {
		return err
	}
	defer eng.Close()

	log.Info("dojo started",
		zap.String("ruleset", ruleset.Name),
		zap.String("version", ruleset.Version),
		zap.Bool("offline", cfg.Offline),
	)
	return app.Run(app.Options{Engine: eng, Repo: repo, Kata: k, Splash: !cfg.NoSplash})
}

func newAudio(cfg config.Config, ruleset *kata.Ruleset, log *zap.Logger) audio.Player {
	if cfg.Sound == config.SoundOff {
		return audio.Nop{}
	}
	// The bell goes to stderr so it never interleaves with frames on stdout.
	return audio.NewBell(os.Stderr, ruleset.Vocabulary, log)
}

// newWisdom builds the LLM sensei, or the offline one when no provider is
// configured or --offline is set.
func newWisdom(cmd *cobra.Command, cfg config.Config, repo store.EventRepo, log *zap.Logger) wisdom.Provider {
	if cfg.Offline {
		return &wisdom.Offline{}
	}
	provider, llmCfg, err := llm.NewProviderFromEnv(cmd.Context(), repo, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The sensei will use built-in lines.")
		return &wisdom.Offline{}
	}
	log.Info("sensei online", zap.String("provider", llmCfg.Provider))
	return wisdom.NewSensei(provider,
		wisdom.WithName(cfg.SenseiName),
		wisdom.WithLanguage(cfg.SenseiLanguage),
		wisdom.WithTimeout(cfg.AdvisoryTimeout),
		wisdom.WithLogger(log),
	)
}
