package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojo/internal/config"
	"github.com/abhisek/dojo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "dojo",
	Short: "Karate kata trainer for the terminal",
	Long: `Dojo is a terminal memory game: reproduce a karate kata move by move
while the sensei watches your breath and comments on your form.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides DOJO_DB)")
	pf.String("ruleset", "", "Ruleset to play (overrides DOJO_RULESET)")
	pf.String("log-file", "", "Write JSON logs to this file (overrides DOJO_LOG_FILE)")
	pf.BoolP("verbose", "v", false, "Log at debug level")
	pf.Bool("offline", false, "Never call an LLM; the sensei uses built-in lines")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(katasCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("ruleset"); v != "" {
		cfg.Ruleset = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := flags.GetBool("offline"); v {
		cfg.Offline = true
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db / DOJO_DB, then the
// default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log for the read-only subcommands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
