package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dojo/internal/llm"
	"github.com/abhisek/dojo/internal/wisdom"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview sensei advisories for a kata (no database)",
	Long: `Ask the configured LLM sensei for advisories about a kata outcome.

This is a stateless developer tool: no database, no attempt journal, no events.
Useful for tuning the sensei prompt and comparing providers.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("kata", "k", "", "Kata ID (required)")
	previewCmd.Flags().Int("fail-step", 0, "Preview a failure at this 1-indexed step instead of a success")
	previewCmd.Flags().Int("count", 3, "Number of advisories to request")
	_ = previewCmd.MarkFlagRequired("kata")
}

func runPreview(cmd *cobra.Command, args []string) error {
	kataID, _ := cmd.Flags().GetString("kata")
	failStep, _ := cmd.Flags().GetInt("fail-step")
	count, _ := cmd.Flags().GetInt("count")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ruleset, err := cfg.LoadRuleset()
	if err != nil {
		return err
	}
	k, ok := ruleset.Kata(kataID)
	if !ok {
		return fmt.Errorf("ruleset %s has no kata %q", ruleset.Name, kataID)
	}
	if failStep < 0 || failStep > k.Len() {
		return fmt.Errorf("--fail-step must be between 1 and %d", k.Len())
	}

	sit := wisdom.Situation{Kata: k.Name, Success: failStep == 0}
	if failStep > 0 {
		sit.Step = failStep
		sit.Expected = k.At(failStep - 1).String()
	}

	// No EventRepo: request logging is skipped.
	ctx := context.Background()
	provider, _, err := llm.NewProviderFromEnv(ctx, nil, zap.NewNop())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	sensei := wisdom.NewSensei(provider,
		wisdom.WithName(cfg.SenseiName),
		wisdom.WithLanguage(cfg.SenseiLanguage),
		wisdom.WithTimeout(cfg.AdvisoryTimeout),
	)

	fmt.Printf("Kata: %s (%s, %s)\n", k.Name, ruleset.Name, k.Tier)
	fmt.Printf("Situation: the student %s\n\n", sit)

	for i := 1; i <= count; i++ {
		start := time.Now()
		adv, err := sensei.Advise(ctx, sit)
		if err != nil {
			fmt.Printf("── Advisory %d/%d: failed: %v\n\n", i, count, err)
			continue
		}
		fmt.Printf("── Advisory %d/%d (%s, %dms) ──\n", i, count, adv.Mood, time.Since(start).Milliseconds())
		fmt.Println(adv.Text)
		fmt.Println()
	}
	return nil
}
