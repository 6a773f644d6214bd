package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojo/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past kata attempts and per-kata totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kataID, _ := cmd.Flags().GetString("kata")
		ruleset, _ := cmd.Flags().GetString("ruleset")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()
		attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{
			Limit:   limit,
			Ruleset: ruleset,
			KataID:  kataID,
		})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		if len(attempts) == 0 {
			fmt.Println("No kata attempts found.")
			return nil
		}

		fmt.Printf("%-19s  %-10s  %-18s  %-7s  %-7s  %-7s  %s\n",
			"Timestamp", "Ruleset", "Kata", "Outcome", "Steps", "Time", "Miss")
		fmt.Println(strings.Repeat("─", 96))

		for _, a := range attempts {
			miss := ""
			if a.Outcome == store.OutcomeFail {
				miss = fmt.Sprintf("expected %s, got %s", a.Expected, a.Got)
			}
			fmt.Printf("%-19s  %-10s  %-18s  %-7s  %-7s  %-7s  %s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.Ruleset,
				truncate(a.KataName, 18),
				a.Outcome,
				fmt.Sprintf("%d/%d", a.StepsCompleted, a.TotalSteps),
				fmt.Sprintf("%.1fs", a.Duration.Seconds()),
				miss,
			)
		}

		stats, err := repo.AttemptStats(ctx, ruleset)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		fmt.Println()
		fmt.Printf("%-18s  %8s  %9s  %7s\n", "Kata", "Attempts", "Successes", "Rate")
		fmt.Println(strings.Repeat("─", 48))
		for _, st := range stats {
			rate := 0.0
			if st.Attempts > 0 {
				rate = float64(st.Successes) / float64(st.Attempts) * 100
			}
			fmt.Printf("%-18s  %8d  %9d  %6.0f%%\n", truncate(st.KataID, 18), st.Attempts, st.Successes, rate)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().StringP("kata", "k", "", "Only show attempts at this kata ID")
}
