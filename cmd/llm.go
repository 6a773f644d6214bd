package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojo/internal/llm"
	"github.com/abhisek/dojo/internal/store"
	"github.com/abhisek/dojo/internal/wisdom"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the sensei's LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests with tokens, latency and cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-16s  %-28s  %6s  %6s  %7s  %-9s  %s\n",
			"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Println(rule(112))
		for _, e := range events {
			fmt.Printf("%-5d  %-19s  %-16s  %-28s  %6d  %6d  %7d  %-9s  %s\n",
				e.ID,
				e.Timestamp.Local().Format(timeLayout),
				truncate(e.Purpose, 16),
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				eventCost(e),
				mark(e.Success),
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one LLM request: prompt, reply and the advisory it produced",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no LLM request with ID %d (see: dojo llm list)", id)
		}
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		fmt.Printf("ID:        %d (sequence %d)\n", e.ID, e.Sequence)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format(timeLayout))
		fmt.Printf("Provider:  %s / %s\n", e.Provider, e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out, %s\n", e.InputTokens, e.OutputTokens, eventCost(*e))
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		if e.Success {
			fmt.Println("Result:    ok")
		} else {
			fmt.Printf("Result:    failed: %s\n", e.ErrorMessage)
		}
		if adv, ok := parseAdvisory(e.ResponseBody); ok {
			fmt.Printf("Advisory:  %q (%s)\n", adv.Text, adv.Mood)
		}

		section("REQUEST", e.RequestBody)
		section("RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()

		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}
		printUsage(byPurpose)

		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		fmt.Println()
		printCosts(byModel)
		return nil
	},
}

func printUsage(rows []store.LLMUsage) {
	fmt.Println("Usage by purpose")
	fmt.Println(rule(72))
	fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Println(rule(72))

	var total store.LLMUsage
	for _, u := range rows {
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(u.Group, 16), u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		total.Calls += u.Calls
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	fmt.Println(rule(72))
	fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n",
		"TOTAL", total.Calls, total.InputTokens, total.OutputTokens, total.InputTokens+total.OutputTokens)
}

func printCosts(rows []store.LLMUsage) {
	fmt.Println("Estimated cost (USD)")
	fmt.Println(rule(72))
	fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(rule(72))

	var total float64
	var unpriced []string
	for _, u := range rows {
		cost := "?"
		if c := llm.LookupCost(u.Group); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, u.Group)
		}
		fmt.Printf("%-32s  %6d  %10d  %10d  %9s\n", truncate(u.Group, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}

	fmt.Println(rule(72))
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n", label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

// parseAdvisory decodes a sensei reply, if the body is one.
func parseAdvisory(body string) (wisdom.Advisory, bool) {
	var out struct {
		Text string `json:"text"`
		Mood string `json:"mood"`
	}
	if json.Unmarshal([]byte(body), &out) != nil || out.Text == "" {
		return wisdom.Advisory{}, false
	}
	mood, err := wisdom.ParseMood(out.Mood)
	if err != nil {
		return wisdom.Advisory{}, false
	}
	return wisdom.Advisory{Text: out.Text, Mood: mood}, true
}

func section(title, body string) {
	fmt.Println()
	fmt.Println(rule(60))
	fmt.Println(title)
	fmt.Println(rule(60))
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// eventCost estimates the cost of one request, or "?" for unpriced models.
func eventCost(e store.LLMRequestRecord) string {
	cost := llm.LookupCost(e.Model)
	if cost == nil {
		return "?"
	}
	return formatCost(cost.Cost(e.InputTokens, e.OutputTokens))
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only this purpose (e.g. sensei-advisory)")
	llmListCmd.Flags().Duration("since", 0, "Only requests newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
