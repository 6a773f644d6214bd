package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojo/internal/kata"
)

var katasCmd = &cobra.Command{
	Use:   "katas",
	Short: "List the built-in rulesets and their katas (all, or only --ruleset)",
	RunE: func(cmd *cobra.Command, args []string) error {
		only, _ := cmd.Flags().GetString("ruleset")

		names, err := kata.Names()
		if err != nil {
			return err
		}
		if only != "" {
			names = []string{only}
		}

		for i, name := range names {
			rs, err := kata.Load(name)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Println()
			}
			printRuleset(rs)
		}
		return nil
	},
}

func printRuleset(rs *kata.Ruleset) {
	fmt.Printf("%s %s — %s\n", rs.Name, rs.Version, rs.Title)

	moves := rs.Vocabulary.Moves()
	glyphs := make([]string, len(moves))
	for i, m := range moves {
		glyphs[i] = rs.Vocabulary.Glyph(m) + " " + m.String()
	}
	fmt.Printf("Moves: %s\n", strings.Join(glyphs, "  "))
	fmt.Println(strings.Repeat("─", 90))
	fmt.Printf("%-16s  %-18s  %-12s  %s\n", "ID", "Name", "Tier", "Sequence")
	fmt.Println(strings.Repeat("─", 90))

	for _, k := range rs.Katas() {
		seq := make([]string, 0, k.Len())
		for _, m := range k.Sequence() {
			seq = append(seq, m.String())
		}
		fmt.Printf("%-16s  %-18s  %-12s  %s\n", k.ID, k.Name, k.Tier, strings.Join(seq, " → "))
	}
}
