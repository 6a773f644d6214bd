package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojo/internal/kata"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dojo version and the versions of the built-in rulesets",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("dojo", buildVersion())

		rulesets, err := kata.Builtin()
		if err != nil {
			return err
		}
		names, err := kata.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Printf("  %-10s %s\n", name, rulesets[name].Version)
		}
		return nil
	},
}

// buildVersion prefers the ldflags value, then the module version recorded
// by `go install`.
func buildVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}
