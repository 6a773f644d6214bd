package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Enter the dojo, optionally starting a kata right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		kataID, _ := cmd.Flags().GetString("kata")
		return runApp(cmd, kataID)
	},
}

func init() {
	playCmd.Flags().StringP("kata", "k", "", "Kata ID to start immediately (see: dojo katas)")
}
