package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "partywords",
		Short: "Real-time word-guessing party game server",
		Long: `partywords runs the word-guessing party game backend.

Players join parties over websockets, split into teams, and take turns
giving hints and revealing tiles. Host accounts can manage custom word
packs, persisted in memory or Redis.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
