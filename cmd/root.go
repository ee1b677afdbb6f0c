// Package cmd holds the penguin-maze command line: the HTTP server and the
// terminal tools for generating and playing mazes.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "penguin-maze",
	Short: "Guide the penguin through the maze to the fish",
	Long: `penguin-maze generates perfect mazes whose size grows with the difficulty level.

Run the game server with "serve", print mazes with "gen" or play in the
terminal with "play".`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
