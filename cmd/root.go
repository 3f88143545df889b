// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-streak-stats",
	Short: "A CLI tool to show GitHub contribution streaks.",
	Long: `github-streak-stats reads a user's GitHub contribution calendar and reports
the total number of contributions, the longest streak and the current streak.
By default the last 52 weeks are shown, aligned to whole weeks.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./.github-streak-stats.yaml or $HOME/.github-streak-stats.yaml)")
}
