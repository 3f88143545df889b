package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/naka-gawa/github-streak-stats/internal/config"
	"github.com/naka-gawa/github-streak-stats/internal/gateway"
	"github.com/naka-gawa/github-streak-stats/internal/render"
	"github.com/naka-gawa/github-streak-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak [login]",
	Short: "Shows the contribution streaks of a GitHub user",
	Long: `Shows the total contributions, the longest streak and the current streak of a GitHub user.
The login defaults to the owner of the GitHub API token.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		now := time.Now()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		configPath, _ := cmd.InheritedFlags().GetString("config")
		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			fail("Invalid configuration: %v", err)
		}
		if len(args) > 0 {
			cfg.Login = args[0]
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, gateway.Options{GraphQLURL: cfg.GraphQLURL, RESTURL: cfg.RESTURL}, logger)
		if err != nil {
			fail("Failed to create GitHub gateway: %v", err)
		}
		calculator := usecase.NewStreakCalculator(githubGateway, logger)

		result, err := calculator.Calculate(ctx, usecase.Request{
			Login:  cfg.Login,
			From:   cfg.From,
			To:     cfg.To,
			Offset: cfg.Offset,
			Now:    now,
		})
		if err != nil {
			fail("Failed to calculate streaks: %v", err)
		}

		fmt.Println(render.Table(result, render.Options{
			DisplayPublicRepositories: cfg.DisplayPublicRepositories,
			DisplayMatrix:             cfg.DisplayMatrix,
			Palette:                   render.PaletteFor(cfg.Theme, os.Stdout),
			Today:                     now.In(result.Window.Start.Location()),
		}))
	},
}

// fail prints the error in red to standard error and exits.
func fail(format string, a ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(streakCmd)
	config.RegisterFlags(streakCmd.Flags())
}
