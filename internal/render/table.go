package render

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
	"github.com/naka-gawa/github-streak-stats/internal/usecase"
)

const dateLayout = "2006-01-02"

// Options controls the optional parts of the table.
type Options struct {
	DisplayPublicRepositories bool
	DisplayMatrix             bool
	Palette                   Palette
	// Today is the last day drawn in the matrix and counted in the daily average.
	// The zero value counts every day of the window.
	Today    time.Time
	Renderer *lipgloss.Renderer
}

// Table renders the result of a run. The matrix is only drawn for week-aligned windows.
func Table(result *usecase.Result, opts Options) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	merged := table.RowConfig{AutoMerge: true, AutoMergeAlign: text.AlignCenter}

	title := fmt.Sprintf("🔥 GitHub contribution stats for https://github.com/%s since %s 🔥",
		accountLabel(result.Account, opts.DisplayPublicRepositories),
		result.Window.Start.Format(dateLayout),
	)
	tw.AppendRow(table.Row{title, title}, merged)

	if opts.DisplayMatrix && result.Window.Aligned {
		r := opts.Renderer
		if r == nil {
			r = lipgloss.DefaultRenderer()
		}
		matrix := Matrix(result.Days, opts.Today, opts.Palette, r)
		tw.AppendRow(table.Row{matrix, matrix}, merged)
	}

	tw.AppendRow(table.Row{"Total contributions", result.Stats.TotalContributions})
	tw.AppendRow(table.Row{"Longest and latest streak", streakLabel(result.Stats.LongestStreak)})
	tw.AppendRow(table.Row{"Current streak", streakLabel(result.Stats.CurrentStreak)})
	tw.AppendRow(table.Row{"Daily average", fmt.Sprintf("%.2f", dailyAverage(result.Days, opts.Today))})

	return tw.Render()
}

func accountLabel(account *domain.Account, withRepositories bool) string {
	if account == nil {
		return ""
	}
	if withRepositories {
		return fmt.Sprintf("%s (%d public repositories)", account.Login, account.PublicRepositories)
	}
	return account.Login
}

func streakLabel(streak domain.DateRange) string {
	if streak.IsZero() {
		return "0 days"
	}
	return fmt.Sprintf("%d days, from %s to %s", streak.Days(), streak.Start.Format(dateLayout), streak.End.Format(dateLayout))
}

// dailyAverage is the mean count of the days up to today. Future days of the window are left out.
func dailyAverage(days []domain.ContributionDay, today time.Time) float64 {
	if !today.IsZero() {
		cutoff := civilDate(today)
		elapsed := make([]domain.ContributionDay, 0, len(days))
		for _, d := range days {
			if !d.Date.After(cutoff) {
				elapsed = append(elapsed, d)
			}
		}
		days = elapsed
	}
	mean, err := stats.Mean(counts(days))
	if err != nil {
		return 0
	}
	return mean
}
