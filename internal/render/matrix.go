package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

const (
	levels    = 5
	cellGlyph = "■"
	blankCell = " "
	weekDays  = 7
)

// Level maps a day's count to an intensity level in [0, 4] relative to the busiest day.
func Level(count int, busiest float64) int {
	if count <= 0 || busiest <= 0 {
		return 0
	}
	ratio := float64(count) / busiest
	switch {
	case ratio <= 0.25:
		return 1
	case ratio <= 0.5:
		return 2
	case ratio <= 0.75:
		return 3
	default:
		return 4
	}
}

// maxCount returns the highest count in days, or 0 for an empty calendar.
func maxCount(days []domain.ContributionDay) float64 {
	busiest, err := stats.Max(counts(days))
	if err != nil {
		return 0
	}
	return busiest
}

func counts(days []domain.ContributionDay) stats.Float64Data {
	data := make(stats.Float64Data, len(days))
	for i, d := range days {
		data[i] = float64(d.Count)
	}
	return data
}

// Matrix draws the calendar the way GitHub does: one column per week, one row per weekday.
// Days after today are left blank. days must start on a Sunday.
func Matrix(days []domain.ContributionDay, today time.Time, palette Palette, r *lipgloss.Renderer) string {
	busiest := maxCount(days)
	cutoff := civilDate(today)

	styles := make([]lipgloss.Style, levels)
	for i, c := range palette {
		styles[i] = r.NewStyle().Foreground(c)
	}

	cells := make([]string, len(days))
	for i, day := range days {
		if day.Date.After(cutoff) {
			cells[i] = blankCell
			continue
		}
		cells[i] = styles[Level(day.Count, busiest)].Render(cellGlyph)
	}

	var weeks [][]string
	for len(cells) > 0 {
		n := min(weekDays, len(cells))
		weeks = append(weeks, cells[:n])
		cells = cells[n:]
	}

	rows := make([]string, weekDays)
	for wd := range rows {
		row := make([]string, len(weeks))
		for i, week := range weeks {
			if wd < len(week) {
				row[i] = week[wd]
			} else {
				row[i] = blankCell
			}
		}
		rows[wd] = strings.Join(row, " ")
	}
	return strings.Join(rows, "\n")
}

// civilDate keeps the wall-clock date of t at midnight UTC, the form of ContributionDay.Date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
