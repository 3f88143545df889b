// Package render draws the stats of a run as a terminal table.
package render

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/naka-gawa/github-streak-stats/internal/config"
)

// Palette holds one color per intensity level, from no contributions to the busiest days.
type Palette [levels]lipgloss.Color

// GitHub's own calendar colors.
var (
	DarkPalette  = Palette{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"}
	LightPalette = Palette{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}
)

// PaletteFor returns the palette of theme. ThemeAuto asks the terminal behind out for its
// background color and falls back to dark when out is not a terminal.
func PaletteFor(theme config.Theme, out *os.File) Palette {
	switch theme {
	case config.ThemeLight:
		return LightPalette
	case config.ThemeAuto:
		if isTerminal(out) && !termenv.NewOutput(out).HasDarkBackground() {
			return LightPalette
		}
	}
	return DarkPalette
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
