package analytics

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/anserk/bookmind/internal/model"
)

const (
	minBarWidth         = 10
	maxBarWidth         = 40
	terminalWidthBackup = 80
	colorReset          = "\x1b[0m"
)

// ansiPalette cycles per row, mirroring the hex chart palette order.
var ansiPalette = []string{
	"\x1b[33m", // yellow
	"\x1b[32m", // green
	"\x1b[35m", // magenta
	"\x1b[36m", // cyan
	"\x1b[31m", // red
	"\x1b[34m", // blue
}

// RenderGenreBars prints a horizontal bar chart of genre shares sized to
// the available width.
func RenderGenreBars(w io.Writer, stats []model.GenreStat, totalWidth int) error {
	return renderGenreBars(w, stats, totalWidth, false)
}

// RenderGenreBarsWithColor is RenderGenreBars with optional forced color,
// for callers that render into buffers the terminal will show.
func RenderGenreBarsWithColor(w io.Writer, stats []model.GenreStat, totalWidth int, forceColor bool) error {
	return renderGenreBars(w, stats, totalWidth, forceColor)
}

func renderGenreBars(w io.Writer, stats []model.GenreStat, totalWidth int, forceColor bool) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No genres yet.")
		return err
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}

	labelWidth := 0
	for _, row := range stats {
		if n := displayWidth(row.Label); n > labelWidth {
			labelWidth = n
		}
	}
	// label + count + pct columns, separators between.
	barWidth := totalWidth - labelWidth - len(" 999 100.0% ")
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}

	useColor := shouldUseColor(w, forceColor)
	maxPct := stats[0].Pct
	for _, row := range stats {
		if row.Pct > maxPct {
			maxPct = row.Pct
		}
	}
	for i, row := range stats {
		fill := 0
		if maxPct > 0 {
			fill = int(math.Round(row.Pct / maxPct * float64(barWidth)))
		}
		if fill < 1 && row.Count > 0 {
			fill = 1
		}
		bar := strings.Repeat("█", fill) + strings.Repeat("░", barWidth-fill)
		if useColor {
			bar = ansiPalette[i%len(ansiPalette)] + bar + colorReset
		}
		line := fmt.Sprintf("%s %3d %5.1f%% %s",
			padCell(row.Label, labelWidth, false), row.Count, row.Pct, bar)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
