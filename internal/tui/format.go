package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// placeholder is shown for values not fetched yet.
const placeholder = "..."

// formatPrice formats a price with two decimals.
func formatPrice(p float32) string {
	return fmt.Sprintf("%.2f", p)
}

// formatOptional formats an optional price, or the placeholder when absent.
func formatOptional(p *float32) string {
	if p == nil {
		return placeholder
	}
	return formatPrice(*p)
}

// formatCount formats a share count with comma separators.
func formatCount(n uint32) string {
	return humanize.Comma(int64(n))
}

// formatChange formats a move as "+0.25 (+0.06%)".
func formatChange(points, pct float32) string {
	return fmt.Sprintf("%+.2f (%+.2f%%)", points, pct)
}

// formatPercent formats a move as "+0.06%".
func formatPercent(pct float32) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

// padOrTrunc fits s to exactly width display cells.
func padOrTrunc(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

// clip fits a block of text into width x height cells, truncating long lines
// and padding or dropping rows.
func clip(s string, width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = padOrTrunc(l, width)
	}
	return strings.Join(lines, "\n")
}
