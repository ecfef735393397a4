package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar draws percent as a filled bar of width cells with a tick at the
// target position.
func ProgressBar(percent float64, target, width int, fill, track, tick lipgloss.Style) string {
	if width < 4 {
		width = 4
	}
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	mark := target * width / 100
	if mark >= width {
		mark = width - 1
	}

	var sb strings.Builder
	for i := range width {
		switch {
		case i == mark && target > 0:
			sb.WriteString(tick.Render("│"))
		case i < filled:
			sb.WriteString(fill.Render("█"))
		default:
			sb.WriteString(track.Render("░"))
		}
	}
	return sb.String()
}
