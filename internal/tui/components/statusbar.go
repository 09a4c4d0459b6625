package components

import (
	"strings"

	"github.com/fundex/despesas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// info (file, row count, data age) on the right.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := " " + hints
	right := ""
	if info != "" {
		right = info + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Drop the info side before squeezing the hints.
		right = ""
		padding = max(width-lipgloss.Width(left), 0)
	}

	return style.Render(Truncate(left+strings.Repeat(" ", padding)+right, max(width, 0)))
}
