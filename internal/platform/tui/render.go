package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
// A nil renderer uses the default one; SSH sessions pass their own so the
// color profile matches the remote terminal.
func RenderScreen(s *core.Screen, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[color.RGBA]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.Get(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				g := s.Get(x, y)
				if g.Color != start {
					break
				}
				run.WriteRune(g.Rune)
				x++
			}

			style, ok := styles[start]
			if !ok {
				style = r.NewStyle().Background(lipgloss.Color(core.Hex(start)))
				styles[start] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
