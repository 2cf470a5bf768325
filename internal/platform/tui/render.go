package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Murat2283plus/maliao/internal/core"
)

// halfBlock draws two matrix pixels in one terminal cell: the foreground is
// the upper pixel and the background the lower one.
const halfBlock = "▀"

// cell is the color pair of one terminal cell.
type cell struct {
	top, bottom core.RGB
}

// RenderFrame converts a matrix frame to a styled string, two pixel rows per
// terminal line. Adjacent cells with the same colors share one style run to
// minimize ANSI escape sequences.
func RenderFrame(f *core.Frame, r *lipgloss.Renderer) string {
	if f == nil {
		return ""
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var sb strings.Builder
	sb.Grow(f.Width() * (f.Height() + 1) / 2 * 24)

	for y := 0; y < f.Height(); y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < f.Width() {
			start := cellAt(f, x, y)
			n := 0
			for x < f.Width() && cellAt(f, x, y) == start {
				n++
				x++
			}
			style := r.NewStyle().
				Foreground(lipgloss.Color(start.top.Hex())).
				Background(lipgloss.Color(start.bottom.Hex()))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

// cellAt returns the pixel pair for column x starting at row y. The row
// below the last one of an odd-height frame is black.
func cellAt(f *core.Frame, x, y int) cell {
	c := cell{top: f.At(x, y)}
	if y+1 < f.Height() {
		c.bottom = f.At(x, y+1)
	}
	return c
}
