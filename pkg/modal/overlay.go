package modal

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay composites a rendered dialog box centered over background. The
// background is stripped of styling and dimmed so the dialog reads as the
// only active surface. Position matches the hit regions Render registers.
func Overlay(background, box string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	boxLines := strings.Split(box, "\n")
	boxW := maxLineWidth(boxLines)
	x0, y0 := center(width, boxW), center(height, len(boxLines))

	out := make([]string, height)
	for y := range height {
		bg := ""
		if y < len(bgLines) {
			bg = ansi.Strip(bgLines[y])
		}
		if pad := width - ansi.StringWidth(bg); pad > 0 {
			bg += strings.Repeat(" ", pad)
		}
		bg = ansi.Truncate(bg, width, "")

		i := y - y0
		if i < 0 || i >= len(boxLines) {
			out[y] = dimLine(bg)
			continue
		}
		line := boxLines[i]
		if w := ansi.StringWidth(line); w < boxW {
			line += strings.Repeat(" ", boxW-w)
		}
		left := ansi.Truncate(bg, x0, "")
		right := ansi.TruncateLeft(bg, x0+boxW, "")
		out[y] = dimLine(left) + line + dimLine(right)
	}
	return strings.Join(out, "\n")
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

func dimLine(s string) string {
	if s == "" {
		return ""
	}
	return Dimmed.Render(s)
}
