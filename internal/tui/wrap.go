package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// chip is one styled word or label; width is measured before styling.
type chip struct {
	s     string
	width int
}

func newChip(text string, style func(...string) string) chip {
	return chip{s: style(text), width: runewidth.StringWidth(text)}
}

func renderChips(chips []chip) string {
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = c.s
	}
	return strings.Join(parts, chipGap)
}

// wrapChips lays chips out left to right, breaking lines before a chip that would
// overflow width. A chip wider than width gets a line of its own.
func wrapChips(chips []chip, width int) string {
	if width <= 0 {
		return renderChips(chips)
	}
	gap := runewidth.StringWidth(chipGap)
	var out strings.Builder
	line := make([]chip, 0, len(chips))
	lineWidth := 0
	for _, c := range chips {
		next := lineWidth + c.width
		if len(line) > 0 {
			next += gap
		}
		if next > width && len(line) > 0 {
			out.WriteString(renderChips(line))
			out.WriteRune('\n')
			line = line[:0]
			next = c.width
		}
		line = append(line, c)
		lineWidth = next
	}
	out.WriteString(renderChips(line))
	return out.String()
}
