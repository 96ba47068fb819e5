package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return ansi.Cut(text, 0, width-1) + "…"
}

func padToWidth(text string, width int) string {
	gap := width - ansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// clipPlain shortens unstyled single-line text to a display width.
func clipPlain(text string, width int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

func indentBlock(block string, spaces int) string {
	if spaces <= 0 {
		return block
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// overlayLines replaces base lines starting at row with the lines of block.
func overlayLines(base, block string, row int) string {
	if block == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	for i, line := range strings.Split(block, "\n") {
		target := row + i
		if target < 0 {
			continue
		}
		for target >= len(lines) {
			lines = append(lines, "")
		}
		lines[target] = line
	}
	return strings.Join(lines, "\n")
}
