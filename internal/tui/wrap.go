package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps text at the given width, preserving existing newlines.
// Uses runewidth so emoji and CJK characters count by display width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(wrapParagraph(paragraph, width))
	}
	return result.String()
}

// wrapParagraph wraps a single paragraph (no newlines) at the given width,
// breaking between words where possible.
func wrapParagraph(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}

	var result strings.Builder
	lineWidth := 0
	for i, word := range strings.Split(text, " ") {
		ww := runewidth.StringWidth(word)
		switch {
		case i == 0:
		case lineWidth+1+ww > width:
			result.WriteString("\n")
			lineWidth = 0
		default:
			result.WriteString(" ")
			lineWidth++
		}
		// Words longer than a line are hard-broken.
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			result.WriteString(head)
			result.WriteString("\n")
			word = strings.TrimPrefix(word, head)
			ww = runewidth.StringWidth(word)
			lineWidth = 0
		}
		result.WriteString(word)
		lineWidth += ww
	}
	return result.String()
}
