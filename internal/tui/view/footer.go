package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// FooterLine renders content on a single line of exactly width cells.
func FooterLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth).MaxHeight(1)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "…")
	}
	return style.Render(content)
}

// Summary joins a head line with as much of body as fits on the same line.
// body is word wrapped to the remaining width and only its first line is
// kept, ending with an ellipsis when text was dropped.
func Summary(head, body string, width int) string {
	body = strings.Join(strings.Fields(body), " ")
	if body == "" {
		return head
	}
	rest := width - ansi.StringWidth(head) - 3
	if rest < 8 {
		return head
	}

	lines := strings.Split(wordwrap.String(body, rest-1), "\n")
	first := lines[0]
	if len(lines) > 1 {
		first += "…"
	}
	return head + " · " + ansi.Truncate(first, rest, "…")
}

// HelpText joins key hints.
func HelpText(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+" "+pairs[i+1])
	}
	return strings.Join(parts, "  ")
}
