package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// flowLines lays rendered chips out left to right, starting a new line
// whenever the next chip would overflow width.
func flowLines(chips []string, width int, gap string) []string {
	if len(chips) == 0 {
		return nil
	}
	gapWidth := lipgloss.Width(gap)
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, chip := range chips {
		w := lipgloss.Width(chip)
		if lineWidth > 0 && width > 0 && lineWidth+gapWidth+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(gap)
			lineWidth += gapWidth
		}
		line.WriteString(chip)
		lineWidth += w
	}
	lines = append(lines, line.String())
	return lines
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

// escapeMarkdown keeps joke text literal when it is rendered as markdown.
func escapeMarkdown(value string) string {
	return markdownEscaper.Replace(value)
}
