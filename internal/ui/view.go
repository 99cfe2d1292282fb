package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	maxCardWidth = 80
	minBodyWidth = 20
)

// renderMain assembles header, controls, body and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	controls := m.renderControls()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(controls)
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	body := lipgloss.Place(
		m.width,
		bodyHeight,
		lipgloss.Center,
		lipgloss.Center,
		m.renderBody(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, controls, body, footer)
}

// renderHeader shows the app name, API host, loading indicator and theme.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("jester", styles.Logo)}
	if m.apiLabel != "" {
		parts = append(parts, bg.Render(truncate(m.apiLabel, 40), styles.MutedText))
	}
	if m.snapshot.Loading {
		parts = append(parts, bg.Render("fetching", styles.WarningText))
	}
	if m.snapshot.HasCategory {
		parts = append(parts, bg.Render("#"+m.snapshot.Category, styles.AccentText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderControls draws the search input and the category selector.
func (m Model) renderControls() string {
	styles := m.theme.Styles()
	width := max(m.width-2, minBodyWidth)

	label := styles.Label
	if m.focus == focusSearch {
		label = label.Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)
	}
	searchLine := label.Render("Search") + m.search.View()

	catLabel := styles.Label
	if m.focus == focusCategories {
		catLabel = catLabel.Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)
	}
	chips := m.categoryChips(styles)
	labelWidth := lipgloss.Width(catLabel.Render(""))
	lines := flowLines(chips, width-labelWidth, " ")
	indent := strings.Repeat(" ", labelWidth)
	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(catLabel.Render("Category"))
		} else {
			b.WriteString("\n")
			b.WriteString(indent)
		}
		b.WriteString(line)
	}

	return lipgloss.NewStyle().Padding(1, 1, 0, 1).Render(searchLine + "\n" + b.String())
}

// categoryChips renders the default option followed by every category.
func (m Model) categoryChips(styles Styles) []string {
	options := make([]string, 0, len(m.snapshot.Categories)+1)
	options = append(options, defaultCategoryLabel)
	options = append(options, m.snapshot.Categories...)

	chips := make([]string, 0, len(options))
	for i, opt := range options {
		style := styles.Chip
		switch {
		case m.focus == focusCategories && i == m.categoryCursor:
			style = styles.Selected
		case i > 0 && m.snapshot.HasCategory && opt == m.snapshot.Category:
			style = styles.Badge
		}
		chips = append(chips, style.Render(opt))
	}
	return chips
}

// renderBody renders exactly one of: the loading indicator, the error, the
// joke card, or the empty-state hint.
func (m Model) renderBody() string {
	styles := m.theme.Styles()
	width := min(max(m.width-4, minBodyWidth), maxCardWidth)

	switch {
	case m.snapshot.Loading:
		return m.spinner.View() + " " + styles.MutedText.Render("Loading...")

	case m.snapshot.Err != "":
		return styles.DangerText.Render(m.snapshot.Err)

	case m.snapshot.HasJoke:
		inner := width - 4
		card := m.cards.render(m.snapshot.Joke, m.markdownStyle, inner)
		return m.theme.Card(width).Render(card)

	default:
		return styles.FaintText.Render("Press r for a random joke, / to search")
	}
}

// renderFooter shows the notice, if any, and the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.SuccessText))
	}
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.AccentText)+bg.Render(" "+h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}
