package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/skim/internal/browser"
	"github.com/five82/skim/internal/search"
)

const (
	// listTop is the screen row of the first list entry.
	listTop = 2

	shrug = `¯\_(ツ)_/¯`
)

func (m Model) listHeight() int {
	if h := m.height - chromeHeight; h > 1 {
		return h
	}
	return 1
}

func (m Model) showInfoPane() bool {
	return !m.hideInfo && m.width >= LayoutCompactWidth
}

func (m Model) listWidth() int {
	if m.showInfoPane() {
		// One column for the divider
		return m.width - InfoPaneWidth - 1
	}
	return m.width
}

// rowAt maps a screen cell to a list index.
func (m Model) rowAt(x, y int) (int, bool) {
	if x < 0 || x >= m.listWidth() {
		return 0, false
	}
	row := y - listTop
	if row < 0 || row >= m.listHeight() {
		return 0, false
	}
	idx := m.top + row
	if idx >= len(m.session.List()) {
		return 0, false
	}
	return idx, true
}

// scrollToSelection centers the selected entry in the list.
func (m *Model) scrollToSelection() {
	if m.session == nil {
		return
	}
	m.top = m.session.Selection().Index - m.listHeight()/2
	m.clampTop()
}

func (m *Model) scrollBy(rows int) {
	m.top += rows
	m.clampTop()
}

func (m *Model) clampTop() {
	maxTop := len(m.session.List()) - m.listHeight()
	if m.top > maxTop {
		m.top = maxTop
	}
	if m.top < 0 {
		m.top = 0
	}
}

// renderList renders exactly listHeight rows of listWidth cells.
func (m Model) renderList() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	width := m.listWidth()
	height := m.listHeight()
	list := m.session.List()

	lines := make([]string, 0, height)
	if len(list) == 0 {
		blank := styles.Text.Render(strings.Repeat(" ", width))
		for i := 0; i < height; i++ {
			if i == height/2 {
				lines = append(lines, styles.MutedText.Render(lipgloss.PlaceHorizontal(width, lipgloss.Center, shrug)))
				continue
			}
			lines = append(lines, blank)
		}
		return strings.Join(lines, "\n")
	}

	for row := 0; row < height; row++ {
		idx := m.top + row
		if idx >= len(list) {
			lines = append(lines, styles.Text.Render(strings.Repeat(" ", width)))
			continue
		}
		lines = append(lines, m.renderRow(styles, list[idx], idx, width))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one result. The selected row uses a distinct style when
// it is also the current song.
func (m Model) renderRow(styles Styles, r search.Result, idx, width int) string {
	current := r.Pos == m.session.Current()
	selected := idx == m.session.Selection().Index

	marker := "  "
	if current {
		marker = browser.StateGlyph(m.session.Snapshot().State) + " "
	}
	title := orUnknown(r.Title, browser.Unknown)

	// Show which field matched when it was not the title.
	tag := ""
	if m.session.Query() != "" && r.Field != search.FieldTitle && r.Field != search.FieldNone {
		tag = r.Field.String()
	}

	body := marker + title
	if tag != "" {
		avail := width - runewidth.StringWidth(tag) - 2
		body = fit(body, avail) + " " + tag + " "
	} else {
		body = fit(body, width)
	}

	switch {
	case selected && current:
		return styles.SelectedCurrent.Render(body)
	case selected:
		return styles.Selected.Render(body)
	case current:
		return styles.PlayingText.Render(body)
	case tag != "":
		// Dim non-title matches
		return styles.MutedText.Render(body)
	default:
		return styles.Text.Render(body)
	}
}
