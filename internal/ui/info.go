package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skim/internal/browser"
)

const infoLabelWidth = 8

// renderInfo renders the info pane for the selected entry.
func (m Model) renderInfo() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	valueWidth := InfoPaneWidth - infoLabelWidth - 2

	var lines []string
	add := func(label, value string) {
		lines = append(lines, bg.Field(label, infoLabelWidth, styles.MutedText, truncate(value, valueWidth), styles.Text))
	}

	if m.infoPos < 0 {
		lines = append(lines, bg.Space()+bg.Render("nothing selected", styles.FaintText))
	} else {
		info := m.info
		add("Title", orUnknown(info.Title, browser.Unknown))
		add("Artist", orUnknown(info.Artist, browser.Unknown))
		add("Album", orUnknown(info.Album, browser.Unknown))
		add("Date", orUnknown(info.Date, browser.Unknown))
		length := browser.Unknown
		if info.Duration > 0 {
			length = browser.TimeString(info.Duration)
		}
		add("Length", length)
		add("Queue", fmt.Sprintf("%d of %d", info.Pos+1, m.session.QueueLen()))
		if info.Cover != "" {
			lines = append(lines, bg.Field("Cover", infoLabelWidth, styles.MutedText, truncateMiddle(info.Cover, valueWidth), styles.FaintText))
		}
	}

	lines = append(lines, "")
	lines = append(lines, bg.Space()+m.renderProgress(styles, bg))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(InfoPaneWidth).
		Height(m.listHeight()).
		MaxHeight(m.listHeight()).
		Render(strings.Join(lines, "\n"))
}

// renderProgress renders the state glyph and the elapsed/total line.
func (m Model) renderProgress(styles Styles, bg BgStyle) string {
	snap := m.session.Snapshot()
	glyph := bg.Render(browser.StateGlyph(snap.State), styles.PlayingText)
	progress := browser.ProgressString(snap.Elapsed, snap.Duration)
	if progress == "" {
		return glyph
	}
	return glyph + bg.Space() + bg.Render(progress, styles.MutedText)
}
