package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skim/internal/browser"
)

// renderHeader renders the logo, the rotating status line and the offline
// marker.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	left := bg.Render("skim", styles.Logo)
	if !m.showInfoPane() {
		// The progress line lives in the info pane when it is visible.
		left += sep + m.renderProgress(styles, bg)
	}

	right := ""
	if m.offline {
		right = bg.Render("OFFLINE", styles.DangerText)
	}

	// Header padding is one cell on each side.
	avail := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(sep) - lipgloss.Width(right)
	if right != "" {
		avail -= lipgloss.Width(sep)
	}

	content := left + sep + m.renderRotator(styles, bg, avail)
	if right != "" {
		gap := m.width - 2 - lipgloss.Width(content) - lipgloss.Width(right)
		content += bg.Spaces(gap) + right
	}

	return styles.Header.Width(m.width).Render(content)
}

// renderRotator renders the rotating status line, truncated to width. The
// status summary phase is drawn muted.
func (m Model) renderRotator(styles Styles, bg BgStyle, width int) string {
	text := truncate(m.session.RotatorText(), width)
	switch m.session.Phase() {
	case browser.PhaseStatus:
		return bg.Render(text, styles.MutedText)
	case browser.PhaseNextUp:
		return bg.Render(text, styles.AccentText)
	default:
		return bg.Render(text, styles.PlayingText)
	}
}

func (m Model) renderRule() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Border)).
		Background(lipgloss.Color(m.theme.Background)).
		Render(strings.Repeat("─", max(m.width, 0)))
}

// renderBody places the list and, when there is room, the info pane side by
// side.
func (m Model) renderBody() string {
	list := m.renderList()
	if !m.showInfoPane() {
		return list
	}
	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Border)).
		Background(lipgloss.Color(m.theme.Background)).
		Render(strings.TrimSuffix(strings.Repeat("│\n", m.listHeight()), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, divider, m.renderInfo())
}

// renderInput renders the search line: the input on the left, then the
// result count, a failed command or the short help on the right.
func (m Model) renderInput() string {
	styles := m.theme.Styles()

	var right string
	switch {
	case m.flash != "":
		right = styles.DangerText.Render(m.flash)
	case m.session.Query() == "" && m.width >= 100:
		right = m.help.ShortHelpView(m.keys.ShortHelp())
	default:
		right = styles.MutedText.Render(resultCount(len(m.session.List()), m.session.QueueLen()))
	}

	input := m.input
	input.PromptStyle = styles.AccentText
	input.TextStyle = styles.Text
	input.PlaceholderStyle = styles.FaintText
	input.Width = max(m.width-lipgloss.Width(right)-4-lipgloss.Width(input.Prompt), 1)
	left := input.View()

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-1, 1)
	return left + strings.Repeat(" ", gap) + right
}

func resultCount(shown, total int) string {
	return fmt.Sprintf("%d/%d", shown, total)
}
