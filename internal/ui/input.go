package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skim/internal/browser"
	"github.com/five82/skim/internal/logtail"
	"github.com/five82/skim/internal/prefs"
)

// handleKey processes keyboard input. Anything that is not a command goes to
// the search input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.loadRecent()
		return m, nil

	case key.Matches(msg, m.keys.Activate):
		return m.play(m.session.Activate)

	case key.Matches(msg, m.keys.SeekBack):
		m.seek(-SeekStep)
		return m, nil

	case key.Matches(msg, m.keys.SeekForward):
		m.seek(SeekStep)
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.input.SetValue("")
		m.afterSelection()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.session.Cycle(true)
		m.afterSelection()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.session.Cycle(false)
		m.afterSelection()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.session.Move(-1)
		m.afterSelection()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.session.Move(1)
		m.afterSelection()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.session.Scroll()
		m.scrollBy(-m.listHeight())
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.session.Scroll()
		m.scrollBy(m.listHeight())
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleInfo):
		m.hideInfo = !m.hideInfo
		m.savePrefs()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.session.Query() {
		m.session.SetQuery(value)
		m.top = 0
		m.afterSelection()
	}
	return m, cmd
}

// handleMouse maps clicks and wheel movement onto the list.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.session.Scroll()
		m.scrollBy(-WheelStep)

	case tea.MouseButtonWheelDown:
		m.session.Scroll()
		m.scrollBy(WheelStep)

	case tea.MouseButtonLeft:
		idx, ok := m.rowAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		now := m.now()
		if m.lastClick.row == idx && !m.lastClick.at.IsZero() && now.Sub(m.lastClick.at) <= DoubleClickWindow {
			m.lastClick = clickState{}
			return m.play(func(ctx context.Context) error {
				return m.session.ActivateAt(ctx, idx)
			})
		}
		m.lastClick = clickState{row: idx, at: now}
		m.session.Click(idx)
		m.refreshInfo()
	}

	return m, nil
}

// play runs an activation and quits once the daemon accepted the jump.
func (m Model) play(activate func(context.Context) error) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(m.ctx, commandTimeout)
	defer cancel()

	if err := activate(ctx); err != nil {
		if errors.Is(err, browser.ErrNothingSelected) {
			m.flash = "nothing to play"
			m.flashAt = m.now()
			return m, nil
		}
		m.showFlash(fmt.Sprintf("play failed: %v", err))
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) seek(delta time.Duration) {
	ctx, cancel := context.WithTimeout(m.ctx, commandTimeout)
	defer cancel()

	err := m.session.Seek(ctx, delta)
	switch {
	case err == nil:
	case errors.Is(err, browser.ErrStopped):
		m.flash = "nothing is playing"
		m.flashAt = m.now()
	default:
		m.showFlash(err.Error())
	}
}

// afterSelection applies a pending scroll request and refreshes the info pane.
func (m *Model) afterSelection() {
	if m.session.ConsumeScroll() {
		m.scrollToSelection()
	}
	m.refreshInfo()
}

// loadRecent reads the last few log messages for the help overlay.
func (m *Model) loadRecent() {
	m.recent = nil
	if m.logPath == "" {
		return
	}
	entries, err := logtail.Recent(m.logPath, logtail.Prefix, recentMessages)
	if err != nil {
		return
	}
	m.recent = entries
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HideInfo: m.hideInfo}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}
