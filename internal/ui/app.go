package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skim/internal/browser"
	"github.com/five82/skim/internal/logtail"
	"github.com/five82/skim/internal/metadata"
	"github.com/five82/skim/internal/prefs"
	"github.com/five82/skim/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *browser.Session
	Store     *state.Store
	Resolver  *metadata.Resolver
	PollTick  time.Duration
	ThemeName string
	HideInfo  bool
	PrefsPath string
	LogPath   string
}

// clickState remembers the last left click for double-click detection.
type clickState struct {
	row int
	at  time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	session   *browser.Session
	store     *state.Store
	resolver  *metadata.Resolver
	prefsPath string
	logPath   string
	pollTick  time.Duration
	now       func() time.Time

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool

	// Search input, always focused
	input textinput.Model

	// List state
	top       int // first visible list index
	lastClick clickState

	// Info pane
	info     metadata.Info
	infoPos  int
	hideInfo bool

	// Offline marker from the background refresher
	offline bool

	// Footer message for failed commands
	flash   string
	flashAt time.Time

	showHelp bool
	recent   []logtail.Entry // log messages shown in the help overlay
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultPollTick
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "search title, album or artist"
	input.Focus()

	m := Model{
		ctx:       ctx,
		session:   opts.Session,
		store:     opts.Store,
		resolver:  opts.Resolver,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		pollTick:  pollTick,
		now:       time.Now,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		infoPos:   -1,
		hideInfo:  opts.HideInfo,
	}
	m.refreshInfo()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(m.pollTick),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.scrollToSelection()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleTick polls playback, adopts a refreshed queue and keeps the view in
// step with the selection.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}

	if m.session != nil {
		ctx, cancel := context.WithTimeout(m.ctx, StatusTimeout)
		m.session.Tick(ctx, now)
		cancel()
		m.adoptQueue()
		if m.session.ConsumeScroll() {
			m.scrollToSelection()
		}
		m.refreshInfo()
	}

	if m.flash != "" && now.Sub(m.flashAt) > flashDuration {
		m.flash = ""
	}

	return m, tickCmd(m.pollTick)
}

// adoptQueue hands the background refresher's queue to the session when its
// version moved on.
func (m *Model) adoptQueue() {
	if m.store == nil {
		return
	}
	version, ok := m.store.Version()
	if !ok {
		return
	}
	m.offline = m.store.Offline()
	if version == m.session.QueueVersion() {
		return
	}
	snap := m.store.Snapshot()
	if m.session.AdoptQueue(snap.Queue, snap.Version) {
		// Positions may now name different songs.
		m.infoPos = -1
	}
}

// refreshInfo re-resolves the info pane when the selected position changed.
func (m *Model) refreshInfo() {
	if m.session == nil {
		return
	}
	entry, ok := m.session.Selected()
	if !ok {
		m.info = metadata.Info{}
		m.infoPos = -1
		return
	}
	if entry.Pos == m.infoPos {
		return
	}
	m.info = m.resolver.Resolve(entry)
	m.infoPos = entry.Pos
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderRule())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderRule())
	b.WriteString("\n")
	b.WriteString(m.renderInput())

	return b.String()
}

// showFlash puts a short-lived message in the footer and logs it.
func (m *Model) showFlash(msg string) {
	log.Print(msg)
	m.flash = msg
	m.flashAt = m.now()
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
