package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skim/internal/browser"
	"github.com/five82/skim/internal/metadata"
	"github.com/five82/skim/internal/mpd"
	"github.com/five82/skim/internal/prefs"
	"github.com/five82/skim/internal/state"
)

type fakeSource struct {
	snap    mpd.Snapshot
	jumpErr error
	jumps   []int
	seeks   []time.Duration
}

func (f *fakeSource) FetchStatus(context.Context) (mpd.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeSource) FetchQueue(context.Context) ([]mpd.QueueEntry, error) {
	return nil, errors.New("not used")
}

func (f *fakeSource) Seek(_ context.Context, position time.Duration) error {
	f.seeks = append(f.seeks, position)
	return nil
}

func (f *fakeSource) JumpTo(_ context.Context, pos int) error {
	if f.jumpErr != nil {
		return f.jumpErr
	}
	f.jumps = append(f.jumps, pos)
	return nil
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testQueue(titles ...string) []mpd.QueueEntry {
	entries := make([]mpd.QueueEntry, len(titles))
	for i, title := range titles {
		entries[i] = mpd.QueueEntry{Pos: i, Title: title, File: "music/" + title + ".flac"}
	}
	return entries
}

func testSnapshot(song, next int) mpd.Snapshot {
	return mpd.Snapshot{
		State:        mpd.StatePlay,
		Song:         song,
		NextSong:     next,
		Elapsed:      10 * time.Second,
		Duration:     3 * time.Minute,
		Volume:       80,
		QueueVersion: 1,
		QueueLength:  5,
	}
}

type harness struct {
	src       *fakeSource
	store     *state.Store
	prefsPath string
	clock     time.Time
}

func newHarness(t *testing.T) (*harness, Model) {
	t.Helper()
	h := &harness{
		src:       &fakeSource{snap: testSnapshot(2, 3)},
		store:     &state.Store{},
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		clock:     t0,
	}
	queue := testQueue("Alpha", "Bravo", "Charlie", "Delta", "Echo")
	h.store.Update(&h.src.snap, queue, nil)
	session := browser.NewSession(h.src, queue, h.src.snap, browser.Options{}, t0)

	m := New(Options{
		Session:   session,
		Store:     h.store,
		Resolver:  metadata.NewResolver(""),
		PrefsPath: h.prefsPath,
	})
	m.now = func() time.Time { return h.clock }
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	return h, m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func click(row int) tea.MouseMsg {
	return tea.MouseMsg{X: 1, Y: listTop + row, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func TestEnterPlaysSelectionAndQuits(t *testing.T) {
	h, m := newHarness(t)

	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Fatal("enter did not quit after a successful jump")
	}
	if len(h.src.jumps) != 1 || h.src.jumps[0] != 2 {
		t.Fatalf("jumps = %v, want [2]", h.src.jumps)
	}
}

func TestEnterFailureKeepsRunning(t *testing.T) {
	h, m := newHarness(t)
	h.src.jumpErr = errors.New("connection reset")

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatal("enter quit although the jump failed")
	}
	if !strings.Contains(m.flash, "connection reset") {
		t.Fatalf("flash = %q, want the jump error", m.flash)
	}
}

func TestEscQuits(t *testing.T) {
	_, m := newHarness(t)
	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !isQuit(cmd) {
		t.Fatal("esc did not quit")
	}
}

func TestTypingSearches(t *testing.T) {
	_, m := newHarness(t)

	m = typeText(t, m, "ech")
	if got := m.session.Query(); got != "ech" {
		t.Fatalf("Query() = %q, want %q", got, "ech")
	}
	list := m.session.List()
	if len(list) != 1 || list[0].Title != "Echo" {
		t.Fatalf("List() = %+v, want only Echo", list)
	}
	sel := m.session.Selection()
	if sel.Pos != 4 || !sel.Interacted {
		t.Fatalf("Selection() = %+v, want pos 4 interacted", sel)
	}
	if m.info.Title != "Echo" {
		t.Fatalf("info.Title = %q, want Echo", m.info.Title)
	}
}

func TestResetClearsInput(t *testing.T) {
	_, m := newHarness(t)

	m = typeText(t, m, "alp")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})

	if m.input.Value() != "" || m.session.Query() != "" {
		t.Fatalf("input = %q, query = %q; want both empty", m.input.Value(), m.session.Query())
	}
	sel := m.session.Selection()
	if sel.Pos != 2 || sel.Interacted {
		t.Fatalf("Selection() = %+v, want pos 2 following playback", sel)
	}
}

func TestTabCycles(t *testing.T) {
	_, m := newHarness(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if sel := m.session.Selection(); sel.Pos != 3 || !sel.Interacted {
		t.Fatalf("after tab Selection() = %+v, want pos 3 interacted", sel)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if sel := m.session.Selection(); sel.Pos != 1 {
		t.Fatalf("after shift+tab Selection().Pos = %d, want 1", sel.Pos)
	}
}

func TestSeekKeys(t *testing.T) {
	h, m := newHarness(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	_ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})

	want := []time.Duration{15 * time.Second, 5 * time.Second}
	if len(h.src.seeks) != 2 || h.src.seeks[0] != want[0] || h.src.seeks[1] != want[1] {
		t.Fatalf("seeks = %v, want %v", h.src.seeks, want)
	}
}

func TestClickSelectsAndDoubleClickPlays(t *testing.T) {
	h, m := newHarness(t)

	m, cmd := updateCmd(t, m, click(1))
	if isQuit(cmd) {
		t.Fatal("single click quit")
	}
	if sel := m.session.Selection(); sel.Pos != 1 || !sel.Interacted {
		t.Fatalf("Selection() = %+v, want pos 1 interacted", sel)
	}

	h.clock = h.clock.Add(150 * time.Millisecond)
	_, cmd = updateCmd(t, m, click(1))
	if !isQuit(cmd) {
		t.Fatal("double click did not quit")
	}
	if len(h.src.jumps) != 1 || h.src.jumps[0] != 1 {
		t.Fatalf("jumps = %v, want [1]", h.src.jumps)
	}
}

func TestSlowClicksDoNotPlay(t *testing.T) {
	h, m := newHarness(t)

	m = update(t, m, click(1))
	h.clock = h.clock.Add(DoubleClickWindow + time.Millisecond)
	m = update(t, m, click(1))
	h.clock = h.clock.Add(100 * time.Millisecond)
	_, cmd := updateCmd(t, m, click(0))

	if isQuit(cmd) || len(h.src.jumps) != 0 {
		t.Fatalf("jumps = %v, want none", h.src.jumps)
	}
}

func TestClickOutsideListIgnored(t *testing.T) {
	_, m := newHarness(t)

	m = update(t, m, tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = update(t, m, click(9)) // past the last entry
	if m.session.Selection().Interacted {
		t.Fatal("click outside the list marked the session interacted")
	}
}

func TestWheelDetachesFromPlayback(t *testing.T) {
	_, m := newHarness(t)

	m = update(t, m, tea.MouseMsg{X: 1, Y: 4, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if !m.session.Selection().Interacted {
		t.Fatal("wheel did not mark the session interacted")
	}
}

func TestTickFollowsPlayback(t *testing.T) {
	h, m := newHarness(t)
	h.src.snap = testSnapshot(3, 4)

	m, cmd := updateCmd(t, m, tickMsg(t0.Add(time.Second)))
	if cmd == nil {
		t.Fatal("tick did not schedule the next tick")
	}
	if got := m.session.Current(); got != 3 {
		t.Fatalf("Current() = %d, want 3", got)
	}
	if sel := m.session.Selection(); sel.Pos != 3 {
		t.Fatalf("Selection().Pos = %d, want 3", sel.Pos)
	}
	if m.info.Title != "Delta" {
		t.Fatalf("info.Title = %q, want Delta", m.info.Title)
	}
}

func TestTickAdoptsRefreshedQueue(t *testing.T) {
	h, m := newHarness(t)

	status := testSnapshot(2, 3)
	status.QueueVersion = 2
	h.store.Update(&status, testQueue("Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"), nil)

	m = update(t, m, tickMsg(t0.Add(time.Second)))
	if got := m.session.QueueVersion(); got != 2 {
		t.Fatalf("QueueVersion() = %d, want 2", got)
	}
	if got := m.session.QueueLen(); got != 6 {
		t.Fatalf("QueueLen() = %d, want 6", got)
	}
}

func TestTickQuitsWhenContextDone(t *testing.T) {
	_, m := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.ctx = ctx

	_, cmd := updateCmd(t, m, tickMsg(t0))
	if !isQuit(cmd) {
		t.Fatal("tick did not quit after cancellation")
	}
}

func TestCycleThemePersists(t *testing.T) {
	h, m := newHarness(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q, want Nightfox", m.theme.Name)
	}
	p, err := prefs.Load(h.prefsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Theme != "Nightfox" {
		t.Fatalf("saved theme = %q, want Nightfox", p.Theme)
	}
}

func TestHelpOverlay(t *testing.T) {
	_, m := newHarness(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not rendered")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.showHelp {
		t.Fatal("help still shown after a key press")
	}
	if m.session.Query() != "" {
		t.Fatalf("closing help typed into the query: %q", m.session.Query())
	}
}

func TestViewRendersListAndInfo(t *testing.T) {
	_, m := newHarness(t)

	view := m.View()
	for _, want := range []string{"skim", "Alpha", "Echo", "Charlie", "[ 0:10 - 3:00 ]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q", want)
		}
	}
}

func TestViewShowsShrugForNoResults(t *testing.T) {
	_, m := newHarness(t)

	m = typeText(t, m, "zzzz")
	if len(m.session.List()) != 0 {
		t.Fatalf("List() = %+v, want empty", m.session.List())
	}
	if !strings.Contains(m.View(), shrug) {
		t.Fatal("View() missing the empty-list marker")
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestHelpShowsRecentLogMessages(t *testing.T) {
	_, m := newHarness(t)
	m.logPath = filepath.Join(t.TempDir(), "skim.log")
	line := "skim 2024/05/01 12:00:00 play failed: connection reset\n"
	if err := os.WriteFile(m.logPath, []byte(line), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if len(m.recent) != 1 || m.recent[0].Message != "play failed: connection reset" {
		t.Fatalf("recent = %+v, want the logged failure", m.recent)
	}
	if !strings.Contains(m.View(), "Recent messages") {
		t.Fatal("help overlay missing recent messages")
	}
}
