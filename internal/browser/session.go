package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/five82/skim/internal/mpd"
	"github.com/five82/skim/internal/search"
)

const defaultPollInterval = 33 * time.Millisecond

var (
	// ErrNothingSelected is returned when activating an empty list.
	ErrNothingSelected = errors.New("nothing selected")
	// ErrStopped is returned when seeking while playback is stopped.
	ErrStopped = errors.New("playback is stopped")
)

// Options configure a Session.
type Options struct {
	// PollInterval is the minimum time between status polls.
	PollInterval time.Duration
	// RotateAfter is how long the status line stays on one phase.
	RotateAfter time.Duration
	// Ambiguity is passed to the search ranker.
	Ambiguity int
}

func (o Options) normalize() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.RotateAfter <= 0 {
		o.RotateAfter = defaultRotateAfter
	}
	return o
}

// Selection is the user's place in the visible list.
type Selection struct {
	// Index into the visible list.
	Index int
	// Pos is the queue position of the selected entry.
	Pos int
	// Interacted is set once the user has diverged from playback.
	Interacted bool
	// NeedScroll asks the renderer to bring the selection into view.
	NeedScroll bool
}

// Session owns the browser state: the queue, the visible list, the latest
// playback snapshot, the selection and the rotator. It is not safe for
// concurrent use; the UI loop is its only caller.
type Session struct {
	source mpd.Source
	opts   Options

	queue        []mpd.QueueEntry
	queueVersion int
	query        string
	list         []search.Result

	snapshot  mpd.Snapshot
	current   int
	selection Selection
	rotator   Rotator
	lastPoll  time.Time
}

// NewSession builds a session around an initial queue and status. The
// selection starts on the current song and the rotator on its "more" phase.
func NewSession(source mpd.Source, queue []mpd.QueueEntry, snap mpd.Snapshot, opts Options, now time.Time) *Session {
	opts = opts.normalize()
	s := &Session{
		source:       source,
		opts:         opts,
		queue:        queue,
		queueVersion: snap.QueueVersion,
		snapshot:     snap,
		current:      snap.Song,
		rotator:      newRotator(morePhase(snap), now, opts.RotateAfter),
	}
	if s.current < 0 {
		s.current = 0
	}
	s.rebuild()
	s.follow()
	return s
}

// Tick performs at most one status poll. Polls closer together than the
// poll interval are skipped. A failed poll leaves every piece of state as it
// was. Tick reports whether a poll succeeded.
func (s *Session) Tick(ctx context.Context, now time.Time) bool {
	if !s.lastPoll.IsZero() && now.Sub(s.lastPoll) <= s.opts.PollInterval {
		return false
	}
	s.lastPoll = now

	snap, err := s.source.FetchStatus(ctx)
	if err != nil {
		return false
	}

	if snap.HasSong() && snap.Song != s.current {
		s.current = snap.Song
		if _, ok := s.Entry(snap.Song); !ok {
			s.pullQueue(ctx, snap.QueueVersion)
		}
		followed := !s.selection.Interacted
		if followed {
			s.follow()
		}
		s.rotator.transition(snap, followed, s.selectionIsCurrent(), now)
	}
	s.snapshot = snap
	s.rotator.settle(snap, now)
	s.rotator.advance(snap, s.selectionIsCurrent(), now)
	return true
}

// SetQuery replaces the search query and rebuilds the visible list. A
// non-empty query selects the best result and marks the session interacted;
// clearing the query returns the selection to the current song.
func (s *Session) SetQuery(query string) {
	if query == s.query {
		return
	}
	s.query = query
	s.rebuild()
	if query != "" {
		s.selection.Index = 0
		s.selection.Interacted = true
		s.syncPos()
		return
	}
	s.selection.Interacted = false
	s.follow()
}

// AdoptQueue replaces the queue when version differs from the one held. The
// visible list is rebuilt for the current query. It reports whether the queue
// was replaced.
func (s *Session) AdoptQueue(queue []mpd.QueueEntry, version int) bool {
	if version == s.queueVersion {
		return false
	}
	s.queue = queue
	s.queueVersion = version
	s.rebuild()
	if s.selection.Interacted {
		s.syncPos()
	} else {
		s.follow()
	}
	return true
}

// Click selects list index i.
func (s *Session) Click(i int) {
	if i < 0 || i >= len(s.list) {
		return
	}
	s.selection.Index = i
	s.selection.Interacted = true
	s.syncPos()
}

// Scroll records scroll movement. The first scroll after a reset detaches
// the selection from playback and cancels any pending re-scroll.
func (s *Session) Scroll() {
	if s.selection.Interacted {
		return
	}
	s.selection.Interacted = true
	s.selection.NeedScroll = false
}

// Cycle moves the selection one entry forward or back, wrapping at the ends.
func (s *Session) Cycle(forward bool) {
	n := len(s.list)
	if n == 0 {
		return
	}
	if forward {
		s.selection.Index = (s.selection.Index + 1) % n
	} else {
		s.selection.Index = (s.selection.Index - 1 + n) % n
	}
	s.selection.Interacted = true
	s.selection.NeedScroll = true
	s.syncPos()
}

// Move shifts the selection by delta entries without wrapping.
func (s *Session) Move(delta int) {
	n := len(s.list)
	if n == 0 || delta == 0 {
		return
	}
	s.selection.Index = clamp(s.selection.Index+delta, 0, n-1)
	s.selection.Interacted = true
	s.selection.NeedScroll = true
	s.syncPos()
}

// Reset clears the query and snaps the selection back to the current song.
func (s *Session) Reset() {
	s.query = ""
	s.rebuild()
	s.selection.Interacted = false
	s.follow()
}

// ConsumeScroll reports whether the renderer should scroll the selection
// into view. While the session follows playback the request stays pending so
// the view keeps tracking the current song.
func (s *Session) ConsumeScroll() bool {
	need := s.selection.NeedScroll
	if need && s.selection.Interacted {
		s.selection.NeedScroll = false
	}
	return need
}

// Activate starts playback at the selected queue position.
func (s *Session) Activate(ctx context.Context) error {
	if len(s.list) == 0 {
		return ErrNothingSelected
	}
	if err := s.source.JumpTo(ctx, s.selection.Pos); err != nil {
		return fmt.Errorf("jump to %d: %w", s.selection.Pos, err)
	}
	return nil
}

// ActivateAt selects list index i and activates it.
func (s *Session) ActivateAt(ctx context.Context, i int) error {
	if i < 0 || i >= len(s.list) {
		return ErrNothingSelected
	}
	s.Click(i)
	return s.Activate(ctx)
}

// Seek moves playback of the current song by delta, clamped to the song.
func (s *Session) Seek(ctx context.Context, delta time.Duration) error {
	if s.snapshot.State == mpd.StateStop {
		return ErrStopped
	}
	target := s.snapshot.Elapsed + delta
	if target < 0 {
		target = 0
	}
	if d := s.snapshot.Duration; d > 0 && target > d {
		target = d
	}
	if err := s.source.Seek(ctx, target); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// Query returns the active search query.
func (s *Session) Query() string { return s.query }

// List returns the visible list. Callers must not modify it.
func (s *Session) List() []search.Result { return s.list }

// Selection returns the selection state.
func (s *Session) Selection() Selection { return s.selection }

// Snapshot returns the last successfully polled status.
func (s *Session) Snapshot() mpd.Snapshot { return s.snapshot }

// Current returns the queue position of the current song.
func (s *Session) Current() int { return s.current }

// Phase returns the rotator phase.
func (s *Session) Phase() Phase { return s.rotator.Phase() }

// QueueVersion returns the version of the held queue.
func (s *Session) QueueVersion() int { return s.queueVersion }

// QueueLen returns the number of queue entries held.
func (s *Session) QueueLen() int { return len(s.queue) }

// Entry returns the queue entry at pos.
func (s *Session) Entry(pos int) (mpd.QueueEntry, bool) {
	if pos >= 0 && pos < len(s.queue) && s.queue[pos].Pos == pos {
		return s.queue[pos], true
	}
	for _, e := range s.queue {
		if e.Pos == pos {
			return e, true
		}
	}
	return mpd.QueueEntry{}, false
}

// Selected returns the queue entry under the selection.
func (s *Session) Selected() (mpd.QueueEntry, bool) {
	if len(s.list) == 0 {
		return mpd.QueueEntry{}, false
	}
	return s.Entry(s.selection.Pos)
}

func (s *Session) rebuild() {
	s.list = search.Rank(s.query, s.queue, search.Options{Ambiguity: s.opts.Ambiguity})
}

// pullQueue re-reads the queue when playback moved to a position the held
// queue does not have yet. On failure the held queue stays.
func (s *Session) pullQueue(ctx context.Context, version int) {
	queue, err := s.source.FetchQueue(ctx)
	if err != nil {
		return
	}
	s.queue = queue
	s.queueVersion = version
	s.rebuild()
	if s.selection.Interacted {
		s.syncPos()
	}
}

// follow points the selection at the current song and requests a re-scroll.
// When the current song is not in the list, Pos still names it.
func (s *Session) follow() {
	s.selection.NeedScroll = true
	if i, ok := s.indexOf(s.current); ok {
		s.selection.Index = i
		s.syncPos()
		return
	}
	s.selection.Index = clamp(s.current, 0, len(s.list)-1)
	s.selection.Pos = s.current
}

func (s *Session) indexOf(pos int) (int, bool) {
	for i, r := range s.list {
		if r.Pos == pos {
			return i, true
		}
	}
	return 0, false
}

// syncPos clamps the index to the visible list and derives Pos from it.
func (s *Session) syncPos() {
	if len(s.list) == 0 {
		s.selection.Index = 0
		s.selection.Pos = s.current
		return
	}
	s.selection.Index = clamp(s.selection.Index, 0, len(s.list)-1)
	s.selection.Pos = s.list[s.selection.Index].Pos
}

func (s *Session) selectionIsCurrent() bool {
	return s.selection.Pos == s.current
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
