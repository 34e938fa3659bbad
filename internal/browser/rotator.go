package browser

import (
	"time"

	"github.com/five82/skim/internal/mpd"
)

// Phase is the rotating status line's current state.
type Phase int

const (
	// PhaseNowPlaying shows the current title; used when the selection has
	// diverged and nothing follows the current song.
	PhaseNowPlaying Phase = iota
	// PhaseNowPlayingAlt shows the current title with the alternate glyph;
	// used when the selection has diverged and a next song exists.
	PhaseNowPlayingAlt
	// PhaseNextUp shows the upcoming title.
	PhaseNextUp
	// PhaseStatus shows volume and the playback toggles.
	PhaseStatus
)

const defaultRotateAfter = 4 * time.Second

// morePhase is the phase shown when the selection sits on the current song:
// next-up when a next song exists, the status summary otherwise.
func morePhase(snap mpd.Snapshot) Phase {
	if snap.HasNext() {
		return PhaseNextUp
	}
	return PhaseStatus
}

// previewPhase picks the phase that best previews playback relative to the
// selection.
func previewPhase(snap mpd.Snapshot, selectionIsCurrent bool) Phase {
	more := morePhase(snap)
	switch {
	case selectionIsCurrent:
		return more
	case more == PhaseNextUp:
		return PhaseNowPlayingAlt
	default:
		return PhaseNowPlaying
	}
}

// Rotator cycles the status line. It holds only the phase and the time of the
// last phase change.
type Rotator struct {
	phase   Phase
	since   time.Time
	timeout time.Duration
}

func newRotator(phase Phase, now time.Time, timeout time.Duration) Rotator {
	if timeout <= 0 {
		timeout = defaultRotateAfter
	}
	return Rotator{phase: phase, since: now, timeout: timeout}
}

// Phase returns the current phase.
func (r Rotator) Phase() Phase {
	return r.phase
}

// transition handles a change of current song. followed reports whether the
// selection auto-followed playback.
func (r *Rotator) transition(snap mpd.Snapshot, followed, selectionIsCurrent bool, now time.Time) {
	if followed {
		r.phase = morePhase(snap)
	} else {
		r.phase = previewPhase(snap, selectionIsCurrent)
	}
	r.since = now
}

// advance rotates to the next phase once the timeout has elapsed. It reports
// whether the phase changed.
func (r *Rotator) advance(snap mpd.Snapshot, selectionIsCurrent bool, now time.Time) bool {
	if now.Sub(r.since) < r.timeout {
		return false
	}
	switch r.phase {
	case PhaseNowPlaying:
		// Phase 0 implies no next song. If one has since appeared the
		// preview is stale, so move to the alternate now-playing phase.
		if !selectionIsCurrent && snap.HasNext() {
			r.phase = PhaseNowPlayingAlt
		} else {
			r.phase = PhaseStatus
		}
	case PhaseNextUp:
		r.phase = PhaseStatus
	case PhaseNowPlayingAlt:
		// The next song may have been consumed or removed since phase 1
		// was entered.
		if snap.HasNext() {
			r.phase = PhaseNextUp
		} else {
			r.phase = PhaseStatus
		}
	default:
		r.phase = previewPhase(snap, selectionIsCurrent)
	}
	r.since = now
	return true
}

// settle leaves the next-up phase as soon as the snapshot no longer has a
// next song, without waiting for the timeout.
func (r *Rotator) settle(snap mpd.Snapshot, now time.Time) {
	if r.phase == PhaseNextUp && !snap.HasNext() {
		r.phase = PhaseStatus
		r.since = now
	}
}
