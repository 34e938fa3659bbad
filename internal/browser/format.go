package browser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/skim/internal/mpd"
)

// Unknown is displayed for fields the daemon or the file did not provide.
const Unknown = "unknown!"

// Rotator glyphs.
const (
	glyphNowPlaying    = "♪ "
	glyphNowPlayingAlt = "♫ "
	glyphNextUp        = "» "
)

// RotatorText renders the status line for the current phase.
func (s *Session) RotatorText() string {
	switch s.rotator.Phase() {
	case PhaseNowPlaying:
		return glyphNowPlaying + s.titleAt(s.current)
	case PhaseNowPlayingAlt:
		return glyphNowPlayingAlt + s.titleAt(s.current)
	case PhaseNextUp:
		return glyphNextUp + s.titleAt(s.snapshot.NextSong)
	default:
		return StatusLine(s.snapshot)
	}
}

func (s *Session) titleAt(pos int) string {
	entry, ok := s.Entry(pos)
	if !ok {
		return Unknown
	}
	if title := entry.DisplayTitle(); title != "" {
		return title
	}
	return Unknown
}

// StatusLine summarizes volume and the four playback toggles.
func StatusLine(snap mpd.Snapshot) string {
	volume := "n/a"
	if snap.Volume >= 0 {
		volume = strconv.Itoa(snap.Volume)
	}
	return fmt.Sprintf("vol %s · repeat %s · random %s · single %s · consume %s",
		volume, onOff(snap.Repeat), onOff(snap.Random), onOff(snap.Single), onOff(snap.Consume))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// StateGlyph returns a short marker for the playback state.
func StateGlyph(state mpd.PlayState) string {
	switch state {
	case mpd.StatePlay:
		return "▶"
	case mpd.StatePause:
		return "⏸"
	default:
		return "■"
	}
}

// ProgressString renders "[ mm:ss - mm:ss ]". Elapsed minutes are
// zero-padded to the width of the duration's minutes. A zero duration
// renders as the empty string.
func ProgressString(elapsed, duration time.Duration) string {
	if duration <= 0 {
		return ""
	}
	if elapsed < 0 {
		elapsed = 0
	}
	eMins := strconv.Itoa(int(elapsed / time.Minute))
	dMins := strconv.Itoa(int(duration / time.Minute))
	if pad := len(dMins) - len(eMins); pad > 0 {
		eMins = strings.Repeat("0", pad) + eMins
	}
	eSecs := int(elapsed/time.Second) % 60
	dSecs := int(duration/time.Second) % 60
	return fmt.Sprintf("[ %s:%02d - %s:%02d ]", eMins, eSecs, dMins, dSecs)
}

// TimeString renders a duration in long form, for example
// "1 hour, 2 minutes, 5 seconds". Larger units are omitted until non-zero.
func TimeString(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	mins := total / 60
	hours := mins / 60
	days := hours / 24

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours%24, "hour"))
	}
	if mins > 0 {
		parts = append(parts, plural(mins%60, "minute"))
	}
	parts = append(parts, plural(total%60, "second"))
	return strings.Join(parts, ", ")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
