package mpd

import (
	"path"
	"strconv"
	"strings"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// PlayState mirrors MPD's "state" status attribute.
type PlayState int

const (
	StateStop PlayState = iota
	StatePlay
	StatePause
)

func (s PlayState) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StatePause:
		return "pause"
	default:
		return "stop"
	}
}

// QueueEntry describes one song in the daemon's play queue.
// Empty tag fields mean the tag is absent.
type QueueEntry struct {
	Pos      int
	File     string
	Title    string
	Artist   string
	Album    string
	Date     string
	Duration time.Duration
}

// DisplayTitle returns the explicit title tag, falling back to the file name.
func (e QueueEntry) DisplayTitle() string {
	if strings.TrimSpace(e.Title) != "" {
		return e.Title
	}
	if e.File == "" {
		return ""
	}
	return path.Base(e.File)
}

// Snapshot is an immutable read of the daemon's playback status.
type Snapshot struct {
	State        PlayState
	Song         int // -1 when no song is current
	NextSong     int // -1 when nothing follows
	Elapsed      time.Duration
	Duration     time.Duration
	Volume       int // -1 when the daemon has no mixer
	Repeat       bool
	Random       bool
	Single       bool
	Consume      bool
	QueueVersion int
	QueueLength  int
}

// HasSong reports whether the daemon has a current song.
func (s Snapshot) HasSong() bool {
	return s.Song >= 0
}

// HasNext reports whether a next song is queued.
func (s Snapshot) HasNext() bool {
	return s.NextSong >= 0
}

// parseStatus converts the attrs of an MPD "status" response. Malformed or
// missing values degrade to their zero/unknown representation.
func parseStatus(attrs gompd.Attrs) Snapshot {
	snap := Snapshot{
		Song:         atoiOr(attrs["song"], -1),
		NextSong:     atoiOr(attrs["nextsong"], -1),
		Volume:       atoiOr(attrs["volume"], -1),
		Repeat:       attrs["repeat"] == "1",
		Random:       attrs["random"] == "1",
		Single:       attrs["single"] == "1" || attrs["single"] == "oneshot",
		Consume:      attrs["consume"] == "1" || attrs["consume"] == "oneshot",
		QueueVersion: atoiOr(attrs["playlist"], 0),
		QueueLength:  atoiOr(attrs["playlistlength"], 0),
	}

	switch attrs["state"] {
	case "play":
		snap.State = StatePlay
	case "pause":
		snap.State = StatePause
	default:
		snap.State = StateStop
	}

	snap.Elapsed = secondsOr(attrs["elapsed"])
	snap.Duration = secondsOr(attrs["duration"])

	// Older daemons only report "time: elapsed:total" in whole seconds.
	if legacy, ok := attrs["time"]; ok && (snap.Elapsed == 0 || snap.Duration == 0) {
		if e, d, found := strings.Cut(legacy, ":"); found {
			if snap.Elapsed == 0 {
				snap.Elapsed = secondsOr(e)
			}
			if snap.Duration == 0 {
				snap.Duration = secondsOr(d)
			}
		}
	}
	return snap
}

// parseEntry converts one song of a "playlistinfo" response. fallbackPos is
// used when the daemon omits the Pos attribute.
func parseEntry(attrs gompd.Attrs, fallbackPos int) QueueEntry {
	entry := QueueEntry{
		Pos:    atoiOr(attrs["Pos"], fallbackPos),
		File:   attrs["file"],
		Title:  strings.TrimSpace(attrs["Title"]),
		Artist: strings.TrimSpace(attrs["Artist"]),
		Album:  strings.TrimSpace(attrs["Album"]),
		Date:   strings.TrimSpace(attrs["Date"]),
	}
	entry.Duration = secondsOr(attrs["duration"])
	if entry.Duration == 0 {
		entry.Duration = secondsOr(attrs["Time"])
	}
	return entry
}

func atoiOr(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func secondsOr(value string) time.Duration {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
