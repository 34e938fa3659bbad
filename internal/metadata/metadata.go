package metadata

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"github.com/five82/skim/internal/mpd"
)

var coverNames = []string{"cover.jpg", "cover.jpeg", "cover.png"}

// Info is the text shown in the info panel for one queue entry. Empty fields
// mean nothing was known.
type Info struct {
	Pos      int
	Title    string
	Artist   string
	Album    string
	Date     string
	Duration time.Duration
	Cover    string
}

// Resolver fills Info from a queue entry and, when a music directory is
// configured, from the audio file itself.
type Resolver struct {
	musicDir string
}

// NewResolver returns a Resolver rooted at musicDir. An empty musicDir
// disables file lookups.
func NewResolver(musicDir string) *Resolver {
	return &Resolver{musicDir: musicDir}
}

// MusicDir returns the configured music directory.
func (r *Resolver) MusicDir() string {
	if r == nil {
		return ""
	}
	return r.musicDir
}

// Resolve builds the info panel text for entry. Tags reported by the daemon
// win; the file's own tags only fill the gaps.
func (r *Resolver) Resolve(entry mpd.QueueEntry) Info {
	info := Info{
		Pos:      entry.Pos,
		Title:    entry.Title,
		Artist:   entry.Artist,
		Album:    entry.Album,
		Date:     entry.Date,
		Duration: entry.Duration,
	}

	path := r.localPath(entry.File)
	if path != "" {
		if info.Title == "" || info.Artist == "" || info.Album == "" || info.Date == "" {
			fillFromFile(&info, path)
		}
		info.Cover = FindCover(filepath.Dir(path))
	}
	if info.Title == "" {
		info.Title = entry.DisplayTitle()
	}
	return info
}

func (r *Resolver) localPath(file string) string {
	if r == nil || r.musicDir == "" || file == "" || strings.Contains(file, "://") {
		return ""
	}
	return filepath.Join(r.musicDir, filepath.FromSlash(file))
}

func fillFromFile(info *Info, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return
	}
	if info.Title == "" {
		info.Title = strings.TrimSpace(m.Title())
	}
	if info.Artist == "" {
		info.Artist = strings.TrimSpace(m.Artist())
	}
	if info.Album == "" {
		info.Album = strings.TrimSpace(m.Album())
	}
	if info.Date == "" && m.Year() > 0 {
		info.Date = strconv.Itoa(m.Year())
	}
}

// FindCover returns the path of cover.jpg, cover.jpeg or cover.png in dir,
// matched case-insensitively, or "" when there is none.
func FindCover(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	found := make(map[string]string, len(coverNames))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if _, seen := found[name]; !seen {
			found[name] = filepath.Join(dir, e.Name())
		}
	}
	for _, name := range coverNames {
		if path, ok := found[name]; ok {
			return path
		}
	}
	return ""
}
