package search

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/five82/skim/internal/mpd"
)

// Field identifies which queue entry field produced a match.
type Field int

const (
	FieldNone Field = iota
	FieldTitle
	FieldAlbum
	FieldArtist
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldAlbum:
		return "album"
	case FieldArtist:
		return "artist"
	default:
		return "none"
	}
}

// MaxDistance is the exclusive upper bound on edit distance for a match.
// Keeping raw distances below the tier width keeps tiers strictly ordered.
const MaxDistance = 99

const tierWidth = 100

// tierOffset returns the score offset for a field: title 0, album 100,
// artist 200.
func tierOffset(f Field) int {
	switch f {
	case FieldAlbum:
		return tierWidth
	case FieldArtist:
		return 2 * tierWidth
	default:
		return 0
	}
}

// Result is one ranked queue entry. Lower scores rank higher.
type Result struct {
	Title string
	Pos   int
	Score int
	Field Field
}

// Options tune ranking.
type Options struct {
	// Ambiguity is the number of edits the plausibility filter tolerates.
	Ambiguity int
}

// Rank filters and orders queue for query. An empty query returns every
// entry in queue order with score zero. Rank is a pure function of its
// inputs.
func Rank(query string, queue []mpd.QueueEntry, opts Options) []Result {
	if query == "" {
		return identity(queue)
	}

	matcher := NewMatcher(query, opts.Ambiguity)
	results := make([]Result, 0, len(queue))
	for _, entry := range queue {
		field, text := matchField(matcher, entry)
		if field == FieldNone {
			continue
		}
		distance := levenshtein.ComputeDistance(query, text)
		if distance >= MaxDistance {
			continue
		}
		results = append(results, Result{
			Title: entry.DisplayTitle(),
			Pos:   entry.Pos,
			Score: distance + tierOffset(field),
			Field: field,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

// matchField returns the first field, in priority order, that passes the
// plausibility filter. Only that field is scored.
func matchField(m *Matcher, entry mpd.QueueEntry) (Field, string) {
	if title := entry.DisplayTitle(); m.Match(title) {
		return FieldTitle, title
	}
	if entry.Album != "" && m.Match(entry.Album) {
		return FieldAlbum, entry.Album
	}
	if entry.Artist != "" && m.Match(entry.Artist) {
		return FieldArtist, entry.Artist
	}
	return FieldNone, ""
}

func identity(queue []mpd.QueueEntry) []Result {
	results := make([]Result, len(queue))
	for i, entry := range queue {
		results[i] = Result{Title: entry.DisplayTitle(), Pos: entry.Pos}
	}
	return results
}
