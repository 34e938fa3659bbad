// Package metadata resolves the info panel text for a queue entry.
//
// The daemon's tags are authoritative. When a music directory is configured
// and the daemon left a tag empty, the audio file is opened and its embedded
// tags (ID3, MP4, FLAC, Ogg) fill the gap. The song's directory is also
// searched for cover.jpg, cover.jpeg or cover.png; only the path is reported.
//
// Streams (files containing "://") are never looked up on disk.
package metadata
