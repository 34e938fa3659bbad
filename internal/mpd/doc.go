// Package mpd wraps the MPD protocol client used as skim's playback source.
//
// # Overview
//
// The package exposes a narrow Source interface (status, queue, seek, jump)
// backed by github.com/fhs/gompd. Only the handful of status and song
// attributes the browser reads are parsed; everything else on the wire is
// ignored.
//
// # Connection Handling
//
// A Client dials lazily and serialises commands behind a mutex so the UI
// thread and the background queue refresher can share it. Any command error
// drops the connection and the next call redials, which lets the browser ride
// out daemon restarts without special handling.
//
// # Degradation
//
// Missing or malformed attributes never fail a parse. Positions default to -1
// (no song), volume to -1 (no mixer), and durations to zero.
package mpd
