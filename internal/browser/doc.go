// Package browser holds the queue browser's state machine.
//
// A Session bundles everything the UI renders: the queue snapshot, the visible
// (searched) list, the last successful playback snapshot, the user's selection
// and the rotating status line. The UI loop is its only owner; nothing in this
// package locks.
//
// # Polling
//
// Tick is called on every frame. It polls the playback source at most once per
// PollInterval (33ms by default). A failed poll is skipped silently and the
// previous snapshot stays authoritative. When the current song changes the
// session raises a track transition:
//
//   - if the user has not interacted since the last reset, the selection
//     follows the new current song and asks to be scrolled into view;
//   - the rotator picks a new phase and restarts its timer.
//
// # Rotator
//
// The status line cycles through four phases:
//
//	0  ♪ current title     (diverged, nothing follows)
//	1  ♫ current title     (diverged, a next song exists)
//	2  » next title
//	3  volume and repeat/random/single/consume
//
// "more" is phase 2 when the daemon reports a next song and phase 3 otherwise.
// After RotateAfter (4s) the phase advances 0→3, 1→2, 2→3. From phase 3 it
// moves to "more" when the selection sits on the current song, else to 1 when
// a next song exists, else to 0. Phase 0 advances to 1 instead of 3 when a
// next song has appeared while the selection is elsewhere, and phase 1 goes
// to 3 instead of 2 when the next song has gone. Phase 2 is left at once when
// the next song disappears.
//
// # Selection
//
// Clicks, tab cycling, cursor movement and the first scroll after a reset mark
// the session interacted, which suspends auto-follow. Reset clears the query
// and snaps back to the current song. Selection.Pos is the queue position of
// the entry at Selection.Index in the visible list. While following playback
// onto a song the list does not hold, Pos is the current song regardless; a
// transition to a position past the held queue re-reads the queue first.
package browser
