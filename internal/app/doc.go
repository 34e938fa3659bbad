// Package app wires skim together.
//
// # Startup
//
//  1. Load ~/.config/skim/config.toml and apply command-line overrides
//  2. Load UI preferences (theme, info pane)
//  3. Route the standard logger to the log file (the TUI owns the terminal)
//  4. Connect to MPD and read its status
//  5. Refuse to start unless the queue holds at least two songs and one of
//     them is current (ErrQueueTooShort, ErrNoCurrentSong)
//  6. Read the queue and seed the shared state.Store
//  7. Launch the background queue refresher on a second connection
//  8. Build the browser.Session and run the TUI until it exits
//
// # Data Flow
//
//	UI loop (every poll_interval_ms):
//	┌────────────────────────────────────────┐
//	│ session.Tick()  → FetchStatus()        │
//	│ store.Version() → session.AdoptQueue() │
//	└────────────────────────────────────────┘
//
//	Background refresher (every queue_refresh_seconds):
//	┌────────────────────────────────────────┐
//	│ FetchStatus()                          │
//	│ FetchQueue() only if the version moved │
//	│ store.Update()                         │
//	└────────────────────────────────────────┘
//
// # Error Handling
//
// Startup failures are returned from Run. After startup nothing is fatal:
// status poll failures are skipped silently by the session, and queue refresh
// failures are logged and retried with exponential backoff (doubling per
// consecutive failure, capped at 30 seconds).
package app
