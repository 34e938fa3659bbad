// Package state shares background queue refreshes with the UI.
//
// # Overview
//
// The status poll runs on the UI loop itself, but fetching the whole queue can
// be slow for large queues, so a background poller refreshes it and hands the
// result over through a Store:
//
//	Producer (poller):               Consumer (UI):
//	┌──────────────────┐            ┌──────────────────────┐
//	│ FetchStatus()    │            │                      │
//	│ FetchQueue()     │            │                      │
//	│      ↓           │            │                      │
//	│ store.Update()   │───────────→│ store.Snapshot()     │
//	│      ↓           │  (mutex)   │      ↓               │
//	│  repeat...       │            │ session.AdoptQueue() │
//	└──────────────────┘            └──────────────────────┘
//
// The Store is the only state touched by more than one goroutine. The
// browser session stays single-threaded and pulls from it.
//
// # Update Semantics
//
//	// Success: replace queue and status, record the queue version
//	store.Update(&status, queue, nil)
//	→ snapshot.Queue = queue
//	→ snapshot.Version = status.QueueVersion
//	→ snapshot.LastError = nil
//
//	// Error: keep old data, record error
//	store.Update(nil, nil, err)
//	→ snapshot.Queue = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Version lets the poller skip re-fetching an unchanged queue and lets the UI
// skip rebuilding its list when nothing changed.
//
// # Defensive Copying
//
// Update and Snapshot both copy the queue slice and Snapshot wraps the error,
// so the UI can never observe a half-written queue or mutate the store's copy.
//
// The zero Store is ready to use.
package state
