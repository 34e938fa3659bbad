// Package ui provides the terminal interface for skim.
//
// The UI is a Bubble Tea program built around a browser.Session. Every frame
// tick calls Session.Tick, adopts a queue the background refresher stored in
// state.Store when its version moved on, and re-scrolls the list when the
// session asks for it.
//
// # Layout
//
//   - Header: logo, rotating status line, offline marker
//   - Body: the visible list on the left, the info pane on the right (hidden
//     on narrow terminals or with ctrl+o)
//   - Footer: the search input, always focused, and the result count
//
// # Input
//
// Printable keys edit the query. Commands use non-printing keys: enter plays
// the selection and quits, tab/shift+tab cycle, ctrl+u clears the search and
// follows playback again, alt+left/right seek, esc quits. A left click selects
// a row, a second click on the same row within DoubleClickWindow plays it and
// the wheel scrolls.
package ui
