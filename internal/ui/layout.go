package ui

import "time"

// Layout dimensions.
const (
	// InfoPaneWidth is the width of the right-hand info pane.
	InfoPaneWidth = 38

	// LayoutCompactWidth is the threshold below which the info pane is hidden.
	LayoutCompactWidth = 72

	// chromeHeight is the header, two rules and the search line.
	chromeHeight = 4
)

// Interaction constants.
const (
	// DoubleClickWindow is the longest gap between two clicks on the same row
	// that still counts as a double-click.
	DoubleClickWindow = 400 * time.Millisecond

	// SeekStep is how far alt+left/right move playback.
	SeekStep = 5 * time.Second

	// WheelStep is how many rows one wheel notch scrolls.
	WheelStep = 3

	// StatusTimeout bounds a single status poll so a stalled daemon cannot
	// freeze the UI.
	StatusTimeout = 250 * time.Millisecond

	// DefaultPollTick is the frame cadence when none is configured.
	DefaultPollTick = 33 * time.Millisecond

	// flashDuration is how long a command error stays in the footer.
	flashDuration = 3 * time.Second
)

// recentMessages is how many log messages the help overlay shows.
const recentMessages = 4

// commandTimeout bounds jump and seek commands sent from key or mouse input.
const commandTimeout = 2 * time.Second
