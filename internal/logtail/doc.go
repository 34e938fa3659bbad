// Package logtail reads the end of skim's own log file.
//
// The terminal belongs to the TUI, so recoverable errors (failed queue
// refreshes, rejected jump or seek commands, preference writes) go to a log
// file instead. The help overlay uses Recent to show the last few of them.
//
// Lines are expected in the standard logger's format with a prefix:
//
//	skim 2024/05/01 12:00:00 queue refresh: queue poll failed: EOF
//
// Parse keeps the time of day and the message.
package logtail
