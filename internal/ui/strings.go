package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// truncate shortens a string to the given display width, adding an ellipsis
// if needed. Wide (CJK) characters count as two cells.
func truncate(value string, width int) string {
	value = strings.TrimSpace(value)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, ellipsis)
}

// truncateMiddle shortens a path by removing cells from the middle so both
// the leading directories and the file name stay visible.
func truncateMiddle(value string, width int) string {
	value = strings.TrimSpace(value)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 2 {
		return runewidth.Truncate(value, width, "")
	}

	keep := width - runewidth.StringWidth(ellipsis)
	// Keep more of the end (file name) than the start
	tail := keep * 2 / 3
	head := keep - tail
	return runewidth.Truncate(value, head, "") + ellipsis + truncateLeft(value, tail)
}

// truncateLeft returns the longest suffix of value that fits in width cells.
func truncateLeft(value string, width int) string {
	runes := []rune(value)
	used := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if used+w > width {
			break
		}
		used += w
		i--
	}
	return string(runes[i:])
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit truncates and pads s to exactly width cells.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

// orUnknown substitutes the unknown marker for empty values.
func orUnknown(value, unknown string) string {
	if strings.TrimSpace(value) == "" {
		return unknown
	}
	return value
}
