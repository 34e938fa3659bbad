package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Prefix is the logger prefix skim writes its log with.
const Prefix = "skim"

// Entry is one message written by the standard logger.
type Entry struct {
	// Time is the "HH:MM:SS" part of the logger's timestamp, empty when the
	// line carried none.
	Time    string
	Message string
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if maxLines > 0 && len(lines) > maxLines {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Recent returns the last n messages from a log written with the given
// prefix, oldest first. Blank lines are skipped.
func Recent(path, prefix string, n int) ([]Entry, error) {
	lines, err := Read(path, n)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line, prefix))
	}
	return entries, nil
}

// Parse splits a "prefix YYYY/MM/DD HH:MM:SS message" line. Lines that do
// not carry the standard timestamp are returned whole as the message.
func Parse(line, prefix string) Entry {
	rest := strings.TrimPrefix(line, prefix)
	rest = strings.TrimLeft(rest, " ")

	date, after, ok := strings.Cut(rest, " ")
	if !ok || !isDate(date) {
		return Entry{Message: strings.TrimSpace(line)}
	}
	clock, msg, ok := strings.Cut(after, " ")
	if !ok || !isClock(clock) {
		return Entry{Message: strings.TrimSpace(line)}
	}
	return Entry{Time: clock, Message: strings.TrimSpace(msg)}
}

// isDate matches the logger's "2006/01/02".
func isDate(s string) bool {
	return len(s) == 10 && s[4] == '/' && s[7] == '/' && digits(s[:4]+s[5:7]+s[8:])
}

// isClock matches "15:04:05", ignoring any fractional seconds.
func isClock(s string) bool {
	s, _, _ = strings.Cut(s, ".")
	return len(s) == 8 && s[2] == ':' && s[5] == ':' && digits(s[:2]+s[3:5]+s[6:])
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
