package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/five82/skim/internal/config"
	"github.com/five82/skim/internal/mpd"
)

func TestCheckStartup(t *testing.T) {
	tests := []struct {
		name   string
		status mpd.Snapshot
		want   error
	}{
		{"ok", mpd.Snapshot{Song: 0, QueueLength: 2}, nil},
		{"empty queue", mpd.Snapshot{Song: -1, QueueLength: 0}, ErrQueueTooShort},
		{"single song", mpd.Snapshot{Song: 0, QueueLength: 1}, ErrQueueTooShort},
		{"stopped without song", mpd.Snapshot{Song: -1, QueueLength: 5}, ErrNoCurrentSong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStartup(tt.status)
			if !errors.Is(err, tt.want) {
				t.Fatalf("checkStartup() = %v, want %v", err, tt.want)
			}
		})
	}
}

// serveStatus answers status/playlistinfo with a fixed queue length.
func serveStatus(t *testing.T, songs int) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				w := bufio.NewWriter(conn)
				fmt.Fprint(w, "OK MPD 0.23.5\n")
				_ = w.Flush()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					switch strings.TrimSpace(scanner.Text()) {
					case "close":
						return
					case "status":
						fmt.Fprintf(w, "playlist: 3\nplaylistlength: %d\nstate: play\nsong: 0\nOK\n", songs)
					case "playlistinfo":
						for i := 0; i < songs; i++ {
							fmt.Fprintf(w, "file: s%d.flac\nPos: %d\n", i, i)
						}
						fmt.Fprint(w, "OK\n")
					default:
						fmt.Fprint(w, "OK\n")
					}
					_ = w.Flush()
				}
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func TestStartup(t *testing.T) {
	client := mpd.NewClient(serveStatus(t, 3), "")
	defer client.Close()

	status, queue, err := startup(context.Background(), client)
	if err != nil {
		t.Fatalf("startup returned error: %v", err)
	}
	if status.QueueVersion != 3 || len(queue) != 3 {
		t.Fatalf("startup = v%d with %d entries, want v3 with 3", status.QueueVersion, len(queue))
	}
}

func TestStartup_QueueTooShort(t *testing.T) {
	client := mpd.NewClient(serveStatus(t, 1), "")
	defer client.Close()

	_, _, err := startup(context.Background(), client)
	if !errors.Is(err, ErrQueueTooShort) {
		t.Fatalf("startup error = %v, want ErrQueueTooShort", err)
	}
}

func TestStartup_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	client := mpd.NewClient(addr, "")
	_, _, err = startup(context.Background(), client)
	if err == nil || !strings.Contains(err.Error(), "connect to mpd") {
		t.Fatalf("startup error = %v, want connect failure", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	base := config.Config{MPDAddress: "localhost:6600", PollInterval: 33 * time.Millisecond}

	tests := []struct {
		name     string
		opts     Options
		wantAddr string
		wantPoll time.Duration
	}{
		{"no flags keep config", Options{}, "localhost:6600", 33 * time.Millisecond},
		{"address", Options{Address: "/run/mpd/socket"}, "/run/mpd/socket", 33 * time.Millisecond},
		{"poll", Options{PollMillis: 100}, "localhost:6600", 100 * time.Millisecond},
		{"negative poll ignored", Options{PollMillis: -5}, "localhost:6600", 33 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			applyOverrides(&cfg, tt.opts)
			if cfg.MPDAddress != tt.wantAddr {
				t.Fatalf("MPDAddress = %q, want %q", cfg.MPDAddress, tt.wantAddr)
			}
			if cfg.PollInterval != tt.wantPoll {
				t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, tt.wantPoll)
			}
		})
	}
}
