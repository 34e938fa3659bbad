package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/skim/internal/browser"
	"github.com/five82/skim/internal/config"
	"github.com/five82/skim/internal/logtail"
	"github.com/five82/skim/internal/metadata"
	"github.com/five82/skim/internal/mpd"
	"github.com/five82/skim/internal/prefs"
	"github.com/five82/skim/internal/state"
	"github.com/five82/skim/internal/ui"
)

var (
	// ErrQueueTooShort is returned when the queue has fewer than two songs.
	ErrQueueTooShort = errors.New("not enough songs in the queue")
	// ErrNoCurrentSong is returned when the daemon has no current song.
	ErrNoCurrentSong = errors.New("no current song")
)

const connectTimeout = 3 * time.Second

// Options configure the skim application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/skim/prefs.toml
	Address    string // overrides mpd_address
	PollMillis int    // overrides poll_interval_ms; zero keeps config
}

// Run boots the skim TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logFile := setupLogging(cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}

	client := mpd.NewClient(cfg.MPDAddress, cfg.MPDPassword)
	defer client.Close()

	status, queue, err := startup(ctx, client)
	if err != nil {
		return err
	}

	store := &state.Store{}
	store.Update(&status, queue, nil)

	// The refresher gets its own connection so a slow queue read never
	// stalls the UI's status polls.
	refresher := mpd.NewClient(cfg.MPDAddress, cfg.MPDPassword)
	defer refresher.Close()
	StartPoller(ctx, store, refresher, cfg.QueueRefresh)

	session := browser.NewSession(client, queue, status, browser.Options{
		PollInterval: cfg.PollInterval,
		RotateAfter:  cfg.RotateAfter,
		Ambiguity:    cfg.SearchAmbiguity,
	}, time.Now())

	uiOpts := ui.Options{
		Context:   ctx,
		Session:   session,
		Store:     store,
		Resolver:  metadata.NewResolver(cfg.MusicDir),
		PollTick:  cfg.PollInterval,
		ThemeName: userPrefs.Theme,
		HideInfo:  userPrefs.HideInfo,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogFile,
	}
	return ui.Run(uiOpts)
}

// applyOverrides lets command-line values win over the config file. Zero
// values keep the config.
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Address != "" {
		cfg.MPDAddress = opts.Address
	}
	if opts.PollMillis > 0 {
		cfg.PollInterval = time.Duration(opts.PollMillis) * time.Millisecond
	}
}

// startup connects, validates the daemon's state and reads the queue.
func startup(ctx context.Context, client *mpd.Client) (mpd.Snapshot, []mpd.QueueEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		network, addr := client.Address()
		return mpd.Snapshot{}, nil, fmt.Errorf("connect to mpd at %s %s: %w", network, addr, err)
	}
	status, err := client.FetchStatus(ctx)
	if err != nil {
		return mpd.Snapshot{}, nil, fmt.Errorf("read mpd status: %w", err)
	}
	if err := checkStartup(status); err != nil {
		return mpd.Snapshot{}, nil, err
	}
	queue, err := client.FetchQueue(ctx)
	if err != nil {
		return mpd.Snapshot{}, nil, fmt.Errorf("read mpd queue: %w", err)
	}
	if len(queue) < 2 {
		return mpd.Snapshot{}, nil, ErrQueueTooShort
	}
	return status, queue, nil
}

func checkStartup(status mpd.Snapshot) error {
	if status.QueueLength < 2 {
		return ErrQueueTooShort
	}
	if !status.HasSong() {
		return ErrNoCurrentSong
	}
	return nil
}

// setupLogging routes the standard logger to path. The terminal belongs to
// the TUI, so when the file cannot be opened logging is discarded.
func setupLogging(path string) *os.File {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := tea.LogToFile(path, logtail.Prefix); err == nil {
				return f
			}
		}
	}
	log.SetOutput(io.Discard)
	return nil
}
