package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything skim reads at startup.
type Config struct {
	MPDAddress      string
	MPDPassword     string
	MusicDir        string
	PollInterval    time.Duration
	RotateAfter     time.Duration
	QueueRefresh    time.Duration
	SearchAmbiguity int
	LogFile         string
}

const (
	defaultConfigPath   = "~/.config/skim/config.toml"
	defaultLogFile      = "~/.cache/skim/skim.log"
	defaultHost         = "127.0.0.1"
	defaultPort         = "6600"
	defaultPollInterval = 33 * time.Millisecond
	defaultRotateAfter  = 4 * time.Second
	defaultQueueRefresh = 2 * time.Second
	maxSearchAmbiguity  = 3
)

// Load locates and parses the skim config, falling back to defaults when
// missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		MPDAddress          string `toml:"mpd_address"`
		MPDPassword         string `toml:"mpd_password"`
		MusicDir            string `toml:"music_dir"`
		PollIntervalMS      int    `toml:"poll_interval_ms"`
		RotateSeconds       int    `toml:"rotate_seconds"`
		QueueRefreshSeconds int    `toml:"queue_refresh_seconds"`
		SearchAmbiguity     int    `toml:"search_ambiguity"`
		LogFile             string `toml:"log_file"`
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg := Config{
		MPDAddress:      strings.TrimSpace(raw.MPDAddress),
		MPDPassword:     strings.TrimSpace(raw.MPDPassword),
		PollInterval:    defaultPollInterval,
		RotateAfter:     defaultRotateAfter,
		QueueRefresh:    defaultQueueRefresh,
		SearchAmbiguity: clampAmbiguity(raw.SearchAmbiguity),
	}

	if cfg.MPDAddress == "" {
		cfg.MPDAddress, cfg.MPDPassword = addressFromEnv(cfg.MPDPassword)
	}
	if raw.PollIntervalMS > 0 {
		cfg.PollInterval = time.Duration(raw.PollIntervalMS) * time.Millisecond
	}
	if raw.RotateSeconds > 0 {
		cfg.RotateAfter = time.Duration(raw.RotateSeconds) * time.Second
	}
	if raw.QueueRefreshSeconds > 0 {
		cfg.QueueRefresh = time.Duration(raw.QueueRefreshSeconds) * time.Second
	}

	cfg.MusicDir = strings.TrimSpace(raw.MusicDir)
	if cfg.MusicDir != "" {
		cfg.MusicDir = mustExpand(cfg.MusicDir)
	} else {
		cfg.MusicDir = findMusicDir()
	}

	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

// addressFromEnv builds the daemon address from MPD_HOST and MPD_PORT the way
// mpc does. MPD_HOST may carry a "password@" prefix.
func addressFromEnv(password string) (string, string) {
	host := strings.TrimSpace(os.Getenv("MPD_HOST"))
	port := strings.TrimSpace(os.Getenv("MPD_PORT"))

	if at := strings.LastIndex(host, "@"); at > 0 {
		if password == "" {
			password = host[:at]
		}
		host = host[at+1:]
	}
	if strings.HasPrefix(host, "/") || strings.HasPrefix(host, "@") {
		return host, password
	}
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(host, port), password
}

// findMusicDir reads music_directory from the local MPD config, then falls
// back to $XDG_MUSIC_DIR. An empty result disables local file lookups.
func findMusicDir() string {
	if dir := musicDirFromMPDConf(mpdConfPath()); dir != "" {
		return dir
	}
	if dir := strings.TrimSpace(os.Getenv("XDG_MUSIC_DIR")); dir != "" {
		return mustExpand(dir)
	}
	return ""
}

func mpdConfPath() string {
	prefix := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if prefix == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		prefix = filepath.Join(home, ".config")
	}
	return filepath.Join(prefix, "mpd", "mpd.conf")
}

func musicDirFromMPDConf(path string) string {
	if path == "" {
		return ""
	}
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		value, ok := strings.CutPrefix(line, "music_directory")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch {
		case strings.HasPrefix(value, "~"):
			return mustExpand(value)
		case filepath.IsAbs(value):
			return filepath.Clean(value)
		default:
			return ""
		}
	}
	return ""
}

func clampAmbiguity(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxSearchAmbiguity {
		return maxSearchAmbiguity
	}
	return n
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
