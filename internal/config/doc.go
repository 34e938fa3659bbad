// Package config loads skim's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/skim/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	mpd_address = "127.0.0.1:6600"   # or a socket path: "/run/mpd/socket"
//	mpd_password = ""
//	music_dir = "~/Music"
//	poll_interval_ms = 33
//	rotate_seconds = 4
//	queue_refresh_seconds = 2
//	search_ambiguity = 0             # 0-3 edits
//	log_file = "~/.cache/skim/skim.log"
//
// Every field is optional.
//
// # Daemon Address
//
// Without mpd_address the address comes from MPD_HOST and MPD_PORT, as with
// mpc. MPD_HOST may be "password@host". An address starting with "/" or "@"
// is a unix socket.
//
// # Music Directory
//
// MPD only reports the music directory over a local socket, so skim finds it
// itself: music_dir, else music_directory from $XDG_CONFIG_HOME/mpd/mpd.conf
// (or ~/.config/mpd/mpd.conf), else $XDG_MUSIC_DIR. A relative
// music_directory is ignored. With no music directory the info panel shows
// only what the daemon reports and no cover path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error.
package config
