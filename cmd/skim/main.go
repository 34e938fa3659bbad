package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/five82/skim/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.StringP("config", "c", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	address := flag.StringP("address", "a", "", "mpd address, host:port or socket path (optional)")
	pollMillis := flag.Int("poll", 0, "status poll interval in milliseconds (optional, defaults to 33)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Address:    *address,
		PollMillis: *pollMillis,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "skim: %v\n", err)
		return 1
	}
	return 0
}
