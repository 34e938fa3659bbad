package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/skim/internal/mpd"
	"github.com/five82/skim/internal/state"
)

const (
	defaultQueueRefresh = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that keeps the store's copy of
// the queue current. Consecutive failures back off exponentially up to
// maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, source mpd.Source, interval time.Duration) {
	if interval <= 0 {
		interval = defaultQueueRefresh
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures := refresh(ctx, store, source)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refresh re-reads the queue when the daemon's queue version has moved and
// returns the number of consecutive failures.
func refresh(ctx context.Context, store *state.Store, source mpd.Source) int {
	status, err := source.FetchStatus(ctx)
	if err != nil {
		return recordFailure(ctx, store, "status", err)
	}

	if version, ok := store.Version(); ok && version == status.QueueVersion {
		store.UpdateStatus(status)
		return 0
	}

	queue, err := source.FetchQueue(ctx)
	if err != nil {
		return recordFailure(ctx, store, "queue", err)
	}
	store.Update(&status, queue, nil)
	return 0
}

func recordFailure(ctx context.Context, store *state.Store, what string, err error) int {
	store.Update(nil, nil, err)
	if ctx.Err() == nil {
		log.Printf("queue refresh: %s poll failed: %v", what, err)
	}
	return store.Snapshot().ConsecutiveFailures
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if base <= 0 {
		base = defaultQueueRefresh
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
