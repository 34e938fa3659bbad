package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/skim/internal/mpd"
)

// Snapshot is the latest queue data fetched in the background.
type Snapshot struct {
	Status              mpd.Snapshot
	HasStatus           bool
	Queue               []mpd.QueueEntry
	Version             int // queue version the Queue was fetched at
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the daemon has been unreachable for multiple
// refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. The queue is recorded at the status's
// queue version. When err is non-nil the previous data is kept but the error
// is recorded.
func (s *Store) Update(status *mpd.Snapshot, queue []mpd.QueueEntry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Queue = cloneQueue(queue)
	if status != nil {
		s.snapshot.Status = *status
		s.snapshot.HasStatus = true
		s.snapshot.Version = status.QueueVersion
	} else {
		s.snapshot.HasStatus = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// UpdateStatus records a successful status read whose queue version matches
// the stored queue, leaving the queue untouched.
func (s *Store) UpdateStatus(status mpd.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Status = status
	s.snapshot.HasStatus = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Queue = cloneQueue(s.snapshot.Queue)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Version returns the queue version of the stored queue without copying it.
func (s *Store) Version() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Version, s.snapshot.HasStatus
}

// Offline reports IsOffline without copying the snapshot.
func (s *Store) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.IsOffline()
}

func cloneQueue(items []mpd.QueueEntry) []mpd.QueueEntry {
	if len(items) == 0 {
		return nil
	}
	dup := make([]mpd.QueueEntry, len(items))
	copy(dup, items)
	return dup
}
