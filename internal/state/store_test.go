package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/skim/internal/mpd"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	status := &mpd.Snapshot{Song: 1, QueueVersion: 7}
	queue := []mpd.QueueEntry{{Pos: 0, Title: "a"}, {Pos: 1, Title: "b"}}

	before := time.Now()
	s.Update(status, queue, nil)

	snap := s.Snapshot()
	if !snap.HasStatus || snap.Status.Song != 1 {
		t.Fatalf("snapshot status = %#v, want song=1 HasStatus=true", snap.Status)
	}
	if snap.Version != 7 {
		t.Fatalf("Version = %d, want 7", snap.Version)
	}
	if len(snap.Queue) != 2 || snap.Queue[0].Title != "a" {
		t.Fatalf("snapshot queue = %#v, want 2 items", snap.Queue)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Queue[0].Title = "mutated"
	snap2 := s.Snapshot()
	if snap2.Queue[0].Title != "a" {
		t.Fatalf("Snapshot should clone queue; got %q want a", snap2.Queue[0].Title)
	}

	// So should the stored one be independent of the caller's slice.
	queue[1].Title = "mutated"
	if s.Snapshot().Queue[1].Title != "b" {
		t.Fatalf("Update should clone queue")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&mpd.Snapshot{Song: 0, QueueVersion: 3}, []mpd.QueueEntry{{Pos: 0}}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, nil, origErr)

	snap := s.Snapshot()
	if snap.HasStatus != prev.HasStatus || snap.Status.QueueVersion != prev.Status.QueueVersion {
		t.Fatalf("status changed on error: got %#v want %#v", snap.Status, prev.Status)
	}
	if len(snap.Queue) != 1 || snap.Version != 3 {
		t.Fatalf("queue changed on error: got %#v (v%d) want %#v", snap.Queue, snap.Version, prev.Queue)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_Version(t *testing.T) {
	var s Store

	if _, ok := s.Version(); ok {
		t.Fatal("Version() ok = true before any update")
	}

	s.Update(&mpd.Snapshot{QueueVersion: 42}, nil, nil)
	v, ok := s.Version()
	if !ok || v != 42 {
		t.Fatalf("Version() = %d, %v; want 42, true", v, ok)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	for i, wantOffline := range []bool{false, true, true} {
		s.Update(nil, nil, errors.New("fail"))
		snap = s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v, want %v after %d failures", snap.IsOffline(), wantOffline, i+1)
		}
		if s.Offline() != wantOffline {
			t.Fatalf("Offline() = %v, want %v after %d failures", s.Offline(), wantOffline, i+1)
		}
	}

	// Success resets counter
	s.Update(&mpd.Snapshot{}, nil, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}

func TestStore_UpdateStatusKeepsQueue(t *testing.T) {
	var s Store

	s.Update(&mpd.Snapshot{Song: 0, QueueVersion: 5}, []mpd.QueueEntry{{Pos: 0}, {Pos: 1}}, nil)
	s.Update(nil, nil, errors.New("blip"))
	s.UpdateStatus(mpd.Snapshot{Song: 1, QueueVersion: 5})

	snap := s.Snapshot()
	if snap.Status.Song != 1 {
		t.Fatalf("Status.Song = %d, want 1", snap.Status.Song)
	}
	if len(snap.Queue) != 2 || snap.Version != 5 {
		t.Fatalf("queue = %d entries v%d, want 2 entries v5", len(snap.Queue), snap.Version)
	}
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("failures = %d err = %v, want reset", snap.ConsecutiveFailures, snap.LastError)
	}
}
