package history

import (
	"testing"

	"github.com/sandwatch/sandwatch/pkg/types"
)

func TestStore_RecordAndRecent(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	checks := []types.MountStatus{
		{Mounted: true, Detail: "tigrisfs on /data/x type fuse.tigrisfs"},
		{Mounted: false, Error: types.ErrMountInactive, Detail: "no entry"},
		{Mounted: false, Error: types.ErrCommandFailed, Detail: "sandbox unreachable"},
	}
	for i, c := range checks {
		if err := store.RecordMountCheck(c, 100+i); err != nil {
			t.Fatalf("RecordMountCheck() error: %v", err)
		}
	}

	entries, err := store.RecentMountChecks(2)
	if err != nil {
		t.Fatalf("RecentMountChecks() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Error != types.ErrCommandFailed {
		t.Errorf("expected most recent check first, got error %q", entries[0].Error)
	}
	if entries[0].DurationMS != 102 {
		t.Errorf("expected duration 102, got %d", entries[0].DurationMS)
	}
}

func TestStore_RecordGatewayLookup(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	if err := store.RecordGatewayLookup("p-7"); err != nil {
		t.Fatalf("RecordGatewayLookup() error: %v", err)
	}
	if err := store.RecordGatewayLookup(""); err != nil {
		t.Fatalf("RecordGatewayLookup() error for not-found: %v", err)
	}
}

func TestStore_RecentMountChecksEmpty(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	entries, err := store.RecentMountChecks(10)
	if err != nil {
		t.Fatalf("RecentMountChecks() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
