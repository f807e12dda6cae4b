package supervise

import (
	"context"
	"errors"
	"testing"

	"github.com/sandwatch/sandwatch/pkg/types"
)

func handle(id, startTime string, status types.ProcessStatus) *types.ProcessHandle {
	return &types.ProcessHandle{ID: id, Command: "cmd " + id, Status: status, StartTime: startTime}
}

func TestRegistryList_Ordering(t *testing.T) {
	b := newFakeBackend()
	b.handles = []*types.ProcessHandle{
		handle("old-done", "2026-08-01T10:00:00Z", types.StatusCompleted),
		handle("failed", "2026-08-01T12:00:00Z", types.StatusFailed),
		handle("run-old", "2026-08-01T09:00:00Z", types.StatusRunning),
		handle("new-done", "2026-08-01T11:00:00Z", types.StatusCompleted),
		handle("no-time-done", "", types.StatusCompleted),
		handle("run-new", "2026-08-01T13:00:00Z", types.StatusRunning),
		handle("starting", "2026-08-01T08:00:00Z", types.StatusStarting),
	}

	records, err := NewRegistry(b).List(context.Background(), false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	want := []string{"run-new", "run-old", "starting", "new-done", "old-done", "no-time-done", "failed"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, id := range want {
		if records[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, records[i].ID)
		}
	}
}

func TestRegistryList_UnknownStatusLast(t *testing.T) {
	b := newFakeBackend()
	b.handles = []*types.ProcessHandle{
		handle("weird", "2026-08-01T23:00:00Z", types.ProcessStatus("paused")),
		handle("failed", "2026-08-01T01:00:00Z", types.StatusFailed),
	}

	records, err := NewRegistry(b).List(context.Background(), false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if records[len(records)-1].ID != "weird" {
		t.Error("unknown status must sort after all known statuses")
	}
}

func TestRegistryList_StableOnTies(t *testing.T) {
	b := newFakeBackend()
	b.handles = []*types.ProcessHandle{
		handle("a", "2026-08-01T10:00:00Z", types.StatusCompleted),
		handle("b", "2026-08-01T10:00:00Z", types.StatusCompleted),
		handle("c", "2026-08-01T10:00:00Z", types.StatusCompleted),
	}

	records, err := NewRegistry(b).List(context.Background(), false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for i, id := range []string{"a", "b", "c"} {
		if records[i].ID != id {
			t.Errorf("tie order not stable: position %d is %s", i, records[i].ID)
		}
	}
}

func TestRegistryList_LogEnrichment(t *testing.T) {
	b := newFakeBackend()
	b.handles = []*types.ProcessHandle{
		handle("ok", "2026-08-01T10:00:00Z", types.StatusRunning),
		handle("broken", "2026-08-01T09:00:00Z", types.StatusRunning),
	}
	b.logs["ok"] = &types.LogSnapshot{Stdout: "listening on :8080"}
	b.logsErr["broken"] = errors.New("log stream gone")

	records, err := NewRegistry(b).List(context.Background(), true)
	if err != nil {
		t.Fatalf("a per-process log failure must not fail the listing: %v", err)
	}

	byID := map[string]types.ProcessRecord{}
	for _, r := range records {
		byID[r.ID] = r
	}
	if byID["ok"].Stdout != "listening on :8080" {
		t.Errorf("expected logs on healthy record, got %q", byID["ok"].Stdout)
	}
	if byID["broken"].LogsError != "log stream gone" {
		t.Errorf("expected logs_error marker, got %q", byID["broken"].LogsError)
	}
	if byID["broken"].Stdout != "" {
		t.Error("failed record must not carry stdout")
	}
}

func TestRegistryList_BackendError(t *testing.T) {
	b := newFakeBackend()
	b.listErr = errors.New("backend down")

	_, err := NewRegistry(b).List(context.Background(), false)
	if err == nil {
		t.Fatal("expected error when the backend listing fails")
	}
}
