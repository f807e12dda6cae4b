package supervise

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sandwatch/sandwatch/internal/backend"
	"github.com/sandwatch/sandwatch/pkg/types"
)

// Registry reads the backend's full process table.
type Registry struct {
	backend backend.Backend
}

// NewRegistry creates a process registry reader.
func NewRegistry(b backend.Backend) *Registry {
	return &Registry{backend: b}
}

// Handles returns the raw, unsorted process listing.
func (r *Registry) Handles(ctx context.Context) ([]*types.ProcessHandle, error) {
	handles, err := r.backend.ListProcesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	return handles, nil
}

// Logs fetches the current log snapshot for one handle.
func (r *Registry) Logs(ctx context.Context, id string) (*types.LogSnapshot, error) {
	logs, err := r.backend.GetLogs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("logs for %s: %w", id, err)
	}
	return logs, nil
}

// List returns all processes in display order: active first, then by start
// time descending within each status. With includeLogs each record is
// enriched with a log snapshot; a log-fetch failure for one process marks
// that record's logs_error and never fails the listing.
func (r *Registry) List(ctx context.Context, includeLogs bool) ([]types.ProcessRecord, error) {
	handles, err := r.Handles(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]types.ProcessRecord, len(handles))
	for i, h := range handles {
		records[i] = types.ProcessRecord{ProcessHandle: *h}
	}

	if includeLogs {
		// Fetches run concurrently but land at their own index, so the
		// final order never depends on fetch completion order.
		var wg sync.WaitGroup
		for i := range records {
			wg.Add(1)
			go func(rec *types.ProcessRecord) {
				defer wg.Done()
				logs, err := r.backend.GetLogs(ctx, rec.ID)
				if err != nil {
					rec.LogsError = err.Error()
					return
				}
				rec.Stdout = logs.Stdout
				rec.Stderr = logs.Stderr
			}(&records[i])
		}
		wg.Wait()
	}

	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := statusRank(records[i].Status), statusRank(records[j].Status)
		if ri != rj {
			return ri < rj
		}
		// Descending start time. An absent StartTime compares as the
		// empty string, which lands last within the status bucket.
		return records[i].StartTime > records[j].StartTime
	})

	return records, nil
}

func statusRank(s types.ProcessStatus) int {
	switch s {
	case types.StatusRunning:
		return 0
	case types.StatusStarting:
		return 1
	case types.StatusCompleted:
		return 2
	case types.StatusFailed:
		return 3
	default:
		return 99
	}
}
