package supervise

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandwatch/sandwatch/pkg/types"
)

// fakeBackend is a scripted in-memory backend for tests. Status values for
// a handle are consumed one per GetStatus call; the last value repeats once
// the script is exhausted.
type fakeBackend struct {
	mu sync.Mutex

	handles   []*types.ProcessHandle
	statusSeq map[string][]types.ProcessStatus
	logs      map[string]*types.LogSnapshot
	logsErr   map[string]error

	startErr error
	listErr  error

	startCalls  int
	statusCalls int
	logCalls    int
	listCalls   int
	nextID      int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		statusSeq: make(map[string][]types.ProcessStatus),
		logs:      make(map[string]*types.LogSnapshot),
		logsErr:   make(map[string]error),
	}
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls + f.statusCalls + f.logCalls + f.listCalls
}

func (f *fakeBackend) StartProcess(_ context.Context, command string) (*types.ProcessHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.nextID++
	h := &types.ProcessHandle{
		ID:      fmt.Sprintf("p-%d", f.nextID),
		Command: command,
		Status:  types.StatusStarting,
	}
	f.handles = append(f.handles, h)
	return h, nil
}

func (f *fakeBackend) GetStatus(_ context.Context, id string) (types.ProcessStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	seq, ok := f.statusSeq[id]
	if !ok || len(seq) == 0 {
		return "", fmt.Errorf("no such process: %s", id)
	}
	status := seq[0]
	if len(seq) > 1 {
		f.statusSeq[id] = seq[1:]
	}
	return status, nil
}

func (f *fakeBackend) GetLogs(_ context.Context, id string) (*types.LogSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logCalls++
	if err := f.logsErr[id]; err != nil {
		return nil, err
	}
	if logs, ok := f.logs[id]; ok {
		return logs, nil
	}
	return &types.LogSnapshot{}, nil
}

func (f *fakeBackend) ListProcesses(_ context.Context) ([]*types.ProcessHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*types.ProcessHandle, len(f.handles))
	copy(out, f.handles)
	return out, nil
}
