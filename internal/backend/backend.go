package backend

import (
	"context"

	"github.com/sandwatch/sandwatch/pkg/types"
)

// Backend is the capability set the supervision core needs from the
// sandbox runtime. The wire protocol behind it is opaque; every call may
// block on the network and should be bounded by the caller's context.
type Backend interface {
	// StartProcess launches a shell command in the sandbox and returns
	// its handle. The process keeps running server-side regardless of
	// what the caller does with the handle.
	StartProcess(ctx context.Context, command string) (*types.ProcessHandle, error)

	// GetStatus fetches the current status of a process by handle ID.
	GetStatus(ctx context.Context, id string) (types.ProcessStatus, error)

	// GetLogs fetches a point-in-time stdout/stderr snapshot.
	GetLogs(ctx context.Context, id string) (*types.LogSnapshot, error)

	// ListProcesses returns all handles known to the backend session.
	ListProcesses(ctx context.Context) ([]*types.ProcessHandle, error)
}
