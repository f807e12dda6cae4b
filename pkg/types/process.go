package types

// ProcessStatus is the backend-reported lifecycle state of a remote process.
type ProcessStatus string

const (
	StatusStarting  ProcessStatus = "starting"
	StatusRunning   ProcessStatus = "running"
	StatusCompleted ProcessStatus = "completed"
	StatusFailed    ProcessStatus = "failed"
)

// Terminal reports whether the status is final. A terminal handle will not
// transition further.
func (s ProcessStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ProcessHandle is a read-only snapshot of a command run by the sandbox
// backend. The backend owns all mutation; this side only polls.
type ProcessHandle struct {
	ID        string        `json:"id"`
	Command   string        `json:"cmd"`
	Status    ProcessStatus `json:"status"`
	StartTime string        `json:"startTime,omitempty"`
	EndTime   string        `json:"endTime,omitempty"`
	ExitCode  *int          `json:"exitCode,omitempty"`
}

// LogSnapshot is a point-in-time capture of a process's output. Repeated
// reads may return different content until the process is terminal.
type LogSnapshot struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// ProcessRecord is a handle enriched with logs for the debug listing.
// LogsError is set when the per-process log fetch failed; the listing
// itself still succeeds.
type ProcessRecord struct {
	ProcessHandle
	Stdout    string `json:"stdout,omitempty"`
	Stderr    string `json:"stderr,omitempty"`
	LogsError string `json:"logs_error,omitempty"`
}
