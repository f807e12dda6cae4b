package supervise

import (
	"context"
	"fmt"

	"github.com/sandwatch/sandwatch/internal/backend"
	"github.com/sandwatch/sandwatch/pkg/types"
)

// Prober runs one-shot commands in the sandbox and interprets their
// output. Used for value probes (version strings) and structured probes
// (JSON config dumps).
type Prober struct {
	backend backend.Backend
	profile PollProfile
}

// NewProber creates a prober with the given poll profile.
func NewProber(b backend.Backend, profile PollProfile) *Prober {
	return &Prober{backend: b, profile: profile}
}

// run starts the command, waits for it within the profile's bound, and
// returns the log snapshot. Timeout is tolerated: whatever output exists
// by then is returned.
func (p *Prober) run(ctx context.Context, command string) (*types.LogSnapshot, error) {
	handle, err := p.backend.StartProcess(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", command, err)
	}
	if _, err := WaitForExit(ctx, p.backend, handle.ID, p.profile); err != nil {
		return nil, fmt.Errorf("wait for %q: %w", command, err)
	}
	logs, err := p.backend.GetLogs(ctx, handle.ID)
	if err != nil {
		return nil, fmt.Errorf("logs for %q: %w", command, err)
	}
	return logs, nil
}

// Value runs command and returns the trimmed first non-empty stream,
// preferring stdout.
func (p *Prober) Value(ctx context.Context, command string) (string, error) {
	logs, err := p.run(ctx, command)
	if err != nil {
		return "", err
	}
	return FirstNonEmpty(logs), nil
}

// JSON runs command and parses its stdout as JSON. A parse failure is
// returned as a verdict with the raw text retained, not as an error.
func (p *Prober) JSON(ctx context.Context, command string) (types.ParseVerdict, error) {
	logs, err := p.run(ctx, command)
	if err != nil {
		return types.ParseVerdict{}, err
	}
	return ParseOutput(logs.Stdout), nil
}
