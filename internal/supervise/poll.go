package supervise

import (
	"context"
	"time"

	"github.com/sandwatch/sandwatch/internal/backend"
	"github.com/sandwatch/sandwatch/pkg/types"
)

// PollProfile bounds a status poll: a fixed interval between checks and a
// maximum number of checks. The bound is caller-supplied; different call
// sites use different profiles depending on expected command latency.
type PollProfile struct {
	Interval    time.Duration
	MaxAttempts int
}

// Standard profiles. QuickPoll (~2s worst case) is for checks that sit on
// a status-page load; PatientPoll (~15s) is for slower commands.
var (
	QuickPoll   = PollProfile{Interval: 200 * time.Millisecond, MaxAttempts: 10}
	PatientPoll = PollProfile{Interval: 500 * time.Millisecond, MaxAttempts: 30}
)

// PollResult is the outcome of waiting on a process. TimedOut means the
// bound was exhausted while the status was still non-terminal; the remote
// process may keep running, this side just stopped waiting.
type PollResult struct {
	Status   types.ProcessStatus
	Attempts int
	TimedOut bool
}

// WaitForExit samples a handle's status at the profile's interval until it
// leaves starting/running or the attempt bound is exhausted. It never
// cancels or signals the remote process; the only side effects are the
// passive status reads. A handle that is already terminal on the first
// check returns immediately with no waits. Bound exhaustion is reported as
// TimedOut, not an error; callers decide whether partial logs are still
// worth fetching.
func WaitForExit(ctx context.Context, b backend.Backend, id string, profile PollProfile) (PollResult, error) {
	var last types.ProcessStatus

	for attempt := 1; attempt <= profile.MaxAttempts; attempt++ {
		status, err := b.GetStatus(ctx, id)
		if err != nil {
			return PollResult{Status: last, Attempts: attempt}, err
		}
		last = status

		if status.Terminal() {
			return PollResult{Status: status, Attempts: attempt}, nil
		}

		if attempt == profile.MaxAttempts {
			break
		}
		select {
		case <-time.After(profile.Interval):
		case <-ctx.Done():
			return PollResult{Status: last, Attempts: attempt}, ctx.Err()
		}
	}

	return PollResult{Status: last, Attempts: profile.MaxAttempts, TimedOut: true}, nil
}
