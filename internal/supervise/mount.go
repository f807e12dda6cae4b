package supervise

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sandwatch/sandwatch/internal/backend"
	"github.com/sandwatch/sandwatch/pkg/types"
)

// StorageCredentials are the three values that must all be present before
// any storage-mount check may touch the network. This core only checks
// presence; it never parses or uses them itself.
type StorageCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	AccountID       string
}

// Validate reports the first missing credential. Constant time, no I/O.
func (c StorageCredentials) Validate() error {
	switch {
	case c.AccessKeyID == "":
		return fmt.Errorf("storage access key ID is not configured")
	case c.SecretAccessKey == "":
		return fmt.Errorf("storage secret access key is not configured")
	case c.AccountID == "":
		return fmt.Errorf("storage account ID is not configured")
	}
	return nil
}

// MountDetector checks whether the expected filesystem is mounted at the
// expected path inside the sandbox. Every call recomputes the answer from
// the backend's live state; a prior "mounted" result is never trusted.
type MountDetector struct {
	backend backend.Backend
	path    string
	fstype  string
	creds   StorageCredentials
	profile PollProfile
}

// NewMountDetector builds a detector for fstype at path. The poll profile
// should be short: this check may run on every status-page load.
func NewMountDetector(b backend.Backend, path, fstype string, creds StorageCredentials, profile PollProfile) *MountDetector {
	return &MountDetector{
		backend: b,
		path:    path,
		fstype:  fstype,
		creds:   creds,
		profile: profile,
	}
}

// Marker is the exact substring a mount-table line must contain. Keying on
// "<fstype> on <path>" rather than the path alone rejects a different
// filesystem mounted at the same place.
func (d *MountDetector) Marker() string {
	return fmt.Sprintf("%s on %s", d.fstype, d.path)
}

// Check validates credential presence and then runs the remote detection.
// A missing credential short-circuits with a configuration error and zero
// backend calls.
func (d *MountDetector) Check(ctx context.Context) types.MountStatus {
	if err := d.creds.Validate(); err != nil {
		return types.MountStatus{
			Mounted: false,
			Error:   types.ErrConfigurationMissing,
			Detail:  err.Error(),
		}
	}
	return d.Detect(ctx)
}

// Detect runs the mount-table listing in the sandbox and interprets its
// output. All failures resolve to Mounted=false; the Error kind and the
// verbatim detail keep "definitely unmounted" distinguishable from
// "could not check".
func (d *MountDetector) Detect(ctx context.Context) types.MountStatus {
	marker := d.Marker()
	command := fmt.Sprintf("mount | grep %q", marker)

	handle, err := d.backend.StartProcess(ctx, command)
	if err != nil {
		log.Printf("mount: failed to start check command: %v", err)
		return types.MountStatus{Error: types.ErrCommandFailed, Detail: err.Error()}
	}

	result, err := WaitForExit(ctx, d.backend, handle.ID, d.profile)
	if err != nil {
		log.Printf("mount: poll failed for %s: %v", handle.ID, err)
		return types.MountStatus{Error: types.ErrCommandFailed, Detail: err.Error()}
	}

	// Partial logs are still worth reading on timeout: grep either
	// printed the line by now or it did not.
	logs, err := d.backend.GetLogs(ctx, handle.ID)
	if err != nil {
		log.Printf("mount: log fetch failed for %s: %v", handle.ID, err)
		return types.MountStatus{Error: types.ErrCommandFailed, Detail: err.Error()}
	}

	verdict := MatchOutput(logs.Stdout, marker)
	if verdict.Matched {
		return types.MountStatus{Mounted: true, Detail: strings.TrimSpace(verdict.Raw)}
	}

	if result.TimedOut {
		return types.MountStatus{
			Error:  types.ErrTimeout,
			Detail: fmt.Sprintf("mount check still %s after %d attempts", result.Status, result.Attempts),
		}
	}

	detail := fmt.Sprintf("no %q entry in mount table", marker)
	if out := strings.TrimSpace(verdict.Raw); out != "" {
		detail = fmt.Sprintf("no %q entry in mount table: %s", marker, out)
	}
	return types.MountStatus{Error: types.ErrMountInactive, Detail: detail}
}
