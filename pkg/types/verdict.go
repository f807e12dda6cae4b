package types

// MatchVerdict is the outcome of a substring check over captured output.
// Raw always carries the original text for diagnostics.
type MatchVerdict struct {
	Matched bool   `json:"matched"`
	Raw     string `json:"raw"`
}

// ParseVerdict is the outcome of parsing captured output as JSON.
// Parsed is non-nil only when Raw is syntactically valid JSON; on parse
// failure Raw is retained and Parsed is nil. Parse failure is data, not
// an error.
type ParseVerdict struct {
	Parsed any    `json:"parsed"`
	Raw    string `json:"raw"`
}

// MountStatus is the result of a storage-mount check. Error distinguishes
// "definitely unmounted" from "could not check"; both report Mounted=false
// for callers that only branch on mount readiness.
type MountStatus struct {
	Mounted bool   `json:"mounted"`
	Error   string `json:"error,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Mount check error kinds.
const (
	ErrConfigurationMissing = "configuration_missing"
	ErrMountInactive        = "mount_inactive"
	ErrCommandFailed        = "command_failed"
	ErrTimeout              = "timeout"
)

// BucketStatus is the result of the control-plane-side bucket probe.
type BucketStatus struct {
	Reachable bool   `json:"reachable"`
	Bucket    string `json:"bucket"`
	Detail    string `json:"detail,omitempty"`
}
