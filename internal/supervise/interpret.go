package supervise

import (
	"encoding/json"
	"strings"

	"github.com/sandwatch/sandwatch/pkg/types"
)

// MatchOutput checks captured stdout for an exact, case-sensitive
// substring. No whitespace normalization: a near-miss (say, a different
// filesystem reported at the same path) must not match.
func MatchOutput(stdout, marker string) types.MatchVerdict {
	return types.MatchVerdict{
		Matched: strings.Contains(stdout, marker),
		Raw:     stdout,
	}
}

// ParseOutput attempts to parse captured stdout as JSON. On failure the
// raw text is retained and Parsed stays nil; the caller gets data either
// way, never an error.
func ParseOutput(stdout string) types.ParseVerdict {
	var parsed any
	if err := json.Unmarshal([]byte(stdout), &parsed); err != nil {
		return types.ParseVerdict{Raw: stdout}
	}
	return types.ParseVerdict{Parsed: parsed, Raw: stdout}
}

// FirstNonEmpty returns the trimmed first non-empty stream, preferring
// stdout over stderr. Used for simple value probes like version strings.
func FirstNonEmpty(logs *types.LogSnapshot) string {
	if out := strings.TrimSpace(logs.Stdout); out != "" {
		return out
	}
	return strings.TrimSpace(logs.Stderr)
}
