package supervise

import (
	"testing"

	"github.com/sandwatch/sandwatch/pkg/types"
)

func TestMatchOutput(t *testing.T) {
	marker := "tigrisfs on /data/x"

	v := MatchOutput("tigrisfs on /data/x type fuse.tigrisfs (rw,nosuid,nodev)", marker)
	if !v.Matched {
		t.Error("expected exact marker substring to match")
	}

	// A different filesystem at the same path must not match.
	v = MatchOutput("s3fs on /data/x type fuse.s3fs", marker)
	if v.Matched {
		t.Error("different filesystem at the same path must not match")
	}

	// Case-sensitive, no normalization.
	v = MatchOutput("Tigrisfs on /data/x type fuse.tigrisfs", marker)
	if v.Matched {
		t.Error("match must be case-sensitive")
	}

	v = MatchOutput("", marker)
	if v.Matched {
		t.Error("empty output must not match")
	}
	if v.Raw != "" {
		t.Errorf("raw must preserve the original text, got %q", v.Raw)
	}
}

func TestParseOutput_ValidJSON(t *testing.T) {
	v := ParseOutput(`{"port": 8080, "mounts": ["/data/x"]}`)
	if v.Parsed == nil {
		t.Fatal("expected parsed value for valid JSON")
	}
	obj, ok := v.Parsed.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v.Parsed)
	}
	if obj["port"] != float64(8080) {
		t.Errorf("expected port 8080, got %v", obj["port"])
	}
}

func TestParseOutput_InvalidJSON(t *testing.T) {
	raw := "error: config not found"
	v := ParseOutput(raw)
	if v.Parsed != nil {
		t.Errorf("expected nil parsed for invalid JSON, got %v", v.Parsed)
	}
	if v.Raw != raw {
		t.Errorf("raw text must be retained verbatim, got %q", v.Raw)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	got := FirstNonEmpty(&types.LogSnapshot{Stdout: "  v1.4.2\n", Stderr: "warning"})
	if got != "v1.4.2" {
		t.Errorf("expected trimmed stdout preferred, got %q", got)
	}

	got = FirstNonEmpty(&types.LogSnapshot{Stdout: "  \n", Stderr: " gateway 1.4.2 "})
	if got != "gateway 1.4.2" {
		t.Errorf("expected trimmed stderr fallback, got %q", got)
	}

	got = FirstNonEmpty(&types.LogSnapshot{})
	if got != "" {
		t.Errorf("expected empty result for empty streams, got %q", got)
	}
}
