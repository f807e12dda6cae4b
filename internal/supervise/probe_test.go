package supervise

import (
	"context"
	"errors"
	"testing"

	"github.com/sandwatch/sandwatch/pkg/types"
)

func TestProberValue(t *testing.T) {
	b := newFakeBackend()
	b.statusSeq["p-1"] = []types.ProcessStatus{types.StatusCompleted}
	b.logs["p-1"] = &types.LogSnapshot{Stdout: "gateway 1.4.2\n"}

	got, err := NewProber(b, testProfile).Value(context.Background(), "gateway --version")
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if got != "gateway 1.4.2" {
		t.Errorf("expected trimmed version string, got %q", got)
	}
}

func TestProberJSON_ParseFailureIsData(t *testing.T) {
	b := newFakeBackend()
	b.statusSeq["p-1"] = []types.ProcessStatus{types.StatusCompleted}
	b.logs["p-1"] = &types.LogSnapshot{Stdout: "cat: /etc/gateway.json: No such file"}

	verdict, err := NewProber(b, testProfile).JSON(context.Background(), "cat /etc/gateway.json")
	if err != nil {
		t.Fatalf("parse failure must not surface as an error: %v", err)
	}
	if verdict.Parsed != nil {
		t.Error("expected nil parsed value")
	}
	if verdict.Raw == "" {
		t.Error("raw output must be retained for diagnostics")
	}
}

func TestProberValue_StartFailure(t *testing.T) {
	b := newFakeBackend()
	b.startErr = errors.New("sandbox unreachable")

	_, err := NewProber(b, testProfile).Value(context.Background(), "gateway --version")
	if err == nil {
		t.Fatal("expected error when start fails")
	}
}
