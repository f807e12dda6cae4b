package supervise

import (
	"context"
	"strings"

	"github.com/sandwatch/sandwatch/pkg/types"
)

// Locator finds the live process handle for a known service by its launch
// command signature.
type Locator struct {
	registry  *Registry
	signature string
}

// NewLocator creates a locator for processes whose command contains
// signature. The signature comes from configuration, not a baked-in
// literal.
func NewLocator(registry *Registry, signature string) *Locator {
	return &Locator{registry: registry, signature: signature}
}

// Find scans the unsorted process listing and returns the first handle
// whose command contains the signature, in any status. A nil handle with a
// nil error means no such process exists; callers render that as a
// distinct "no process" answer, not a failure.
func (l *Locator) Find(ctx context.Context) (*types.ProcessHandle, error) {
	handles, err := l.registry.Handles(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range handles {
		if strings.Contains(h.Command, l.signature) {
			return h, nil
		}
	}
	return nil, nil
}
