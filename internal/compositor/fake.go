package compositor

import (
	"context"
	"sync"

	"github.com/arashed/constellation"
)

// Fake is an in-memory constellation.Compositor for tests: it records
// every SetIds call instead of crossing a real process boundary.
type Fake struct {
	Size constellation.Size

	mu      sync.Mutex
	history []*constellation.SendableFrameTree
}

// NewFake returns a Fake reporting size as its window size.
func NewFake(size constellation.Size) *Fake {
	return &Fake{Size: size}
}

// SetIds implements constellation.Compositor.
func (f *Fake) SetIds(ctx context.Context, tree *constellation.SendableFrameTree) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, tree)
	return nil
}

// WindowSize implements constellation.Compositor.
func (f *Fake) WindowSize(ctx context.Context) (constellation.Size, error) {
	return f.Size, nil
}

// History returns every snapshot passed to SetIds, oldest first.
func (f *Fake) History() []*constellation.SendableFrameTree {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*constellation.SendableFrameTree, len(f.history))
	copy(out, f.history)
	return out
}

// Last returns the most recent snapshot passed to SetIds, or nil.
func (f *Fake) Last() *constellation.SendableFrameTree {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.history) == 0 {
		return nil
	}
	return f.history[len(f.history)-1]
}
