package constellation

import "context"

// Compositor is the coordinator's view of the compositing process (§6).
// It is the one genuinely cross-process collaborator this package talks
// to directly; see internal/compositor for a gobwas/ws-backed
// implementation and an in-memory fake for tests.
type Compositor interface {
	// SetIds publishes a frame-tree snapshot and blocks until the
	// compositor acknowledges that its id table has been swapped in
	// (§4.8 step 2, §5 "suspension points").
	SetIds(ctx context.Context, tree *SendableFrameTree) error

	// WindowSize returns the current window size. Queried synchronously
	// at InitLoadUrl time (§4.3, §6).
	WindowSize(ctx context.Context) (Size, error)
}

// grantPaintPermission runs the paint-permission handshake for tree, and,
// if the tree's root pipeline just completed a fresh Load, commits it to
// history (§4.8).
func (c *Coordinator) grantPaintPermission(ctx context.Context, tree *FrameTree) {
	if err := c.setIDs(ctx, tree); err != nil {
		c.errf("constellation: SetIds failed: %v", err)
		return
	}

	if tree.Pipeline.NavType != NavigationLoad {
		// Navigate and Unset navigation types don't mutate history
		// (§4.8 step 4).
		return
	}

	evicted := c.nav.Load(tree)
	for _, evictedTree := range evicted {
		for _, frame := range evictedTree.Iter() {
			if !c.nav.Contains(frame.Pipeline.ID) {
				if err := frame.Pipeline.Exit(); err != nil {
					c.errf("constellation: pipeline %d exit: %v", frame.Pipeline.ID, err)
				}
				c.registry.Remove(frame.Pipeline.ID)
			}
		}
	}
}

// setIDs builds a SendableFrameTree snapshot, synchronizes the compositor
// via SetIds, and then grants paint permission to every pipeline in tree
// (§4.8 steps 1-3).
func (c *Coordinator) setIDs(ctx context.Context, tree *FrameTree) error {
	snapshot := tree.ToSendable()
	if err := c.compositor.SetIds(ctx, snapshot); err != nil {
		return err
	}
	for _, frame := range tree.Iter() {
		frame.Pipeline.GrantPaintPermission()
	}
	return nil
}
