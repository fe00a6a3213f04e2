package constellation

import "golang.org/x/exp/slices"

// FrameChange represents a navigation awaiting its new pipeline's
// renderer-ready signal (§3). Before == nil means "this is a root-level
// initial load"; a non-nil Before means "replace the subtree rooted at
// that pipeline id in the current frame tree when After becomes
// paint-ready".
type FrameChange struct {
	Before *PipelineID
	After  *FrameTree
}

// pendingQueue is the set of in-flight navigations awaiting
// RendererReady (§3 "Pending-change queue").
type pendingQueue struct {
	changes []*FrameChange
}

func newPendingQueue() *pendingQueue {
	return &pendingQueue{}
}

// Push enqueues a new pending change.
func (q *pendingQueue) Push(c *FrameChange) {
	q.changes = append(q.changes, c)
}

// All returns every pending change, oldest first. Callers must not mutate
// the returned slice.
func (q *pendingQueue) All() []*FrameChange {
	return q.changes
}

// findMatching returns the matching FrameTree node for source found in the
// After tree of any pending change, across all pending changes (§4.4
// step 1).
func (q *pendingQueue) findMatching(source PipelineID) []*FrameTree {
	var found []*FrameTree
	for _, c := range q.changes {
		if f := c.After.Find(source); f != nil {
			found = append(found, f)
		}
	}
	return found
}

// popLastMatchingAfter removes and returns the *most recently enqueued*
// pending change whose After pipeline id equals id — an rposition search,
// per §4.7: "earlier duplicates, if any, are left in the queue". Reports
// ok=false if no change matches.
func (q *pendingQueue) popLastMatchingAfter(id PipelineID) (*FrameChange, bool) {
	idx := -1
	for i := len(q.changes) - 1; i >= 0; i-- {
		if q.changes[i].After.Pipeline.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false
	}
	c := q.changes[idx]
	q.changes = slices.Delete(q.changes, idx, idx+1)
	return c, true
}
