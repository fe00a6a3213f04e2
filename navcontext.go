package constellation

// NavigationContext holds the current frame tree plus the back/forward
// stacks (§3). Invariant: at most one Current; Previous and Next are
// disjoint from Current and from each other.
type NavigationContext struct {
	previous []*FrameTree // oldest at index 0
	current  *FrameTree
	next     []*FrameTree // most-recent-forward at the end
}

// NewNavigationContext returns an empty navigation context.
func NewNavigationContext() *NavigationContext {
	return &NavigationContext{}
}

// Current returns the current frame tree, or nil if none has loaded yet.
func (n *NavigationContext) Current() *FrameTree {
	return n.current
}

// Previous returns the back stack, oldest first. Callers must not mutate
// the returned slice.
func (n *NavigationContext) Previous() []*FrameTree {
	return n.previous
}

// Next returns the forward stack, most-recent-forward last. Callers must
// not mutate the returned slice.
func (n *NavigationContext) Next() []*FrameTree {
	return n.next
}

// Back pushes Current onto the end of Next and pops the last entry of
// Previous into Current (§4.6). Callers must check Previous is non-empty
// first — an empty stack is a benign no-op handled by the coordinator, not
// by Back.
func (n *NavigationContext) Back() *FrameTree {
	n.next = append(n.next, n.current)
	last := len(n.previous) - 1
	n.current = n.previous[last]
	n.previous = n.previous[:last]
	return n.current
}

// Forward moves Current to the end of Previous and pops the last entry of
// Next into Current (§4.6). Callers must check Next is non-empty first.
func (n *NavigationContext) Forward() *FrameTree {
	n.previous = append(n.previous, n.current)
	last := len(n.next) - 1
	n.current = n.next[last]
	n.next = n.next[:last]
	return n.current
}

// Load commits tree as the new Current, pushing the old Current (if any)
// onto Previous and discarding Next entirely. It returns the evicted
// trees — the contents of Next prior to the load — so the caller can exit
// any pipeline no longer reachable (§4.8 step 4, §8 laws).
func (n *NavigationContext) Load(tree *FrameTree) []*FrameTree {
	evicted := n.next
	n.next = nil
	if n.current != nil {
		n.previous = append(n.previous, n.current)
	}
	n.current = tree
	return evicted
}

// FindAll returns every FrameTree node across previous, current, and next
// whose pipeline id matches id (§4.4 step 1).
func (n *NavigationContext) FindAll(id PipelineID) []*FrameTree {
	var found []*FrameTree
	for _, t := range n.previous {
		if f := t.Find(id); f != nil {
			found = append(found, f)
		}
	}
	if n.current != nil {
		if f := n.current.Find(id); f != nil {
			found = append(found, f)
		}
	}
	for _, t := range n.next {
		if f := t.Find(id); f != nil {
			found = append(found, f)
		}
	}
	return found
}

// Contains reports whether id appears in previous, current, or next
// (§4.8 step 4, §8 invariants).
func (n *NavigationContext) Contains(id PipelineID) bool {
	for _, t := range n.previous {
		if t.Contains(id) {
			return true
		}
	}
	if n.current != nil && n.current.Contains(id) {
		return true
	}
	for _, t := range n.next {
		if t.Contains(id) {
			return true
		}
	}
	return false
}
