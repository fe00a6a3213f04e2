package constellation

// FrameTree is a rooted tree node of (pipeline, children). The Parent
// field is a back-reference to the parent document's pipeline, not an
// ownership edge — children are owned, Parent is not (§3, §9).
//
// Invariants (§3): for every non-root node N, N.Parent is the pipeline of
// N's tree parent; a pipeline appears at most once per frame tree;
// Children order matches document order of the corresponding iframes.
type FrameTree struct {
	Pipeline *Pipeline
	Parent   *Pipeline // nil iff root
	Children []*FrameTree
}

// Contains reports whether id appears anywhere in the subtree rooted at t,
// recursively (§4.11).
func (t *FrameTree) Contains(id PipelineID) bool {
	if t == nil {
		return false
	}
	if t.Pipeline.ID == id {
		return true
	}
	for _, c := range t.Children {
		if c.Contains(id) {
			return true
		}
	}
	return false
}

// Find returns the first node, in pre-order, whose pipeline id matches id,
// or nil (§4.11).
func (t *FrameTree) Find(id PipelineID) *FrameTree {
	if t == nil {
		return nil
	}
	if t.Pipeline.ID == id {
		return t
	}
	for _, c := range t.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// ReplaceChild looks for a direct or indirect child whose pipeline id
// matches id and swaps it in place for newChild, recursively. newChild
// inherits the displaced node's Parent. It returns the displaced node, or
// newChild unchanged if no such child was found (§4.11).
//
// Note this only ever replaces a *child*: t itself is never replaced, in
// keeping with the original implementation (a node can't replace itself
// from inside its own method).
func (t *FrameTree) ReplaceChild(id PipelineID, newChild *FrameTree) *FrameTree {
	for i, c := range t.Children {
		if c.Pipeline.ID == id {
			newChild.Parent = c.Parent
			t.Children[i] = newChild
			return c
		}
		if replaced := c.ReplaceChild(id, newChild); replaced != newChild {
			return replaced
		}
	}
	return newChild
}

// Iter returns every node of the subtree rooted at t, in depth-first
// pre-order: t itself, then each child's subtree in document order
// (§4.11).
func (t *FrameTree) Iter() []*FrameTree {
	if t == nil {
		return nil
	}
	nodes := make([]*FrameTree, 0, 1)
	var walk func(*FrameTree)
	walk = func(n *FrameTree) {
		nodes = append(nodes, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t)
	return nodes
}

// CloneStructure duplicates every node of the subtree rooted at t, but
// shares the underlying Pipelines, producing an independent subtree that
// can be mutated (e.g. via ReplaceChild) without affecting the original
// (§3, §9).
func (t *FrameTree) CloneStructure() *FrameTree {
	if t == nil {
		return nil
	}
	children := make([]*FrameTree, len(t.Children))
	for i, c := range t.Children {
		children[i] = c.CloneStructure()
	}
	return &FrameTree{
		Pipeline: t.Pipeline,
		Parent:   t.Parent,
		Children: children,
	}
}

// PipelineSnapshot is a detached, immutable copy of a Pipeline's
// identifying attributes, suitable for cross-process transmission (§3
// SendableFrameTree).
type PipelineSnapshot struct {
	ID      PipelineID
	Subpage *SubpageID
	URL     string
	NavType NavigationType
}

func snapshotPipeline(p *Pipeline) PipelineSnapshot {
	s := PipelineSnapshot{ID: p.ID, Subpage: p.Subpage, NavType: p.NavType}
	if p.URL != nil {
		s.URL = p.URL.String()
	}
	return s
}

// SendableFrameTree is a deep, detached snapshot of a FrameTree suitable
// for transmission to the compositor (§3).
type SendableFrameTree struct {
	PipelineSnapshot PipelineSnapshot
	Children         []*SendableFrameTree
}

// Contains reports whether id appears anywhere in the snapshot.
func (s *SendableFrameTree) Contains(id PipelineID) bool {
	if s == nil {
		return false
	}
	if s.PipelineSnapshot.ID == id {
		return true
	}
	for _, c := range s.Children {
		if c.Contains(id) {
			return true
		}
	}
	return false
}

// ToSendable produces a deep snapshot of t for transmission across the
// compositor boundary (§4.11 to_sendable).
func (t *FrameTree) ToSendable() *SendableFrameTree {
	if t == nil {
		return nil
	}
	children := make([]*SendableFrameTree, len(t.Children))
	for i, c := range t.Children {
		children[i] = c.ToSendable()
	}
	return &SendableFrameTree{
		PipelineSnapshot: snapshotPipeline(t.Pipeline),
		Children:         children,
	}
}
