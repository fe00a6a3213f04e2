package constellation

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Coordinator is the single long-lived task that owns the pipeline
// registry, frame tree, navigation context, and pending-change queue, and
// serializes every lifecycle event into one ordered stream (§2, §5).
//
// All mutation funnels through Run's dispatch; nothing outside this
// package ever reaches into a Coordinator's fields directly.
type Coordinator struct {
	inbox chan Msg
	done  chan struct{}

	registry *Registry
	nav      *NavigationContext
	pending  *pendingQueue

	nextID PipelineID

	compositor Compositor
	resource   Resource
	imageCache ImageCache
	profiler   Profiler
	opts       OptsSnapshot
	workers    WorkerFactory

	logf, debugf, errf LogFunc
}

// NewCoordinator constructs a Coordinator. workers must be non-nil; it is
// how the coordinator spawns each pipeline's worker trio (§6). Callers
// configure the compositor and other external collaborators via
// CoordinatorOptions before calling Run.
func NewCoordinator(workers WorkerFactory, opts ...CoordinatorOption) (*Coordinator, error) {
	c := &Coordinator{
		inbox:    make(chan Msg),
		done:     make(chan struct{}),
		registry: NewRegistry(),
		nav:      NewNavigationContext(),
		pending:  newPendingQueue(),
		workers:  workers,
		logf:     defaultLogf,
		debugf:   defaultDebugf,
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	if c.errf == nil {
		c.errf = func(s string, v ...interface{}) { c.logf("ERROR: "+s, v...) }
	}
	if c.compositor == nil {
		return nil, Error("constellation: no compositor configured")
	}
	return c, nil
}

// Inbox returns the channel callers send messages on. The coordinator
// processes exactly one message at a time, to completion, in the order
// received (§4.1, §5).
func (c *Coordinator) Inbox() chan<- Msg {
	return c.inbox
}

// Done is closed once the coordinator has processed an ExitMsg and
// stopped.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Run is the coordinator loop (§4.1). It blocks until an ExitMsg is
// received or ctx is cancelled, processing one message at a time; handlers
// never interleave.
func (c *Coordinator) Run(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case msg := <-c.inbox:
			if !c.dispatch(ctx, msg) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// dispatch routes msg to its handler. It returns false only for ExitMsg,
// which stops the loop (§4.1).
func (c *Coordinator) dispatch(ctx context.Context, msg Msg) bool {
	switch m := msg.(type) {
	case ExitMsg:
		c.handleExit(m)
		return false
	case InitLoadURLMsg:
		c.handleInitLoadURL(ctx, m)
	case LoadIframeURLMsg:
		c.handleLoadIframeURL(ctx, m)
	case LoadURLMsg:
		c.handleLoadURL(ctx, m)
	case NavigateMsg:
		c.handleNavigate(ctx, m)
	case RendererReadyMsg:
		c.handleRendererReady(ctx, m)
	case ResizedWindowBroadcastMsg:
		c.handleResizedWindowBroadcast(m)
	default:
		c.fatalf("constellation: unhandled message type %T", msg)
	}
	return true
}

// fatalf logs and panics. Per spec.md §7, invariant violations are fatal
// programming bugs: an upstream actor violated the protocol and further
// coordinator state is untrustworthy, so there is no sane recovery beyond
// crashing the single goroutine that owns all of it.
func (c *Coordinator) fatalf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	c.errf(msg)
	panic(Error(msg))
}

// allocateID returns a fresh, strictly increasing PipelineID (§4.2).
func (c *Coordinator) allocateID() PipelineID {
	id := c.nextID
	c.nextID++
	return id
}

// isScriptOnly reports whether u is a script-only resource — one whose
// path ends in ".js" — per §4.2. Such loads are dispatched to the script
// worker directly and never become a visible frame.
func isScriptOnly(u *url.URL) bool {
	return strings.HasSuffix(u.Path, ".js")
}

// sameOrigin compares host and port only; scheme and path are deliberately
// ignored (§4.4 step 3, §9 open question).
func sameOrigin(a, b *url.URL) bool {
	return a.Hostname() == b.Hostname() && a.Port() == b.Port()
}

// handleInitLoadURL bootstraps the first pipeline (§4.3). It must be
// called exactly once, before any other message references a pipeline;
// that precondition is not defended against here, matching the original
// implementation (§4.3) — a second call simply allocates another "root"
// alongside whatever already exists.
func (c *Coordinator) handleInitLoadURL(ctx context.Context, msg InitLoadURLMsg) {
	size, err := c.compositor.WindowSize(ctx)
	if err != nil {
		c.fatalf("constellation: could not get window size from compositor: %v", err)
	}

	id := c.allocateID()
	w, err := c.workers.New(ctx, id, nil, c.profiler, c.opts, size)
	if err != nil {
		c.fatalf("constellation: could not create pipeline %d: %v", id, err)
	}
	p := newPipeline(id, nil, w)

	if isScriptOnly(msg.URL) {
		if err := p.Execute(ctx, msg.URL); err != nil {
			c.errf("constellation: execute %s on pipeline %d: %v", msg.URL, id, err)
		}
	} else {
		if err := p.Load(ctx, msg.URL, NavigationLoad); err != nil {
			c.errf("constellation: load %s on pipeline %d: %v", msg.URL, id, err)
		}
		c.pending.Push(&FrameChange{
			Before: nil,
			After:  &FrameTree{Pipeline: p},
		})
	}
	c.registry.Insert(p)
}

// handleLoadIframeURL handles a newly parsed <iframe> (§4.4).
func (c *Coordinator) handleLoadIframeURL(ctx context.Context, msg LoadIframeURLMsg) {
	frameTrees := append(c.nav.FindAll(msg.Source), c.pending.findMatching(msg.Source)...)
	if len(frameTrees) == 0 {
		c.fatalf("constellation: %s", ErrSourceNotFound)
	}

	sourcePipeline := c.registry.Get(msg.Source)
	if sourcePipeline == nil {
		c.fatalf("constellation: %s: %d", ErrPipelineNotRegistered, msg.Source)
	}
	if sourcePipeline.URL == nil {
		c.fatalf("constellation: %s: %d", ErrSourceURLUnset, msg.Source)
	}

	id := c.allocateID()
	subpage := msg.Subpage
	var w Worker
	var err error
	if sameOrigin(sourcePipeline.URL, msg.URL) {
		w, err = c.workers.NewSameOrigin(ctx, id, &subpage, c.profiler, c.opts, sourcePipeline.worker, msg.Size)
	} else {
		w, err = c.workers.New(ctx, id, &subpage, c.profiler, c.opts, msg.Size)
	}
	if err != nil {
		c.fatalf("constellation: could not create iframe pipeline %d: %v", id, err)
	}
	p := newPipeline(id, &subpage, w)

	if isScriptOnly(msg.URL) {
		if err := p.Execute(ctx, msg.URL); err != nil {
			c.errf("constellation: execute %s on pipeline %d: %v", msg.URL, id, err)
		}
	} else {
		// NavType stays Unset: a child iframe never triggers history
		// insertion on RendererReady (§4.4 step 4).
		if err := p.Load(ctx, msg.URL, NavigationUnset); err != nil {
			c.errf("constellation: load %s on pipeline %d: %v", msg.URL, id, err)
		}
	}

	// §9 open question: this attaches the child immediately, without
	// enqueuing a FrameChange or waiting for paint permission. Whether
	// intentional or a latent bug in the original is unclear; the
	// behavior is preserved here.
	c.debugf("constellation: iframe pipeline %d attached to %d matching frame(s) without a paint-permission grant", id, len(frameTrees))
	for _, ft := range frameTrees {
		ft.Children = append(ft.Children, &FrameTree{
			Pipeline: p,
			Parent:   sourcePipeline,
		})
	}
	c.registry.Insert(p)
}

// handleLoadURL handles a top-level or explicit frame navigation (§4.5).
func (c *Coordinator) handleLoadURL(ctx context.Context, msg LoadURLMsg) {
	current := c.nav.Current()
	if current == nil {
		c.fatalf("constellation: %s", ErrSourceNotInCurrentFrame)
	}
	sourceFrame := current.Find(msg.Source)
	if sourceFrame == nil {
		c.fatalf("constellation: %s: %d", ErrSourceNotInCurrentFrame, msg.Source)
	}

	for _, change := range c.pending.All() {
		if change.Before == nil {
			c.fatalf("constellation: %s", ErrPendingBeforeUnset)
		}
		changingFrame := current.Find(*change.Before)
		if changingFrame == nil {
			c.fatalf("constellation: %s: %d", ErrPendingBeforeNotInCurrentFrame, *change.Before)
		}
		if changingFrame.Contains(msg.Source) || sourceFrame.Contains(*change.Before) {
			// A pending change already covers or supersedes this
			// load; drop it silently (§4.5, §8 laws).
			c.debugf("constellation: LoadUrl from %d superseded by pending change for %d", msg.Source, *change.Before)
			return
		}
	}

	parent := sourceFrame.Parent
	subpage := sourceFrame.Pipeline.Subpage
	id := c.allocateID()
	w, err := c.workers.New(ctx, id, subpage, c.profiler, c.opts, msg.Size)
	if err != nil {
		c.fatalf("constellation: could not create pipeline %d: %v", id, err)
	}
	p := newPipeline(id, subpage, w)

	if isScriptOnly(msg.URL) {
		if err := p.Execute(ctx, msg.URL); err != nil {
			c.errf("constellation: execute %s on pipeline %d: %v", msg.URL, id, err)
		}
	} else {
		if err := p.Load(ctx, msg.URL, NavigationLoad); err != nil {
			c.errf("constellation: load %s on pipeline %d: %v", msg.URL, id, err)
		}
		c.pending.Push(&FrameChange{
			Before: &msg.Source,
			After:  &FrameTree{Pipeline: p, Parent: parent},
		})
	}
	c.registry.Insert(p)
}

// handleNavigate handles a back/forward request (§4.6).
func (c *Coordinator) handleNavigate(ctx context.Context, msg NavigateMsg) {
	switch msg.Direction {
	case Forward:
		if len(c.nav.Next()) == 0 {
			c.debugf("constellation: no next page to navigate to")
			return
		}
	case Back:
		if len(c.nav.Previous()) == 0 {
			c.debugf("constellation: no previous page to navigate to")
			return
		}
	}

	if old := c.nav.Current(); old != nil {
		for _, frame := range old.Iter() {
			frame.Pipeline.RevokePaintPermission()
		}
	}

	var destination *FrameTree
	if msg.Direction == Forward {
		destination = c.nav.Forward()
	} else {
		destination = c.nav.Back()
	}

	for _, frame := range destination.Iter() {
		if err := frame.Pipeline.Reload(ctx, NavigationNavigate); err != nil {
			c.errf("constellation: reload pipeline %d: %v", frame.Pipeline.ID, err)
		}
	}

	c.grantPaintPermission(ctx, destination)
}

// handleRendererReady handles a pipeline's request for paint permission
// (§4.7).
func (c *Coordinator) handleRendererReady(ctx context.Context, msg RendererReadyMsg) {
	if current := c.nav.Current(); current != nil && current.Contains(msg.Pipeline) {
		// Reload path (Navigate): republish ids, nothing else to do.
		if err := c.setIDs(ctx, current); err != nil {
			c.errf("constellation: SetIds failed: %v", err)
		}
		return
	}

	change, ok := c.pending.popLastMatchingAfter(msg.Pipeline)
	if !ok {
		// This pipeline was superseded, or otherwise will never
		// receive paint permission (§4.7, §8 laws).
		c.debugf("constellation: RendererReady for %d matches no pending change; ignoring", msg.Pipeline)
		return
	}
	toAdd := change.After

	var nextTree *FrameTree
	if toAdd.Parent == nil {
		nextTree = toAdd
	} else {
		nextTree = c.nav.Current().CloneStructure()
	}

	if change.Before != nil {
		revokeID := *change.Before
		current := c.nav.Current()
		toRevoke := current.Find(revokeID)
		if toRevoke == nil {
			c.fatalf("constellation: %s: %d", ErrPendingBeforeNotInCurrentFrame, revokeID)
		}
		for _, frame := range toRevoke.Iter() {
			frame.Pipeline.RevokePaintPermission()
		}
		if toAdd.Parent != nil {
			nextTree.ReplaceChild(revokeID, toAdd)
		}
	} else {
		if toAdd.Parent != nil {
			parentNode := nextTree.Find(toAdd.Parent.ID)
			if parentNode == nil {
				c.fatalf("constellation: pending frame's parent %d is not in the active tree", toAdd.Parent.ID)
			}
			parentNode.Children = append(parentNode.Children, toAdd)
		}
	}

	c.grantPaintPermission(ctx, nextTree)
}
