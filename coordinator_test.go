package constellation

import (
	"context"
	"net/url"
	"sync"
	"testing"
)

// fakeCompositor records every SetIds call and reports a fixed window size.
type fakeCompositor struct {
	mu      sync.Mutex
	size    Size
	history []*SendableFrameTree
}

func newFakeCompositor(size Size) *fakeCompositor {
	return &fakeCompositor{size: size}
}

func (f *fakeCompositor) SetIds(ctx context.Context, tree *SendableFrameTree) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, tree)
	return nil
}

func (f *fakeCompositor) WindowSize(ctx context.Context) (Size, error) {
	return f.size, nil
}

func (f *fakeCompositor) last() *SendableFrameTree {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.history) == 0 {
		return nil
	}
	return f.history[len(f.history)-1]
}

// fakeWorker is an in-memory Worker that just records calls.
type fakeWorker struct {
	id           PipelineID
	sharedWith   PipelineID
	shared       bool
	paintGranted bool
	exited       bool
	resized      int
}

func (w *fakeWorker) Load(ctx context.Context, u *url.URL, navType NavigationType) error { return nil }
func (w *fakeWorker) Reload(ctx context.Context, navType NavigationType) error            { return nil }
func (w *fakeWorker) Execute(ctx context.Context, u *url.URL) error                       { return nil }
func (w *fakeWorker) GrantPaintPermission()                                               { w.paintGranted = true }
func (w *fakeWorker) RevokePaintPermission()                                              { w.paintGranted = false }
func (w *fakeWorker) ResizeInactive(size Size)                                            { w.resized++ }
func (w *fakeWorker) Exit() error                                                         { w.exited = true; return nil }

// fakeWorkerFactory hands out fakeWorkers and records same-origin reuse.
type fakeWorkerFactory struct {
	created []*fakeWorker
}

func (f *fakeWorkerFactory) New(ctx context.Context, id PipelineID, subpage *SubpageID, profiler Profiler, opts OptsSnapshot, size Size) (Worker, error) {
	w := &fakeWorker{id: id}
	f.created = append(f.created, w)
	return w, nil
}

func (f *fakeWorkerFactory) NewSameOrigin(ctx context.Context, id PipelineID, subpage *SubpageID, profiler Profiler, opts OptsSnapshot, source Worker, size Size) (Worker, error) {
	src := source.(*fakeWorker)
	w := &fakeWorker{id: id, sharedWith: src.id, shared: true}
	f.created = append(f.created, w)
	return w, nil
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

func newTestCoordinator(t *testing.T) (*Coordinator, *fakeCompositor, *fakeWorkerFactory) {
	t.Helper()
	comp := newFakeCompositor(Size{Width: 800, Height: 600})
	workers := &fakeWorkerFactory{}
	c, err := NewCoordinator(workers, WithCompositor(comp))
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}
	return c, comp, workers
}

// TestBootstrap covers spec scenario 1: InitLoadUrl then RendererReady(0).
func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	c, comp, _ := newTestCoordinator(t)

	c.handleInitLoadURL(ctx, InitLoadURLMsg{URL: mustURL(t, "http://a/")})
	if got := c.registry.Len(); got != 1 {
		t.Fatalf("registry len = %d, want 1", got)
	}
	if len(c.pending.All()) != 1 {
		t.Fatalf("pending len = %d, want 1", len(c.pending.All()))
	}

	c.handleRendererReady(ctx, RendererReadyMsg{Pipeline: 0})

	if comp.last() == nil {
		t.Fatal("compositor never received SetIds")
	}
	if c.nav.Current() == nil || c.nav.Current().Pipeline.ID != 0 {
		t.Fatalf("current = %v, want pipeline 0", c.nav.Current())
	}
	if len(c.nav.Previous()) != 0 || len(c.nav.Next()) != 0 {
		t.Fatal("previous/next must be empty after bootstrap")
	}
	if !c.registry.Get(0).PaintGranted() {
		t.Fatal("pipeline 0 should hold paint permission")
	}
}

func bootstrapped(t *testing.T) (*Coordinator, *fakeCompositor, *fakeWorkerFactory) {
	t.Helper()
	ctx := context.Background()
	c, comp, workers := newTestCoordinator(t)
	c.handleInitLoadURL(ctx, InitLoadURLMsg{URL: mustURL(t, "http://a/")})
	c.handleRendererReady(ctx, RendererReadyMsg{Pipeline: 0})
	return c, comp, workers
}

// TestLoadIframeURLSameOrigin covers spec scenario 2.
func TestLoadIframeURLSameOrigin(t *testing.T) {
	ctx := context.Background()
	c, _, workers := bootstrapped(t)

	subpage := SubpageID(7)
	c.handleLoadIframeURL(ctx, LoadIframeURLMsg{
		URL:     mustURL(t, "http://a/child"),
		Source:  0,
		Subpage: subpage,
		Size:    Size{Width: 300, Height: 200},
	})

	if c.registry.Len() != 2 {
		t.Fatalf("registry len = %d, want 2", c.registry.Len())
	}
	child := c.registry.Get(1)
	if child == nil {
		t.Fatal("pipeline 1 not registered")
	}
	fw := workers.created[len(workers.created)-1]
	if !fw.shared || fw.sharedWith != 0 {
		t.Fatalf("same-origin iframe should reuse pipeline 0's worker, got shared=%v sharedWith=%d", fw.shared, fw.sharedWith)
	}
	if len(c.nav.Current().Children) != 1 || c.nav.Current().Children[0].Pipeline.ID != 1 {
		t.Fatal("current tree should gain pipeline 1 as an immediate child")
	}
}

// TestLoadIframeURLCrossOrigin covers spec scenario 3.
func TestLoadIframeURLCrossOrigin(t *testing.T) {
	ctx := context.Background()
	c, _, workers := bootstrapped(t)

	c.handleLoadIframeURL(ctx, LoadIframeURLMsg{
		URL:     mustURL(t, "http://b/child"),
		Source:  0,
		Subpage: SubpageID(7),
		Size:    Size{Width: 300, Height: 200},
	})

	fw := workers.created[len(workers.created)-1]
	if fw.shared {
		t.Fatalf("cross-origin iframe must get a fresh worker, got one sharing pipeline %d's", fw.sharedWith)
	}
	if len(c.nav.Current().Children) != 1 {
		t.Fatal("current tree should still gain the iframe as a child")
	}
}

// TestLoadURLSuperseded covers spec scenario 4.
func TestLoadURLSuperseded(t *testing.T) {
	ctx := context.Background()
	c, _, _ := bootstrapped(t)

	c.handleLoadURL(ctx, LoadURLMsg{Source: 0, URL: mustURL(t, "http://a/p1")})
	if len(c.pending.All()) != 1 {
		t.Fatalf("pending len = %d, want 1", len(c.pending.All()))
	}

	c.handleLoadURL(ctx, LoadURLMsg{Source: 0, URL: mustURL(t, "http://a/p2")})
	if len(c.pending.All()) != 1 {
		t.Fatalf("second LoadUrl should be silently dropped; pending len = %d, want 1", len(c.pending.All()))
	}
	if c.registry.Len() != 2 {
		t.Fatalf("registry len = %d, want 2 (pipelines 0 and 1 only)", c.registry.Len())
	}
}

// TestLoadURLCommitsHistory covers spec scenario 5.
func TestLoadURLCommitsHistory(t *testing.T) {
	ctx := context.Background()
	c, comp, _ := bootstrapped(t)

	c.handleLoadURL(ctx, LoadURLMsg{Source: 0, URL: mustURL(t, "http://a/p1")})
	c.handleRendererReady(ctx, RendererReadyMsg{Pipeline: 1})

	if comp.last() == nil || comp.last().PipelineSnapshot.ID != 1 {
		t.Fatal("compositor should have received SetIds for pipeline 1")
	}
	if c.nav.Current() == nil || c.nav.Current().Pipeline.ID != 1 {
		t.Fatalf("current should be pipeline 1, got %v", c.nav.Current())
	}
	if len(c.nav.Previous()) != 1 || c.nav.Previous()[0].Pipeline.ID != 0 {
		t.Fatal("pipeline 0's tree should be pushed onto previous")
	}
	if len(c.nav.Next()) != 0 {
		t.Fatal("next should remain empty")
	}
	if c.registry.Get(0) == nil {
		t.Fatal("pipeline 0 must remain registered; it is still reachable via previous")
	}
}

// TestBackThenNewLoadEvictsForwardStack covers spec scenario 6.
func TestBackThenNewLoadEvictsForwardStack(t *testing.T) {
	ctx := context.Background()
	c, _, _ := bootstrapped(t)

	c.handleLoadURL(ctx, LoadURLMsg{Source: 0, URL: mustURL(t, "http://a/p1")})
	c.handleRendererReady(ctx, RendererReadyMsg{Pipeline: 1})

	c.handleNavigate(ctx, NavigateMsg{Direction: Back})
	if c.nav.Current() == nil || c.nav.Current().Pipeline.ID != 0 {
		t.Fatalf("current should be pipeline 0 after Back, got %v", c.nav.Current())
	}
	if len(c.nav.Next()) != 1 || c.nav.Next()[0].Pipeline.ID != 1 {
		t.Fatal("pipeline 1's tree should now be on next")
	}
	if c.registry.Get(1).PaintGranted() {
		t.Fatal("pipeline 1 should have had paint permission revoked by Back")
	}

	c.handleLoadURL(ctx, LoadURLMsg{Source: 0, URL: mustURL(t, "http://a/p3")})
	c.handleRendererReady(ctx, RendererReadyMsg{Pipeline: 2})

	if len(c.nav.Next()) != 0 {
		t.Fatal("next should be cleared by the new commit")
	}
	if c.registry.Get(1) != nil {
		t.Fatal("pipeline 1 should have been evicted and exited; it's unreachable now")
	}
	if ids := c.registry.IDs(); len(ids) != 2 {
		t.Fatalf("final registry should be {0,2}, got %d entries", len(ids))
	}
	if c.registry.Get(0) == nil || c.registry.Get(2) == nil {
		t.Fatal("final registry should contain pipelines 0 and 2")
	}
}

// TestNavigateEmptyStackIsNoop covers the §8 law that Navigate against an
// empty stack is a silent no-op.
func TestNavigateEmptyStackIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _, _ := bootstrapped(t)

	c.handleNavigate(ctx, NavigateMsg{Direction: Forward})
	if c.nav.Current() == nil || c.nav.Current().Pipeline.ID != 0 {
		t.Fatal("Forward with an empty next stack must be a no-op")
	}
	c.handleNavigate(ctx, NavigateMsg{Direction: Back})
	if c.nav.Current() == nil || c.nav.Current().Pipeline.ID != 0 {
		t.Fatal("Back with an empty previous stack must be a no-op")
	}
}

// TestRendererReadyUnmatchedIsNoop covers the §8 law that RendererReady for
// an id in neither the current tree nor the pending queue is a no-op.
func TestRendererReadyUnmatchedIsNoop(t *testing.T) {
	ctx := context.Background()
	c, comp, _ := bootstrapped(t)

	before := len(comp.history)
	c.handleRendererReady(ctx, RendererReadyMsg{Pipeline: 999})
	if len(comp.history) != before {
		t.Fatal("RendererReady for an unmatched pipeline must not touch the compositor")
	}
}

// TestScriptOnlyLoadNeverBecomesAFrame covers §4.2: a ".js" URL is executed,
// not loaded, and never produces a pending FrameChange.
func TestScriptOnlyLoadNeverBecomesAFrame(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCoordinator(t)

	c.handleInitLoadURL(ctx, InitLoadURLMsg{URL: mustURL(t, "http://a/worker.js")})
	if len(c.pending.All()) != 0 {
		t.Fatal("a script-only InitLoadUrl must not enqueue a FrameChange")
	}
	if c.registry.Len() != 1 {
		t.Fatalf("registry len = %d, want 1", c.registry.Len())
	}
}

// TestResizedWindowBroadcastSkipsCurrent covers §4.9.
func TestResizedWindowBroadcastSkipsCurrent(t *testing.T) {
	ctx := context.Background()
	c, _, _ := bootstrapped(t)

	c.handleLoadURL(ctx, LoadURLMsg{Source: 0, URL: mustURL(t, "http://a/p1")})
	c.handleRendererReady(ctx, RendererReadyMsg{Pipeline: 1})
	// Now previous=[Tree(0)], current=Tree(1).

	c.handleResizedWindowBroadcast(ResizedWindowBroadcastMsg{Size: Size{Width: 1024, Height: 768}})

	p0 := c.registry.Get(0).worker.(*fakeWorker)
	p1 := c.registry.Get(1).worker.(*fakeWorker)
	if p0.resized != 1 {
		t.Fatalf("inactive pipeline 0 should have been resized once, got %d", p0.resized)
	}
	if p1.resized != 0 {
		t.Fatal("current pipeline 1 must not receive ResizeInactive")
	}
}
