package constellation

import (
	"context"
	"net/url"
)

// Worker is the script/layout/render worker trio behind one Pipeline (§3,
// §6). Implementations live outside this package (see internal/worker);
// the coordinator only ever sees this interface.
type Worker interface {
	// Load issues a navigation to url, recording navType on the pipeline.
	Load(ctx context.Context, u *url.URL, navType NavigationType) error
	// Reload re-issues the pipeline's current URL, e.g. for a history
	// traversal (§4.6).
	Reload(ctx context.Context, navType NavigationType) error
	// Execute runs a script-only URL (§4.2); it never produces a visible
	// frame.
	Execute(ctx context.Context, u *url.URL) error
	// GrantPaintPermission and RevokePaintPermission gate whether this
	// worker's renderer may push frames to the compositor (§4.8).
	GrantPaintPermission()
	RevokePaintPermission()
	// ResizeInactive notifies a non-visible pipeline of a window resize
	// (§4.9).
	ResizeInactive(size Size)
	// Exit tears down the worker trio. Idempotent.
	Exit() error
}

// Profiler is an opaque handle passed through to pipeline creation.
// Profiling itself is out of scope (§1).
type Profiler interface{}

// OptsSnapshot is an opaque, immutable options bundle passed through to
// pipeline creation. CLI/option parsing is out of scope (§1); this is
// whatever the embedder decided once, up front.
type OptsSnapshot struct {
	Headless bool
}

// Resource is the resource-loading subsystem's handle, used only to
// deliver the opaque Exit signal (§6).
type Resource interface {
	Exit()
}

// ImageCache is the image-cache handle, used only to deliver the opaque
// Exit signal (§6).
type ImageCache interface {
	Exit()
}

// WorkerFactory creates the worker trio behind a new Pipeline (§6
// "Pipeline creation").
type WorkerFactory interface {
	// New allocates a fresh script/layout/render worker trio.
	New(ctx context.Context, id PipelineID, subpage *SubpageID, profiler Profiler, opts OptsSnapshot, size Size) (Worker, error)
	// NewSameOrigin allocates a worker trio that reuses source's script
	// worker, per the same-origin rule in §4.4 step 3. It omits the
	// resource handle, matching §6's same-origin variant.
	NewSameOrigin(ctx context.Context, id PipelineID, subpage *SubpageID, profiler Profiler, opts OptsSnapshot, source Worker, size Size) (Worker, error)
}

// Pipeline is a handle to one document's worker trio, shareable across
// frame-tree nodes and the registry (§3).
type Pipeline struct {
	ID      PipelineID
	Subpage *SubpageID // nil iff root
	URL     *url.URL   // nil until first load issued

	// NavType is set when a load is issued; it distinguishes a fresh
	// Load from a history Navigate (§3). NavigationUnset means no load
	// has committed a navigation type yet, e.g. an iframe in progress.
	NavType NavigationType

	worker Worker

	paintGranted bool
}

func newPipeline(id PipelineID, subpage *SubpageID, w Worker) *Pipeline {
	return &Pipeline{ID: id, Subpage: subpage, worker: w}
}

// Load issues a fresh navigation or history traversal to url (§4.2, §4.5).
func (p *Pipeline) Load(ctx context.Context, u *url.URL, navType NavigationType) error {
	p.URL = u
	p.NavType = navType
	return p.worker.Load(ctx, u, navType)
}

// Reload re-issues the pipeline's current URL under a new navigation type,
// used for history traversal (§4.6).
func (p *Pipeline) Reload(ctx context.Context, navType NavigationType) error {
	p.NavType = navType
	return p.worker.Reload(ctx, navType)
}

// Execute runs a script-only (".js") URL; it never becomes a visible frame
// and does not alter NavType (§4.2).
func (p *Pipeline) Execute(ctx context.Context, u *url.URL) error {
	return p.worker.Execute(ctx, u)
}

// GrantPaintPermission grants this pipeline the right to push frames to
// the compositor (§4.8 step 3).
func (p *Pipeline) GrantPaintPermission() {
	p.paintGranted = true
	p.worker.GrantPaintPermission()
}

// RevokePaintPermission revokes a previously granted right to paint
// (§4.6, §4.7).
func (p *Pipeline) RevokePaintPermission() {
	p.paintGranted = false
	p.worker.RevokePaintPermission()
}

// PaintGranted reports whether this pipeline currently holds paint
// permission.
func (p *Pipeline) PaintGranted() bool {
	return p.paintGranted
}

// Exit tears down the pipeline's worker trio. Only called from the single
// authoritative destroy path in lifecycle.go / paint.go step 4 (§9).
func (p *Pipeline) Exit() error {
	return p.worker.Exit()
}

// Registry maps PipelineID to Pipeline. Every Pipeline ever created is
// inserted at creation and removed only by the eviction path (§3).
type Registry struct {
	pipelines map[PipelineID]*Pipeline
}

// NewRegistry returns an empty pipeline registry.
func NewRegistry() *Registry {
	return &Registry{pipelines: make(map[PipelineID]*Pipeline)}
}

// Insert registers p under p.ID.
func (r *Registry) Insert(p *Pipeline) {
	r.pipelines[p.ID] = p
}

// Get returns the pipeline registered under id, or nil if absent.
func (r *Registry) Get(id PipelineID) *Pipeline {
	return r.pipelines[id]
}

// Remove unregisters id.
func (r *Registry) Remove(id PipelineID) {
	delete(r.pipelines, id)
}

// Len reports the number of registered pipelines.
func (r *Registry) Len() int {
	return len(r.pipelines)
}

// IDs returns every registered pipeline id, in no particular order.
func (r *Registry) IDs() []PipelineID {
	ids := make([]PipelineID, 0, len(r.pipelines))
	for id := range r.pipelines {
		ids = append(ids, id)
	}
	return ids
}

// All returns every registered pipeline, in no particular order.
func (r *Registry) All() []*Pipeline {
	all := make([]*Pipeline, 0, len(r.pipelines))
	for _, p := range r.pipelines {
		all = append(all, p)
	}
	return all
}
