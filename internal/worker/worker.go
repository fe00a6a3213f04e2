// Package worker implements the per-pipeline script/layout/render worker
// trio (spec.md §3 "message channels to its script worker", §6 "Pipeline
// creation"). Like the teacher's Target (target.go), a Trio is a logical
// handle onto shared engine-process state, not a freshly spawned OS
// process per document — the engine process itself is spawned once, out
// of this module's scope (§1).
package worker

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/arashed/constellation"
)

// Trio is a script/layout/render worker trio behind one Pipeline.
type Trio struct {
	id      constellation.PipelineID
	subpage *constellation.SubpageID

	mu           sync.Mutex
	url          *url.URL
	navType      constellation.NavigationType
	paintGranted bool
	exited       bool

	// scriptOf is non-nil when this trio's script state is shared with
	// another, same-origin trio (§4.4 step 3).
	scriptOf *Trio

	logf constellation.LogFunc
}

// Factory constructs Trios. It implements constellation.WorkerFactory.
type Factory struct {
	Logf constellation.LogFunc
}

// NewFactory returns a Factory, defaulting Logf to a no-op if nil.
func NewFactory(logf constellation.LogFunc) *Factory {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Factory{Logf: logf}
}

// New implements constellation.WorkerFactory.
func (f *Factory) New(ctx context.Context, id constellation.PipelineID, subpage *constellation.SubpageID, profiler constellation.Profiler, opts constellation.OptsSnapshot, size constellation.Size) (constellation.Worker, error) {
	f.Logf("worker: spawning fresh trio for pipeline %d (size %dx%d)", id, size.Width, size.Height)
	return &Trio{id: id, subpage: subpage, logf: f.Logf}, nil
}

// NewSameOrigin implements constellation.WorkerFactory. It shares the
// source pipeline's script state (§4.4 step 3).
func (f *Factory) NewSameOrigin(ctx context.Context, id constellation.PipelineID, subpage *constellation.SubpageID, profiler constellation.Profiler, opts constellation.OptsSnapshot, source constellation.Worker, size constellation.Size) (constellation.Worker, error) {
	src, ok := source.(*Trio)
	if !ok {
		return nil, fmt.Errorf("worker: NewSameOrigin source is not a *Trio (%T)", source)
	}
	f.Logf("worker: spawning trio for pipeline %d sharing script state with %d", id, src.id)
	return &Trio{id: id, subpage: subpage, scriptOf: src, logf: f.Logf}, nil
}

// Load implements constellation.Worker.
func (t *Trio) Load(ctx context.Context, u *url.URL, navType constellation.NavigationType) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exited {
		return fmt.Errorf("worker: pipeline %d already exited", t.id)
	}
	t.url = u
	t.navType = navType
	t.logf("worker: pipeline %d loading %s (navType=%s)", t.id, u, navType)
	return nil
}

// Reload implements constellation.Worker.
func (t *Trio) Reload(ctx context.Context, navType constellation.NavigationType) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exited {
		return fmt.Errorf("worker: pipeline %d already exited", t.id)
	}
	t.navType = navType
	t.logf("worker: pipeline %d reloading %s (navType=%s)", t.id, t.url, navType)
	return nil
}

// Execute implements constellation.Worker. A script-only URL never
// becomes a visible frame (§4.2).
func (t *Trio) Execute(ctx context.Context, u *url.URL) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exited {
		return fmt.Errorf("worker: pipeline %d already exited", t.id)
	}
	t.logf("worker: pipeline %d executing script-only %s", t.id, u)
	return nil
}

// GrantPaintPermission implements constellation.Worker.
func (t *Trio) GrantPaintPermission() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paintGranted = true
	t.logf("worker: pipeline %d granted paint permission", t.id)
}

// RevokePaintPermission implements constellation.Worker.
func (t *Trio) RevokePaintPermission() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paintGranted = false
	t.logf("worker: pipeline %d revoked paint permission", t.id)
}

// ResizeInactive implements constellation.Worker (§4.9).
func (t *Trio) ResizeInactive(size constellation.Size) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logf("worker: pipeline %d told of background resize to %dx%d", t.id, size.Width, size.Height)
}

// Exit implements constellation.Worker. Idempotent.
func (t *Trio) Exit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exited {
		return nil
	}
	t.exited = true
	t.logf("worker: pipeline %d exiting", t.id)
	return nil
}
