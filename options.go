package constellation

// CoordinatorOption configures a Coordinator before Run is called.
type CoordinatorOption func(*Coordinator) error

// WithCompositor sets the compositor the coordinator publishes frame-tree
// snapshots to and grants paint permission through (§4.8).
func WithCompositor(c Compositor) CoordinatorOption {
	return func(co *Coordinator) error {
		co.compositor = c
		return nil
	}
}

// WithWorkers sets the factory used to spawn each pipeline's script/layout/
// render worker trio (§6 "Pipeline creation").
func WithWorkers(w WorkerFactory) CoordinatorOption {
	return func(co *Coordinator) error {
		co.workers = w
		return nil
	}
}

// WithResource sets the resource-loading handle, used only to deliver the
// opaque Exit signal on shutdown (§6).
func WithResource(r Resource) CoordinatorOption {
	return func(co *Coordinator) error {
		co.resource = r
		return nil
	}
}

// WithImageCache sets the image-cache handle, used only to deliver the
// opaque Exit signal on shutdown (§6).
func WithImageCache(ic ImageCache) CoordinatorOption {
	return func(co *Coordinator) error {
		co.imageCache = ic
		return nil
	}
}

// WithProfiler sets the profiler handle passed through to pipeline
// creation. Profiling itself is out of scope (§1); the handle is opaque.
func WithProfiler(p Profiler) CoordinatorOption {
	return func(co *Coordinator) error {
		co.profiler = p
		return nil
	}
}

// WithOpts sets the opts snapshot passed through to pipeline creation.
func WithOpts(o OptsSnapshot) CoordinatorOption {
	return func(co *Coordinator) error {
		co.opts = o
		return nil
	}
}

// WithLogf sets the func to receive general logging.
func WithLogf(f LogFunc) CoordinatorOption {
	return func(co *Coordinator) error {
		co.logf = f
		return nil
	}
}

// WithDebugf sets the func to receive debug-level logging, e.g. the benign
// early returns described in spec.md §7.
func WithDebugf(f LogFunc) CoordinatorOption {
	return func(co *Coordinator) error {
		co.debugf = f
		return nil
	}
}

// WithErrorf sets the func to receive error logging.
func WithErrorf(f LogFunc) CoordinatorOption {
	return func(co *Coordinator) error {
		co.errf = f
		return nil
	}
}
