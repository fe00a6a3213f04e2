// Package imagecache is a thin adapter for the image-cache process this
// coordinator shares no state with beyond an opaque exit signal
// (spec.md §6 "Outbound to image cache: opaque Exit signal only").
package imagecache

import "github.com/arashed/constellation"

// Handle implements constellation.ImageCache.
type Handle struct {
	logf   constellation.LogFunc
	exited bool
}

// New returns a Handle, defaulting logf to a no-op if nil.
func New(logf constellation.LogFunc) *Handle {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &Handle{logf: logf}
}

// Exit implements constellation.ImageCache. Idempotent.
func (h *Handle) Exit() {
	if h.exited {
		return
	}
	h.exited = true
	h.logf("imagecache: exiting")
}
