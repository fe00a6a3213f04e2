// Package resource is a thin adapter for the resource-loading process
// this coordinator shares no state with beyond an opaque exit signal
// (spec.md §6 "Outbound to resource: opaque Exit signal only").
package resource

import "github.com/arashed/constellation"

// Handle implements constellation.Resource.
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

// Exit implements constellation.Resource. Idempotent.
func (h *Handle) Exit() {
	if h.exited {
		return
	}
	h.exited = true
	h.logf("resource: exiting")
}
