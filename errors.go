package constellation

// Error is a constellation error.
type Error string

// Error satisfies the error interface.
func (err Error) Error() string {
	return string(err)
}

// Error types.
//
// Per spec.md §7, these name invariant violations: a protocol message
// referencing a pipeline or frame that cannot exist given the coordinator's
// own bookkeeping. They are fatal programming bugs, not recoverable
// conditions, and the handler that detects one calls fatalf rather than
// propagating an error value — see fatalf in coordinator.go.
const (
	// ErrSourceNotFound is reported when a LoadIframeUrl's source pipeline
	// id is not present in any frame tree (navigation context or pending
	// changes).
	ErrSourceNotFound Error = "source pipeline id not found in navigation context or pending frames"

	// ErrPipelineNotRegistered is reported when a message references a
	// pipeline id that is absent from the registry.
	ErrPipelineNotRegistered Error = "pipeline not registered"

	// ErrSourceURLUnset is reported when a source pipeline's URL is nil,
	// which should be impossible for any pipeline that has ever issued a
	// LoadIframeUrl.
	ErrSourceURLUnset Error = "source pipeline has no url"

	// ErrSourceNotInCurrentFrame is reported when a LoadUrl's source
	// pipeline id is not in the current frame tree.
	ErrSourceNotInCurrentFrame Error = "load source not in current frame tree"

	// ErrPendingBeforeUnset is reported when a pending FrameChange's
	// before id is None outside of the InitLoadUrl case it is reserved
	// for.
	ErrPendingBeforeUnset Error = "pending frame change has no before id"

	// ErrPendingBeforeNotInCurrentFrame is reported when a pending
	// FrameChange's before id cannot be found in the current frame tree.
	ErrPendingBeforeNotInCurrentFrame Error = "pending frame change refers to a frame not in the current tree"
)
