package constellation

import "net/url"

// PipelineID is an opaque, monotonically increasing identifier, unique for
// the lifetime of the process. Allocated only by the coordinator (§3).
type PipelineID int64

// SubpageID is assigned by a parent document's script worker to a specific
// <iframe> element. It is unique within the parent pipeline, not globally
// (§3).
type SubpageID uint64

// NavigationType distinguishes a fresh navigation from a history traversal
// (§3). The zero value, NavigationUnset, is the "None" case: a pipeline
// that has not yet been given a navigation_type, e.g. an iframe load
// (§4.4 step 4).
type NavigationType uint8

const (
	NavigationUnset NavigationType = iota
	NavigationLoad
	NavigationNavigate
)

func (nt NavigationType) String() string {
	switch nt {
	case NavigationLoad:
		return "Load"
	case NavigationNavigate:
		return "Navigate"
	default:
		return "Unset"
	}
}

// Direction is the argument to Navigate (§4.6).
type Direction int

const (
	Back Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "Forward"
	}
	return "Back"
}

// Size is a window or viewport size.
type Size struct {
	Width, Height int
}

// Msg is the common interface implemented by every inbox message (§6).
type Msg interface {
	isMsg()
}

// ExitMsg requests an orderly shutdown (§4.10). Reply is closed once every
// pipeline has been torn down and external collaborators notified.
type ExitMsg struct {
	Reply chan struct{}
}

// InitLoadURLMsg is the one-shot bootstrap message (§4.3). It must be sent
// exactly once, before any other message that references a pipeline.
type InitLoadURLMsg struct {
	URL *url.URL
}

// LoadIframeURLMsg reports that the script worker of Source has parsed a
// new <iframe> during HTML parsing (§4.4).
type LoadIframeURLMsg struct {
	URL     *url.URL
	Source  PipelineID
	Subpage SubpageID
	Size    Size
}

// LoadURLMsg is a top-level or explicit frame navigation, usually from a
// clicked link or a typed URL (§4.5).
type LoadURLMsg struct {
	Source PipelineID
	URL    *url.URL
	Size   Size
}

// NavigateMsg requests a back/forward history traversal (§4.6).
type NavigateMsg struct {
	Direction Direction
}

// RendererReadyMsg reports that a pipeline's renderer has produced a frame
// and is requesting paint permission (§4.7).
type RendererReadyMsg struct {
	Pipeline PipelineID
}

// ResizedWindowBroadcastMsg reports a window resize, to be forwarded to
// every inactive pipeline (§4.9).
type ResizedWindowBroadcastMsg struct {
	Size Size
}

func (ExitMsg) isMsg()                   {}
func (InitLoadURLMsg) isMsg()            {}
func (LoadIframeURLMsg) isMsg()          {}
func (LoadURLMsg) isMsg()                {}
func (NavigateMsg) isMsg()               {}
func (RendererReadyMsg) isMsg()          {}
func (ResizedWindowBroadcastMsg) isMsg() {}
