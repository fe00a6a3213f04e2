// Package constellation is the central coordinator of a multi-process
// browser engine. It owns the set of live rendering pipelines, the frame
// tree that composes nested documents into a page, the user's session
// history, and the paint-permission handshake with the compositor.
//
// The coordinator is a single goroutine that serializes every lifecycle
// event — navigations, iframe loads, renderer readiness, resizes, shutdown
// — into one ordered stream, so that the compositor, resource loader,
// image cache, and per-document workers never observe the page tree in an
// inconsistent intermediate state.
package constellation
