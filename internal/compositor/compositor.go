// Package compositor is the constellation's external-interface adapter
// for the compositing process (spec.md §6 "Outbound to compositor"). The
// coordinator and the compositor are separate processes in a real
// multi-process engine, so Client dials a websocket using
// github.com/gobwas/ws — the teacher's declared websocket dependency —
// and codes SetIds/window-size traffic with the hand-written easyjson
// methods on constellation.SendableFrameTree (see codec.go).
package compositor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/arashed/constellation"
)

// envelope is the thin request/response wrapper sent over the websocket.
// The frame-tree payload itself is pre-encoded by SendableFrameTree's
// easyjson methods into Tree, mirroring cdproto.Message's split between a
// plain envelope and an easyjson-coded Params/Result blob.
type envelope struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Tree   json.RawMessage `json:"tree,omitempty"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
}

// Client is a compositor handle reached over a gobwas/ws websocket
// connection.
type Client struct {
	conn   wsConn
	nextID int64
}

// wsConn is the subset of ws/wsutil's connection surface this client
// needs; it lets tests substitute an in-memory pipe.
type wsConn interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}

// Dial connects to the compositor listening at addr (e.g.
// "ws://127.0.0.1:9222/compositor").
func Dial(ctx context.Context, addr string) (*Client, error) {
	conn, _, _, err := ws.Dial(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("compositor: dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) call(req envelope) (envelope, error) {
	req.ID = atomic.AddInt64(&c.nextID, 1)
	buf, err := json.Marshal(req)
	if err != nil {
		return envelope{}, err
	}
	if err := wsutil.WriteClientText(c.conn, buf); err != nil {
		return envelope{}, fmt.Errorf("compositor: write: %w", err)
	}
	raw, err := wsutil.ReadServerText(c.conn)
	if err != nil {
		return envelope{}, fmt.Errorf("compositor: read: %w", err)
	}
	var resp envelope
	if err := json.Unmarshal(raw, &resp); err != nil {
		return envelope{}, fmt.Errorf("compositor: decode response: %w", err)
	}
	return resp, nil
}

// SetIds implements constellation.Compositor: it publishes tree and blocks
// for the compositor's acknowledgement (§4.8 step 2).
func (c *Client) SetIds(ctx context.Context, tree *constellation.SendableFrameTree) error {
	payload, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("compositor: encode frame tree: %w", err)
	}
	_, err = c.call(envelope{Method: "SetIds", Tree: payload})
	return err
}

// WindowSize implements constellation.Compositor (§4.3, §6).
func (c *Client) WindowSize(ctx context.Context) (constellation.Size, error) {
	resp, err := c.call(envelope{Method: "WindowSize"})
	if err != nil {
		return constellation.Size{}, err
	}
	return constellation.Size{Width: resp.Width, Height: resp.Height}, nil
}
