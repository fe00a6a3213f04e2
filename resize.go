package constellation

// handleResizedWindowBroadcast notifies every inactive pipeline — one in
// Previous or Next, but not also reachable from Current — of a window
// resize (§4.9). The currently visible pipelines learn of the resize
// through a separate, compositor-driven path that is out of scope here.
func (c *Coordinator) handleResizedWindowBroadcast(msg ResizedWindowBroadcastMsg) {
	notify := func(trees []*FrameTree) {
		for _, t := range trees {
			for _, frame := range t.Iter() {
				if c.nav.current != nil && c.nav.current.Contains(frame.Pipeline.ID) {
					continue
				}
				frame.Pipeline.worker.ResizeInactive(msg.Size)
			}
		}
	}
	notify(c.nav.previous)
	notify(c.nav.next)
}
