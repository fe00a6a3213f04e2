package constellation

// handleExit tears down every registered pipeline, signals the resource
// and image-cache subsystems, and acknowledges the sender (§4.10). It is
// the only handler that stops the coordinator loop.
func (c *Coordinator) handleExit(msg ExitMsg) {
	for _, p := range c.registry.All() {
		if err := p.Exit(); err != nil {
			c.errf("constellation: pipeline %d exit: %v", p.ID, err)
		}
	}

	if c.imageCache != nil {
		c.imageCache.Exit()
	}
	if c.resource != nil {
		c.resource.Exit()
	}

	if msg.Reply != nil {
		close(msg.Reply)
	}
}
