package overlay

import (
	"context"

	"github.com/1broseidon/warmscreen/internal/platform"
)

// Run feeds events to c one at a time until shutdown completes. Cancelling
// ctx or closing events quits all windows through the normal shutdown path.
//
// Run returns nil on a clean shutdown and ErrForcedExit when the shutdown
// invariant is broken.
func Run(ctx context.Context, c *Controller, events <-chan platform.Event) error {
	done := ctx.Done()

	for {
		if c.Flow() == FlowExit {
			finished, err := c.Tick()
			if err != nil {
				return err
			}
			if finished {
				c.logger.Info("event loop finished")
				return nil
			}
			continue
		}

		select {
		case <-done:
			c.logger.Info("shutdown requested", "reason", context.Cause(ctx))
			done = nil
			c.QuitAll()
		case ev, ok := <-events:
			if !ok {
				c.logger.Warn("event stream closed")
				events = nil
				c.QuitAll()
				continue
			}
			c.Handle(ev)
		}
	}
}
