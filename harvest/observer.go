package harvest

import (
	"context"

	"github.com/fwojciec/socialstats"
)

// Observe turns document changes into scan requests until ctx is done or
// changes is closed. Mutation batches that add nodes request a scan at once;
// scrolls go through the scheduler's debounce.
func Observe(ctx context.Context, changes <-chan socialstats.Change, sched *Scheduler) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			switch c.Kind {
			case socialstats.ChangeNodesAdded:
				if c.AddedNodes > 0 {
					sched.Request()
				}
			case socialstats.ChangeScrolled:
				sched.RequestScroll(c.ScrollY)
			}
		}
	}
}
