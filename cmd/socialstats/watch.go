package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/harvest"
)

// watchRate is the number of navigations per second allowed to each host.
const watchRate = 0.5

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 0 {
		fmt.Fprintln(deps.Stderr, "error: at least one URL is required")
		return socialstats.Errorf(socialstats.EINVALID, "at least one URL is required")
	}

	settings, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	w := &harvest.Watcher{
		Browser: deps.Browser,
		NewSession: func(page socialstats.Page) *harvest.Session {
			sess := deps.newSession(page, settings)
			sess.Changes = page
			sess.Reorderer = page
			return sess
		},
		Limiter:     harvest.NewDomainLimiter(watchRate),
		Duration:    c.Duration,
		Concurrency: c.Concurrency,
	}

	// Pages finish concurrently; keep their output lines together.
	var mu sync.Mutex
	var failed []string
	err = w.Watch(deps.Ctx, c.URLs, func(ctx context.Context, url string, sess *harvest.Session) error {
		mu.Lock()
		defer mu.Unlock()

		pageDeps := *deps
		pageDeps.Ctx = ctx

		fmt.Fprintf(deps.Stdout, "%s: %d items\n", url, len(sess.Records()))
		if _, err := exportSession(&pageDeps, sess, &c.ExportFlags, settings); err != nil {
			if socialstats.ErrorCode(err) != socialstats.EEMPTY {
				return err
			}
			fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", url, socialstats.ErrorMessage(err))
			failed = append(failed, url)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	if len(failed) == len(c.URLs) {
		return socialstats.Errorf(socialstats.EEMPTY, "no content collected")
	}
	return nil
}
