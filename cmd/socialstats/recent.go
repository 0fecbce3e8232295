package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/socialstats"
)

// Run executes the recent command.
func (c *RecentCmd) Run(deps *Dependencies) error {
	entries, err := deps.Recent.FindRecent(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No recent exports. Use 'socialstats scan' or 'socialstats watch' to create one.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %s\n", e.UsedAt.Local().Format(time.DateTime), e.Platform, e.Username)
	}
	return nil
}
