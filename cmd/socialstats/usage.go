package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/socialstats"
)

// Run executes the usage command.
func (c *UsageCmd) Run(deps *Dependencies) error {
	stats, err := deps.Usage.FindUsage(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	if len(stats) == 0 {
		fmt.Fprintln(deps.Stdout, "No usage recorded yet.")
		return nil
	}

	for _, s := range stats {
		name := s.Category + "/" + s.Action
		if s.Label != "" {
			name += "/" + s.Label
		}
		fmt.Fprintf(deps.Stdout, "%-28s  %5d  %s\n", name, s.Count, s.LastUsed.Local().Format(time.DateTime))
	}
	return nil
}
