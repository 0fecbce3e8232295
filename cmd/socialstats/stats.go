package main

import (
	"fmt"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/fs"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	sess := deps.newSession(fs.NewSavedPage(c.File, c.URL), settings)
	defer sess.Close()
	if _, err := sess.Scan(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	records := sess.Records()
	if placeholderCount(records) > 0 {
		fmt.Fprintln(deps.Stderr, "error: no items were recognized on this page")
		return socialstats.Errorf(socialstats.ENOTFOUND, "no items recognized in %s", c.File)
	}

	until := c.Until
	if !until.IsZero() {
		until = until.AddDate(0, 0, 1).Add(-1)
	}
	stats := socialstats.CalculateStats(socialstats.FilterByDateRange(records, c.Since, until))
	if stats.Count == 0 {
		fmt.Fprintln(deps.Stdout, "No items in range.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Items:         %d\n", stats.Count)
	fmt.Fprintf(deps.Stdout, "Avg likes:     %.1f\n", stats.AvgLikes)
	fmt.Fprintf(deps.Stdout, "Avg comments:  %.1f\n", stats.AvgComments)
	fmt.Fprintf(deps.Stdout, "Avg views:     %.1f\n", stats.AvgViews)
	fmt.Fprintf(deps.Stdout, "Avg shares:    %.1f\n", stats.AvgShares)
	fmt.Fprintf(deps.Stdout, "Best:          %s  score %.0f  %s\n", stats.Best.ID, socialstats.EngagementScore(stats.Best), stats.Best.SourceURL)
	fmt.Fprintf(deps.Stdout, "Worst:         %s  score %.0f  %s\n", stats.Worst.ID, socialstats.EngagementScore(stats.Worst), stats.Worst.SourceURL)
	return nil
}
