package main

import (
	"fmt"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/fs"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.FindSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	sess := deps.newSession(fs.NewSavedPage(c.File, c.URL), settings)
	defer sess.Close()
	check, err := sess.CheckContent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}
	if !check.Found {
		fmt.Fprintf(deps.Stderr, "error: no content found on this %s page. Save a profile or feed page and try again.\n", check.PageType)
		return socialstats.Errorf(socialstats.ENOTFOUND, "no content found in %s", c.File)
	}

	meta := sess.Meta()
	fmt.Fprintf(deps.Stdout, "Found %d items on %s %s (%s)\n", check.Total, meta.Platform, check.PageType, meta.Username)
	if n := placeholderCount(sess.Records()); n > 0 {
		fmt.Fprintf(deps.Stderr, "warning: no items were recognized, %d placeholder items stand in for them\n", n)
	}

	if _, err := exportSession(deps, sess, &c.ExportFlags, settings); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}
	return nil
}
