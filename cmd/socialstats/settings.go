package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/socialstats"
)

// Run executes the settings command. Without flags it prints the current
// settings.
func (c *SettingsCmd) Run(deps *Dependencies) error {
	upd := socialstats.SettingsUpdate{
		AutoSort:          c.AutoSort,
		DarkMode:          c.DarkMode,
		MaxItemsToCollect: c.MaxItems,
	}
	if c.Sort != nil {
		criterion := socialstats.SortCriterion(strings.ToLower(*c.Sort))
		upd.DefaultSortCriteria = &criterion
	}
	if c.Format != nil {
		format := socialstats.ExportFormat(strings.ToLower(*c.Format))
		if format == "xlsx" || format == "xls" {
			format = socialstats.FormatExcel
		}
		upd.DefaultExportFormat = &format
	}

	var settings *socialstats.Settings
	var err error
	if c.changes() {
		settings, err = deps.Settings.UpdateSettings(deps.Ctx, upd)
	} else {
		settings, err = deps.Settings.FindSettings(deps.Ctx)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", socialstats.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "auto-sort:  %t\n", settings.AutoSort)
	fmt.Fprintf(deps.Stdout, "sort:       %s\n", settings.DefaultSortCriteria)
	fmt.Fprintf(deps.Stdout, "format:     %s\n", settings.DefaultExportFormat)
	fmt.Fprintf(deps.Stdout, "dark-mode:  %t\n", settings.DarkMode)
	fmt.Fprintf(deps.Stdout, "max-items:  %d\n", settings.MaxItemsToCollect)
	return nil
}

func (c *SettingsCmd) changes() bool {
	return c.AutoSort != nil || c.Sort != nil || c.Format != nil || c.DarkMode != nil || c.MaxItems != nil
}
