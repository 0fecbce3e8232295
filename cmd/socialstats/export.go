package main

import (
	"fmt"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/harvest"
)

// sortCriterion returns the criterion to sort by before exporting, or ""
// when no sort was asked for.
func (f *ExportFlags) sortCriterion(settings *socialstats.Settings) socialstats.SortCriterion {
	if f.Sort != "" {
		return socialstats.SortCriterion(f.Sort)
	}
	if settings.AutoSort {
		return settings.DefaultSortCriteria
	}
	return ""
}

func (f *ExportFlags) format(settings *socialstats.Settings) socialstats.ExportFormat {
	if f.Format != "" {
		return socialstats.ParseExportFormat(f.Format)
	}
	return settings.DefaultExportFormat
}

// exportSession sorts and exports the session's records and delivers the
// export into the output directory. It returns the delivered path.
func exportSession(deps *Dependencies, sess *harvest.Session, flags *ExportFlags, settings *socialstats.Settings) (string, error) {
	if criterion := flags.sortCriterion(settings); criterion != "" {
		res, err := sess.Sort(deps.Ctx, criterion)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(deps.Stdout, "Sorted %d items by %s\n", res.Count, res.SortName)
	}

	export, err := sess.Export(deps.Ctx, flags.format(settings))
	if err != nil {
		return "", err
	}

	path, err := deps.NewDeliverer(flags.Out).Deliver(deps.Ctx, export)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d items to %s\n", export.Count, path)
	return path, nil
}

// placeholderCount returns how many of records are placeholders.
func placeholderCount(records []*socialstats.Record) int {
	n := 0
	for _, r := range records {
		if r.Placeholder {
			n++
		}
	}
	return n
}
