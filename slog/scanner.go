// Package slog decorates socialstats services with structured logging.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/socialstats"
)

// Ensure LoggingScanner implements socialstats.Scanner.
var _ socialstats.Scanner = (*LoggingScanner)(nil)

// LoggingScanner wraps a Scanner with logging of each scan cycle.
type LoggingScanner struct {
	next   socialstats.Scanner
	logger *slog.Logger
}

// NewLoggingScanner creates a new LoggingScanner.
func NewLoggingScanner(next socialstats.Scanner, logger *slog.Logger) *LoggingScanner {
	return &LoggingScanner{next: next, logger: logger}
}

// Scan logs what the scan recognized and delegates to the wrapped scanner.
func (s *LoggingScanner) Scan(snap *socialstats.Snapshot, seen socialstats.RecordIndex) (result *socialstats.ScanResult, err error) {
	defer func(begin time.Time) {
		var platform socialstats.Platform
		var pageContext socialstats.PageContext
		var pattern string
		var matched, added, rejected int
		if result != nil {
			platform, pageContext, pattern = result.Platform, result.Context, result.Pattern
			matched, added, rejected = result.Matched, len(result.Records), result.Rejected
		}
		s.logger.Info("scan",
			"url", snap.URL,
			"platform", platform.String(),
			"context", string(pageContext),
			"pattern", pattern,
			"matched", matched,
			"new", added,
			"rejected", rejected,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scan(snap, seen)
}
