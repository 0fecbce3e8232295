package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/socialstats"
)

// Ensure logging types implement their interfaces.
var (
	_ socialstats.Exporter  = (*LoggingExporter)(nil)
	_ socialstats.Deliverer = (*LoggingDeliverer)(nil)
)

// LoggingExporter wraps an Exporter with logging.
type LoggingExporter struct {
	next   socialstats.Exporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next socialstats.Exporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// Export logs the format and size of the export.
func (e *LoggingExporter) Export(records []*socialstats.Record, format socialstats.ExportFormat, meta socialstats.ExportMeta) (export *socialstats.Export, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if export != nil {
			bytes = len(export.Payload)
		}
		e.logger.Info("export",
			"format", string(format),
			"platform", meta.Platform.String(),
			"records", len(records),
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Export(records, format, meta)
}

// LoggingDeliverer wraps a Deliverer with logging.
type LoggingDeliverer struct {
	next   socialstats.Deliverer
	logger *slog.Logger
}

// NewLoggingDeliverer creates a new LoggingDeliverer.
func NewLoggingDeliverer(next socialstats.Deliverer, logger *slog.Logger) *LoggingDeliverer {
	return &LoggingDeliverer{next: next, logger: logger}
}

// Deliver logs where the export ended up.
func (d *LoggingDeliverer) Deliver(ctx context.Context, e *socialstats.Export) (path string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("deliver",
			"filename", e.Filename,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Deliver(ctx, e)
}
