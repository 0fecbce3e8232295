package mock

import (
	"context"

	"github.com/fwojciec/socialstats"
)

var _ socialstats.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of socialstats.Exporter.
type Exporter struct {
	ExportFn func(records []*socialstats.Record, format socialstats.ExportFormat, meta socialstats.ExportMeta) (*socialstats.Export, error)
}

func (e *Exporter) Export(records []*socialstats.Record, format socialstats.ExportFormat, meta socialstats.ExportMeta) (*socialstats.Export, error) {
	return e.ExportFn(records, format, meta)
}

var _ socialstats.Deliverer = (*Deliverer)(nil)

// Deliverer is a mock implementation of socialstats.Deliverer.
type Deliverer struct {
	DeliverFn func(ctx context.Context, e *socialstats.Export) (string, error)
}

func (d *Deliverer) Deliver(ctx context.Context, e *socialstats.Export) (string, error) {
	return d.DeliverFn(ctx, e)
}

var _ socialstats.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of socialstats.ContentService.
type ContentService struct {
	CheckContentFn func(ctx context.Context) (*socialstats.CheckResult, error)
	SortFn         func(ctx context.Context, criterion socialstats.SortCriterion) (*socialstats.SortResult, error)
	ExportFn       func(ctx context.Context, format socialstats.ExportFormat) (*socialstats.Export, error)
}

func (s *ContentService) CheckContent(ctx context.Context) (*socialstats.CheckResult, error) {
	return s.CheckContentFn(ctx)
}

func (s *ContentService) Sort(ctx context.Context, criterion socialstats.SortCriterion) (*socialstats.SortResult, error) {
	return s.SortFn(ctx, criterion)
}

func (s *ContentService) Export(ctx context.Context, format socialstats.ExportFormat) (*socialstats.Export, error) {
	return s.ExportFn(ctx, format)
}
