package mock

import (
	"context"

	"github.com/fwojciec/socialstats"
)

var _ socialstats.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of socialstats.Scanner.
type Scanner struct {
	ScanFn func(snap *socialstats.Snapshot, seen socialstats.RecordIndex) (*socialstats.ScanResult, error)
}

func (s *Scanner) Scan(snap *socialstats.Snapshot, seen socialstats.RecordIndex) (*socialstats.ScanResult, error) {
	return s.ScanFn(snap, seen)
}

var _ socialstats.RecordIndex = (*RecordIndex)(nil)

// RecordIndex is a mock implementation of socialstats.RecordIndex.
type RecordIndex struct {
	HasFn            func(id string) bool
	HasFingerprintFn func(fp uint64) bool
}

func (i *RecordIndex) Has(id string) bool {
	return i.HasFn(id)
}

func (i *RecordIndex) HasFingerprint(fp uint64) bool {
	return i.HasFingerprintFn(fp)
}

var _ socialstats.CaptionConverter = (*CaptionConverter)(nil)

// CaptionConverter is a mock implementation of socialstats.CaptionConverter.
type CaptionConverter struct {
	ConvertFn func(html string) (string, error)
}

func (c *CaptionConverter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ socialstats.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of socialstats.DocumentSource.
type DocumentSource struct {
	SnapshotFn func(ctx context.Context) (*socialstats.Snapshot, error)
}

func (s *DocumentSource) Snapshot(ctx context.Context) (*socialstats.Snapshot, error) {
	return s.SnapshotFn(ctx)
}

var _ socialstats.ChangeSource = (*ChangeSource)(nil)

// ChangeSource is a mock implementation of socialstats.ChangeSource.
type ChangeSource struct {
	ChangesFn func(ctx context.Context) (<-chan socialstats.Change, error)
}

func (s *ChangeSource) Changes(ctx context.Context) (<-chan socialstats.Change, error) {
	return s.ChangesFn(ctx)
}

var _ socialstats.Reorderer = (*Reorderer)(nil)

// Reorderer is a mock implementation of socialstats.Reorderer.
type Reorderer struct {
	ReorderFn func(ctx context.Context, plan socialstats.ReorderPlan, ids []string) (int, error)
}

func (r *Reorderer) Reorder(ctx context.Context, plan socialstats.ReorderPlan, ids []string) (int, error) {
	return r.ReorderFn(ctx, plan, ids)
}
