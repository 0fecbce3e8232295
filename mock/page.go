package mock

import (
	"context"

	"github.com/fwojciec/socialstats"
)

var _ socialstats.Page = (*Page)(nil)

// Page is a mock implementation of socialstats.Page.
type Page struct {
	SnapshotFn func(ctx context.Context) (*socialstats.Snapshot, error)
	ChangesFn  func(ctx context.Context) (<-chan socialstats.Change, error)
	ReorderFn  func(ctx context.Context, plan socialstats.ReorderPlan, ids []string) (int, error)
	CloseFn    func() error
}

func (p *Page) Snapshot(ctx context.Context) (*socialstats.Snapshot, error) {
	return p.SnapshotFn(ctx)
}

func (p *Page) Changes(ctx context.Context) (<-chan socialstats.Change, error) {
	return p.ChangesFn(ctx)
}

func (p *Page) Reorder(ctx context.Context, plan socialstats.ReorderPlan, ids []string) (int, error) {
	return p.ReorderFn(ctx, plan, ids)
}

func (p *Page) Close() error {
	return p.CloseFn()
}

var _ socialstats.Browser = (*Browser)(nil)

// Browser is a mock implementation of socialstats.Browser.
type Browser struct {
	OpenFn func(ctx context.Context, url string) (socialstats.Page, error)
}

func (b *Browser) Open(ctx context.Context, url string) (socialstats.Page, error) {
	return b.OpenFn(ctx, url)
}
