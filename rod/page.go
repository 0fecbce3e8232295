package rod

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/socialstats"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Page implements socialstats.Page at compile time.
var _ socialstats.Page = (*Page)(nil)

// bindingName is the page function observer.js reports changes through.
const bindingName = "__socialstats_binding"

//go:embed observer.js
var observerJS string

//go:embed reorder.js
var reorderJS string

// Page is a live tab.
type Page struct {
	page *rod.Page

	mu        sync.Mutex
	observing bool
}

func newPage(page *rod.Page) *Page {
	return &Page{page: page}
}

// Snapshot returns the rendered document and the tab's current URL.
func (p *Page) Snapshot(ctx context.Context) (*socialstats.Snapshot, error) {
	page := p.page.Context(ctx)

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("reading page info: %w", err)
	}

	return &socialstats.Snapshot{URL: info.URL, HTML: html, TakenAt: time.Now()}, nil
}

// Changes installs a mutation and scroll observer in the tab and streams
// what it reports. The observer is reinstalled on every navigation of the
// tab. Only one stream per page may be open.
func (p *Page) Changes(ctx context.Context) (<-chan socialstats.Change, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.observing {
		return nil, socialstats.Errorf(socialstats.ECONFLICT, "page is already observed")
	}

	page := p.page.Context(ctx)
	if err := (proto.RuntimeAddBinding{Name: bindingName}).Call(page); err != nil {
		return nil, fmt.Errorf("adding binding: %w", err)
	}
	if _, err := page.EvalOnNewDocument("(" + observerJS + ")()"); err != nil {
		return nil, fmt.Errorf("registering observer: %w", err)
	}

	changes := make(chan socialstats.Change, 64)
	wait := page.EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != bindingName {
			return
		}
		var c socialstats.Change
		if err := json.Unmarshal([]byte(e.Payload), &c); err != nil {
			return
		}
		select {
		case changes <- c:
		case <-ctx.Done():
		}
	})

	if _, err := page.Eval(observerJS); err != nil {
		return nil, fmt.Errorf("installing observer: %w", err)
	}
	p.observing = true

	go func() {
		defer close(changes)
		wait()
	}()
	return changes, nil
}

// Reorder re-appends the item nodes named by plan in the order of ids.
func (p *Page) Reorder(ctx context.Context, plan socialstats.ReorderPlan, ids []string) (int, error) {
	if plan.Items == "" {
		return 0, socialstats.Errorf(socialstats.EINVALID, "reorder plan has no item selector")
	}

	res, err := p.page.Context(ctx).Eval(reorderJS, plan.Container, plan.Items, plan.Link, ids)
	if err != nil {
		return 0, fmt.Errorf("reordering items: %w", err)
	}
	return res.Value.Int(), nil
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}
