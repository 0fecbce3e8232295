package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/socialstats"
)

// Ensure logging types implement their interfaces.
var (
	_ socialstats.Browser = (*LoggingBrowser)(nil)
	_ socialstats.Page    = (*LoggingPage)(nil)
)

// LoggingBrowser wraps a Browser with logging. Opened pages are wrapped in
// LoggingPage.
type LoggingBrowser struct {
	next   socialstats.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next socialstats.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Open logs the navigation and delegates to the wrapped browser.
func (b *LoggingBrowser) Open(ctx context.Context, url string) (page socialstats.Page, err error) {
	defer func(begin time.Time) {
		b.logger.Info("open",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	page, err = b.next.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	return &LoggingPage{next: page, url: url, logger: b.logger}, nil
}

// LoggingPage wraps a Page with logging.
type LoggingPage struct {
	next   socialstats.Page
	url    string
	logger *slog.Logger
}

// NewLoggingPage creates a new LoggingPage.
func NewLoggingPage(next socialstats.Page, url string, logger *slog.Logger) *LoggingPage {
	return &LoggingPage{next: next, url: url, logger: logger}
}

// Snapshot logs the size of the document read.
func (p *LoggingPage) Snapshot(ctx context.Context) (snap *socialstats.Snapshot, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if snap != nil {
			bytes = len(snap.HTML)
		}
		p.logger.Debug("snapshot",
			"url", p.url,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Snapshot(ctx)
}

// Changes delegates to the wrapped page.
func (p *LoggingPage) Changes(ctx context.Context) (<-chan socialstats.Change, error) {
	ch, err := p.next.Changes(ctx)
	if err != nil {
		p.logger.Warn("observe", "url", p.url, "err", err)
	}
	return ch, err
}

// Reorder logs how many items were moved.
func (p *LoggingPage) Reorder(ctx context.Context, plan socialstats.ReorderPlan, ids []string) (moved int, err error) {
	defer func(begin time.Time) {
		p.logger.Info("reorder",
			"url", p.url,
			"items", len(ids),
			"moved", moved,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Reorder(ctx, plan, ids)
}

// Close delegates to the wrapped page.
func (p *LoggingPage) Close() error {
	return p.next.Close()
}
