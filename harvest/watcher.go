package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/socialstats"
	"golang.org/x/sync/errgroup"
)

// Watcher monitors several pages at once, one Session per page.
type Watcher struct {
	Browser socialstats.Browser

	// NewSession builds the session of an opened page.
	NewSession func(page socialstats.Page) *Session

	// Limiter spaces out navigations per host. Nil disables limiting.
	Limiter *DomainLimiter

	// Duration is how long each page is observed. Zero observes until ctx
	// is done.
	Duration time.Duration

	// Concurrency caps the number of pages open at once. Zero means no cap.
	Concurrency int
}

// Watch opens each URL, observes it for the configured duration and then
// hands the session to done. When ctx is canceled, pages already open still
// reach done with the records gathered so far. The first error stops the
// remaining pages.
func (w *Watcher) Watch(ctx context.Context, urls []string, done func(ctx context.Context, url string, sess *Session) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if w.Concurrency > 0 {
		g.SetLimit(w.Concurrency)
	}

	for _, rawURL := range urls {
		g.Go(func() error {
			return w.watch(gctx, rawURL, done)
		})
	}
	return g.Wait()
}

func (w *Watcher) watch(ctx context.Context, rawURL string, done func(ctx context.Context, url string, sess *Session) error) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return socialstats.Errorf(socialstats.EINVALID, "invalid URL %q", rawURL)
	}
	if w.Limiter != nil {
		if err := w.Limiter.Wait(ctx, u.Host); err != nil {
			return err
		}
	}

	page, err := w.Browser.Open(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("opening %s: %w", rawURL, err)
	}
	defer page.Close()

	sess := w.NewSession(page)
	defer sess.Close()
	observeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := sess.Start(observeCtx); err != nil {
		return err
	}

	if w.Duration > 0 {
		timer := time.NewTimer(w.Duration)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	} else {
		<-ctx.Done()
	}
	cancel()

	// A final scan picks up whatever arrived since the last change event.
	finalCtx := context.WithoutCancel(ctx)
	if _, err := sess.Scan(finalCtx); err != nil {
		return fmt.Errorf("scanning %s: %w", rawURL, err)
	}
	return done(finalCtx, rawURL, sess)
}
