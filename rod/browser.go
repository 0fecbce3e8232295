// Package rod drives live Instagram and TikTok pages through Chrome.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/socialstats"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure Browser implements socialstats.Browser at compile time.
var _ socialstats.Browser = (*Browser)(nil)

// DefaultNavigationTimeout bounds navigation and initial load of a page.
const DefaultNavigationTimeout = 30 * time.Second

// Browser opens stealth pages in a launched or attached Chrome.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	controlURL string
	headless   bool
	stealth    bool
	timeout    time.Duration

	mu     sync.Mutex
	closed atomic.Bool
}

// Option configures a Browser.
type Option func(*Browser)

// WithControlURL attaches to a running Chrome at the DevTools WebSocket URL
// instead of launching one. Close leaves an attached Chrome running.
func WithControlURL(u string) Option {
	return func(b *Browser) {
		b.controlURL = u
	}
}

// WithHeadless sets whether a launched Chrome runs headless. Defaults to
// true.
func WithHeadless(headless bool) Option {
	return func(b *Browser) {
		b.headless = headless
	}
}

// WithStealth sets whether pages hide automation markers. Defaults to true.
func WithStealth(enabled bool) Option {
	return func(b *Browser) {
		b.stealth = enabled
	}
}

// WithNavigationTimeout overrides DefaultNavigationTimeout.
func WithNavigationTimeout(d time.Duration) Option {
	return func(b *Browser) {
		b.timeout = d
	}
}

// NewBrowser launches or attaches to Chrome. Close must be called when the
// Browser is no longer needed.
func NewBrowser(opts ...Option) (*Browser, error) {
	b := &Browser{
		headless: true,
		stealth:  true,
		timeout:  DefaultNavigationTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.connect(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Browser) connect() error {
	u := b.controlURL
	if u == "" {
		lnchr := launcher.New().
			Set("disable-background-timer-throttling").
			Set("disable-backgrounding-occluded-windows").
			Set("disable-renderer-backgrounding").
			Set("disable-dev-shm-usage").
			Leakless(true).
			Headless(b.headless)

		launched, err := lnchr.Launch()
		if err != nil {
			return fmt.Errorf("launching browser: %w", err)
		}
		u = launched
		b.launcher = lnchr
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		if b.launcher != nil {
			b.launcher.Kill()
			b.launcher = nil
		}
		return fmt.Errorf("connecting to browser: %w", err)
	}
	b.browser = browser
	return nil
}

// Open creates a tab, navigates it to url and waits for the load event.
func (b *Browser) Open(ctx context.Context, url string) (socialstats.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	browser := b.browser
	b.mu.Unlock()
	if browser == nil || b.closed.Load() {
		return nil, fmt.Errorf("browser is closed")
	}

	var page *rod.Page
	var err error
	if b.stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("creating tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}

	return newPage(page), nil
}

// Close releases browser resources. A launched Chrome is killed. Close is
// safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil && b.launcher != nil {
		err = b.browser.Close()
	}
	b.browser = nil
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of a launched Chrome, or 0 when
// attached.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
