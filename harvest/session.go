package harvest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fwojciec/socialstats"
)

var _ socialstats.ContentService = (*Session)(nil)

// Session owns the harvest of one monitored page view: its store, its
// observation and the state of the last scan.
//
// All scans, sorts and exports of a session are serialized, so a scan always
// runs to completion before the next operation sees the store.
type Session struct {
	source   socialstats.DocumentSource
	scanner  socialstats.Scanner
	exporter socialstats.Exporter

	// Changes streams document changes. Nil disables observation.
	Changes socialstats.ChangeSource

	// Reorderer rearranges the page after a sort. Nil skips reordering.
	Reorderer socialstats.Reorderer

	// Usage and Recent record successful exports when set.
	Usage  socialstats.UsageService
	Recent socialstats.RecentService

	// MaxPlaceholders caps the number of fabricated records.
	MaxPlaceholders int

	// ScrollWindow is the debounce window for scroll-triggered scans.
	ScrollWindow time.Duration

	Logger *slog.Logger
	Now    func() time.Time
	Rand   *rand.Rand

	mu       sync.Mutex
	store    *Store
	last     *socialstats.ScanResult
	lastSort socialstats.SortCriterion

	// ctx bounds the lifetime of observation started on demand. It ends
	// when the session is closed.
	ctx    context.Context
	cancel context.CancelFunc

	startMu   sync.Mutex
	scheduler *Scheduler
	runCtx    context.Context
	halt      func()
	observing bool
}

// NewSession creates a Session reading documents from source.
func NewSession(source socialstats.DocumentSource, scanner socialstats.Scanner, exporter socialstats.Exporter) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ctx:             ctx,
		cancel:          cancel,
		source:          source,
		scanner:         scanner,
		exporter:        exporter,
		MaxPlaceholders: socialstats.DefaultSettings().MaxItemsToCollect,
		ScrollWindow:    DefaultScrollWindow,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:             time.Now,
		Rand:            rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		store:           NewStore(),
	}
}

// Scan runs one scan cycle against the current document and merges its
// records into the store.
//
// When nothing is recognized on a supported page and the store is empty,
// placeholders sized from the page's item count are stored instead. They
// are discarded by the first scan that finds real records.
func (s *Session) Scan(ctx context.Context) (*socialstats.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("taking snapshot: %w", err)
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = s.Now()
	}

	result, err := s.scanner.Scan(snap, s.store)
	if err != nil {
		return nil, err
	}
	s.last = result

	if len(result.Records) > 0 && s.store.HasPlaceholders() {
		n := s.store.DiscardPlaceholders()
		s.Logger.Info("discarded placeholders", "count", n)
	}
	for _, r := range result.Records {
		s.store.Add(r)
	}

	if result.Matched == 0 && s.store.Len() == 0 && result.Context.Supported() {
		n := result.ItemCount
		if n <= 0 {
			n = DefaultPlaceholderCount
		}
		if s.MaxPlaceholders > 0 && n > s.MaxPlaceholders {
			n = s.MaxPlaceholders
		}
		for _, r := range Placeholders(result.Platform, result.Username, n, snap.TakenAt, s.Rand) {
			s.store.Add(r)
		}
		s.Logger.Warn("no items recognized, using placeholders",
			"platform", result.Platform,
			"context", result.Context,
			"count", n,
		)
	}

	return result, nil
}

// Start begins observing the document, scanning on each relevant change
// until ctx is done or the session is closed. An initial scan is queued.
// Starting a running session is a no-op, except that observation is
// retried when subscribing to changes failed before.
func (s *Session) Start(ctx context.Context) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if s.scheduler == nil || s.runCtx.Err() != nil {
		runCtx, cancel := context.WithCancel(ctx)
		stop := context.AfterFunc(s.ctx, cancel)
		s.runCtx = runCtx
		s.halt = func() {
			stop()
			cancel()
		}
		s.observing = false
		s.scheduler = NewScheduler(s.ScrollWindow, func(ctx context.Context) {
			if _, err := s.Scan(ctx); err != nil {
				s.Logger.Error("background scan failed", "err", err)
			}
		})
		go s.scheduler.Run(runCtx)
		s.scheduler.Request()
	}

	if s.Changes != nil && !s.observing {
		changes, err := s.Changes.Changes(s.runCtx)
		if err != nil {
			return fmt.Errorf("observing document: %w", err)
		}
		s.observing = true
		go Observe(s.runCtx, changes, s.scheduler)
	}
	return nil
}

// Close stops observation. Pending background scans are dropped.
func (s *Session) Close() {
	s.cancel()
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.halt != nil {
		s.halt()
	}
}

// requestScan asks for a background scan, starting observation for the
// lifetime of the session if it is not running.
func (s *Session) requestScan() {
	if s.ctx.Err() != nil {
		return
	}
	s.startMu.Lock()
	running := s.scheduler != nil && s.runCtx.Err() == nil
	sched := s.scheduler
	s.startMu.Unlock()

	if running {
		sched.Request()
		return
	}
	if err := s.Start(s.ctx); err != nil {
		s.Logger.Error("starting observation failed", "err", err)
	}
}

// Records returns the harvested records in order of first appearance.
func (s *Session) Records() []*socialstats.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Records()
}

// Meta returns the platform and user of the last scanned page.
func (s *Session) Meta() socialstats.ExportMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta()
}

func (s *Session) meta() socialstats.ExportMeta {
	if s.last == nil {
		return socialstats.ExportMeta{}
	}
	return socialstats.ExportMeta{Platform: s.last.Platform, Username: s.last.Username}
}

// CheckContent scans right away when nothing is harvested yet, makes sure
// observation runs, and reports what the page view holds.
func (s *Session) CheckContent(ctx context.Context) (*socialstats.CheckResult, error) {
	s.mu.Lock()
	empty := s.store.Len() == 0
	s.mu.Unlock()

	if empty {
		if _, err := s.Scan(ctx); err != nil {
			return nil, err
		}
	}
	if s.Changes != nil {
		if err := s.Start(s.ctx); err != nil {
			s.Logger.Error("starting observation failed", "err", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &socialstats.CheckResult{
		PageType: socialstats.ContextUnsupported,
		Total:    s.store.Len(),
		Preview:  socialstats.Preview(s.store.Records()),
	}
	if s.last != nil {
		result.Platform = s.last.Platform
		result.PageType = s.last.Context
	}
	result.Found = result.PageType.Supported() && result.Total > 0
	return result, nil
}

// Sort orders the harvested records by criterion and, when a Reorderer is
// set, rearranges the page to match. Reordering failures are logged only.
// Returns EEMPTY and requests a background scan while nothing is harvested.
func (s *Session) Sort(ctx context.Context, criterion socialstats.SortCriterion) (*socialstats.SortResult, error) {
	s.mu.Lock()
	if s.store.Len() == 0 {
		s.mu.Unlock()
		s.requestScan()
		return nil, socialstats.Errorf(socialstats.EEMPTY, "Content has not been collected yet. Scroll the page a little and try again.")
	}
	sorted := socialstats.SortRecords(s.store.Records(), criterion)
	s.lastSort = criterion
	var plan socialstats.ReorderPlan
	if s.last != nil {
		plan = s.last.Reorder
	}
	s.mu.Unlock()

	if s.Reorderer != nil && plan.Items != "" {
		ids := make([]string, len(sorted))
		for i, r := range sorted {
			ids[i] = r.ID
		}
		if moved, err := s.Reorderer.Reorder(ctx, plan, ids); err != nil {
			s.Logger.Warn("reordering page failed", "err", err)
		} else {
			s.Logger.Debug("reordered page", "moved", moved)
		}
	}

	return &socialstats.SortResult{
		Count:    len(sorted),
		SortName: socialstats.SortName(criterion),
		Preview:  socialstats.Preview(sorted),
	}, nil
}

// Export serializes the harvested records, in the order of the last sort
// when there was one. Returns EEMPTY and requests a background scan while
// nothing is harvested.
func (s *Session) Export(ctx context.Context, format socialstats.ExportFormat) (*socialstats.Export, error) {
	s.mu.Lock()
	if s.store.Len() == 0 {
		s.mu.Unlock()
		s.requestScan()
		return nil, socialstats.Errorf(socialstats.EEMPTY, "No content to export yet. Scroll the page and try again.")
	}
	records := s.store.Records()
	if s.lastSort != "" {
		records = socialstats.SortRecords(records, s.lastSort)
	}
	meta := s.meta()
	s.mu.Unlock()

	export, err := s.exporter.Export(records, format, meta)
	if err != nil {
		return nil, err
	}

	s.track(ctx, format, meta)
	return export, nil
}

// track records a successful export. Failures only get logged.
func (s *Session) track(ctx context.Context, format socialstats.ExportFormat, meta socialstats.ExportMeta) {
	if s.Usage != nil {
		if err := s.Usage.TrackUsage(ctx, "export", string(format), string(meta.Platform)); err != nil {
			s.Logger.Warn("tracking usage failed", "err", err)
		}
	}
	if s.Recent != nil && meta.Platform != "" {
		if err := s.Recent.AddRecent(ctx, meta.Platform, meta.Username); err != nil {
			s.Logger.Warn("recording recent entry failed", "err", err)
		}
	}
}
