package goquery

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/socialstats"
)

var _ socialstats.Scanner = (*Scanner)(nil)

// Scanner runs one pass of item discovery and extraction over a snapshot.
type Scanner struct {
	registry *Registry
	logger   *slog.Logger

	// Now returns the harvest time for snapshots without TakenAt.
	Now func() time.Time
}

// NewScanner creates a Scanner. A nil logger discards log output.
func NewScanner(registry *Registry, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{registry: registry, logger: logger, Now: time.Now}
}

// Scan classifies the page, resolves item nodes and extracts records for
// items seen has not harvested yet. Pages of unknown sites yield an
// unsupported result rather than an error.
func (s *Scanner) Scan(snap *socialstats.Snapshot, seen socialstats.RecordIndex) (*socialstats.ScanResult, error) {
	location, err := snap.Location()
	if err != nil {
		return nil, err
	}
	result := &socialstats.ScanResult{Context: socialstats.ContextUnsupported}

	site := s.registry.Lookup(location.Host)
	if site == nil {
		return result, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, socialstats.Errorf(socialstats.EINVALID, "failed to parse HTML: %v", err)
	}

	result.Platform = site.Platform()
	result.Context = site.ClassifyContext(location)
	result.Username = site.Username(doc, location)
	result.ItemCount = site.ItemCount(doc)
	result.Reorder = site.ReorderPlan(result.Context)
	if !result.Context.Supported() {
		return result, nil
	}

	now := snap.TakenAt
	if now.IsZero() {
		now = s.Now()
	}

	nodes, pattern := site.ResolveItemNodes(doc, result.Context)
	result.Pattern = pattern
	result.Matched = nodes.Length()

	b := &batch{ids: make(map[string]bool), prints: make(map[uint64]bool)}
	nodes.Each(func(_ int, sel *goquery.Selection) {
		rec, id, err := b.scan(site, sel, seen, location, now)
		if err != nil {
			result.Rejected++
			s.logger.Warn("rejected item", "platform", site.Platform(), "id", id, "err", err)
			return
		}
		if rec != nil {
			result.Records = append(result.Records, rec)
		}
	})

	return result, nil
}

// batch tracks the items of one scan so repeated nodes are taken once.
type batch struct {
	ids    map[string]bool
	prints map[uint64]bool
}

// scan identifies one node and extracts its record. It returns a nil
// record for nodes already harvested. A panic anywhere in the site's code
// rejects just this node.
func (b *batch) scan(site Site, sel *goquery.Selection, seen socialstats.RecordIndex, location *url.URL, now time.Time) (rec *socialstats.Record, id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("extracting %s: panic: %v", id, r)
		}
	}()

	id = site.ExtractID(sel)
	var fp uint64
	if id == "" {
		fp = fingerprint(sel)
		if seen.HasFingerprint(fp) || b.prints[fp] {
			return nil, "", nil
		}
		b.prints[fp] = true
		id = site.SyntheticID(now)
	} else {
		if seen.Has(id) || b.ids[id] {
			return nil, id, nil
		}
		b.ids[id] = true
	}

	rec, err = site.ExtractRecord(Item{Selection: sel, ID: id, Location: location, Now: now})
	if err != nil {
		return nil, id, err
	}
	rec.Fingerprint = fp
	return rec, id, nil
}

func fingerprint(sel *goquery.Selection) uint64 {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		html = sel.Text()
	}
	return xxhash.Sum64String(html)
}
