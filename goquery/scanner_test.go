package goquery_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seenSet is an in-memory socialstats.RecordIndex.
type seenSet struct {
	ids    map[string]bool
	prints map[uint64]bool
}

func newSeenSet(ids ...string) *seenSet {
	s := &seenSet{ids: make(map[string]bool), prints: make(map[uint64]bool)}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *seenSet) Has(id string) bool             { return s.ids[id] }
func (s *seenSet) HasFingerprint(fp uint64) bool { return s.prints[fp] }

func (s *seenSet) add(records []*socialstats.Record) {
	for _, r := range records {
		s.ids[r.ID] = true
		if r.Fingerprint != 0 {
			s.prints[r.Fingerprint] = true
		}
	}
}

func newTestRegistry(t *testing.T) *goquery.Registry {
	t.Helper()
	cfg, err := goquery.DefaultConfig()
	require.NoError(t, err)
	reg, err := goquery.NewRegistryFromConfig(cfg, goquery.NewResolver(nil))
	require.NoError(t, err)
	return reg
}

var scanTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("extracts records from a profile", func(t *testing.T) {
		t.Parallel()

		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		snap := &socialstats.Snapshot{URL: "https://www.instagram.com/natgeo/", HTML: instagramProfileHTML, TakenAt: scanTime}

		result, err := scanner.Scan(snap, newSeenSet())
		require.NoError(t, err)

		assert.Equal(t, socialstats.PlatformInstagram, result.Platform)
		assert.Equal(t, socialstats.ContextProfile, result.Context)
		assert.Equal(t, "natgeo", result.Username)
		assert.Equal(t, 128, result.ItemCount)
		assert.Equal(t, "article", result.Pattern)
		assert.Equal(t, 2, result.Matched)
		assert.Equal(t, []string{"ABC123", "XYZ789"}, recordIDs(result.Records))
		assert.Equal(t, `[role="tablist"] + div > div`, result.Reorder.Container)
		assert.Equal(t, "article", result.Reorder.Items)
	})

	t.Run("skips identifiers already harvested", func(t *testing.T) {
		t.Parallel()

		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		snap := &socialstats.Snapshot{URL: "https://www.instagram.com/natgeo/", HTML: instagramProfileHTML, TakenAt: scanTime}

		result, err := scanner.Scan(snap, newSeenSet("ABC123"))
		require.NoError(t, err)

		assert.Equal(t, 2, result.Matched)
		assert.Equal(t, []string{"XYZ789"}, recordIDs(result.Records))
	})

	t.Run("extracts duplicated nodes once per scan", func(t *testing.T) {
		t.Parallel()

		html := `<article><a href="/p/DUP/">a</a></article><article><a href="/p/DUP/">b</a></article>`
		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		snap := &socialstats.Snapshot{URL: "https://www.instagram.com/natgeo/", HTML: html, TakenAt: scanTime}

		result, err := scanner.Scan(snap, newSeenSet())
		require.NoError(t, err)

		assert.Equal(t, []string{"DUP"}, recordIDs(result.Records))
	})

	t.Run("gives id-less nodes synthetic ids and skips them on rescan", func(t *testing.T) {
		t.Parallel()

		html := `<article><div class="caption">first</div></article><article><div class="caption">second</div></article>`
		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		snap := &socialstats.Snapshot{URL: "https://www.instagram.com/natgeo/", HTML: html, TakenAt: scanTime}
		seen := newSeenSet()

		first, err := scanner.Scan(snap, seen)
		require.NoError(t, err)
		require.Len(t, first.Records, 2)
		assert.True(t, strings.HasPrefix(first.Records[0].ID, "post_"))
		assert.NotEqual(t, first.Records[0].ID, first.Records[1].ID)
		assert.NotZero(t, first.Records[0].Fingerprint)

		seen.add(first.Records)
		second, err := scanner.Scan(snap, seen)
		require.NoError(t, err)
		assert.Empty(t, second.Records)
	})

	t.Run("is idempotent for an unchanged document", func(t *testing.T) {
		t.Parallel()

		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		snap := &socialstats.Snapshot{URL: "https://www.tiktok.com/foryou", HTML: tiktokFeedHTML, TakenAt: scanTime}
		seen := newSeenSet()

		first, err := scanner.Scan(snap, seen)
		require.NoError(t, err)
		require.Len(t, first.Records, 3)
		seen.add(first.Records)

		second, err := scanner.Scan(snap, seen)
		require.NoError(t, err)
		assert.Equal(t, 3, second.Matched)
		assert.Empty(t, second.Records)
	})

	t.Run("returns unsupported for unknown sites", func(t *testing.T) {
		t.Parallel()

		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		snap := &socialstats.Snapshot{URL: "https://example.com/", HTML: "<article></article>"}

		result, err := scanner.Scan(snap, newSeenSet())
		require.NoError(t, err)

		assert.Equal(t, socialstats.ContextUnsupported, result.Context)
		assert.Empty(t, result.Platform)
		assert.Empty(t, result.Records)
	})

	t.Run("does not extract on unsupported pages of known sites", func(t *testing.T) {
		t.Parallel()

		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		snap := &socialstats.Snapshot{URL: "https://www.instagram.com/direct/inbox/", HTML: instagramProfileHTML}

		result, err := scanner.Scan(snap, newSeenSet())
		require.NoError(t, err)

		assert.Equal(t, socialstats.PlatformInstagram, result.Platform)
		assert.Equal(t, socialstats.ContextUnsupported, result.Context)
		assert.Zero(t, result.Matched)
	})

	t.Run("returns error for invalid URL", func(t *testing.T) {
		t.Parallel()

		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		_, err := scanner.Scan(&socialstats.Snapshot{URL: "://bad"}, newSeenSet())

		assert.Equal(t, socialstats.EINVALID, socialstats.ErrorCode(err))
	})

	t.Run("uses the scanner clock when the snapshot has no time", func(t *testing.T) {
		t.Parallel()

		scanner := goquery.NewScanner(newTestRegistry(t), nil)
		scanner.Now = func() time.Time { return scanTime }
		html := `<article><a href="/p/NOW/">x</a></article>`

		result, err := scanner.Scan(&socialstats.Snapshot{URL: "https://www.instagram.com/natgeo/", HTML: html}, newSeenSet())
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, scanTime.UnixMilli(), result.Records[0].CapturedAt)
	})
}

// panickySite fails on one identifier to exercise node-level recovery.
type panickySite struct {
	*goquery.Instagram
}

func (s *panickySite) ExtractRecord(item goquery.Item) (*socialstats.Record, error) {
	if item.ID == "BAD" {
		var sel map[string]int
		sel["boom"]++
	}
	return s.Instagram.ExtractRecord(item)
}

func TestScanner_Scan_RecoversFromExtractionPanic(t *testing.T) {
	t.Parallel()

	cfg, err := goquery.DefaultConfig()
	require.NoError(t, err)
	site := &panickySite{Instagram: goquery.NewInstagram(cfg[socialstats.PlatformInstagram], nil)}

	var buf bytes.Buffer
	scanner := goquery.NewScanner(goquery.NewRegistry(site), slog.New(slog.NewTextHandler(&buf, nil)))
	html := `<article><a href="/p/GOOD1/">a</a></article><article><a href="/p/BAD/">b</a></article><article><a href="/p/GOOD2/">c</a></article>`

	result, err := scanner.Scan(&socialstats.Snapshot{URL: "https://www.instagram.com/natgeo/", HTML: html, TakenAt: scanTime}, newSeenSet())
	require.NoError(t, err)

	assert.Equal(t, []string{"GOOD1", "GOOD2"}, recordIDs(result.Records))
	assert.Equal(t, 1, result.Rejected)
	assert.Contains(t, buf.String(), "rejected item")
	assert.Contains(t, buf.String(), "id=BAD")
}

// brokenIDSite fails while reading the identifier of one node.
type brokenIDSite struct {
	*goquery.Instagram
}

func (s *brokenIDSite) ExtractID(item *gq.Selection) string {
	if href, _ := item.Find("a").Attr("href"); strings.Contains(href, "BAD") {
		var rec *socialstats.Record
		return rec.ID
	}
	return s.Instagram.ExtractID(item)
}

func TestScanner_Scan_RecoversFromIDPanic(t *testing.T) {
	t.Parallel()

	cfg, err := goquery.DefaultConfig()
	require.NoError(t, err)
	site := &brokenIDSite{Instagram: goquery.NewInstagram(cfg[socialstats.PlatformInstagram], nil)}

	var buf bytes.Buffer
	scanner := goquery.NewScanner(goquery.NewRegistry(site), slog.New(slog.NewTextHandler(&buf, nil)))
	html := `<article><a href="/p/GOOD1/">a</a></article><article><a href="/p/BAD/">b</a></article><article><a href="/p/GOOD2/">c</a></article>`

	result, err := scanner.Scan(&socialstats.Snapshot{URL: "https://www.instagram.com/natgeo/", HTML: html, TakenAt: scanTime}, newSeenSet())
	require.NoError(t, err)

	assert.Equal(t, []string{"GOOD1", "GOOD2"}, recordIDs(result.Records))
	assert.Equal(t, 1, result.Rejected)
	assert.Contains(t, buf.String(), "nil pointer dereference")
}

func recordIDs(records []*socialstats.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
