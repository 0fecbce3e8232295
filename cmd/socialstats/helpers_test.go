package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/socialstats"
	main "github.com/fwojciec/socialstats/cmd/socialstats"
	"github.com/fwojciec/socialstats/export"
	"github.com/fwojciec/socialstats/mock"
	"github.com/stretchr/testify/require"
)

const instagramProfileHTML = `<html><body>
<header><h2>natgeo</h2><ul><li class="_aa_5"><span class="_ac2a">128</span> posts</li></ul></header>
<main>
<article>
  <a href="/p/ABC123/"><img alt="Sunset at the pier"></a>
  <time datetime="2024-01-02T03:04:05.000Z">Jan 2</time>
  <span class="like-count"><span>1.2K</span></span>
  <span class="comment-count"><span>34</span></span>
</article>
<article>
  <a href="/reel/XYZ789/">watch</a>
  <div class="caption">Hello <b>world</b></div>
  <span class="view-count"><span>2M</span></span>
</article>
</main>
</body></html>`

// testDeps holds the output buffers and recorded deliveries of a test run.
type testDeps struct {
	*main.Dependencies
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	delivered []*socialstats.Export
	dirs      []string
}

func newTestDeps(t *testing.T, scanner socialstats.Scanner, settings socialstats.Settings) *testDeps {
	t.Helper()

	td := &testDeps{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	exporter := export.NewExporter()
	exporter.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

	td.Dependencies = &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: td.stdout,
		Stderr: td.stderr,
		Settings: &mock.SettingsService{
			FindSettingsFn: func(context.Context) (*socialstats.Settings, error) {
				s := settings
				return &s, nil
			},
		},
		Usage: &mock.UsageService{
			TrackUsageFn: func(context.Context, string, string, string) error { return nil },
		},
		Recent: &mock.RecentService{
			AddRecentFn: func(context.Context, socialstats.Platform, string) error { return nil },
		},
		Scanner:  scanner,
		Exporter: exporter,
		NewDeliverer: func(dir string) socialstats.Deliverer {
			return &mock.Deliverer{
				DeliverFn: func(_ context.Context, e *socialstats.Export) (string, error) {
					td.delivered = append(td.delivered, e)
					td.dirs = append(td.dirs, dir)
					return filepath.Join(dir, e.Filename), nil
				},
			}
		},
	}
	return td
}

// fixedScanner reports records on an Instagram profile of chef.
func fixedScanner(records ...*socialstats.Record) *mock.Scanner {
	return &mock.Scanner{
		ScanFn: func(_ *socialstats.Snapshot, seen socialstats.RecordIndex) (*socialstats.ScanResult, error) {
			res := &socialstats.ScanResult{
				Platform: socialstats.PlatformInstagram,
				Context:  socialstats.ContextProfile,
				Username: "chef",
				Matched:  len(records),
			}
			for _, r := range records {
				if !seen.Has(r.ID) {
					res.Records = append(res.Records, r)
				}
			}
			return res, nil
		},
	}
}

func writePage(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))
	return path
}

func record(id string, likes int64, capturedAt time.Time) *socialstats.Record {
	return &socialstats.Record{
		ID:         id,
		CapturedAt: capturedAt.UnixMilli(),
		Engagement: socialstats.Engagement{Likes: likes},
		Kind:       socialstats.KindPost,
		SourceURL:  "https://www.instagram.com/p/" + id + "/",
	}
}
