package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fwojciec/socialstats"
	"golang.org/x/net/html/charset"
)

// Ensure SavedPage implements socialstats.Page at compile time.
var _ socialstats.Page = (*SavedPage)(nil)

// savedFrom matches the marker browsers leave in pages saved to disk.
var savedFrom = regexp.MustCompile(`<!--\s*saved from url=\(\d+\)(\S+?)\s*-->`)

// SavedPage is a page saved to disk. It never changes, so observing it
// yields nothing and reordering moves nothing.
type SavedPage struct {
	path string
	url  string
}

// NewSavedPage creates a SavedPage reading path. When url is empty, the
// address is taken from the "saved from url" marker of the file.
func NewSavedPage(path, url string) *SavedPage {
	return &SavedPage{path: path, url: url}
}

// Snapshot reads the file, decoding it to UTF-8. The snapshot is dated with
// the file's modification time so relative dates resolve against the moment
// the page was saved.
func (p *SavedPage) Snapshot(ctx context.Context) (*socialstats.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, socialstats.Errorf(socialstats.ENOTFOUND, "saved page %s not found", p.path)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r, err := charset.NewReader(f, "")
	if err != nil {
		return nil, fmt.Errorf("detecting encoding of %s: %w", p.path, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.path, err)
	}
	html := string(body)

	url := p.url
	if url == "" {
		if m := savedFrom.FindStringSubmatch(html); m != nil {
			url = m[1]
		}
	}
	if url == "" {
		return nil, socialstats.Errorf(socialstats.EINVALID, "page address of %s is unknown, pass it explicitly", p.path)
	}

	return &socialstats.Snapshot{URL: url, HTML: html, TakenAt: info.ModTime()}, nil
}

// Changes returns a closed channel.
func (p *SavedPage) Changes(context.Context) (<-chan socialstats.Change, error) {
	ch := make(chan socialstats.Change)
	close(ch)
	return ch, nil
}

// Reorder moves nothing.
func (p *SavedPage) Reorder(context.Context, socialstats.ReorderPlan, []string) (int, error) {
	return 0, nil
}

// Close is a no-op.
func (p *SavedPage) Close() error {
	return nil
}
