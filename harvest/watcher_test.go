package harvest_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/harvest"
	"github.com/fwojciec/socialstats/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage serves a fixed snapshot and never reports changes.
func fakePage(url string, closed *atomic.Int32) *mock.Page {
	return &mock.Page{
		SnapshotFn: func(context.Context) (*socialstats.Snapshot, error) {
			return &socialstats.Snapshot{URL: url, HTML: "<html></html>"}, nil
		},
		ChangesFn: func(ctx context.Context) (<-chan socialstats.Change, error) {
			ch := make(chan socialstats.Change)
			go func() {
				<-ctx.Done()
				close(ch)
			}()
			return ch, nil
		},
		ReorderFn: func(context.Context, socialstats.ReorderPlan, []string) (int, error) {
			return 0, nil
		},
		CloseFn: func() error {
			closed.Add(1)
			return nil
		},
	}
}

func TestWatcher_Watch(t *testing.T) {
	t.Parallel()

	t.Run("observes every page and hands over its session", func(t *testing.T) {
		t.Parallel()

		var closed atomic.Int32
		w := &harvest.Watcher{
			Browser: &mock.Browser{
				OpenFn: func(_ context.Context, url string) (socialstats.Page, error) {
					return fakePage(url, &closed), nil
				},
			},
			NewSession: func(page socialstats.Page) *harvest.Session {
				sess, _ := newTestSession(scanSequence(profileResult(record("A", 1, 0))), nil)
				sess.Changes = page
				return sess
			},
			Limiter:     harvest.NewDomainLimiter(100),
			Duration:    20 * time.Millisecond,
			Concurrency: 2,
		}
		urls := []string{
			"https://www.instagram.com/chef/",
			"https://www.instagram.com/baker/",
			"https://www.tiktok.com/@dancer",
		}

		var mu sync.Mutex
		got := make(map[string]int)
		err := w.Watch(context.Background(), urls, func(_ context.Context, url string, sess *harvest.Session) error {
			mu.Lock()
			defer mu.Unlock()
			got[url] = len(sess.Records())
			return nil
		})

		require.NoError(t, err)
		assert.Len(t, got, 3)
		for _, url := range urls {
			assert.Equal(t, 1, got[url], url)
		}
		assert.Equal(t, int32(3), closed.Load())
	})

	t.Run("cancellation still delivers open pages", func(t *testing.T) {
		t.Parallel()

		var closed atomic.Int32
		w := &harvest.Watcher{
			Browser: &mock.Browser{
				OpenFn: func(_ context.Context, url string) (socialstats.Page, error) {
					return fakePage(url, &closed), nil
				},
			},
			NewSession: func(socialstats.Page) *harvest.Session {
				sess, _ := newTestSession(scanSequence(profileResult(record("A", 1, 0))), nil)
				return sess
			},
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		var delivered atomic.Int32
		err := w.Watch(ctx, []string{"https://www.tiktok.com/@dancer"}, func(ctx context.Context, _ string, _ *harvest.Session) error {
			assert.NoError(t, ctx.Err())
			delivered.Add(1)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, int32(1), delivered.Load())
	})

	t.Run("rejects invalid URLs", func(t *testing.T) {
		t.Parallel()

		w := &harvest.Watcher{Browser: &mock.Browser{}}

		err := w.Watch(context.Background(), []string{"not a url"}, nil)

		assert.Equal(t, socialstats.EINVALID, socialstats.ErrorCode(err))
	})

	t.Run("returns open failures", func(t *testing.T) {
		t.Parallel()

		w := &harvest.Watcher{
			Browser: &mock.Browser{
				OpenFn: func(context.Context, string) (socialstats.Page, error) {
					return nil, errors.New("browser gone")
				},
			},
		}

		err := w.Watch(context.Background(), []string{"https://www.instagram.com/chef/"}, nil)

		assert.ErrorContains(t, err, "browser gone")
	})
}
