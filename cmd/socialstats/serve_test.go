package main_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/socialstats"
	main "github.com/fwojciec/socialstats/cmd/socialstats"
	"github.com/fwojciec/socialstats/harvest"
	"github.com/fwojciec/socialstats/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponses(t *testing.T, out string) []harvest.Response {
	t.Helper()
	var responses []harvest.Response
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var resp harvest.Response
		require.NoError(t, dec.Decode(&resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServeCmd_AnswersRequests(t *testing.T) {
	t.Parallel()

	var closed atomic.Int32
	td := newTestDeps(t, fixedScanner(record("a", 1, day), record("b", 5, day)), socialstats.DefaultSettings())
	td.Browser = &mock.Browser{
		OpenFn: func(_ context.Context, url string) (socialstats.Page, error) {
			return livePage(url, "<html></html>", &closed), nil
		},
	}
	td.Stdin = strings.NewReader(strings.Join([]string{
		`{"action":"checkPageContent"}`,
		``,
		`{"action":"sortContent","sortCriteria":"likes"}`,
		`{"action":"exportData","format":"json"}`,
		`{"action":"refresh"}`,
		`not json`,
	}, "\n"))

	err := (&main.ServeCmd{URL: "https://www.instagram.com/chef/"}).Run(td.Dependencies)

	require.NoError(t, err)
	assert.Equal(t, int32(1), closed.Load())
	responses := decodeResponses(t, td.stdout.String())
	require.Len(t, responses, 5)

	t.Run("check", func(t *testing.T) {
		t.Parallel()
		r := responses[0]
		assert.True(t, r.Success)
		assert.Equal(t, socialstats.PlatformInstagram, r.Platform)
		assert.Equal(t, socialstats.ContextProfile, r.PageType)
		assert.Equal(t, 2, r.TotalItems)
	})

	t.Run("sort", func(t *testing.T) {
		t.Parallel()
		r := responses[1]
		assert.True(t, r.Success)
		assert.Equal(t, 2, r.ItemCount)
		assert.Equal(t, "likes", r.SortName)
		require.Len(t, r.PreviewData, 2)
		assert.Equal(t, "b", r.PreviewData[0].ID)
	})

	t.Run("export", func(t *testing.T) {
		t.Parallel()
		r := responses[2]
		assert.True(t, r.Success)
		assert.Equal(t, 2, r.ItemCount)
		assert.Equal(t, "application/json", r.ContentType)
		assert.True(t, strings.HasSuffix(r.Filename, ".json"))
		var exported []socialstats.Record
		require.NoError(t, json.Unmarshal([]byte(r.Data), &exported))
		require.Len(t, exported, 2)
		assert.Equal(t, "b", exported[0].ID)
	})

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()
		r := responses[3]
		assert.False(t, r.Success)
		assert.Equal(t, "Unknown action: refresh", r.Message)
	})

	t.Run("malformed request", func(t *testing.T) {
		t.Parallel()
		r := responses[4]
		assert.False(t, r.Success)
		assert.Equal(t, "Invalid request.", r.Message)
	})
}

func TestServeCmd_StopsWhenCancelled(t *testing.T) {
	t.Parallel()

	var closed atomic.Int32
	td := newTestDeps(t, fixedScanner(record("a", 1, day)), socialstats.DefaultSettings())
	td.Browser = &mock.Browser{
		OpenFn: func(_ context.Context, url string) (socialstats.Page, error) {
			return livePage(url, "<html></html>", &closed), nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	td.Ctx = ctx
	td.Stdin = blockingReader{}

	err := (&main.ServeCmd{URL: "https://www.instagram.com/chef/"}).Run(td.Dependencies)

	require.NoError(t, err)
	assert.Empty(t, td.stdout.String())
	assert.Equal(t, int32(1), closed.Load())
}

func TestServeCmd_OpenFailure(t *testing.T) {
	t.Parallel()

	td := newTestDeps(t, fixedScanner(), socialstats.DefaultSettings())
	td.Browser = &mock.Browser{
		OpenFn: func(context.Context, string) (socialstats.Page, error) {
			return nil, socialstats.Errorf(socialstats.EINVALID, "cannot open page")
		},
	}
	td.Stdin = strings.NewReader("")

	err := (&main.ServeCmd{URL: "https://www.instagram.com/chef/"}).Run(td.Dependencies)

	require.Error(t, err)
	assert.Contains(t, td.stderr.String(), "cannot open page")
}

func TestServeCmd_SettingsFailure(t *testing.T) {
	t.Parallel()

	td := newTestDeps(t, fixedScanner(), socialstats.DefaultSettings())
	td.Settings = &mock.SettingsService{
		FindSettingsFn: func(context.Context) (*socialstats.Settings, error) {
			return nil, errors.New("db gone")
		},
	}

	err := (&main.ServeCmd{URL: "https://www.instagram.com/chef/"}).Run(td.Dependencies)

	require.Error(t, err)
	assert.Contains(t, td.stderr.String(), "error:")
}

// blockingReader never yields data.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
