package goquery_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := goquery.DefaultConfig()
	require.NoError(t, err)

	for _, platform := range []socialstats.Platform{socialstats.PlatformInstagram, socialstats.PlatformTikTok} {
		site, ok := cfg[platform]
		require.True(t, ok, "missing %s", platform)
		assert.NotEmpty(t, site.Families[socialstats.ContextProfile])
		assert.NotEmpty(t, site.Families[socialstats.ContextFeed])
		assert.NotEmpty(t, site.GridFallback)
		assert.NotEmpty(t, site.Fields.Link)
		assert.NotEmpty(t, site.Reorder["default"].Items)
	}
}

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	t.Run("decodes families per context", func(t *testing.T) {
		t.Parallel()

		cfg, err := goquery.DecodeConfig(strings.NewReader(`
instagram:
  families:
    profile: ['article', 'div.post']
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"article", "div.post"}, cfg[socialstats.PlatformInstagram].Families[socialstats.ContextProfile])
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.DecodeConfig(strings.NewReader("instagram: [unclosed"))
		assert.Equal(t, socialstats.EINVALID, socialstats.ErrorCode(err))
	})

	t.Run("rejects sites without families", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.DecodeConfig(strings.NewReader("tiktok:\n  gridFallback: ['a']\n"))
		assert.Equal(t, socialstats.EINVALID, socialstats.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads a config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "selectors.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tiktok:\n  families:\n    feed: ['div.v']\n"), 0o644))

		cfg, err := goquery.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"div.v"}, cfg[socialstats.PlatformTikTok].Families[socialstats.ContextFeed])
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
