package harvest_test

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("instagram placeholders", func(t *testing.T) {
		t.Parallel()

		rng := rand.New(rand.NewPCG(1, 2))
		records := harvest.Placeholders(socialstats.PlatformInstagram, "chef", 12, now, rng)

		require.Len(t, records, 12)
		seen := make(map[string]bool)
		for i, r := range records {
			assert.True(t, r.Placeholder)
			assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
			seen[r.ID] = true
			assert.Equal(t, now.AddDate(0, 0, -i).UnixMilli(), r.CapturedAt)
			assert.Contains(t, []socialstats.Kind{socialstats.KindPost, socialstats.KindReel}, r.Kind)
			assert.GreaterOrEqual(t, r.Engagement.Likes, int64(50))
			assert.Less(t, r.Engagement.Likes, int64(1050))
			assert.GreaterOrEqual(t, r.Engagement.Comments, int64(5))
			assert.Less(t, r.Engagement.Comments, int64(105))
			assert.GreaterOrEqual(t, r.Engagement.Views, int64(500))
			assert.Less(t, r.Engagement.Views, int64(5500))
			assert.Zero(t, r.Engagement.Shares)
			assert.Equal(t, fmt.Sprintf("Post #%d by chef", i+1), r.Caption)
			assert.Equal(t, fmt.Sprintf("https://www.instagram.com/p/placeholder%d/", i), r.SourceURL)
			assert.NoError(t, r.Validate())
		}
	})

	t.Run("tiktok placeholders carry shares", func(t *testing.T) {
		t.Parallel()

		rng := rand.New(rand.NewPCG(3, 4))
		records := harvest.Placeholders(socialstats.PlatformTikTok, "dancer", 5, now, rng)

		require.Len(t, records, 5)
		for i, r := range records {
			assert.Equal(t, socialstats.KindVideo, r.Kind)
			assert.Equal(t, fmt.Sprintf("Video #%d by @dancer", i+1), r.Caption)
			assert.True(t, strings.HasPrefix(r.SourceURL, "https://www.tiktok.com/@dancer/video/"), r.SourceURL)
			assert.GreaterOrEqual(t, r.Engagement.Shares, int64(1))
			assert.LessOrEqual(t, r.Engagement.Shares, int64(50))
		}
	})

	t.Run("zero count yields nothing", func(t *testing.T) {
		t.Parallel()

		records := harvest.Placeholders(socialstats.PlatformTikTok, "dancer", 0, now, rand.New(rand.NewPCG(1, 1)))

		assert.Empty(t, records)
	})
}
