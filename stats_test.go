package socialstats_test

import (
	"testing"
	"time"

	"github.com/fwojciec/socialstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStats(t *testing.T) {
	t.Parallel()

	t.Run("computes averages and extremes", func(t *testing.T) {
		t.Parallel()

		records := []*socialstats.Record{
			{ID: "a", Engagement: socialstats.Engagement{Likes: 10, Comments: 2, Views: 100}},
			{ID: "b", Engagement: socialstats.Engagement{Likes: 30, Comments: 4, Views: 300, Shares: 6}},
		}

		stats := socialstats.CalculateStats(records)

		assert.Equal(t, 2, stats.Count)
		assert.InDelta(t, 20.0, stats.AvgLikes, 1e-9)
		assert.InDelta(t, 3.0, stats.AvgComments, 1e-9)
		assert.InDelta(t, 200.0, stats.AvgViews, 1e-9)
		assert.InDelta(t, 3.0, stats.AvgShares, 1e-9)
		require.NotNil(t, stats.Best)
		assert.Equal(t, "b", stats.Best.ID)
		assert.Equal(t, "a", stats.Worst.ID)
	})

	t.Run("returns zero stats for no records", func(t *testing.T) {
		t.Parallel()

		stats := socialstats.CalculateStats(nil)

		assert.Zero(t, stats.Count)
		assert.Nil(t, stats.Best)
		assert.Nil(t, stats.Worst)
	})
}

func TestFilterByDateRange(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	records := []*socialstats.Record{
		{ID: "1", CapturedAt: day(1).UnixMilli()},
		{ID: "5", CapturedAt: day(5).UnixMilli()},
		{ID: "9", CapturedAt: day(9).UnixMilli()},
	}

	assert.Equal(t, []string{"5", "9"}, ids(socialstats.FilterByDateRange(records, day(5), time.Time{})))
	assert.Equal(t, []string{"1", "5"}, ids(socialstats.FilterByDateRange(records, time.Time{}, day(5))))
	assert.Equal(t, []string{"5"}, ids(socialstats.FilterByDateRange(records, day(2), day(8))))
	assert.Len(t, socialstats.FilterByDateRange(records, time.Time{}, time.Time{}), 3)
}
