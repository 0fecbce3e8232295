package harvest

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fwojciec/socialstats"
)

// DefaultPlaceholderCount is used when the page shows no item count.
const DefaultPlaceholderCount = 10

// placeholderKinds lists the kinds placeholders are drawn from, weighted by
// repetition.
var placeholderKinds = map[socialstats.Platform][]socialstats.Kind{
	socialstats.PlatformInstagram: {
		socialstats.KindPost, socialstats.KindPost, socialstats.KindPost, socialstats.KindPost,
		socialstats.KindPost, socialstats.KindPost, socialstats.KindPost,
		socialstats.KindReel, socialstats.KindReel, socialstats.KindReel,
	},
	socialstats.PlatformTikTok: {socialstats.KindVideo},
}

// Placeholders fabricates n records standing in for items of username whose
// markup was not recognized. They are dated one day apart going back from
// now, carry engagement counts in plausible ranges, and have a numbered
// caption and a link shaped like the platform's item links.
func Placeholders(platform socialstats.Platform, username string, n int, now time.Time, rng *rand.Rand) []*socialstats.Record {
	kinds := placeholderKinds[platform]
	if len(kinds) == 0 {
		kinds = []socialstats.Kind{socialstats.KindPost}
	}

	records := make([]*socialstats.Record, n)
	for i := range n {
		var shares int64
		if platform == socialstats.PlatformTikTok {
			shares = 1 + rng.Int64N(50)
		}
		records[i] = &socialstats.Record{
			ID:         fmt.Sprintf("placeholder_%d_%d", now.UnixMilli(), i),
			CapturedAt: now.AddDate(0, 0, -i).UnixMilli(),
			Engagement: socialstats.Engagement{
				Likes:    50 + rng.Int64N(1000),
				Comments: 5 + rng.Int64N(100),
				Views:    500 + rng.Int64N(5000),
				Shares:   shares,
			},
			Kind:        kinds[rng.IntN(len(kinds))],
			Caption:     placeholderCaption(platform, username, i),
			SourceURL:   placeholderURL(platform, username, now, i),
			Placeholder: true,
		}
	}
	return records
}

func placeholderCaption(platform socialstats.Platform, username string, i int) string {
	if platform == socialstats.PlatformTikTok {
		return fmt.Sprintf("Video #%d by @%s", i+1, username)
	}
	return fmt.Sprintf("Post #%d by %s", i+1, username)
}

func placeholderURL(platform socialstats.Platform, username string, now time.Time, i int) string {
	if platform == socialstats.PlatformTikTok {
		return fmt.Sprintf("https://www.tiktok.com/@%s/video/%d%03d", username, now.UnixMilli(), i)
	}
	return fmt.Sprintf("https://www.instagram.com/p/placeholder%d/", i)
}
