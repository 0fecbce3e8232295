package socialstats

import "time"

// ContentStats summarizes a set of records.
type ContentStats struct {
	Count       int     `json:"count"`
	AvgLikes    float64 `json:"avgLikes"`
	AvgComments float64 `json:"avgComments"`
	AvgViews    float64 `json:"avgViews"`
	AvgShares   float64 `json:"avgShares"`

	// Best and Worst are ranked by EngagementScore. Nil when Count is zero.
	Best  *Record `json:"best"`
	Worst *Record `json:"worst"`
}

// CalculateStats returns averages and the best and worst performing records.
func CalculateStats(records []*Record) ContentStats {
	stats := ContentStats{Count: len(records)}
	if len(records) == 0 {
		return stats
	}

	var likes, comments, views, shares int64
	for _, r := range records {
		likes += r.Engagement.Likes
		comments += r.Engagement.Comments
		views += r.Engagement.Views
		shares += r.Engagement.Shares
	}
	n := float64(len(records))
	stats.AvgLikes = float64(likes) / n
	stats.AvgComments = float64(comments) / n
	stats.AvgViews = float64(views) / n
	stats.AvgShares = float64(shares) / n

	ranked := SortRecords(records, SortEngagement)
	stats.Best = ranked[0]
	stats.Worst = ranked[len(ranked)-1]
	return stats
}

// FilterByDateRange returns the records captured within [from, to].
// A zero bound leaves that side of the range open.
func FilterByDateRange(records []*Record, from, to time.Time) []*Record {
	var filtered []*Record
	for _, r := range records {
		t := r.Time()
		if !from.IsZero() && t.Before(from) {
			continue
		}
		if !to.IsZero() && t.After(to) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
