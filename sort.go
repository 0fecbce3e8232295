package socialstats

import (
	"cmp"
	"slices"
)

// SortCriterion names an ordering of harvested records.
type SortCriterion string

// Sort criteria.
const (
	SortDate       SortCriterion = "date"
	SortDateAsc    SortCriterion = "date-asc"
	SortLikes      SortCriterion = "likes"
	SortViews      SortCriterion = "views"
	SortComments   SortCriterion = "comments"
	SortShares     SortCriterion = "shares"
	SortEngagement SortCriterion = "engagement"
)

var sortNames = map[SortCriterion]string{
	SortDate:       "date (newest first)",
	SortDateAsc:    "date (oldest first)",
	SortLikes:      "likes",
	SortViews:      "views",
	SortComments:   "comments",
	SortShares:     "shares",
	SortEngagement: "engagement",
}

// SortName returns the human-readable name of a criterion. Unknown criteria
// sort by date, so they are named after it.
func SortName(c SortCriterion) string {
	if name, ok := sortNames[c]; ok {
		return name
	}
	return sortNames[SortDate]
}

// EngagementScore weighs the engagement counters of a record into one value.
func EngagementScore(r *Record) float64 {
	e := r.Engagement
	return float64(e.Likes) + 2*float64(e.Comments) + 3*float64(e.Shares) + float64(e.Views)/100
}

// SortRecords returns a new slice holding records in the order requested by
// criterion. The input slice is never modified and equal keys keep their
// relative order.
//
// Sorting by shares falls back to views when no record carries a share
// count, since some platforms never expose one. Unknown criteria sort by
// date, newest first.
func SortRecords(records []*Record, criterion SortCriterion) []*Record {
	sorted := slices.Clone(records)

	if criterion == SortShares && !hasShares(records) {
		criterion = SortViews
	}

	var compare func(a, b *Record) int
	switch criterion {
	case SortDateAsc:
		compare = func(a, b *Record) int { return cmp.Compare(a.CapturedAt, b.CapturedAt) }
	case SortLikes, SortViews, SortComments, SortShares:
		metric := Metric(criterion)
		compare = func(a, b *Record) int {
			return cmp.Compare(b.Engagement.Count(metric), a.Engagement.Count(metric))
		}
	case SortEngagement:
		compare = func(a, b *Record) int { return cmp.Compare(EngagementScore(b), EngagementScore(a)) }
	default:
		compare = func(a, b *Record) int { return cmp.Compare(b.CapturedAt, a.CapturedAt) }
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

func hasShares(records []*Record) bool {
	for _, r := range records {
		if r.Engagement.Shares > 0 {
			return true
		}
	}
	return false
}
