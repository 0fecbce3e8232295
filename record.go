package socialstats

import (
	"net/url"
	"time"
)

// Platform identifies a supported source site.
type Platform string

// Supported platforms.
const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

// String returns the platform name, or "(unknown)" when empty.
func (p Platform) String() string {
	if p == "" {
		return "(unknown)"
	}
	return string(p)
}

// Kind is a platform-defined content subtype.
type Kind string

// Content kinds.
const (
	KindPost  Kind = "post"
	KindReel  Kind = "reel"
	KindVideo Kind = "video"
	KindPhoto Kind = "photo"
)

// Metric names an engagement counter.
type Metric string

// Recognized engagement metrics.
const (
	MetricLikes    Metric = "likes"
	MetricComments Metric = "comments"
	MetricViews    Metric = "views"
	MetricShares   Metric = "shares"
)

// Engagement holds the engagement counters of a record. Metrics a platform
// does not expose stay at zero.
type Engagement struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Views    int64 `json:"views"`
	Shares   int64 `json:"shares"`
}

// Count returns the value of the named metric, or 0 for unknown metrics.
func (e Engagement) Count(m Metric) int64 {
	switch m {
	case MetricLikes:
		return e.Likes
	case MetricComments:
		return e.Comments
	case MetricViews:
		return e.Views
	case MetricShares:
		return e.Shares
	}
	return 0
}

// Record is one harvested content item.
//
// Records are created by a Scanner, appended once to a harvest store and
// never mutated afterwards.
type Record struct {
	ID         string     `json:"id"`
	CapturedAt int64      `json:"capturedAt"`
	Caption    string     `json:"caption"`
	Engagement Engagement `json:"engagementCounts"`
	Kind       Kind       `json:"kind"`
	SourceURL  string     `json:"sourceUrl"`

	// Placeholder marks fabricated records standing in for unrecognized markup.
	Placeholder bool `json:"placeholder,omitempty"`

	// Fingerprint identifies the markup of a node that carried no identifier.
	// Zero when the identifier came from the node itself.
	Fingerprint uint64 `json:"-"`
}

// Time returns CapturedAt as a time.Time in UTC.
func (r *Record) Time() time.Time {
	return time.UnixMilli(r.CapturedAt).UTC()
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.ID == "" {
		return Errorf(EINVALID, "record id required")
	}
	if r.Engagement.Likes < 0 || r.Engagement.Comments < 0 ||
		r.Engagement.Views < 0 || r.Engagement.Shares < 0 {
		return Errorf(EINVALID, "record %q has negative engagement counts", r.ID)
	}
	return nil
}

// PageContext classifies the current view of a page.
type PageContext string

// Page contexts.
const (
	ContextProfile     PageContext = "profile"
	ContextFeed        PageContext = "feed"
	ContextSingleItem  PageContext = "single-item"
	ContextExplore     PageContext = "explore"
	ContextUnsupported PageContext = "unsupported"
)

// Supported reports whether items can be harvested in this context.
func (c PageContext) Supported() bool {
	return c != "" && c != ContextUnsupported
}

// Snapshot is the state of a document at one point in time.
type Snapshot struct {
	URL     string
	HTML    string
	TakenAt time.Time
}

// Location parses the snapshot URL.
func (s *Snapshot) Location() (*url.URL, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid page URL %q", s.URL)
	}
	return u, nil
}
