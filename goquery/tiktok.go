package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/socialstats"
)

var _ Site = (*TikTok)(nil)

var (
	tiktokIDPattern   = regexp.MustCompile(`/(?:video|photo)/(\d+)`)
	tiktokUserPattern = regexp.MustCompile(`^/@([^/]+)`)
	tiktokFullDate    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	tiktokShortDate   = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})$`)
)

// TikTok extracts videos from tiktok.com pages.
type TikTok struct {
	site
}

// NewTikTok creates a TikTok site from its selector configuration.
func NewTikTok(cfg SiteConfig, resolver *Resolver) *TikTok {
	return &TikTok{site: newSite(cfg, resolver, "video")}
}

func (s *TikTok) Platform() socialstats.Platform {
	return socialstats.PlatformTikTok
}

func (s *TikTok) Matches(host string) bool {
	return matchesHost(host, "tiktok.com")
}

func (s *TikTok) Kinds() []socialstats.Kind {
	return []socialstats.Kind{socialstats.KindVideo}
}

func (s *TikTok) ClassifyContext(location *url.URL) socialstats.PageContext {
	segs := pathSegments(location)
	if len(segs) == 0 {
		return socialstats.ContextFeed
	}
	switch segs[0] {
	case "foryou", "following":
		return socialstats.ContextFeed
	case "explore":
		return socialstats.ContextExplore
	}
	if !strings.HasPrefix(segs[0], "@") || len(segs[0]) == 1 {
		return socialstats.ContextUnsupported
	}
	switch {
	case len(segs) == 1:
		return socialstats.ContextProfile
	case len(segs) == 3 && (segs[1] == "video" || segs[1] == "photo") && isDigits(segs[2]):
		return socialstats.ContextSingleItem
	}
	return socialstats.ContextUnsupported
}

func (s *TikTok) ExtractID(item *goquery.Selection) string {
	return s.extractID(item, tiktokIDPattern)
}

func (s *TikTok) ExtractRecord(item Item) (*socialstats.Record, error) {
	link := s.link(item)
	kind := socialstats.KindVideo
	if strings.Contains(link, "/photo/") {
		kind = socialstats.KindPhoto
	}

	rec := &socialstats.Record{
		ID:         item.ID,
		CapturedAt: s.createdAt(item).UnixMilli(),
		Caption:    s.caption(item.Selection),
		Engagement: s.engagement(item.Selection),
		Kind:       kind,
		SourceURL:  link,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// createdAt understands the "2023-5-12" and "5-12" dates TikTok shows for
// older videos besides relative phrasing.
func (s *TikTok) createdAt(item Item) time.Time {
	text := s.resolver.Text(item.Selection, s.config.Fields.RelativeTime)
	now := item.Now
	if m := tiktokFullDate.FindStringSubmatch(text); m != nil {
		return date(atoi(m[1]), atoi(m[2]), atoi(m[3]), now.Location())
	}
	if m := tiktokShortDate.FindStringSubmatch(text); m != nil {
		return date(now.Year(), atoi(m[1]), atoi(m[2]), now.Location())
	}
	return s.capturedAt(item)
}

// Username returns the account from "/@user" paths, then from the page
// header, defaulting to "tiktok_user".
func (s *TikTok) Username(doc *goquery.Document, location *url.URL) string {
	if m := tiktokUserPattern.FindStringSubmatch(location.Path); m != nil {
		return m[1]
	}
	if name := s.headerUsername(doc); name != "" {
		return name
	}
	return "tiktok_user"
}

func date(year, month, day int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
