package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/socialstats"
)

var _ Site = (*Instagram)(nil)

var instagramIDPattern = regexp.MustCompile(`/(?:p|reel)/([^/?#]+)`)

// instagramReserved lists first path segments that are not profiles.
var instagramReserved = map[string]bool{
	"explore":  true,
	"reels":    true,
	"p":        true,
	"reel":     true,
	"tv":       true,
	"stories":  true,
	"direct":   true,
	"accounts": true,
}

// Instagram extracts posts and reels from instagram.com pages.
type Instagram struct {
	site
}

// NewInstagram creates an Instagram site from its selector configuration.
func NewInstagram(cfg SiteConfig, resolver *Resolver) *Instagram {
	return &Instagram{site: newSite(cfg, resolver, "post")}
}

func (s *Instagram) Platform() socialstats.Platform {
	return socialstats.PlatformInstagram
}

func (s *Instagram) Matches(host string) bool {
	return matchesHost(host, "instagram.com")
}

func (s *Instagram) Kinds() []socialstats.Kind {
	return []socialstats.Kind{socialstats.KindPost, socialstats.KindReel}
}

// ClassifyContext maps "/" and "/reels/" to the feed, "/explore/" to
// explore, "/p/<id>" and "/reel/<id>" to a single item and "/<user>/" to a
// profile.
func (s *Instagram) ClassifyContext(location *url.URL) socialstats.PageContext {
	segs := pathSegments(location)
	if len(segs) == 0 {
		return socialstats.ContextFeed
	}
	switch segs[0] {
	case "explore":
		return socialstats.ContextExplore
	case "reels":
		return socialstats.ContextFeed
	case "p", "reel", "tv":
		if len(segs) >= 2 {
			return socialstats.ContextSingleItem
		}
		return socialstats.ContextUnsupported
	}
	if instagramReserved[segs[0]] {
		return socialstats.ContextUnsupported
	}
	switch {
	case len(segs) == 1:
		return socialstats.ContextProfile
	case len(segs) == 2 && (segs[1] == "reels" || segs[1] == "tagged" || segs[1] == "saved"):
		return socialstats.ContextProfile
	}
	return socialstats.ContextUnsupported
}

func (s *Instagram) ExtractID(item *goquery.Selection) string {
	return s.extractID(item, instagramIDPattern)
}

func (s *Instagram) ExtractRecord(item Item) (*socialstats.Record, error) {
	link := s.link(item)
	kind := socialstats.KindPost
	if strings.Contains(link, "/reel/") {
		kind = socialstats.KindReel
	}

	rec := &socialstats.Record{
		ID:         item.ID,
		CapturedAt: s.capturedAt(item).UnixMilli(),
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

// Username returns the profile name from the location, then from the page
// header, defaulting to "instagram_user".
func (s *Instagram) Username(doc *goquery.Document, location *url.URL) string {
	if segs := pathSegments(location); len(segs) > 0 && !instagramReserved[segs[0]] {
		return segs[0]
	}
	if name := s.headerUsername(doc); name != "" {
		return name
	}
	return "instagram_user"
}
