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

// Site is the capability set of one supported source site.
type Site interface {
	// Platform returns the platform the site serves.
	Platform() socialstats.Platform

	// Matches reports whether host belongs to the site.
	Matches(host string) bool

	// ClassifyContext derives the page context from the location.
	ClassifyContext(location *url.URL) socialstats.PageContext

	// ResolveItemNodes locates candidate item nodes for the context and
	// returns the pattern that matched them.
	ResolveItemNodes(doc *goquery.Document, pc socialstats.PageContext) (*goquery.Selection, string)

	// ExtractID returns the identifier carried by an item node, or "".
	ExtractID(item *goquery.Selection) string

	// SyntheticID generates a unique identifier for an id-less item.
	SyntheticID(now time.Time) string

	// ExtractRecord builds a record from an item node.
	ExtractRecord(item Item) (*socialstats.Record, error)

	// Username returns the account shown on the page.
	Username(doc *goquery.Document, location *url.URL) string

	// ItemCount returns the item total displayed on the page, or 0.
	ItemCount(doc *goquery.Document) int

	// ReorderPlan returns how items are laid out in the context.
	ReorderPlan(pc socialstats.PageContext) socialstats.ReorderPlan

	// Kinds returns the content kinds of the site, primary kind first.
	Kinds() []socialstats.Kind
}

// Item is one candidate node handed to a Site for extraction.
type Item struct {
	Selection *goquery.Selection
	ID        string
	Location  *url.URL

	// Now is the harvest time, used when no publication time is found.
	Now time.Time
}

// site holds the behavior shared by every platform.
type site struct {
	config   SiteConfig
	resolver *Resolver
	ids      *idGenerator

	// Captions converts caption markup to text when set.
	Captions socialstats.CaptionConverter
}

func newSite(cfg SiteConfig, resolver *Resolver, idPrefix string) site {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return site{
		config:   cfg,
		resolver: resolver,
		ids:      &idGenerator{prefix: idPrefix},
	}
}

func (s *site) ResolveItemNodes(doc *goquery.Document, pc socialstats.PageContext) (*goquery.Selection, string) {
	nodes, pattern := s.resolver.Resolve(doc.Selection, s.config.Families[pc])
	if nodes.Length() == 0 && pc == socialstats.ContextProfile {
		nodes, pattern = s.resolver.Resolve(doc.Selection, s.config.GridFallback)
	}
	return nodes, pattern
}

func (s *site) SyntheticID(now time.Time) string {
	return s.ids.next(now)
}

func (s *site) ReorderPlan(pc socialstats.PageContext) socialstats.ReorderPlan {
	if plan, ok := s.config.Reorder[string(pc)]; ok {
		return plan
	}
	return s.config.Reorder["default"]
}

// extractID looks for an id in the item's link href, then in the
// configured data attributes.
func (s *site) extractID(item *goquery.Selection, pattern *regexp.Regexp) string {
	if href, ok := s.resolver.First(item, s.config.Fields.Link).Attr("href"); ok {
		if m := pattern.FindStringSubmatch(href); m != nil {
			return m[1]
		}
	}
	for _, attr := range s.config.IDAttributes {
		if v := strings.TrimSpace(item.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

// link returns the absolute URL of the item's link, or "".
func (s *site) link(item Item) string {
	href, ok := s.resolver.First(item.Selection, s.config.Fields.Link).Attr("href")
	if !ok || href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if item.Location == nil {
		return ref.String()
	}
	return item.Location.ResolveReference(ref).String()
}

func (s *site) caption(item *goquery.Selection) string {
	sel := s.resolver.First(item, s.config.Fields.Caption)
	if sel.Length() == 0 {
		return ""
	}
	if goquery.NodeName(sel) == "img" {
		return strings.TrimSpace(sel.AttrOr("alt", ""))
	}
	if s.Captions != nil {
		if html, err := sel.Html(); err == nil {
			if text, err := s.Captions.Convert(html); err == nil {
				return strings.TrimSpace(text)
			}
		}
	}
	return strings.TrimSpace(sel.Text())
}

func (s *site) count(item *goquery.Selection, patterns []string) int64 {
	return socialstats.ParseCount(s.resolver.Text(item, patterns))
}

func (s *site) engagement(item *goquery.Selection) socialstats.Engagement {
	f := s.config.Fields
	return socialstats.Engagement{
		Likes:    s.count(item, f.Likes),
		Comments: s.count(item, f.Comments),
		Views:    s.count(item, f.Views),
		Shares:   s.count(item, f.Shares),
	}
}

// capturedAt prefers an absolute timestamp attribute, then a relative time
// text, then the harvest time.
func (s *site) capturedAt(item Item) time.Time {
	if sel := s.resolver.First(item.Selection, s.config.Fields.Time); sel.Length() > 0 {
		if t, ok := socialstats.ParseTimestamp(sel.AttrOr("datetime", "")); ok {
			return t
		}
	}
	if text := s.resolver.Text(item.Selection, s.config.Fields.RelativeTime); text != "" {
		return socialstats.ParseRelativeTime(text, item.Now)
	}
	return item.Now
}

func (s *site) headerUsername(doc *goquery.Document) string {
	return strings.TrimPrefix(s.resolver.Text(doc.Selection, s.config.Username), "@")
}

var itemCountPattern = regexp.MustCompile(`^([\d.,\s]+[KkMm]?)\s*(posts?|gönderi|videos?)?$`)

func (s *site) ItemCount(doc *goquery.Document) int {
	for _, pattern := range s.config.ItemCount {
		nodes, _ := s.resolver.Resolve(doc.Selection, []string{pattern})
		var n int
		nodes.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.AttrOr("title", sel.Text()))
			if itemCountPattern.MatchString(text) {
				n = int(socialstats.ParseCount(text))
			}
			return n == 0
		})
		if n > 0 {
			return n
		}
	}
	return 0
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(location *url.URL) []string {
	var segs []string
	for _, seg := range strings.Split(location.Path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

func matchesHost(host, domain string) bool {
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func isDigits(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
