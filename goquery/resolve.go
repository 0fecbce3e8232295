package goquery

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Resolver evaluates ordered candidate patterns against a document.
//
// goquery silently matches nothing for a pattern it cannot compile, so
// patterns are compiled with cascadia first. Malformed patterns are logged
// once and treated as matching nothing. Resolver is safe for concurrent use.
type Resolver struct {
	logger *slog.Logger

	mu       sync.Mutex
	compiled map[string]cascadia.Selector
	invalid  map[string]bool
}

// NewResolver creates a Resolver. A nil logger discards log output.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		logger:   logger,
		compiled: make(map[string]cascadia.Selector),
		invalid:  make(map[string]bool),
	}
}

// Resolve returns the matches of the first pattern that matches at least one
// node below root, along with that pattern. When nothing matches it returns
// an empty selection and an empty pattern.
func (r *Resolver) Resolve(root *goquery.Selection, patterns []string) (*goquery.Selection, string) {
	for _, pattern := range patterns {
		matcher, ok := r.matcher(pattern)
		if !ok {
			continue
		}
		if matches := root.FindMatcher(matcher); matches.Length() > 0 {
			return matches, pattern
		}
	}
	return root.FindNodes(), ""
}

// First returns the first node matched by the first matching pattern,
// considering root itself as well as its descendants.
func (r *Resolver) First(root *goquery.Selection, patterns []string) *goquery.Selection {
	for _, pattern := range patterns {
		matcher, ok := r.matcher(pattern)
		if !ok {
			continue
		}
		if root.IsMatcher(matcher) {
			return root.First()
		}
		if matches := root.FindMatcher(matcher); matches.Length() > 0 {
			return matches.First()
		}
	}
	return root.FindNodes()
}

// Text returns the trimmed text of the first match, or "".
func (r *Resolver) Text(root *goquery.Selection, patterns []string) string {
	return strings.TrimSpace(r.First(root, patterns).Text())
}

func (r *Resolver) matcher(pattern string) (cascadia.Selector, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sel, ok := r.compiled[pattern]; ok {
		return sel, true
	}
	if r.invalid[pattern] {
		return nil, false
	}

	sel, err := cascadia.Compile(pattern)
	if err != nil {
		r.invalid[pattern] = true
		r.logger.Warn("skipping invalid selector pattern", "pattern", pattern, "err", err)
		return nil, false
	}
	r.compiled[pattern] = sel
	return sel, true
}
