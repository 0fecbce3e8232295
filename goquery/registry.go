package goquery

import (
	"net/url"

	"github.com/fwojciec/socialstats"
)

// Registry holds the supported sites and picks one by host.
type Registry struct {
	sites []Site
}

// NewRegistry creates a Registry holding sites.
func NewRegistry(sites ...Site) *Registry {
	return &Registry{sites: sites}
}

// NewRegistryFromConfig creates Instagram and TikTok sites from cfg. Both
// platforms must be configured.
func NewRegistryFromConfig(cfg Config, resolver *Resolver) (*Registry, error) {
	ig, ok := cfg[socialstats.PlatformInstagram]
	if !ok {
		return nil, socialstats.Errorf(socialstats.EINVALID, "selector config missing %s", socialstats.PlatformInstagram)
	}
	tt, ok := cfg[socialstats.PlatformTikTok]
	if !ok {
		return nil, socialstats.Errorf(socialstats.EINVALID, "selector config missing %s", socialstats.PlatformTikTok)
	}
	return NewRegistry(NewInstagram(ig, resolver), NewTikTok(tt, resolver)), nil
}

// Register adds a site. Sites registered later are consulted last.
func (r *Registry) Register(site Site) {
	r.sites = append(r.sites, site)
}

// Lookup returns the site serving host, or nil.
func (r *Registry) Lookup(host string) Site {
	for _, s := range r.sites {
		if s.Matches(host) {
			return s
		}
	}
	return nil
}

// Get returns the site of a platform, or nil.
func (r *Registry) Get(platform socialstats.Platform) Site {
	for _, s := range r.sites {
		if s.Platform() == platform {
			return s
		}
	}
	return nil
}

// Detect returns the platform serving rawURL.
// Returns ENOTFOUND when no registered site serves it.
func (r *Registry) Detect(rawURL string) (socialstats.Platform, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", socialstats.Errorf(socialstats.EINVALID, "invalid URL %q", rawURL)
	}
	if s := r.Lookup(u.Host); s != nil {
		return s.Platform(), nil
	}
	return "", socialstats.Errorf(socialstats.ENOTFOUND, "unsupported site %s", u.Host)
}

// SetCaptionConverter configures every registered site to convert caption
// markup with c.
func (r *Registry) SetCaptionConverter(c socialstats.CaptionConverter) {
	for _, s := range r.sites {
		switch s := s.(type) {
		case *Instagram:
			s.Captions = c
		case *TikTok:
			s.Captions = c
		}
	}
}
