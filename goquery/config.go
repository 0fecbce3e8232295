package goquery

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/socialstats"
	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectors []byte

// Config holds the selector configuration of every supported platform.
type Config map[socialstats.Platform]SiteConfig

// SiteConfig describes where content lives in one platform's markup.
type SiteConfig struct {
	// Families maps a page context to its ordered candidate item patterns.
	Families map[socialstats.PageContext][]string `yaml:"families"`

	// GridFallback is tried on profiles when no family pattern matches.
	GridFallback []string `yaml:"gridFallback"`

	// IDAttributes are consulted in order when no link carries an id.
	IDAttributes []string `yaml:"idAttributes"`

	Fields FieldConfig `yaml:"fields"`

	Username  []string `yaml:"username"`
	ItemCount []string `yaml:"itemCount"`

	// Reorder maps a page context, or "default", to a reorder plan.
	Reorder map[string]socialstats.ReorderPlan `yaml:"reorder"`
}

// FieldConfig lists candidate patterns for each record field, resolved
// relative to an item node.
type FieldConfig struct {
	Time         []string `yaml:"time"`
	RelativeTime []string `yaml:"relativeTime"`
	Caption      []string `yaml:"caption"`
	Likes        []string `yaml:"likes"`
	Comments     []string `yaml:"comments"`
	Views        []string `yaml:"views"`
	Shares       []string `yaml:"shares"`
	Link         []string `yaml:"link"`
}

// DefaultConfig returns the built-in selector configuration.
func DefaultConfig() (Config, error) {
	return DecodeConfig(bytes.NewReader(defaultSelectors))
}

// LoadConfig reads a selector configuration file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening selector config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig decodes a YAML selector configuration.
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, socialstats.Errorf(socialstats.EINVALID, "invalid selector config: %v", err)
	}
	for platform, site := range cfg {
		if len(site.Families) == 0 {
			return nil, socialstats.Errorf(socialstats.EINVALID, "selector config for %s has no families", platform)
		}
	}
	return cfg, nil
}
