// Package htmltomarkdown turns caption markup into readable text.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/socialstats"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Converter implements socialstats.CaptionConverter at compile time.
var _ socialstats.CaptionConverter = (*Converter)(nil)

// Converter sanitizes caption markup down to emphasis and line breaks and
// renders the rest as Markdown. Links such as hashtags and mentions keep
// their text only.
type Converter struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("b", "strong", "i", "em", "br", "p")

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{policy: policy, conv: conv}
}

// Convert returns the caption text of html. Empty markup yields "".
func (c *Converter) Convert(html string) (string, error) {
	clean := c.policy.Sanitize(html)
	if strings.TrimSpace(clean) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(clean)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
