// Package goquery provides HTML anchor discovery using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/toplinks"
)

// Ensure AnchorExtractor implements toplinks.AnchorExtractor at compile time.
var _ toplinks.AnchorExtractor = (*AnchorExtractor)(nil)

// AnchorExtractor discovers anchors and a best-effort description for each.
//
// The description heuristic follows the markup of news home pages:
//   - anchor inside an <h3>: text of the next <p> after the heading
//   - anchor inside a <div>: the div's full text
//   - anything else: empty
type AnchorExtractor struct{}

// NewAnchorExtractor creates a new AnchorExtractor.
func NewAnchorExtractor() *AnchorExtractor {
	return &AnchorExtractor{}
}

// ExtractAnchors parses HTML and returns every anchor with an href attribute.
func (e *AnchorExtractor) ExtractAnchors(html string) ([]toplinks.Anchor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, toplinks.Errorf(toplinks.EINVALID, "failed to parse HTML: %v", err)
	}

	var anchors []toplinks.Anchor
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		anchors = append(anchors, toplinks.Anchor{
			Title:       strings.TrimSpace(sel.Text()),
			Href:        href,
			Description: describe(sel),
		})
	})

	return anchors, nil
}

// describe returns the description for an anchor based on its parent element.
func describe(anchor *goquery.Selection) string {
	parent := anchor.Parent()
	switch goquery.NodeName(parent) {
	case "h3":
		p := nextElement(parent.Get(0), "p")
		if p == nil {
			return ""
		}
		return strings.TrimSpace(goquery.NewDocumentFromNode(p).Text())
	case "div":
		return strings.TrimSpace(parent.Text())
	}
	return ""
}
