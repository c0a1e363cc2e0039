package mock

import "github.com/fwojciec/toplinks"

var _ toplinks.AnchorExtractor = (*AnchorExtractor)(nil)

// AnchorExtractor is a mock implementation of toplinks.AnchorExtractor.
type AnchorExtractor struct {
	ExtractAnchorsFn func(html string) ([]toplinks.Anchor, error)
}

func (e *AnchorExtractor) ExtractAnchors(html string) ([]toplinks.Anchor, error) {
	return e.ExtractAnchorsFn(html)
}
