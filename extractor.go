package toplinks

// Anchor is a hyperlink discovered in an HTML page.
type Anchor struct {
	// Title is the anchor's rendered text with surrounding whitespace removed.
	Title string

	// Href is the raw href attribute. It is not resolved against the page URL.
	Href string

	// Description is best-effort context text found near the anchor.
	Description string
}

// AnchorExtractor discovers anchors in HTML pages.
type AnchorExtractor interface {
	// ExtractAnchors returns every anchor carrying an href attribute,
	// in document order. Anchors without href are ignored.
	ExtractAnchors(html string) ([]Anchor, error)
}
