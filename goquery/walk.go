package goquery

import "golang.org/x/net/html"

// nextElement returns the first element named tag that follows n in
// document order, searching n's descendants first. Returns nil if none.
func nextElement(n *html.Node, tag string) *html.Node {
	for cur := successor(n); cur != nil; cur = successor(cur) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			return cur
		}
	}
	return nil
}

// successor returns the node after n in a pre-order walk of the tree.
func successor(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}
