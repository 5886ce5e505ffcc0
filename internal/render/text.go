package render

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from scraped descriptions and collapses whitespace.
// Input without tags passes through unchanged apart from whitespace.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	return collapse(textContent(doc))
}

// textContent concatenates text nodes, skipping script and style.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return ""
		}
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
		if c.Type == html.ElementNode && isBlock(c.Data) {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "ul", "ol", "h1", "h2", "h3", "h4", "tr", "td":
		return true
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
