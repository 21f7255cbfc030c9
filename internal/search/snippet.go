package search

import (
	"strings"

	"golang.org/x/net/html"
)

// SanitizeSnippet strips HTML markup that search snippets occasionally
// carry, leaving plain text for the verification prompt.
func SanitizeSnippet(snippet string) string {
	if !strings.ContainsAny(snippet, "<>") {
		return collapseWhitespace(snippet)
	}

	doc, err := html.Parse(strings.NewReader(snippet))
	if err != nil {
		return collapseWhitespace(snippet)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return collapseWhitespace(buf.String())
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
