package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup extracts visible text from review bodies that arrive with
// residual HTML (forum scrapes, Amazon review markup). Plain text passes
// through unchanged. Called at the ingest boundary so the offset map in
// Normalize stays a straight text-to-text mapping.
func StripMarkup(body string) string {
	if !strings.ContainsRune(body, '<') {
		return body
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return body
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
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}
