// Package title derives a human-readable album title from page content.
package title

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when the page yields no usable album title.
const Fallback = "Photos"

// Shared album pages suffix the document title with the host name,
// separated by a hyphen or an en dash.
var reHostSuffix = regexp.MustCompile(`\s*[-–]\s*Google Photos$`)

// FromHTML derives an album title from the page. Priority: og:title meta,
// then the document title with the host suffix stripped, then the first
// heading. Never fails.
func FromHTML(input []byte) string {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return Fallback
	}
	if t := clean(ogTitle(root)); t != "" {
		return t
	}
	if t := clean(reHostSuffix.ReplaceAllString(documentTitle(root), "")); t != "" {
		return t
	}
	if t := clean(headingText(root)); t != "" {
		return t
	}
	return Fallback
}

// clean trims and normalizes to NFC; scraped pages mix composed and
// decomposed forms.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func ogTitle(n *html.Node) string {
	var res string
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != "" {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, "meta") {
			var property, content string
			for _, a := range cur.Attr {
				switch strings.ToLower(a.Key) {
				case "property":
					property = a.Val
				case "content":
					content = a.Val
				}
			}
			if strings.EqualFold(property, "og:title") {
				res = content
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != "" {
				return
			}
		}
	}
	dfs(n)
	return res
}

func documentTitle(n *html.Node) string {
	head := findFirst(n, "head")
	if head == nil {
		return ""
	}
	t := findFirst(head, "title")
	if t == nil || t.FirstChild == nil {
		return ""
	}
	return t.FirstChild.Data
}

func headingText(n *html.Node) string {
	h := findFirst(n, "h1")
	if h == nil {
		return ""
	}
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(h)
	return b.String()
}

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}
