package web

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// metaTags holds the page metadata relevant to a preview.
type metaTags struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
	OGImage       string
	TwitterTitle  string
	TwitterDesc   string
	TwitterImage  string
}

func extractMetaTags(htmlBytes []byte) metaTags {
	var meta metaTags

	doc, err := html.Parse(bytes.NewReader(htmlBytes))
	if err != nil {
		return meta
	}

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				name, content := metaAttrs(n)
				switch strings.ToLower(name) {
				case "description":
					meta.Description = content
				case "og:title":
					meta.OGTitle = content
				case "og:description":
					meta.OGDescription = content
				case "og:image", "og:image:url", "og:image:secure_url":
					if meta.OGImage == "" {
						meta.OGImage = content
					}
				case "twitter:title":
					meta.TwitterTitle = content
				case "twitter:description":
					meta.TwitterDesc = content
				case "twitter:image", "twitter:image:src":
					if meta.TwitterImage == "" {
						meta.TwitterImage = content
					}
				}
			case "body":
				// Metadata lives in <head>; nothing past here matters.
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return meta
}

// metaAttrs returns the meta tag's name (or property) and content.
func metaAttrs(n *html.Node) (name, content string) {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "name", "property":
			if name == "" {
				name = attr.Val
			}
		case "content":
			content = strings.TrimSpace(attr.Val)
		}
	}
	return name, content
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
