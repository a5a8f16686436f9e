package pages

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// pageBase is the origin page sources are parsed against, so that app links
// like "/about" can be told apart from external ones.
var pageBase = &url.URL{Scheme: "spanav", Host: "app"}

// Document is a page source reduced to its readable content.
type Document struct {
	Path    string
	Title   string
	Content string // cleaned HTML
}

// Extract reduces a source to a Document. Full HTML documents go through
// readability; fragments are used as they are.
func Extract(src Source) *Document {
	doc := &Document{Path: src.Path, Title: src.Title, Content: src.HTML}

	if isFullDocument(src.HTML) {
		pageURL := pageBase.ResolveReference(&url.URL{Path: src.Path})
		article, err := readability.FromReader(strings.NewReader(src.HTML), pageURL)
		if err == nil && strings.TrimSpace(article.Content) != "" {
			doc.Content = article.Content
			if doc.Title == "" {
				doc.Title = article.Title
			}
		}
	}

	if doc.Title == "" {
		doc.Title = guessTitle(src.HTML, src.Path)
	}
	return doc
}

func isFullDocument(html string) bool {
	head := strings.ToLower(html)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype")
}

// guessTitle uses <title>, then the first <h1>, then the path.
func guessTitle(html, path string) string {
	sel, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		if t := strings.TrimSpace(sel.Find("title").First().Text()); t != "" {
			return t
		}
		if t := strings.TrimSpace(sel.Find("h1").First().Text()); t != "" {
			return t
		}
	}
	return path
}

// appPath turns an href into an application path. ok is false for links
// that leave the application.
func appPath(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme == pageBase.Scheme && u.Host == pageBase.Host {
		u.Scheme, u.Host = "", ""
	}
	if u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	return u.String(), true
}
