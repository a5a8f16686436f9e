package pages

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/spanav/internal/theme"
)

// Cached glamour renderer; building one is expensive.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

// Link is a numbered link found on a page.
type Link struct {
	Index int
	Text  string
	URL   string
	// Path is the application path the link points to, empty when the
	// link leaves the application.
	Path string
}

// Internal reports whether following the link stays inside the application.
func (l Link) Internal() bool { return l.Path != "" }

// Page is a document ready for the terminal.
type Page struct {
	Path     string
	Title    string
	Markdown string
	Content  string // styled terminal text
	Links    []Link
}

// Link returns the link with the given 1-based index.
func (p *Page) Link(n int) (Link, bool) {
	if n < 1 || n > len(p.Links) {
		return Link{}, false
	}
	return p.Links[n-1], true
}

// Render converts a document into styled terminal text.
func Render(doc *Document, width int) *Page {
	contentWidth := contentWidth(width)

	md, links := ToMarkdown(doc)
	page := &Page{Path: doc.Path, Title: doc.Title, Markdown: md, Links: links}

	rendered, err := renderWithGlamour(md, contentWidth)
	if err != nil {
		page.Content = RenderPlain(doc, width).Content
		return page
	}
	page.Content = rendered
	return page
}

// ToMarkdown converts a document to markdown, numbering its links.
func ToMarkdown(doc *Document) (string, []Link) {
	sel, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content))
	if err != nil {
		return doc.Content, nil
	}

	conv := &mdConverter{}
	var md strings.Builder
	if doc.Title != "" && !startsWithHeading(sel.Selection, doc.Title) {
		md.WriteString("# " + doc.Title + "\n\n")
	}
	sel.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		md.WriteString(conv.convertNode(s, 0))
	})
	return md.String(), conv.links
}

func startsWithHeading(sel *goquery.Selection, title string) bool {
	first := sel.Find("body").Children().First()
	return goquery.NodeName(first) == "h1" && strings.TrimSpace(first.Text()) == title
}

func contentWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	w := width - 4
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
	}

	return cachedRenderer.Render(markdown)
}

type mdConverter struct {
	links []Link
}

func (c *mdConverter) convertNode(s *goquery.Selection, depth int) string {
	switch tag := goquery.NodeName(s); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ""
		}
		return strings.Repeat("#", int(tag[1]-'0')) + " " + text + "\n\n"
	case "p":
		var sb strings.Builder
		c.convertInline(s, &sb)
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text + "\n\n"
		}
		return ""
	case "a":
		return c.convertLink(s) + "\n\n"
	case "ul", "ol":
		return c.convertList(s, tag == "ol", depth)
	case "blockquote":
		var sb strings.Builder
		s.Children().Each(func(_ int, child *goquery.Selection) {
			for _, line := range strings.Split(strings.TrimRight(c.convertNode(child, 0), "\n"), "\n") {
				sb.WriteString("> " + line + "\n")
			}
		})
		return sb.String() + "\n"
	case "pre":
		return "```\n" + strings.TrimRight(s.Text(), "\n") + "\n```\n\n"
	case "hr":
		return "---\n\n"
	case "div", "article", "section", "main", "header", "footer", "nav":
		var sb strings.Builder
		s.Children().Each(func(_ int, child *goquery.Selection) {
			sb.WriteString(c.convertNode(child, depth))
		})
		return sb.String()
	default:
		var sb strings.Builder
		c.convertInline(s, &sb)
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text + "\n\n"
		}
		return ""
	}
}

func (c *mdConverter) convertInline(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			sb.WriteString(child.Text())
		case "a":
			sb.WriteString(c.convertLink(child))
		case "strong", "b":
			sb.WriteString("**")
			c.convertInline(child, sb)
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
			c.convertInline(child, sb)
			sb.WriteString("*")
		case "code":
			sb.WriteString("`" + child.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		case "ul", "ol":
			// nested lists are written by convertList
		default:
			c.convertInline(child, sb)
		}
	})
}

func (c *mdConverter) convertLink(s *goquery.Selection) string {
	href, _ := s.Attr("href")
	text := strings.TrimSpace(s.Text())
	if text == "" {
		text = href
	}
	if href == "" {
		return text
	}

	link := Link{Index: len(c.links) + 1, Text: text, URL: href}
	if p, ok := appPath(href); ok {
		link.Path = p
	}
	c.links = append(c.links, link)

	return fmt.Sprintf("[%s](%s) **[%d]**", text, href, link.Index)
}

func (c *mdConverter) convertList(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", depth)

	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		prefix := indent + "- "
		if ordered {
			prefix = fmt.Sprintf("%s%d. ", indent, i+1)
		}

		var item strings.Builder
		c.convertInline(li, &item)
		sb.WriteString(prefix + strings.TrimSpace(item.String()) + "\n")

		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			sb.WriteString(c.convertList(nested, goquery.NodeName(nested) == "ol", depth+1))
		})
	})

	if depth > 0 {
		return sb.String()
	}
	return sb.String() + "\n"
}

// RenderPlain renders a document with lipgloss styles only. It is used when
// glamour cannot build a renderer for the terminal.
func RenderPlain(doc *Document, width int) *Page {
	w := contentWidth(width)
	md, links := ToMarkdown(doc)

	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.Current.Heading)
	quote := lipgloss.NewStyle().Italic(true).Foreground(theme.Current.Quote)
	text := lipgloss.NewStyle().Foreground(theme.Current.Text).Width(w)
	rule := lipgloss.NewStyle().Foreground(theme.Current.Border)

	var sb strings.Builder
	for _, block := range strings.Split(md, "\n\n") {
		block = strings.TrimSpace(block)
		switch {
		case block == "":
			continue
		case block == "---":
			sb.WriteString(rule.Render(strings.Repeat("─", min(w, 60))))
		case strings.HasPrefix(block, "#"):
			sb.WriteString(heading.Render(strings.TrimLeft(block, "# ")))
		case strings.HasPrefix(block, ">"):
			sb.WriteString(quote.Render(block))
		default:
			sb.WriteString(text.Render(block))
		}
		sb.WriteString("\n\n")
	}

	return &Page{Path: doc.Path, Title: doc.Title, Markdown: md, Content: sb.String(), Links: links}
}
