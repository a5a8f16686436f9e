package pages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/spanav/internal/config"
)

func TestToMarkdownNumbersLinks(t *testing.T) {
	doc := &Document{
		Path:  "/",
		Title: "Test Page",
		Content: `<h1>Test Page</h1>
<p>Hello <strong>bold</strong> and <em>italic</em>.</p>
<p><a href="/about">about</a> and <a href="https://golang.org">Go website</a>.</p>
<ul>
<li>one</li>
<li>two<ul><li>nested</li></ul></li>
</ul>`,
	}

	md, links := ToMarkdown(doc)

	assert.Equal(t, 1, strings.Count(md, "# Test Page"), "title is not repeated")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "*italic*")
	assert.Contains(t, md, "- one\n- two\n  - nested\n")

	require.Len(t, links, 2)
	assert.Equal(t, Link{Index: 1, Text: "about", URL: "/about", Path: "/about"}, links[0])
	assert.True(t, links[0].Internal())
	assert.Equal(t, "https://golang.org", links[1].URL)
	assert.False(t, links[1].Internal())
}

func TestToMarkdownAddsMissingTitle(t *testing.T) {
	md, _ := ToMarkdown(&Document{Title: "About", Content: "<p>body</p>"})
	assert.True(t, strings.HasPrefix(md, "# About\n\n"))
}

func TestRenderBuiltinRoot(t *testing.T) {
	src, ok := Builtin("/")
	require.True(t, ok)

	page := Render(Extract(src), 80)
	assert.Equal(t, "root", page.Title)
	assert.NotEmpty(t, page.Content)

	link, ok := page.Link(1)
	require.True(t, ok)
	assert.Equal(t, "/about", link.Path)

	_, ok = page.Link(0)
	assert.False(t, ok)
	_, ok = page.Link(len(page.Links) + 1)
	assert.False(t, ok)
}

func TestRenderPlain(t *testing.T) {
	page := RenderPlain(&Document{Title: "Plain", Content: `<p>see <a href="/x">x</a></p><hr><blockquote><p>q</p></blockquote>`}, 60)
	assert.NotEmpty(t, page.Content)
	require.Len(t, page.Links, 1)
	assert.Equal(t, "/x", page.Links[0].Path)
}

func TestRenderEmptyDocument(t *testing.T) {
	page := Render(&Document{Path: "/empty"}, 0)
	require.NotNil(t, page)
	assert.Empty(t, page.Links)
}

func TestAppPath(t *testing.T) {
	tests := []struct {
		href string
		want string
		ok   bool
	}{
		{"/about", "/about", true},
		{"/a?b=1#c", "/a?b=1#c", true},
		{"spanav://app/about", "/about", true},
		{"https://example.com/about", "", false},
		{"relative", "", false},
		{"mailto:x@example.com", "", false},
	}
	for _, tt := range tests {
		got, ok := appPath(tt.href)
		assert.Equal(t, tt.ok, ok, tt.href)
		assert.Equal(t, tt.want, got, tt.href)
	}
}

func TestExtractTitles(t *testing.T) {
	doc := Extract(Source{Path: "/x", HTML: "<p>no heading</p>"})
	assert.Equal(t, "/x", doc.Title)

	doc = Extract(Source{Path: "/x", HTML: "<h1>Heading</h1>"})
	assert.Equal(t, "Heading", doc.Title)

	doc = Extract(Source{Path: "/x", Title: "Declared", HTML: "<h1>Heading</h1>"})
	assert.Equal(t, "Declared", doc.Title)
}

func TestLoadSource(t *testing.T) {
	src, err := LoadSource(config.Route{Path: "/about", Title: "About"})
	require.NoError(t, err)
	assert.Equal(t, "About", src.Title)
	assert.Contains(t, src.HTML, "<h1>about</h1>")

	_, err = LoadSource(config.Route{Path: "/nowhere"})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "team.html")
	require.NoError(t, os.WriteFile(file, []byte("<h1>team</h1>"), 0o644))
	src, err = LoadSource(config.Route{Path: "/team", Page: file})
	require.NoError(t, err)
	assert.Equal(t, "<h1>team</h1>", src.HTML)

	_, err = LoadSource(config.Route{Path: "/gone", Page: filepath.Join(t.TempDir(), "gone.html")})
	assert.Error(t, err)
}

func TestLibraryCachesByWidth(t *testing.T) {
	lib, err := NewLibrary(4, nil)
	require.NoError(t, err)

	root := config.Route{Path: "/"}
	a, err := lib.Page(root, 80)
	require.NoError(t, err)
	b, err := lib.Page(root, 80)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = lib.Page(root, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, lib.Len())

	lib.Purge()
	assert.Equal(t, 0, lib.Len())
	c, err := lib.Page(root, 80)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}
