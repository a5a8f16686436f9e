package pages

import (
	"fmt"
	"os"

	"github.com/vidyasagar/spanav/internal/config"
)

// Source is the raw HTML shown for one route.
type Source struct {
	Path  string // application path the page is declared for
	Title string // declared title; may be empty
	HTML  string
}

var builtin = map[string]string{
	"/": `<h1>root</h1>
<p>This is the root of the application. The location shown in the address bar
is resolved against the basename before any route is matched.</p>
<p><a href="/about">about</a></p>`,

	"/about": `<h1>about</h1>
<p>Routes match the current pathname exactly. Nothing here matches <code>/</code>,
and nothing on the root page matches <code>/about</code>.</p>
<ul>
<li>Press <strong>H</strong> / <strong>L</strong> to go back and forward.</li>
<li>Press <strong>f</strong> and a number to follow a link.</li>
</ul>
<p><a href="/">back to root</a></p>`,
}

// Builtin returns the built-in page for path, if there is one.
func Builtin(path string) (Source, bool) {
	html, ok := builtin[path]
	if !ok {
		return Source{}, false
	}
	return Source{Path: path, HTML: html}, true
}

// LoadSource reads the page declared for a route: its file when one is
// configured, otherwise the built-in page for the path.
func LoadSource(r config.Route) (Source, error) {
	if r.Page == "" {
		src, ok := Builtin(r.Path)
		if !ok {
			return Source{}, fmt.Errorf("route %s: no page file and no built-in page", r.Path)
		}
		src.Title = r.Title
		return src, nil
	}

	data, err := os.ReadFile(r.Page)
	if err != nil {
		return Source{}, fmt.Errorf("route %s: reading page: %w", r.Path, err)
	}
	return Source{Path: r.Path, Title: r.Title, HTML: string(data)}, nil
}
