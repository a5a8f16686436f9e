package pages

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vidyasagar/spanav/internal/config"
)

const defaultCacheSize = 32

type cacheKey struct {
	path  string
	width int
}

// Library loads, renders and caches the pages of declared routes.
type Library struct {
	cache  *lru.Cache[cacheKey, *Page]
	logger *slog.Logger
}

// NewLibrary creates a library holding at most size rendered pages.
func NewLibrary(size int, logger *slog.Logger) (*Library, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[cacheKey, *Page](size)
	if err != nil {
		return nil, fmt.Errorf("creating page cache: %w", err)
	}
	return &Library{cache: cache, logger: logger}, nil
}

// Page returns the rendered page for a route at the given width.
func (l *Library) Page(r config.Route, width int) (*Page, error) {
	key := cacheKey{path: r.Path, width: width}
	if p, ok := l.cache.Get(key); ok {
		return p, nil
	}

	src, err := LoadSource(r)
	if err != nil {
		return nil, err
	}
	page := Render(Extract(src), width)
	l.cache.Add(key, page)
	l.logger.Debug("page rendered", "path", r.Path, "width", width, "links", len(page.Links))
	return page, nil
}

// Purge drops every rendered page so the next lookup reads its source again.
func (l *Library) Purge() {
	l.cache.Purge()
}

// Len returns the number of cached pages.
func (l *Library) Len() int {
	return l.cache.Len()
}
