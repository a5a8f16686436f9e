package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidyasagar/spanav/internal/history"
)

func TestMatchIsExact(t *testing.T) {
	assert.True(t, Match("/", "/"))
	assert.True(t, Match("/about", "/about"))
	assert.False(t, Match("/about", "/"))
	assert.False(t, Match("/", "/about"))
	assert.False(t, Match("/about/team", "/about"))
	assert.False(t, Match("/about/", "/about"))
}

func TestRoutesActive(t *testing.T) {
	routes := Routes[string]{
		{Path: "/", Content: "home"},
		{Path: "/about", Content: "about"},
		{Path: "/about", Content: "about-sidebar"},
	}

	assert.Equal(t, []Route[string]{{Path: "/", Content: "home"}}, routes.Active("/"))
	assert.Len(t, routes.Active("/about"), 2)
	assert.Empty(t, routes.Active("/missing"))
}

func TestRoutesRender(t *testing.T) {
	routes := Routes[string]{
		{Path: "/", Content: "home"},
		{Path: "/about", Content: "about"},
	}
	lc := LocationContext{Location: history.Location{Path: history.Path{Pathname: "/about"}}}

	assert.Equal(t, []string{"about"}, routes.Render(lc, true))
	assert.Nil(t, routes.Render(lc, false))
}

func TestRoutesLookup(t *testing.T) {
	routes := Routes[int]{{Path: "/a", Content: 1}, {Path: "/a", Content: 2}}

	r, ok := routes.Lookup("/a")
	assert.True(t, ok)
	assert.Equal(t, 1, r.Content)

	_, ok = routes.Lookup("/b")
	assert.False(t, ok)
}
