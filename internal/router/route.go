package router

// Route pairs a path pattern with the content shown when it matches.
type Route[C any] struct {
	Path    string
	Content C
}

// Match reports whether pathname selects pattern. Matching is exact: there
// are no prefixes, parameters or nesting.
func Match(pathname, pattern string) bool {
	return pathname == pattern
}

// Routes is a flat list of declared routes.
type Routes[C any] []Route[C]

// Active returns the routes whose pattern matches pathname, in declaration
// order. A pathname nothing matches yields an empty result, not an error.
func (rs Routes[C]) Active(pathname string) []Route[C] {
	var active []Route[C]
	for _, r := range rs {
		if Match(pathname, r.Path) {
			active = append(active, r)
		}
	}
	return active
}

// Render returns the content of every active route for a resolved
// location. When the location did not resolve (ok is false) nothing renders.
func (rs Routes[C]) Render(lc LocationContext, ok bool) []C {
	if !ok {
		return nil
	}
	var out []C
	for _, r := range rs.Active(lc.Location.Pathname) {
		out = append(out, r.Content)
	}
	return out
}

// Lookup returns the first route declared for exactly path.
func (rs Routes[C]) Lookup(path string) (Route[C], bool) {
	for _, r := range rs {
		if r.Path == path {
			return r, true
		}
	}
	return Route[C]{}, false
}
