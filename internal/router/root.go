package router

import (
	"log/slog"

	"github.com/vidyasagar/spanav/internal/history"
)

// History is what a Root needs from a History Store.
type History interface {
	Navigator
	Replace(to history.To, state any)
	Location() history.Location
	Action() history.Action
	Listen(l history.Listener) func()
}

// Root is a mounted navigation root. It resolves the store's location
// against the basename, publishes the navigation and location contexts in
// its registry and keeps them current until it is unmounted.
type Root struct {
	basename string
	history  History
	registry *Registry
	logger   *slog.Logger

	unlisten func()
	mounted  bool
}

// RootOption configures Mount.
type RootOption func(*Root)

// WithBasename sets the application root prefix. The default is "/".
func WithBasename(basename string) RootOption {
	return func(rt *Root) {
		rt.basename = NormalizeBasename(basename)
	}
}

// WithRegistry publishes into r instead of a fresh registry.
func WithRegistry(r *Registry) RootOption {
	return func(rt *Root) {
		if r != nil {
			rt.registry = r
		}
	}
}

// WithRootLogger sets the logger used for diagnostics.
func WithRootLogger(l *slog.Logger) RootOption {
	return func(rt *Root) {
		if l != nil {
			rt.logger = l
		}
	}
}

// Mount initializes a root over h.
func Mount(h History, opts ...RootOption) *Root {
	rt := &Root{
		basename: "/",
		history:  h,
		logger:   slog.Default(),
		mounted:  true,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.registry == nil {
		rt.registry = NewRegistry()
	}

	Provide(rt.registry, NavigationKey, NavigationContext{
		Basename:  rt.basename,
		Navigator: rootNavigator{rt},
		GoTo:      rt.GoTo,
	})
	rt.sync(history.OriginExternal)

	rt.unlisten = h.Listen(func(history.Update) {
		rt.sync(history.OriginExternal)
	})
	return rt
}

// Basename returns the normalized basename.
func (rt *Root) Basename() string { return rt.basename }

// Registry returns the registry the root publishes into.
func (rt *Root) Registry() *Registry { return rt.registry }

// Location returns the resolved location. ok is false when the current
// pathname is outside the basename and nothing should be rendered.
func (rt *Root) Location() (LocationContext, bool) {
	return Use(rt.registry, LocationKey)
}

// Navigator returns the navigator published in the navigation context.
// Pushes and moves made through it keep the root's location in step.
func (rt *Root) Navigator() Navigator {
	return rootNavigator{rt}
}

// Href returns the platform href for an application path.
func (rt *Root) Href(path string) string {
	return rt.history.CreateHref(history.Href(JoinBasename(rt.basename, path)))
}

// GoTo pushes path (relative to the basename) and republishes the resolved
// location in the same call, so the visible location never lags the stack.
func (rt *Root) GoTo(path string) {
	if !rt.mounted {
		rt.logger.Debug("goTo on unmounted root ignored", "path", path)
		return
	}
	rt.history.Push(history.Href(JoinBasename(rt.basename, path)), nil)
	rt.sync(history.OriginProgrammatic)
}

// Replace swaps the current entry for path (relative to the basename) and
// republishes the resolved location.
func (rt *Root) Replace(path string, state any) {
	if !rt.mounted {
		rt.logger.Debug("replace on unmounted root ignored", "path", path)
		return
	}
	rt.history.Replace(history.Href(JoinBasename(rt.basename, path)), state)
	rt.sync(history.OriginProgrammatic)
}

// Unmount stops listening to the store and withdraws the published values.
func (rt *Root) Unmount() {
	if !rt.mounted {
		return
	}
	rt.mounted = false
	if rt.unlisten != nil {
		rt.unlisten()
	}
	Withdraw(rt.registry, LocationKey)
	Withdraw(rt.registry, NavigationKey)
}

func (rt *Root) sync(origin history.Origin) {
	loc := rt.history.Location()
	rest, ok := StripBasename(loc.Pathname, rt.basename)
	if !ok {
		rt.logger.Warn("location does not start with the basename, rendering nothing",
			"basename", rt.basename,
			"href", history.CreatePath(loc.Path),
		)
		Withdraw(rt.registry, LocationKey)
		return
	}

	loc.Pathname = rest
	Provide(rt.registry, LocationKey, LocationContext{
		Location:       loc,
		NavigationType: rt.history.Action(),
		Origin:         origin,
	})
}

// rootNavigator forwards to the store and resyncs the root afterwards.
// Targets are platform paths; use Root.GoTo for basename-relative paths.
type rootNavigator struct {
	rt *Root
}

func (n rootNavigator) CreateHref(to history.To) string {
	return n.rt.history.CreateHref(to)
}

func (n rootNavigator) Go(delta int) {
	n.rt.history.Go(delta)
	if n.rt.mounted {
		n.rt.sync(history.OriginProgrammatic)
	}
}

func (n rootNavigator) Push(to history.To, state any) {
	n.rt.history.Push(to, state)
	if n.rt.mounted {
		n.rt.sync(history.OriginProgrammatic)
	}
}
