package router

import (
	"github.com/vidyasagar/spanav/internal/history"
)

// ContextKey names a value published in a Registry. The type parameter
// ties each key to the type of value it carries.
type ContextKey[T any] struct {
	name string
}

// NewContextKey creates a key. Keys compare by name; a key whose type does
// not match the value published under its name finds nothing.
func NewContextKey[T any](name string) ContextKey[T] {
	return ContextKey[T]{name: name}
}

// Name returns the key's name.
func (k ContextKey[T]) Name() string { return k.name }

// Registry is a root-scoped service locator. A mounted Root publishes its
// navigation and location values here; any consumer holding the registry
// can read the latest value or watch for changes without the values being
// threaded through every layer.
//
// Registry is not safe for concurrent use.
type Registry struct {
	values map[string]any
	subs   map[string][]*watcher
	nextID int
}

type watcher struct {
	id     int
	fn     func(value any, ok bool)
	active bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		values: make(map[string]any),
		subs:   make(map[string][]*watcher),
	}
}

// Provide publishes v under key and notifies the key's watchers in
// registration order.
func Provide[T any](r *Registry, key ContextKey[T], v T) {
	r.values[key.name] = v
	r.notify(key.name, v, true)
}

// Withdraw removes the value under key. Watchers see ok == false.
func Withdraw[T any](r *Registry, key ContextKey[T]) {
	if _, ok := r.values[key.name]; !ok {
		return
	}
	delete(r.values, key.name)
	r.notify(key.name, nil, false)
}

// Use returns the value currently published under key. ok is false when
// nothing of type T is published there.
func Use[T any](r *Registry, key ContextKey[T]) (T, bool) {
	v, ok := r.values[key.name].(T)
	return v, ok
}

// Watch calls fn every time a value is provided or withdrawn under key. The
// returned func unsubscribes; calling it again is a no-op.
func Watch[T any](r *Registry, key ContextKey[T], fn func(v T, ok bool)) func() {
	r.nextID++
	w := &watcher{
		id: r.nextID,
		fn: func(value any, ok bool) {
			v, typed := value.(T)
			fn(v, ok && typed)
		},
		active: true,
	}
	r.subs[key.name] = append(r.subs[key.name], w)

	return func() {
		if !w.active {
			return
		}
		w.active = false
		list := r.subs[key.name]
		for i, s := range list {
			if s.id == w.id {
				r.subs[key.name] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

func (r *Registry) notify(name string, v any, ok bool) {
	list := append([]*watcher(nil), r.subs[name]...)
	for _, w := range list {
		if w.active {
			w.fn(v, ok)
		}
	}
}

// Navigator issues navigation commands against the history stack.
type Navigator interface {
	CreateHref(to history.To) string
	Go(delta int)
	Push(to history.To, state any)
}

// NavigationContext is published by a mounted Root under NavigationKey.
type NavigationContext struct {
	Basename  string
	Navigator Navigator
	GoTo      func(path string)
}

// LocationContext is published by a mounted Root under LocationKey while the
// current location is inside the basename.
type LocationContext struct {
	Location       history.Location
	NavigationType history.Action
	Origin         history.Origin
}

var (
	// NavigationKey carries the root's NavigationContext.
	NavigationKey = NewContextKey[NavigationContext]("navigation")
	// LocationKey carries the root's resolved LocationContext.
	LocationKey = NewContextKey[LocationContext]("location")
)
