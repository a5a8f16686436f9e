package history

import (
	"log/slog"
)

// Origin tells a listener what caused an Update.
type Origin int

const (
	// OriginExternal marks a change the application did not initiate, such
	// as a back/forward gesture.
	OriginExternal Origin = iota
	// OriginProgrammatic marks a change made through a Store method.
	OriginProgrammatic
)

func (o Origin) String() string {
	switch o {
	case OriginExternal:
		return "external"
	case OriginProgrammatic:
		return "programmatic"
	default:
		return "unknown"
	}
}

// UpdateLocation is the part of a Location carried by an Update. Search and
// hash are omitted; read Store.Location for the full value.
type UpdateLocation struct {
	Pathname string
	State    any
	Key      string
}

// Update is passed to listeners.
type Update struct {
	Action   Action
	Location UpdateLocation
	Origin   Origin
}

// Listener receives updates registered through Store.Listen.
type Listener func(Update)

// Store is the History Store: a view over a shared Platform that exposes the
// current location and mediates every change to it.
//
// Listeners are only told about external changes. Push, Replace and Go do
// not loop back through Listen; the caller already knows where it went.
type Store struct {
	platform Platform
	logger   *slog.Logger

	cancels map[int]func()
	nextID  int
	closed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a Store over p. Creating several stores over the same
// platform is allowed and never resets the stack.
func NewStore(p Platform, opts ...Option) *Store {
	s := &Store{
		platform: p,
		logger:   slog.Default(),
		cancels:  make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the current entry of the shared stack.
func (s *Store) Location() Location {
	return s.platform.Current()
}

// Action returns the action that produced the current entry.
func (s *Store) Action() Action {
	return s.platform.Action()
}

// CreateHref returns a link target for to without navigating.
func (s *Store) CreateHref(to To) string {
	if h, ok := to.(Href); ok {
		return string(h)
	}
	return CreatePath(to.target())
}

// Go moves delta entries through the stack. Out-of-range deltas are clamped
// by the platform.
func (s *Store) Go(delta int) {
	s.platform.Go(delta)
}

// Push appends a new entry for to. If the platform refuses the push, the
// store falls back to a full navigation to the same href.
func (s *Store) Push(to To, state any) {
	loc := resolve(s.platform.Current().Pathname, to, state, createKey())
	if err := s.platform.PushState(loc); err != nil {
		href := CreatePath(loc.Path)
		s.logger.Warn("push failed, falling back to full navigation",
			"href", href,
			"error", err,
		)
		s.platform.Assign(href)
	}
}

// Replace overwrites the current entry with to.
func (s *Store) Replace(to To, state any) {
	loc := resolve(s.platform.Current().Pathname, to, state, createKey())
	if err := s.platform.ReplaceState(loc); err != nil {
		href := CreatePath(loc.Path)
		s.logger.Warn("replace failed, falling back to full navigation",
			"href", href,
			"error", err,
		)
		s.platform.Assign(href)
	}
}

// Listen registers l for externally triggered stack moves. Every update it
// receives has ActionPop and OriginExternal. The returned func unsubscribes
// and may be called any number of times, including after Close.
func (s *Store) Listen(l Listener) func() {
	if s.closed {
		return func() {}
	}

	cancel := s.platform.Subscribe(func(ev PopEvent) {
		l(Update{
			Action: ActionPop,
			Location: UpdateLocation{
				Pathname: ev.Location.Pathname,
				State:    ev.Location.State,
				Key:      ev.Location.Key,
			},
			Origin: OriginExternal,
		})
	})

	s.nextID++
	id := s.nextID
	s.cancels[id] = cancel

	return func() {
		if c, ok := s.cancels[id]; ok {
			delete(s.cancels, id)
			c()
		}
	}
}

// Close removes every platform subscription made through this store.
func (s *Store) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for id, c := range s.cancels {
		delete(s.cancels, id)
		c()
	}
}
