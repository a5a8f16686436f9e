package history

import "errors"

// ErrStackQuota is returned by a Platform when a push would exceed the
// session history size limit.
var ErrStackQuota = errors.New("history: session stack quota exceeded")

// PopEvent is delivered by a Platform when the stack position changed
// because of something outside the application (a back/forward gesture).
type PopEvent struct {
	Location Location
	Delta    int
}

// Platform is the process-wide session history shared by every Store. A
// Store is a view over it: all reads go through to the platform.
type Platform interface {
	// Current returns the entry at the current index.
	Current() Location
	// Action returns the action that produced the current entry.
	Action() Action
	// PushState truncates every entry after the current index and appends loc.
	// On error the stack must be left untouched.
	PushState(loc Location) error
	// ReplaceState overwrites the current entry.
	ReplaceState(loc Location) error
	// Go moves the current index by delta, clamped to the stack bounds.
	// Programmatic moves are not reported to subscribers.
	Go(delta int)
	// Assign performs a full, reload-style navigation to href.
	Assign(href string)
	// Subscribe registers fn for externally triggered stack moves. The
	// returned cancel func is idempotent.
	Subscribe(fn func(PopEvent)) (cancel func())
}
