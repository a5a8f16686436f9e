package history

import (
	"strings"

	"github.com/google/uuid"
)

// Action describes how the current location changed relative to the previous one.
type Action string

const (
	// ActionPop is a move to an arbitrary index in the stack (back or forward).
	// It carries no direction. Newly created stores also report it before any
	// navigation has happened.
	ActionPop Action = "POP"

	// ActionPush appends a new entry; every entry after the current index is lost.
	ActionPush Action = "PUSH"

	// ActionReplace overwrites the entry at the current index.
	ActionReplace Action = "REPLACE"
)

// DefaultKey is the key of the initial location.
const DefaultKey = "default"

// Path is a URL split into its pathname, search and hash parts.
type Path struct {
	Pathname string // begins with "/"
	Search   string // begins with "?" or is empty
	Hash     string // begins with "#" or is empty
}

// Location is one entry of the history stack. Locations are values: a
// navigation produces a new Location and never mutates the previous one.
type Location struct {
	Path
	State any
	Key   string
}

// To is a navigation target: either an Href or a (possibly partial) Path.
type To interface {
	target() Path
}

// Href is a string navigation target such as "/about?tab=1#top".
type Href string

func (h Href) target() Path { return ParsePath(string(h)) }

func (p Path) target() Path { return p }

// CreatePath composes a path string from its parts. An empty pathname becomes
// "/". Search and hash are appended with their leading "?" and "#" unless they
// are empty or exactly "?" / "#".
func CreatePath(p Path) string {
	pathname := p.Pathname
	if pathname == "" {
		pathname = "/"
	}

	var sb strings.Builder
	sb.WriteString(pathname)
	if p.Search != "" && p.Search != "?" {
		if p.Search[0] != '?' {
			sb.WriteByte('?')
		}
		sb.WriteString(p.Search)
	}
	if p.Hash != "" && p.Hash != "#" {
		if p.Hash[0] != '#' {
			sb.WriteByte('#')
		}
		sb.WriteString(p.Hash)
	}
	return sb.String()
}

// ParsePath splits a path string on the first "#" and then the first "?".
// Parts that are absent stay empty.
func ParsePath(s string) Path {
	var p Path
	if i := strings.IndexByte(s, '#'); i >= 0 {
		p.Hash = s[i:]
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		p.Search = s[i:]
		s = s[:i]
	}
	p.Pathname = s
	return p
}

// resolve builds the Location a target describes, relative to the current
// pathname. Only the pathname is inherited from current.
func resolve(current string, to To, state any, key string) Location {
	p := to.target()
	if p.Pathname == "" {
		p.Pathname = current
	}
	if !strings.HasPrefix(p.Pathname, "/") {
		p.Pathname = "/" + p.Pathname
	}
	return Location{Path: p, State: state, Key: key}
}

// createKey returns a random key for a new stack entry.
func createKey() string {
	return uuid.NewString()
}
