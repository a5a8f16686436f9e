package history

// Snapshot is an exported copy of a MemoryPlatform's stack.
type Snapshot struct {
	Entries []Location
	Index   int
	Action  Action
}

// Valid reports whether the snapshot describes a usable stack.
func (s Snapshot) Valid() bool {
	return len(s.Entries) > 0 && s.Index >= 0 && s.Index < len(s.Entries)
}

// MemoryPlatform is an in-process session history: an ordered list of
// locations and a current index. It is not safe for concurrent use; like a
// browser's history it is driven from a single event loop.
type MemoryPlatform struct {
	entries    []Location
	index      int
	action     Action
	maxEntries int // 0 means unlimited
	reloads    []string

	subs   []*popSub
	nextID int

	onChange func(Snapshot)
}

type popSub struct {
	id     int
	fn     func(PopEvent)
	active bool
}

// MemoryOption configures a MemoryPlatform.
type MemoryOption func(*MemoryPlatform)

// WithMaxEntries limits the number of entries the stack may hold. Pushes
// beyond the limit fail with ErrStackQuota.
func WithMaxEntries(n int) MemoryOption {
	return func(m *MemoryPlatform) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithSnapshot restores a previously exported stack. Invalid snapshots are
// ignored; a stack longer than the max entry count is trimmed.
func WithSnapshot(s Snapshot) MemoryOption {
	return func(m *MemoryPlatform) {
		if !s.Valid() {
			return
		}
		m.entries = append([]Location(nil), s.Entries...)
		m.index = s.Index
		m.action = s.Action
		if m.action == "" {
			m.action = ActionPop
		}
	}
}

// WithChangeHook calls fn with a snapshot after every mutation of the stack.
func WithChangeHook(fn func(Snapshot)) MemoryOption {
	return func(m *MemoryPlatform) {
		m.onChange = fn
	}
}

// NewMemoryPlatform creates a session history whose single entry is the
// initial path, keyed DefaultKey.
func NewMemoryPlatform(initialPath string, opts ...MemoryOption) *MemoryPlatform {
	if initialPath == "" {
		initialPath = "/"
	}
	m := &MemoryPlatform{
		entries: []Location{resolve("/", Href(initialPath), nil, DefaultKey)},
		action:  ActionPop,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.trim()
	return m
}

// trim drops entries beyond maxEntries, oldest first, then from the
// forward end, keeping the current entry.
func (m *MemoryPlatform) trim() {
	if m.maxEntries == 0 || len(m.entries) <= m.maxEntries {
		return
	}
	excess := len(m.entries) - m.maxEntries
	front := min(excess, m.index)
	m.entries = m.entries[front:]
	m.index -= front
	m.entries = m.entries[:m.maxEntries]
}

// Current returns the entry at the current index.
func (m *MemoryPlatform) Current() Location {
	return m.entries[m.index]
}

// Action returns the action that produced the current entry.
func (m *MemoryPlatform) Action() Action {
	return m.action
}

// PushState truncates forward entries and appends loc.
func (m *MemoryPlatform) PushState(loc Location) error {
	if m.maxEntries > 0 && m.index+2 > m.maxEntries {
		return ErrStackQuota
	}
	m.entries = append(m.entries[:m.index+1], loc)
	m.index = len(m.entries) - 1
	m.action = ActionPush
	m.changed()
	return nil
}

// ReplaceState overwrites the current entry.
func (m *MemoryPlatform) ReplaceState(loc Location) error {
	m.entries[m.index] = loc
	m.action = ActionReplace
	m.changed()
	return nil
}

// Go moves the index by delta without notifying subscribers.
func (m *MemoryPlatform) Go(delta int) {
	m.move(delta)
}

// Traverse moves the index by delta as a user gesture would, notifying
// subscribers in registration order. A move that clamps to the current
// index is not reported.
func (m *MemoryPlatform) Traverse(delta int) {
	moved := m.move(delta)
	if moved == 0 {
		return
	}

	ev := PopEvent{Location: m.Current(), Delta: moved}
	subs := append([]*popSub(nil), m.subs...)
	for _, s := range subs {
		if s.active {
			s.fn(ev)
		}
	}
}

// Back simulates the back gesture.
func (m *MemoryPlatform) Back() {
	m.Traverse(-1)
}

// Forward simulates the forward gesture.
func (m *MemoryPlatform) Forward() {
	m.Traverse(1)
}

// CanGoBack reports whether there is a previous entry.
func (m *MemoryPlatform) CanGoBack() bool {
	return m.index > 0
}

// CanGoForward reports whether there is a next entry.
func (m *MemoryPlatform) CanGoForward() bool {
	return m.index < len(m.entries)-1
}

// Assign loads href as a new document. Any state is dropped and, when the
// stack is full, the oldest entry is evicted to make room.
func (m *MemoryPlatform) Assign(href string) {
	m.reloads = append(m.reloads, href)

	m.entries = m.entries[:m.index+1]
	if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		drop := len(m.entries) - m.maxEntries + 1
		m.entries = append([]Location(nil), m.entries[drop:]...)
	}
	m.entries = append(m.entries, resolve("/", Href(href), nil, createKey()))
	m.index = len(m.entries) - 1
	m.action = ActionPush
	m.changed()
}

// Reloads returns every href loaded through Assign, oldest first.
func (m *MemoryPlatform) Reloads() []string {
	return append([]string(nil), m.reloads...)
}

// Subscribe registers fn for gesture-driven moves.
func (m *MemoryPlatform) Subscribe(fn func(PopEvent)) func() {
	m.nextID++
	sub := &popSub{id: m.nextID, fn: fn, active: true}
	m.subs = append(m.subs, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range m.subs {
			if s.id == sub.id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of entries in the stack.
func (m *MemoryPlatform) Len() int {
	return len(m.entries)
}

// Index returns the current index.
func (m *MemoryPlatform) Index() int {
	return m.index
}

// Entries returns a copy of the stack, oldest first.
func (m *MemoryPlatform) Entries() []Location {
	return append([]Location(nil), m.entries...)
}

// Snapshot exports the stack.
func (m *MemoryPlatform) Snapshot() Snapshot {
	return Snapshot{
		Entries: m.Entries(),
		Index:   m.index,
		Action:  m.action,
	}
}

// move clamps and applies delta, returning the distance actually moved.
func (m *MemoryPlatform) move(delta int) int {
	var target int
	switch {
	case delta > len(m.entries)-1-m.index:
		target = len(m.entries) - 1
	case delta < -m.index:
		target = 0
	default:
		target = m.index + delta
	}
	moved := target - m.index
	if moved == 0 {
		return 0
	}
	m.index = target
	m.action = ActionPop
	m.changed()
	return moved
}

func (m *MemoryPlatform) changed() {
	if m.onChange != nil {
		m.onChange(m.Snapshot())
	}
}
