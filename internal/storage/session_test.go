package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/spanav/internal/history"
)

func openSessions(t *testing.T) (*SessionStore, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := OpenDB(dir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionStore(db, nil), dir
}

func TestSessionLoadEmpty(t *testing.T) {
	ss, _ := openSessions(t)
	_, err := ss.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionSaveLoad(t *testing.T) {
	ss, _ := openSessions(t)

	p := history.NewMemoryPlatform("/")
	s := history.NewStore(p)
	s.Push(history.Href("/about?tab=team#people"), "about-state")
	s.Push(history.Href("/contact"), map[string]any{"from": "about"})
	s.Go(-1)

	require.NoError(t, ss.Save(p.Snapshot()))

	snap, err := ss.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, history.ActionPop, snap.Action)
	require.Len(t, snap.Entries, 3)

	assert.Equal(t, history.DefaultKey, snap.Entries[0].Key)
	assert.Nil(t, snap.Entries[0].State)

	about := snap.Entries[1]
	assert.Equal(t, "/about", about.Pathname)
	assert.Equal(t, "?tab=team", about.Search)
	assert.Equal(t, "#people", about.Hash)
	assert.Equal(t, "about-state", about.State)
	assert.Equal(t, p.Entries()[1].Key, about.Key)

	assert.Equal(t, map[string]any{"from": "about"}, snap.Entries[2].State)

	restored := history.NewMemoryPlatform("/", history.WithSnapshot(snap))
	assert.Equal(t, "/about", restored.Current().Pathname)
	assert.True(t, restored.CanGoForward())
}

func TestSessionSaveOverwrites(t *testing.T) {
	ss, _ := openSessions(t)

	p := history.NewMemoryPlatform("/")
	p.PushState(history.Location{Path: history.Path{Pathname: "/a"}, Key: "a"})
	p.PushState(history.Location{Path: history.Path{Pathname: "/b"}, Key: "b"})
	require.NoError(t, ss.Save(p.Snapshot()))

	short := history.NewMemoryPlatform("/only")
	require.NoError(t, ss.Save(short.Snapshot()))

	snap, err := ss.Load()
	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "/only", snap.Entries[0].Pathname)
	assert.Equal(t, 0, snap.Index)
}

func TestSessionOpaqueStateIsNotPersisted(t *testing.T) {
	ss, _ := openSessions(t)

	p := history.NewMemoryPlatform("/")
	p.PushState(history.Location{Path: history.Path{Pathname: "/fn"}, State: func() {}, Key: "fn"})
	require.NoError(t, ss.Save(p.Snapshot()))

	snap, err := ss.Load()
	require.NoError(t, err)
	assert.Nil(t, snap.Entries[1].State)
}

func TestSessionRejectsInvalidSnapshot(t *testing.T) {
	ss, _ := openSessions(t)
	assert.Error(t, ss.Save(history.Snapshot{}))
}

func TestSessionClearAndReopen(t *testing.T) {
	ss, dir := openSessions(t)
	require.NoError(t, ss.Save(history.NewMemoryPlatform("/x").Snapshot()))

	db2, err := OpenDB(dir)
	require.NoError(t, err)
	defer db2.Close()
	snap, err := NewSessionStore(db2, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "/x", snap.Entries[0].Pathname)

	require.NoError(t, ss.Clear())
	_, err = ss.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
