package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/spanav/internal/config"
	"github.com/vidyasagar/spanav/internal/history"
	"github.com/vidyasagar/spanav/internal/logging"
	"github.com/vidyasagar/spanav/internal/router"
	"github.com/vidyasagar/spanav/internal/storage"
)

func newModel(t *testing.T, cfg *config.Config, sessions *storage.SessionStore) Model {
	t.Helper()
	m, err := New(Options{Config: cfg, Sessions: sessions, Logger: logging.Discard().Logger})
	require.NoError(t, err)
	t.Cleanup(m.Close)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runCommand(m Model, line string) Model {
	return send(m, keys(":"), keys(line), enter)
}

func location(t *testing.T, m Model) router.LocationContext {
	t.Helper()
	lc, ok := m.s.root.Location()
	require.True(t, ok, "location should resolve")
	return lc
}

func withBasename(b string) *config.Config {
	cfg := config.Default()
	cfg.Basename = b
	return &cfg
}

func TestStartsAtRoot(t *testing.T) {
	m := newModel(t, nil, nil)

	lc := location(t, m)
	assert.Equal(t, "/", lc.Location.Pathname)
	assert.Equal(t, history.DefaultKey, lc.Location.Key)

	require.NotNil(t, m.page)
	assert.Equal(t, "Home", m.page.Title)
	link, ok := m.page.Link(1)
	require.True(t, ok)
	assert.Equal(t, "/about", link.Path)
}

func TestFollowLinkGoesTo(t *testing.T) {
	m := newModel(t, nil, nil)

	m = send(m, keys("f"), keys("1"), enter)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 2, m.s.platform.Len())
	lc := location(t, m)
	assert.Equal(t, "/about", lc.Location.Pathname)
	assert.Equal(t, history.ActionPush, lc.NavigationType)
	assert.Equal(t, history.OriginProgrammatic, lc.Origin)
	require.NotNil(t, m.page)
	assert.Equal(t, "About", m.page.Title)
}

func TestFollowLinkErrors(t *testing.T) {
	m := newModel(t, nil, nil)

	m = send(m, keys("f"), keys("x"), enter)
	assert.Contains(t, m.statusBar.Message(), "invalid link number")

	m = send(m, keys("f"), keys("9"), enter)
	assert.Contains(t, m.statusBar.Message(), "not found")
	assert.Equal(t, 1, m.s.platform.Len())
}

func TestExternalLinkIsNotFollowed(t *testing.T) {
	page := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, os.WriteFile(page, []byte(`<h1>out</h1><p><a href="https://example.com">away</a></p>`), 0o644))
	cfg := config.Default()
	cfg.Routes = []config.Route{{Path: "/", Page: page}}

	m := newModel(t, &cfg, nil)
	m = send(m, keys("f"), keys("1"), enter)

	assert.Contains(t, m.statusBar.Message(), "External link")
	assert.Equal(t, 1, m.s.platform.Len())
}

func TestBackAndForwardAreExternal(t *testing.T) {
	m := newModel(t, nil, nil)
	m = send(m, keys("f"), keys("1"), enter)

	m = send(m, keys("H"))
	lc := location(t, m)
	assert.Equal(t, "/", lc.Location.Pathname)
	assert.Equal(t, history.ActionPop, lc.NavigationType)
	assert.Equal(t, history.OriginExternal, lc.Origin)
	assert.Equal(t, "Home", m.page.Title)

	m = send(m, keys("H"))
	assert.Contains(t, m.statusBar.Message(), "oldest")

	m = send(m, keys("L"))
	assert.Equal(t, "/about", location(t, m).Location.Pathname)
}

func TestAddressBarUsesBasename(t *testing.T) {
	m := newModel(t, withBasename("/app"), nil)
	assert.Equal(t, "/app", m.s.platform.Current().Pathname)
	assert.Equal(t, "/", location(t, m).Location.Pathname)

	m = send(m, keys("o"))
	assert.Equal(t, ModeAddress, m.mode)
	m = send(m, keys("about"), enter)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "/app/about", m.s.platform.Current().Pathname)
	assert.Equal(t, "/about", location(t, m).Location.Pathname)
}

func TestAddressBarEscapeCancels(t *testing.T) {
	m := newModel(t, nil, nil)
	m = send(m, keys("o"), keys("about"), esc)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 1, m.s.platform.Len())
}

func TestPushOutsideBasenameRendersNothing(t *testing.T) {
	m := newModel(t, withBasename("/app"), nil)

	m = runCommand(m, "push /elsewhere")
	_, ok := m.s.root.Location()
	assert.False(t, ok)
	assert.Nil(t, m.page)
	assert.Contains(t, m.statusBar.Message(), "outside /app")

	m = runCommand(m, "go -1")
	assert.Equal(t, "/", location(t, m).Location.Pathname)
	assert.NotNil(t, m.page)
}

func TestUnmatchedPathRendersNothing(t *testing.T) {
	m := newModel(t, nil, nil)
	m = runCommand(m, "goto /missing")

	lc := location(t, m)
	assert.Equal(t, "/missing", lc.Location.Pathname)
	assert.Nil(t, m.page)
}

func TestReplaceCommand(t *testing.T) {
	m := newModel(t, nil, nil)
	m = runCommand(m, "replace about")

	assert.Equal(t, 1, m.s.platform.Len())
	lc := location(t, m)
	assert.Equal(t, "/about", lc.Location.Pathname)
	assert.Equal(t, history.ActionReplace, lc.NavigationType)
}

func TestBackForwardCommands(t *testing.T) {
	m := newModel(t, nil, nil)
	m = runCommand(m, "goto /about")
	m = runCommand(m, "back")
	assert.Equal(t, history.OriginExternal, location(t, m).Origin)
	m = runCommand(m, "forward")
	assert.Equal(t, "/about", location(t, m).Location.Pathname)
}

func TestUnknownCommand(t *testing.T) {
	m := newModel(t, nil, nil)
	m = runCommand(m, "frobnicate")
	assert.Contains(t, m.statusBar.Message(), "unknown command")
}

func TestStackPanelJumps(t *testing.T) {
	m := newModel(t, nil, nil)
	m = runCommand(m, "goto /about")
	m = runCommand(m, "goto /contact")
	require.Equal(t, 3, m.s.platform.Len())

	m = send(m, keys("s"))
	assert.Equal(t, ModeStack, m.mode)
	m = send(m, keys("k"), keys("k"), enter)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 0, m.s.platform.Index())
	lc := location(t, m)
	assert.Equal(t, "/", lc.Location.Pathname)
	assert.Equal(t, history.OriginProgrammatic, lc.Origin)
	assert.Equal(t, 3, m.s.platform.Len(), "jumping keeps forward entries")
}

func TestStackQuotaFallsBackToAssign(t *testing.T) {
	cfg := config.Default()
	cfg.MaxEntries = 2
	m := newModel(t, &cfg, nil)

	m = runCommand(m, "goto /about")
	m = runCommand(m, "goto /contact")

	assert.Equal(t, 2, m.s.platform.Len())
	assert.Equal(t, []string{"/contact"}, m.s.platform.Reloads())
	assert.Equal(t, "/contact", location(t, m).Location.Pathname)
}

func TestSessionIsRestored(t *testing.T) {
	db, err := storage.OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sessions := storage.NewSessionStore(db, nil)

	first := newModel(t, nil, sessions)
	first = send(first, keys("f"), keys("1"), enter)
	require.Equal(t, "/about", first.s.platform.Current().Pathname)

	second := newModel(t, nil, sessions)
	assert.Equal(t, 2, second.s.platform.Len())
	assert.Equal(t, "/about", location(t, second).Location.Pathname)

	cfg := config.Default()
	cfg.Restore = false
	fresh := newModel(t, &cfg, sessions)
	assert.Equal(t, 1, fresh.s.platform.Len())

	fresh = runCommand(fresh, "clear")
	assert.Contains(t, fresh.statusBar.Message(), "cleared")
	_, err = sessions.Load()
	assert.ErrorIs(t, err, storage.ErrNoSession)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	cfg := config.Default()
	cfg.InitialPath = "about"
	_, err := New(Options{Config: &cfg})
	assert.Error(t, err)
}

func TestQuit(t *testing.T) {
	m := newModel(t, nil, nil)
	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpRendersKeys(t *testing.T) {
	m := newModel(t, nil, nil)
	m = send(m, keys("?"))
	assert.Nil(t, m.page)
	assert.Contains(t, m.View(), "follow link")
}

func TestCommandTabCompletesRoutePath(t *testing.T) {
	m := newModel(t, withBasename("/app"), nil)

	m = send(m, keys(":"), keys("goto a"), tea.KeyMsg{Type: tea.KeyTab}, enter)
	assert.Equal(t, "/about", location(t, m).Location.Pathname)

	m = send(m, keys(":"), keys("pu"), tea.KeyMsg{Type: tea.KeyTab}, keys("/app"), tea.KeyMsg{Type: tea.KeyTab}, enter)
	assert.Equal(t, "/app", m.s.platform.Current().Pathname)
	assert.Equal(t, 3, m.s.platform.Len())
}

func TestRestoredSessionIsTrimmedToQuota(t *testing.T) {
	db, err := storage.OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sessions := storage.NewSessionStore(db, nil)

	first := newModel(t, nil, sessions)
	first = runCommand(first, "goto /about")
	first = runCommand(first, "goto /contact")
	require.Equal(t, 3, first.s.platform.Len())

	cfg := config.Default()
	cfg.MaxEntries = 2
	second := newModel(t, &cfg, sessions)
	assert.Equal(t, 2, second.s.platform.Len())
	assert.Equal(t, "/contact", location(t, second).Location.Pathname)

	second = runCommand(second, "go -1")
	second = runCommand(second, "goto /")
	assert.Empty(t, second.s.platform.Reloads(), "push fits after trimming")
	assert.Equal(t, []string{"/about", "/"}, []string{
		second.s.platform.Entries()[0].Pathname,
		second.s.platform.Entries()[1].Pathname,
	})
}
