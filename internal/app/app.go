package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/spanav/internal/config"
	"github.com/vidyasagar/spanav/internal/history"
	"github.com/vidyasagar/spanav/internal/pages"
	"github.com/vidyasagar/spanav/internal/router"
	"github.com/vidyasagar/spanav/internal/storage"
	"github.com/vidyasagar/spanav/internal/theme"
	"github.com/vidyasagar/spanav/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeAddress      // address bar focused
	ModeCommand      // : command bar
	ModeFollow       // f link follow
	ModeStack        // session stack panel
)

// Options configures New.
type Options struct {
	Config *config.Config
	// Sessions persists the session stack. Nil disables persistence.
	Sessions *storage.SessionStore
	Logger   *slog.Logger
}

// session holds the navigation objects. It is shared by every copy of the
// Model bubbletea makes.
type session struct {
	platform *history.MemoryPlatform
	store    *history.Store
	root     *router.Root
	routes   router.Routes[config.Route]
	library  *pages.Library
	sessions *storage.SessionStore
	logger   *slog.Logger

	unwatch func()
	stale   bool
	origin  history.Origin
}

// Model is the top-level bubbletea model for spanav.
type Model struct {
	addressBar ui.AddressBar
	statusBar  ui.StatusBar
	commandBar ui.CommandBar
	stackPanel ui.StackPanel
	viewport   ui.PageViewport
	help       help.Model

	s        *session
	page     *pages.Page
	keys     KeyMap
	mode     Mode
	width    int
	height   int
	lastGKey bool
	ready    bool
}

// New builds the navigation stack described by opts.Config and a Model
// rendering it.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Theme != "" && !theme.Set(cfg.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme)
	}

	s := &session{sessions: opts.Sessions, logger: logger}

	memOpts := []history.MemoryOption{history.WithMaxEntries(cfg.MaxEntries)}
	if s.sessions != nil {
		if cfg.Restore {
			snap, err := s.sessions.Load()
			switch {
			case err == nil:
				memOpts = append(memOpts, history.WithSnapshot(snap))
				logger.Info("session restored", "entries", len(snap.Entries), "index", snap.Index)
			case errors.Is(err, storage.ErrNoSession):
			default:
				logger.Warn("could not restore session", "error", err)
			}
		}
		memOpts = append(memOpts, history.WithChangeHook(s.save))
	}

	basename := router.NormalizeBasename(cfg.Basename)
	s.platform = history.NewMemoryPlatform(router.JoinBasename(basename, cfg.InitialPath), memOpts...)
	s.store = history.NewStore(s.platform, history.WithLogger(logger))
	s.root = router.Mount(s.store, router.WithBasename(basename), router.WithRootLogger(logger))
	s.unwatch = router.Watch(s.root.Registry(), router.LocationKey, func(lc router.LocationContext, ok bool) {
		s.stale = true
		if ok {
			s.origin = lc.Origin
		}
	})

	paths := make([]string, 0, len(cfg.Routes))
	for _, r := range cfg.Routes {
		s.routes = append(s.routes, router.Route[config.Route]{Path: r.Path, Content: r})
		paths = append(paths, r.Path)
	}

	lib, err := pages.NewLibrary(0, logger)
	if err != nil {
		s.close()
		return Model{}, err
	}
	s.library = lib

	commandBar := ui.NewCommandBar()
	commandBar.SetCompletions(commandNames, completionArgs(paths, basename, theme.List()))

	return Model{
		addressBar: ui.NewAddressBar(basename),
		statusBar:  ui.NewStatusBar(),
		commandBar: commandBar,
		stackPanel: ui.NewStackPanel(),
		viewport:   ui.NewPageViewport(),
		help:       help.New(),
		s:          s,
		keys:       DefaultKeyMap(),
		mode:       ModeNormal,
	}, nil
}

// Close unmounts the root and releases the store.
func (m Model) Close() {
	m.s.close()
}

func (s *session) close() {
	if s.unwatch != nil {
		s.unwatch()
	}
	if s.root != nil {
		s.root.Unmount()
	}
	if s.store != nil {
		s.store.Close()
	}
}

func (s *session) save(snap history.Snapshot) {
	if err := s.sessions.Save(snap); err != nil {
		s.logger.Warn("saving session failed", "error", err)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		next, cmd := m.handleKeyMsg(msg)
		nm := next.(Model)
		if nm.s.stale {
			nm.refresh()
		}
		return nm, cmd
	}

	vp, cmd := m.viewport.Update(msg)
	m.viewport = *vp
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading spanav..."
	}

	sections := []string{m.addressBar.View()}

	if m.stackPanel.IsVisible() {
		divider := lipgloss.NewStyle().
			Foreground(theme.Current.Border).
			Render(strings.TrimSuffix(strings.Repeat("│\n", max(m.viewport.Height(), 1)), "\n"))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.stackPanel.View(),
			divider,
			m.viewport.View(),
		))
	} else {
		sections = append(sections, m.viewport.View())
	}

	sections = append(sections, m.statusBar.View())
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.addressBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)
	m.help.Width = m.width

	addressBarHeight := 3
	statusBarHeight := 1
	commandBarHeight := 0
	if m.commandBar.IsActive() {
		commandBarHeight = 1
	}
	height := max(m.height-addressBarHeight-statusBarHeight-commandBarHeight, 1)

	width := m.width
	if m.stackPanel.IsVisible() {
		panelWidth := max(m.width*30/100, 24)
		m.stackPanel.SetSize(panelWidth, height)
		width = max(m.width-panelWidth-1, 1)
	}
	m.viewport.SetSize(width, height)
}

// refresh renders whatever the routes produce for the resolved location.
func (m *Model) refresh() {
	s := m.s
	s.stale = false
	m.statusBar.SetMessage("")

	m.stackPanel.SetStack(s.platform.Entries(), s.platform.Index())
	m.statusBar.SetPosition(s.platform.Index(), s.platform.Len())

	lc, ok := s.root.Location()
	if !ok {
		loc := s.store.Location()
		href := history.CreatePath(loc.Path)
		m.page = nil
		m.addressBar.SetCurrent(href)
		m.statusBar.SetNavigation(s.store.Action(), s.origin, loc.Key)
		m.statusBar.SetTitle("")
		m.statusBar.SetError(fmt.Sprintf("%s is outside %s", href, s.root.Basename()))
		m.viewport.SetEmpty(href)
		m.syncScroll()
		return
	}

	m.addressBar.SetCurrent(history.CreatePath(lc.Location.Path))
	m.statusBar.SetNavigation(lc.NavigationType, lc.Origin, lc.Location.Key)

	matched := s.routes.Render(lc, ok)
	if len(matched) == 0 {
		m.page = nil
		m.statusBar.SetTitle("")
		m.viewport.SetEmpty(lc.Location.Pathname)
		m.syncScroll()
		return
	}

	page, err := s.library.Page(matched[0], m.viewport.Width())
	if err != nil {
		s.logger.Error("rendering page failed", "path", lc.Location.Pathname, "error", err)
		m.page = nil
		m.statusBar.SetError(err.Error())
		m.viewport.SetEmpty(lc.Location.Pathname)
		m.syncScroll()
		return
	}

	m.page = page
	m.statusBar.SetTitle(page.Title)
	m.viewport.SetContent(page.Content)
	m.syncScroll()
}

func (m *Model) syncScroll() {
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	switch mode {
	case ModeAddress:
		m.statusBar.SetMode("ADDRESS")
	case ModeCommand:
		m.statusBar.SetMode("COMMAND")
	case ModeFollow:
		m.statusBar.SetMode("FOLLOW")
	case ModeStack:
		m.statusBar.SetMode("STACK")
	default:
		m.statusBar.SetMode("NORMAL")
	}
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeAddress:
		return m.handleAddressMode(msg)
	case ModeCommand, ModeFollow:
		return m.handleCommandMode(msg)
	case ModeStack:
		return m.handleStackMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys while reading a page.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "g" {
		m.lastGKey = false
	}
	m.statusBar.SetMessage("")

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.GotoTop):
		if m.lastGKey {
			m.lastGKey = false
			m.viewport.GotoTop()
		} else {
			m.lastGKey = true
		}

	case key.Matches(msg, m.keys.GotoBottom):
		m.viewport.GotoBottom()

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.LineDown(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)

	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()

	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()

	case key.Matches(msg, m.keys.Open):
		m.setMode(ModeAddress)
		return m, m.addressBar.Focus()

	// Back and forward stand in for the user's own gestures: the platform
	// moves and tells its subscribers, as a browser would.
	case key.Matches(msg, m.keys.Back):
		if !m.s.platform.CanGoBack() {
			m.statusBar.SetMessage("Already at the oldest entry")
		}
		m.s.platform.Back()

	case key.Matches(msg, m.keys.Forward):
		if !m.s.platform.CanGoForward() {
			m.statusBar.SetMessage("Already at the newest entry")
		}
		m.s.platform.Forward()

	case key.Matches(msg, m.keys.Reload):
		m.s.library.Purge()
		m.refresh()
		m.statusBar.SetMessage("Pages reloaded")

	case key.Matches(msg, m.keys.FollowLink):
		m.setMode(ModeFollow)
		cmd := m.commandBar.Open(ui.CommandFollow)
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.CommandMode):
		m.setMode(ModeCommand)
		cmd := m.commandBar.Open(ui.CommandEx)
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.Stack):
		m.stackPanel.Show()
		m.setMode(ModeStack)
		m.layout()
		m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.showHelp()
	}

	m.syncScroll()
	return m, nil
}

// handleAddressMode processes keys while the address bar is focused.
func (m Model) handleAddressMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.addressBar.Blur()
		m.setMode(ModeNormal)
		return m, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(m.addressBar.Value())
		m.addressBar.Blur()
		m.setMode(ModeNormal)
		if path != "" {
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			m.s.root.GoTo(path)
		}
		return m, nil
	}

	ab, cmd := m.addressBar.Update(msg)
	m.addressBar = *ab
	return m, cmd
}

// handleCommandMode processes keys in command and follow mode.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.setMode(ModeNormal)
		m.layout()
		return m, nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.setMode(ModeNormal)
		m.layout()
		switch result.Type {
		case ui.CommandEx:
			return m.executeCommand(result.Value)
		case ui.CommandFollow:
			return m.followLink(result.Value)
		}
		return m, nil
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	return m, cmd
}

// handleStackMode processes keys while the stack panel is open.
func (m Model) handleStackMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Stack):
		m.stackPanel.Hide()
		m.setMode(ModeNormal)
		m.layout()
		m.refresh()

	case key.Matches(msg, m.keys.ScrollDown):
		m.stackPanel.CursorDown()

	case key.Matches(msg, m.keys.ScrollUp):
		m.stackPanel.CursorUp()

	case msg.Type == tea.KeyEnter:
		delta := m.stackPanel.Delta()
		m.stackPanel.Hide()
		m.setMode(ModeNormal)
		m.layout()
		if delta != 0 {
			m.s.root.Navigator().Go(delta)
		}
		m.refresh()

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// executeCommand handles : commands.
func (m Model) executeCommand(input string) (tea.Model, tea.Cmd) {
	if input == "" {
		return m, nil
	}
	cmd, err := parseCommand(input)
	if err != nil {
		m.statusBar.SetError(err.Error())
		return m, nil
	}

	s := m.s
	switch cmd.name {
	case "quit":
		return m, tea.Quit
	case "goto":
		s.root.GoTo(cmd.arg)
	case "push":
		s.root.Navigator().Push(history.Href(cmd.arg), nil)
	case "replace":
		s.root.Replace(cmd.arg, nil)
	case "go":
		s.root.Navigator().Go(cmd.n)
	case "back":
		s.platform.Back()
	case "forward":
		s.platform.Forward()
	case "reload":
		s.library.Purge()
		m.refresh()
	case "theme":
		if cmd.arg == "" {
			m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", ")))
			break
		}
		if !theme.Set(cmd.arg) {
			m.statusBar.SetError(fmt.Sprintf("Unknown theme: %s (available: %s)", cmd.arg, strings.Join(theme.List(), ", ")))
			break
		}
		s.library.Purge()
		m.refresh()
		m.statusBar.SetMessage("Theme: " + cmd.arg)
	case "clear":
		if s.sessions == nil {
			m.statusBar.SetError("Session persistence is off")
			break
		}
		if err := s.sessions.Clear(); err != nil {
			s.logger.Error("clearing session failed", "error", err)
			m.statusBar.SetError(err.Error())
			break
		}
		m.statusBar.SetMessage("Saved session cleared")
	case "help":
		m.showHelp()
	}
	return m, nil
}

// followLink navigates to a link on the current page by its number.
func (m Model) followLink(input string) (tea.Model, tea.Cmd) {
	if m.page == nil {
		m.statusBar.SetError("No page rendered")
		return m, nil
	}
	n, err := parseLinkNumber(input)
	if err != nil {
		m.statusBar.SetError(err.Error())
		return m, nil
	}
	link, ok := m.page.Link(n)
	if !ok {
		m.statusBar.SetError(fmt.Sprintf("Link [%d] not found", n))
		return m, nil
	}
	if !link.Internal() {
		m.statusBar.SetMessage("External link not followed: " + link.URL)
		return m, nil
	}
	m.s.root.GoTo(link.Path)
	return m, nil
}

func (m *Model) showHelp() {
	t := theme.Current
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary)
	desc := lipgloss.NewStyle().Foreground(t.Text)

	m.help.ShowAll = true

	var sb strings.Builder
	sb.WriteString("\n  " + title.Render("Keys") + "\n\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n\n  " + title.Render("Commands") + "\n\n")
	for _, c := range commandHelp {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("  %-18s", c.usage)))
		sb.WriteString(desc.Render(c.desc))
		sb.WriteString("\n")
	}
	m.page = nil
	m.statusBar.SetTitle("Help")
	m.viewport.SetContent(sb.String())
}
