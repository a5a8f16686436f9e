package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidyasagar/spanav/internal/app"
	"github.com/vidyasagar/spanav/internal/config"
	"github.com/vidyasagar/spanav/internal/logging"
	"github.com/vidyasagar/spanav/internal/storage"
	"github.com/vidyasagar/spanav/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	var (
		configPath  string
		themeName   string
		basename    string
		logLevel    string
		noRestore   bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/spanav/config.toml)")
	flag.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flag.StringVar(&basename, "basename", "", "application root prefix, e.g. /app")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.BoolVar(&noRestore, "no-restore", false, "start with a fresh session instead of the saved one")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "spanav - navigate a single-page application's routes in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spanav [flags] [path]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  spanav                      # resume the saved session or start at /\n")
		fmt.Fprintf(os.Stderr, "  spanav /about               # start at /about\n")
		fmt.Fprintf(os.Stderr, "  spanav -basename /app       # mount the routes under /app\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("spanav %s\n", version)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if basename != "" {
		cfg.Basename = basename
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if flag.NArg() > 0 {
		cfg.InitialPath = flag.Arg(0)
		cfg.Restore = false
	}
	if noRestore {
		cfg.Restore = false
	}
	if cfg.Theme != "" && !theme.Set(cfg.Theme) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", cfg.Theme, strings.Join(theme.List(), ", "))
		return 1
	}

	dataDir, err := cfg.SessionDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.Open(dataDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger = logging.Discard()
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	// Session persistence is best-effort.
	var sessions *storage.SessionStore
	db, err := storage.OpenDB(dataDir)
	if err != nil {
		logger.Warn("session persistence disabled", "error", err)
	} else {
		defer db.Close()
		sessions = storage.NewSessionStore(db, logger.Logger)
	}

	m, err := app.New(app.Options{Config: cfg, Sessions: sessions, Logger: logger.Logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer m.Close()

	logger.Info("starting", "version", version, "basename", cfg.Basename, "config", cfg.Path())

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
