package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "spanav"

// Route declares one application path and the page shown for it.
type Route struct {
	Path  string `toml:"path"`
	Title string `toml:"title"`
	// Page is an HTML file. Relative paths resolve against the config file's
	// directory. Empty means the built-in page for Path, if any.
	Page string `toml:"page"`
}

// Config holds spanav configuration.
type Config struct {
	Basename    string  `toml:"basename"`
	InitialPath string  `toml:"initial_path"`
	Theme       string  `toml:"theme"`
	LogLevel    string  `toml:"log_level"`
	MaxEntries  int     `toml:"max_entries"`
	Restore     bool    `toml:"restore_session"`
	DataDir     string  `toml:"data_dir"`
	Routes      []Route `toml:"routes"`

	path string
}

// Default returns the default configuration: the two routes of the demo app.
func Default() Config {
	return Config{
		Basename:    "/",
		InitialPath: "/",
		Theme:       "default",
		LogLevel:    "info",
		MaxEntries:  50,
		Restore:     true,
		Routes: []Route{
			{Path: "/", Title: "Home"},
			{Path: "/about", Title: "About"},
		},
	}
}

// Load reads the config file at path. An empty path means the standard
// location; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := Default()
	cfg.path = path
	defaults := cfg.Routes
	cfg.Routes = nil

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.Routes = defaults
			return &cfg, nil
		}
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if !md.IsDefined("routes") {
		cfg.Routes = defaults
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.resolvePages()
	return &cfg, nil
}

// Validate checks the declared routes and paths.
func (c *Config) Validate() error {
	if c.InitialPath != "" && !strings.HasPrefix(c.InitialPath, "/") {
		return fmt.Errorf("initial_path %q must start with /", c.InitialPath)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max_entries must not be negative, got %d", c.MaxEntries)
	}
	seen := make(map[string]bool, len(c.Routes))
	for i, r := range c.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("routes[%d]: path %q must start with /", i, r.Path)
		}
		if seen[r.Path] {
			return fmt.Errorf("routes[%d]: duplicate path %q", i, r.Path)
		}
		seen[r.Path] = true
	}
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration as TOML.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.toml")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// SessionDir returns the directory holding the session database.
func (c *Config) SessionDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return DataDir()
}

func (c *Config) resolvePages() {
	base := filepath.Dir(c.path)
	for i, r := range c.Routes {
		if r.Page != "" && !filepath.IsAbs(r.Page) {
			c.Routes[i].Page = filepath.Join(base, r.Page)
		}
	}
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default:
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			dir = filepath.Join(xdgData, appName)
		} else {
			dir = filepath.Join(home, ".local", "share", appName)
		}
	}
	return dir, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			dir = filepath.Join(xdgConfig, appName)
		} else {
			dir = filepath.Join(home, ".config", appName)
		}
	}
	return dir, nil
}
