// Package config loads the cardstack configuration file.
//
// The file is TOML and lives at $CARDSTACK_CONFIG_DIR/config.toml when that
// directory exists, otherwise at <user config dir>/cardstack/config.toml.
// Every section is optional; missing values keep their defaults:
//
//	[layout]
//	spacing = 12
//	max_visible = 5
//	scale_factor = 0.9
//	policy = "anchored"
//	item_size = { width = 180, height = 260 }
//
//	[viewport]
//	width = 200
//	height = 300
//	items = 10
//
//	[render]
//	style = "simple"
//	formats = ["svg"]
//
//	[cache]
//	dir = "~/.cache/cardstack"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// EnvConfigDir overrides the directory searched for config.toml.
const EnvConfigDir = "CARDSTACK_CONFIG_DIR"

const (
	appName  = "cardstack"
	fileName = "config.toml"
)

// Defaults for the non-layout sections.
const (
	DefaultViewportWidth  = stack.DefaultItemWidth
	DefaultViewportHeight = stack.DefaultItemHeight
	DefaultItemCount      = 10
	DefaultStyle          = "simple"
	DefaultServerAddr     = ":8080"
	DefaultReadTimeout    = 10
	DefaultWriteTimeout   = 30
)

// Config is the decoded configuration file.
type Config struct {
	Layout   stack.Config   `toml:"layout"`
	Viewport ViewportConfig `toml:"viewport"`
	Render   RenderConfig   `toml:"render"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`

	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string `toml:"-"`
	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// ViewportConfig describes the default host viewport.
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Items  int     `toml:"items"`
}

// Viewport converts the section into a stack.Viewport at offset. The
// configured items form a single flat section.
func (v ViewportConfig) Viewport(offset float64) (stack.Viewport, error) {
	return stack.ViewportFor(stack.Items(v.Items), offset, v.Width, v.Height)
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
	// Columns is the number of filmstrip panels per row; 0 puts all in one row.
	Columns int `toml:"columns"`
}

// CacheConfig selects the cache backend. RedisURL wins over Dir when set.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig holds HTTP frame service settings. Timeouts are in seconds.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Layout: stack.DefaultConfig(),
		Viewport: ViewportConfig{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
			Items:  DefaultItemCount,
		},
		Render: RenderConfig{
			Style:   DefaultStyle,
			Formats: []string{"svg"},
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
	}
}

// Path returns the configuration file location. The file need not exist.
func Path() string {
	var configDirs []string

	// useful during development or for tests.
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, fileName)
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDirs = append(configDirs, xdg)
		}
	}

	if dir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, dir)
	}

	for _, dir := range configDirs {
		p := filepath.Join(dir, appName, fileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], appName, fileName)
	}
	return ""
}

// Load reads the file at p. An empty p uses [Path]. A missing file at the
// default location yields [Default]; a missing explicit file is an error.
func Load(p string) (*Config, error) {
	explicit := p != ""
	if !explicit {
		p = Path()
	}
	if p == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		if explicit {
			return nil, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", p)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	cfg.Path = p
	return cfg, nil
}

// Parse decodes TOML on top of [Default] and validates the result.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}

	for _, key := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}
	sort.Strings(cfg.Undecoded)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	problems := []error{c.Layout.Validate()}
	problems = append(problems,
		errs.ValidateNonNegative(errs.ErrCodeInvalidViewport, "viewport width", c.Viewport.Width),
		errs.ValidateNonNegative(errs.ErrCodeInvalidViewport, "viewport height", c.Viewport.Height),
		errs.ValidateCount(errs.ErrCodeInvalidViewport, "viewport items", c.Viewport.Items, 0),
		errs.ValidateCount(errs.ErrCodeInvalidConfig, "render columns", c.Render.Columns, 0),
	)
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		problems = append(problems, errs.New(errs.ErrCodeInvalidConfig, "server timeouts must be non-negative"))
	}
	return errors.Join(problems...)
}

// Encode writes the configuration as TOML, as used by "config show".
func (c *Config) Encode() (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return "", err
	}
	return sb.String(), nil
}
