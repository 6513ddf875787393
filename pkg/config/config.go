// Package config loads fiberroute.toml.
//
// The file sets routing defaults, declares extra grating couplers and
// cross-sections by name, and configures the cache and the API server:
//
//	[route]
//	fiber_spacing = 127.0
//	couplers = ["te"]
//	routing_type = "standard"
//
//	[couplers.te_o]
//	polarization = "te"
//	wavelength = 1.31
//	taper_length = 12.0
//	grating_length = 10.0
//	width = 20.0
//
//	[cross_sections.strip_wide]
//	base = "strip"
//	width = 0.8
//	radius = 20.0
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//	runs_dir = "/var/lib/fiberroute/runs"
//
// Every field is optional; [Default] fills what the file leaves out.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/fiberroute/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "fiberroute"

// FileName is the project-local configuration file.
const FileName = AppName + ".toml"

// EnvConfig overrides the configuration file location.
const EnvConfig = "FIBERROUTE_CONFIG"

// Config is the parsed configuration file.
type Config struct {
	Route         RouteConfig               `toml:"route"`
	Couplers      map[string]CouplerConfig  `toml:"couplers"`
	CrossSections map[string]map[string]any `toml:"cross_sections"`
	Cache         CacheConfig               `toml:"cache"`
	Server        ServerConfig              `toml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// RouteConfig holds routing defaults.
type RouteConfig struct {
	FiberSpacing            float64 `toml:"fiber_spacing"`
	MinInputToOutputSpacing float64 `toml:"min_input_to_output_spacing"`
	RoutingType             string  `toml:"routing_type"`
	// Couplers names one preset for every port, or one per port.
	Couplers     []string `toml:"couplers"`
	PerPort      bool     `toml:"per_port"`
	CrossSection string   `toml:"cross_section"`
	AutoWiden    bool     `toml:"auto_widen"`
	Loopback     bool     `toml:"loopback"`
	Parallel     bool     `toml:"parallel"`
}

// CouplerConfig declares a grating coupler preset.
type CouplerConfig struct {
	Polarization  string  `toml:"polarization"`
	Wavelength    float64 `toml:"wavelength"`
	TaperLength   float64 `toml:"taper_length"`
	GratingLength float64 `toml:"grating_length"`
	Width         float64 `toml:"width"`
	PortToCenter  float64 `toml:"port_to_center"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"` // file, redis or none
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// ServerConfig configures `fiberroute serve`.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	// RunsDir holds saved runs when no MongoDB is configured.
	RunsDir string `toml:"runs_dir"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Route: RouteConfig{
			FiberSpacing:            50,
			MinInputToOutputSpacing: 200,
			RoutingType:             "standard",
			Couplers:                []string{"te"},
			CrossSection:            "strip",
		},
		Cache: CacheConfig{
			Backend: "file",
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MongoDatabase: AppName,
		},
	}
}

// Load reads the configuration at path over the defaults. An empty path
// searches the standard locations with [Find]; finding nothing yields the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = Find()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	return cfg, cfg.Validate()
}

// Validate checks the values that do not depend on presets.
func (c Config) Validate() error {
	switch c.Route.RoutingType {
	case "", "basic", "standard", "ports":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "route.routing_type must be basic, standard or ports, got %q", c.Route.RoutingType)
	}
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	for name, cc := range c.Couplers {
		if cc.Wavelength <= 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "couplers.%s: wavelength must be positive", name)
		}
		if cc.Polarization != "" && cc.Polarization != "te" && cc.Polarization != "tm" {
			return errs.New(errs.ErrCodeInvalidConfig, "couplers.%s: polarization must be te or tm", name)
		}
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// Find returns the first configuration file found in order: $FIBERROUTE_CONFIG,
// ./fiberroute.toml, then config.toml in the XDG config directory.
func Find() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	candidates := []string{FileName}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigDir returns the XDG config directory (~/.config/fiberroute/).
func ConfigDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the cache directory: the configured one, else the XDG
// cache directory (~/.cache/fiberroute/).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// RunsDir returns the directory of the file run store: the configured one,
// else runs/ in the XDG data directory (~/.local/share/fiberroute/runs/).
func (c Config) RunsDir() (string, error) {
	if c.Server.RunsDir != "" {
		return c.Server.RunsDir, nil
	}
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		return filepath.Join(home, AppName, "runs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName, "runs"), nil
}
