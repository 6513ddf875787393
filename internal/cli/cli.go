// Package cli implements the fiberroute command-line interface.
//
// The CLI routes photonic components to grating couplers for fiber-array
// testing and writes the routed layout and its netlist. It is built on
// cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - route: Route a component file or a built-in cell and write the outputs
//   - ports: Show which ports of a component would be routed, or pick them
//   - presets: List the known cells, couplers and cross-sections
//   - runs: List and re-render saved runs
//   - serve: Run the HTTP API
//   - cache: Manage the local route cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fiberroute/pkg/buildinfo"
	"github.com/matzehuels/fiberroute/pkg/cache"
	"github.com/matzehuels/fiberroute/pkg/config"
	"github.com/matzehuels/fiberroute/pkg/pipeline"
	"github.com/matzehuels/fiberroute/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is set by --config; empty searches the standard locations.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Fiberroute routes photonic components to grating couplers",
		Long: `Fiberroute routes the optical ports of a photonic component to a row of
grating couplers on two opposite edges, ready for fiber-array testing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $"+config.EnvConfig+", ./"+config.FileName+", then the XDG config dir)")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.portsCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. withStore also opens the
// run store.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache, withStore bool) (*pipeline.Runner, error) {
	ch, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	if withStore {
		st, err := openStore(ctx, cfg)
		if err != nil {
			ch.Close()
			return nil, err
		}
		runner.Store = st
	}
	return runner, nil
}

func newCache(cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(cfg.Cache.Backend, dir, cfg.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return ch, nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	dir, err := cfg.RunsDir()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.Server.MongoURI, cfg.Server.MongoDatabase, dir)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	return st, nil
}

// =============================================================================
// Paths
// =============================================================================

// outputName returns the file name for format next to base.
func outputName(base, format string) string {
	return base + extensions[format]
}

// extensions maps each output format to its file suffix.
var extensions = map[string]string{
	pipeline.FormatJSON:       ".json",
	pipeline.FormatSVG:        ".svg",
	pipeline.FormatNetlist:    ".netlist.json",
	pipeline.FormatDOT:        ".dot",
	pipeline.FormatNetlistSVG: ".netlist.svg",
}

// basePath derives the base output path. Without output it is name in the
// working directory; a known format extension on output is stripped.
func basePath(output, name string) string {
	if output == "" {
		return name
	}
	// double extensions first
	for _, ext := range []string{".netlist.json", ".netlist.svg", ".json", ".svg", ".dot"} {
		if base, ok := strings.CutSuffix(output, ext); ok && base != "" {
			return base
		}
	}
	return output
}

// writeArtifacts writes each format to its file and returns the paths in
// format order. A single format with output "-" goes to stdout.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, name string) ([]string, error) {
	if len(formats) == 1 && output == "-" {
		_, err := os.Stdout.Write(artifacts[formats[0]])
		return nil, err
	}
	base := basePath(output, name)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputName(base, format)
		if len(formats) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
