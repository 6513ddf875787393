// Package pipeline runs the route → render pipeline shared by the CLI and
// the API server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Route: rotate the component, route its optical ports to grating
//     couplers on two opposite edges and flatten the top cell into a
//     [graph.Layout] and a netlist
//  2. Render: write the requested formats (layout JSON, layout SVG, netlist
//     JSON, netlist DOT and netlist SVG)
//
// Both stages are cached. Routes are keyed by a hash of the input component
// and the routing options; artifacts by a hash of the routed layout.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.FromConfig(cfg)
//	opts.Cell = "mmi2x2"
//	opts.Formats = []string{"svg", "netlist"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fiberroute/pkg/assembly"
	"github.com/matzehuels/fiberroute/pkg/cache"
	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/config"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/graph"
	"github.com/matzehuels/fiberroute/pkg/route"
	"github.com/matzehuels/fiberroute/pkg/route/fiberarray"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultRoutingType is the default array ordering strategy.
const DefaultRoutingType = "standard"

// Format constants for output formats.
const (
	FormatJSON       = "json"        // routed layout
	FormatSVG        = "svg"         // routed layout drawing
	FormatNetlist    = "netlist"     // netlist JSON
	FormatDOT        = "dot"         // netlist as Graphviz DOT
	FormatNetlistSVG = "netlist-svg" // netlist laid out by Graphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:       true,
	FormatSVG:        true,
	FormatNetlist:    true,
	FormatDOT:        true,
	FormatNetlistSVG: true,
}

// RoutingTypes maps routing type names to the array router's strategies.
var RoutingTypes = map[string]int{
	"basic":    route.RoutingBasic,
	"standard": route.RoutingStandard,
	"ports":    route.RoutingPorts,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the routing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: a built-in cell or an inline component file
	Cell            string  `json:"cell,omitempty"`
	Length          float64 `json:"length,omitempty"` // cell length, 0 for the cell's default
	Component       string  `json:"component,omitempty"`
	ComponentFormat string  `json:"component_format,omitempty"` // json or toml

	// Route options
	FiberSpacing            float64        `json:"fiber_spacing,omitempty"`
	MinInputToOutputSpacing float64        `json:"min_input_to_output_spacing,omitempty"`
	RoutingType             string         `json:"routing_type,omitempty"`
	Couplers                []string       `json:"couplers,omitempty"`
	PerPort                 bool           `json:"per_port,omitempty"`
	CrossSection            string         `json:"cross_section,omitempty"`
	Settings                map[string]any `json:"settings,omitempty"`
	Ports                   []string       `json:"ports,omitempty"`
	Exclude                 []string       `json:"exclude,omitempty"`
	AutoWiden               bool           `json:"auto_widen,omitempty"`
	Loopback                bool           `json:"loopback,omitempty"`
	Parallel                bool           `json:"parallel,omitempty"`
	ComponentName           string         `json:"component_name,omitempty"`
	Refresh                 bool           `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Save records the run in the runner's store.
	Save bool `json:"save,omitempty"`

	// Runtime options (not serialized)
	Input   *component.Component `json:"-"` // takes precedence over Cell and Component
	Presets *config.Presets      `json:"-"`
	Logger  *log.Logger          `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// FromConfig returns options carrying the routing defaults of cfg.
func FromConfig(cfg config.Config) Options {
	return Options{
		FiberSpacing:            cfg.Route.FiberSpacing,
		MinInputToOutputSpacing: cfg.Route.MinInputToOutputSpacing,
		RoutingType:             cfg.Route.RoutingType,
		Couplers:                slices.Clone(cfg.Route.Couplers),
		PerPort:                 cfg.Route.PerPort,
		CrossSection:            cfg.Route.CrossSection,
		AutoWiden:               cfg.Route.AutoWiden,
		Loopback:                cfg.Route.Loopback,
		Parallel:                cfg.Route.Parallel,
		Presets:                 cfg.Presets(),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Component is the name of the routed component.
	Component string

	// ComponentHash is the content hash of the input component.
	ComponentHash string

	// Routed is the routed top cell with its netlist.
	Routed Routed

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// RunID identifies the stored run when Options.Save was set.
	RunID string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Routed is the cached outcome of the route stage.
type Routed struct {
	Layout  graph.Layout `json:"layout"`
	Netlist graph.Graph  `json:"netlist"`
	// Ports are the routed port names, south edge first.
	Ports        []string `json:"ports"`
	FanoutLength float64  `json:"fanout_length,omitempty"`
	HasFanout    bool     `json:"has_fanout,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PortCount    int
	CouplerCount int
	RouteTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RouteHit  bool // Whether the routed layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)", format, strings.Join(slices.Sorted(maps.Keys(ValidFormats)), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRoutingType checks that a routing type name is valid.
func ValidateRoutingType(name string) error {
	if _, ok := RoutingTypes[name]; !ok {
		return errs.New(errs.ErrCodeInvalidInput, "invalid routing_type: %q (must be one of: basic, standard, ports)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == nil && o.Cell == "" && o.Component == "" {
		return errs.New(errs.ErrCodeInvalidInput, "cell or component is required")
	}
	if o.Cell != "" && o.Component != "" {
		return errs.New(errs.ErrCodeInvalidInput, "cell and component are mutually exclusive")
	}
	if o.Cell != "" {
		if _, ok := component.Cells[o.Cell]; !ok {
			return errs.New(errs.ErrCodeNotFound, "unknown cell %q (must be one of: %s)", o.Cell, strings.Join(slices.Sorted(maps.Keys(component.Cells)), ", "))
		}
	}

	o.SetRouteDefaults()
	o.SetRenderDefaults()

	if err := ValidateRoutingType(o.RoutingType); err != nil {
		return err
	}
	if err := errs.ValidatePortNames(o.Ports); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRouteDefaults sets default values for routing.
func (o *Options) SetRouteDefaults() {
	if o.FiberSpacing == 0 {
		o.FiberSpacing = route.DefaultFiberSpacing
	}
	if o.MinInputToOutputSpacing == 0 {
		o.MinInputToOutputSpacing = route.DefaultMinInputToOutputSpacing
	}
	if o.RoutingType == "" {
		o.RoutingType = DefaultRoutingType
	}
	if len(o.Couplers) == 0 {
		o.Couplers = []string{"te"}
	}
	if o.CrossSection == "" {
		o.CrossSection = "strip"
	}
	if o.Presets == nil {
		o.Presets = config.BuiltinPresets()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// AssemblyOptions resolves the named presets into routing options.
func (o *Options) AssemblyOptions() (assembly.Options, error) {
	spec, err := o.Presets.CouplerSpec(o.Couplers, o.PerPort)
	if err != nil {
		return assembly.Options{}, err
	}
	xs, err := o.Presets.CrossSection(o.CrossSection)
	if err != nil {
		return assembly.Options{}, err
	}

	ro := route.DefaultOptions(fiberarray.New(fiberarray.WithLogger(o.Logger)))
	ro.FiberSpacing = o.FiberSpacing
	ro.MinInputToOutputSpacing = o.MinInputToOutputSpacing
	ro.RoutingType = RoutingTypes[o.RoutingType]
	ro.Coupler = spec
	ro.CrossSection = xs
	ro.Settings = o.Settings
	ro.PortNames = o.Ports
	ro.ExcludedPorts = o.Exclude
	ro.AutoWiden = o.AutoWiden
	ro.ComponentName = o.ComponentName
	ro.Parallel = o.Parallel
	ro.Logger = o.Logger
	return assembly.Options{Options: ro, WithLoopback: o.Loopback}, nil
}

// RouteKeyOpts returns cache key options for routing. Preset names are
// resolved so that the key follows their definitions.
func (o *Options) RouteKeyOpts() (cache.RouteKeyOpts, error) {
	presets := o.Presets
	if presets == nil {
		presets = config.BuiltinPresets()
	}
	defs := make([]cache.CouplerKey, len(o.Couplers))
	for i, name := range o.Couplers {
		t, err := presets.Coupler(name)
		if err != nil {
			return cache.RouteKeyOpts{}, err
		}
		cellHash, err := HashComponent(t.Cell)
		if err != nil {
			return cache.RouteKeyOpts{}, fmt.Errorf("hash coupler %s: %w", name, err)
		}
		defs[i] = cache.CouplerKey{
			Name:         t.Name(),
			CellHash:     cellHash,
			Port:         t.PortName,
			PortToCenter: t.PortToCenter,
			Polarization: t.Polarization,
			Wavelength:   t.Wavelength,
		}
	}
	xs, err := presets.CrossSection(o.CrossSection)
	if err != nil {
		return cache.RouteKeyOpts{}, err
	}

	return cache.RouteKeyOpts{
		FiberSpacing:            o.FiberSpacing,
		MinInputToOutputSpacing: o.MinInputToOutputSpacing,
		RoutingType:             RoutingTypes[o.RoutingType],
		Couplers:                o.couplerKey(),
		CrossSection:            o.CrossSection,
		Settings:                o.Settings,
		Ports:                   o.Ports,
		Exclude:                 o.Exclude,
		AutoWiden:               o.AutoWiden,
		Loopback:                o.Loopback,
		ComponentName:           o.ComponentName,
		CouplerDefs:             defs,
		CrossSectionDef:         xs,
	}, nil
}

// couplerKey distinguishes a single coupler from a one-entry per-port list.
func (o *Options) couplerKey() []string {
	if o.PerPort {
		return append([]string{"per_port"}, o.Couplers...)
	}
	return o.Couplers
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
