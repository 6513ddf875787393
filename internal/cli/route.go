package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fiberroute/pkg/config"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	fio "github.com/matzehuels/fiberroute/pkg/io"
	"github.com/matzehuels/fiberroute/pkg/pipeline"
)

// routeFlags holds the command-line flags for the route command. Routing
// flags only override the config file when given.
type routeFlags struct {
	input        inputFlags
	output       string
	formats      []string
	fiberSpacing float64
	minSpacing   float64
	routingType  string
	couplers     []string
	perPort      bool
	crossSection string
	settings     []string
	ports        []string
	exclude      []string
	autoWiden    bool
	loopback     bool
	parallel     bool
	name         string
	noCache      bool
	refresh      bool
	save         bool
}

// inputFlags select the component to work on when no file is given.
type inputFlags struct {
	cell   string
	length float64
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cell, "cell", "", "built-in cell to use instead of a component file")
	cmd.Flags().Float64Var(&f.length, "length", 0, "length of the built-in cell in um (0 for its default)")
}

// apply sets the input of opts from a file argument or the cell flags.
func (f *inputFlags) apply(opts *pipeline.Options, args []string) error {
	switch {
	case len(args) == 1 && f.cell != "":
		return errs.New(errs.ErrCodeInvalidInput, "give a component file or --cell, not both")
	case len(args) == 1:
		c, err := fio.ImportFile(args[0])
		if err != nil {
			return err
		}
		opts.Input = c
	case f.cell != "":
		opts.Cell = f.cell
		opts.Length = f.length
	default:
		return errs.New(errs.ErrCodeInvalidInput, "a component file or --cell is required")
	}
	return nil
}

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var f routeFlags

	cmd := &cobra.Command{
		Use:   "route [component.json|component.toml]",
		Short: "Route a component to grating couplers",
		Long: `Route the optical ports of a component to grating couplers.

The component is rotated by 90 degrees, its ports are split between the
south and north edges and each edge is routed to a fiber array at the
configured pitch. The routed top cell is written as layout JSON by default;
use --format to also write an SVG drawing or the netlist.

Routes and rendered outputs are cached locally for faster subsequent runs.`,
		Example: `  fiberroute route --cell mmi2x2 -f json,svg
  fiberroute route ring.toml --coupler te --ports o1,o2 -o out/ring
  fiberroute route ring.toml --coupler te,tm --set radius=5 --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := f.options(cmd, cfg, args)
			if err != nil {
				return err
			}
			return c.runRoute(cmd.Context(), cfg, opts, f)
		},
	}

	f.register(cmd)

	return cmd
}

func (f *routeFlags) register(cmd *cobra.Command) {
	f.input.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", nil, "output format(s): json (default), svg, netlist, dot, netlist-svg")
	cmd.Flags().Float64Var(&f.fiberSpacing, "fiber-spacing", 0, "pitch between grating couplers in um")
	cmd.Flags().Float64Var(&f.minSpacing, "min-spacing", 0, "minimum spacing between the input and output couplers in um")
	cmd.Flags().StringVar(&f.routingType, "routing-type", "", "array ordering: basic, standard, ports")
	cmd.Flags().StringSliceVar(&f.couplers, "coupler", nil, "grating coupler preset(s); several names apply one per port")
	cmd.Flags().BoolVar(&f.perPort, "per-port", false, "treat a single --coupler as a one-entry per-port list")
	cmd.Flags().StringVar(&f.crossSection, "cross-section", "", "waveguide cross-section preset")
	cmd.Flags().StringArrayVar(&f.settings, "set", nil, "cross-section override as key=value (repeatable)")
	cmd.Flags().StringSliceVar(&f.ports, "ports", nil, "route only these ports, in this order")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "ports to leave unrouted")
	cmd.Flags().BoolVar(&f.autoWiden, "auto-widen", false, "widen long straight sections")
	cmd.Flags().BoolVar(&f.loopback, "loopback", false, "add an alignment loopback around the couplers")
	cmd.Flags().BoolVar(&f.parallel, "parallel", false, "route both edges concurrently")
	cmd.Flags().StringVar(&f.name, "name", "", "name of the routed top cell")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached routes and recompute")
	cmd.Flags().BoolVar(&f.save, "save", false, "record the run in the run store")
}

// options builds pipeline options from the config defaults and the flags
// that were set.
func (f *routeFlags) options(cmd *cobra.Command, cfg config.Config, args []string) (pipeline.Options, error) {
	opts := pipeline.FromConfig(cfg)
	if err := f.input.apply(&opts, args); err != nil {
		return opts, err
	}

	changed := cmd.Flags().Changed
	if changed("fiber-spacing") {
		opts.FiberSpacing = f.fiberSpacing
	}
	if changed("min-spacing") {
		opts.MinInputToOutputSpacing = f.minSpacing
	}
	if changed("routing-type") {
		opts.RoutingType = f.routingType
	}
	if changed("coupler") {
		opts.Couplers = f.couplers
	}
	if changed("per-port") {
		opts.PerPort = f.perPort
	}
	if changed("cross-section") {
		opts.CrossSection = f.crossSection
	}
	if changed("auto-widen") {
		opts.AutoWiden = f.autoWiden
	}
	if changed("loopback") {
		opts.Loopback = f.loopback
	}
	if changed("parallel") {
		opts.Parallel = f.parallel
	}

	settings, err := parseSettings(f.settings)
	if err != nil {
		return opts, err
	}
	opts.Settings = settings
	opts.Ports = f.ports
	opts.Exclude = f.exclude
	opts.ComponentName = f.name
	opts.Refresh = f.refresh
	opts.Save = f.save
	opts.Formats = f.formats
	return opts, nil
}

// parseSettings turns key=value pairs into cross-section overrides. Values
// that parse as numbers or booleans are passed as such.
func parseSettings(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	settings := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid setting %q (want key=value)", pair)
		}
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			settings[key] = v
		} else if v, err := strconv.ParseBool(value); err == nil {
			settings[key] = v
		} else {
			settings[key] = value
		}
	}
	return settings, nil
}

// runRoute executes the pipeline and writes the outputs.
func (c *CLI) runRoute(ctx context.Context, cfg config.Config, opts pipeline.Options, f routeFlags) error {
	runner, err := c.newRunner(ctx, cfg, f.noCache, f.save)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	loggerFromContext(ctx).Debug("route options",
		"couplers", opts.Couplers,
		"cross_section", opts.CrossSection,
		"routing_type", opts.RoutingType,
		"fiber_spacing", opts.FiberSpacing)

	spinner := newSpinnerWithContext(ctx, "Routing...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Routing failed")
		return err
	}
	spinner.Stop()

	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatJSON}
	}
	paths, err := writeArtifacts(result.Artifacts, formats, f.output, result.Routed.Layout.Name)
	if err != nil {
		return err
	}
	if f.output == "-" {
		return nil
	}

	printSuccess("Routed %s", StyleHighlight.Render(result.Component))
	printStats(result.Stats.PortCount, result.Stats.CouplerCount, result.CacheInfo.RouteHit)
	if result.Routed.HasFanout {
		printDetail("fanout %.3f um", result.Routed.FanoutLength)
	}
	for _, p := range paths {
		printFile(p)
	}
	if result.RunID != "" {
		printNewline()
		printKeyValue("Run", result.RunID)
		printNextStep("Re-render later", fmt.Sprintf("%s runs show %s -f svg", appName, result.RunID))
	}
	return nil
}
