package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/pipeline"
)

// presetsCommand lists the names route accepts.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in cells, couplers and cross-sections",
		Long: `List the names accepted by route: built-in cells, grating coupler and
cross-section presets (including those declared in the config file),
routing types and output formats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			p := cfg.Presets()

			printKeyValue("Cells", strings.Join(slices.Sorted(maps.Keys(component.Cells)), ", "))
			printKeyValue("Couplers", strings.Join(p.CouplerNames(), ", "))
			printKeyValue("X-sections", strings.Join(p.CrossSectionNames(), ", "))
			printKeyValue("Routing", strings.Join(slices.Sorted(maps.Keys(pipeline.RoutingTypes)), ", "))
			printKeyValue("Formats", strings.Join(slices.Sorted(maps.Keys(pipeline.ValidFormats)), ", "))
			if cfg.Path != "" {
				printNewline()
				printDetail("Config: %s", cfg.Path)
			}
			return nil
		},
	}
}
