package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fiberroute/pkg/pipeline"
	"github.com/matzehuels/fiberroute/pkg/store"
)

// runsCommand creates the runs command for browsing saved runs.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List and re-render saved runs",
		Long: `List and re-render runs saved with 'route --save'.

Runs live in MongoDB when server.mongo_uri is set, else as JSON files in the
run directory.`,
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())

	return cmd
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				printInfo("No saved runs")
				return nil
			}
			fmt.Println(runTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs (0 for all)")
	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var (
		formats []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved run and optionally render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.Get(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no run with id %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			return showRun(cmd.Context(), run, formats, output)
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "render the run: json, svg, netlist, dot, netlist-svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	return cmd
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return openStore(ctx, cfg)
}

// showRun writes the requested formats and prints the run summary.
func showRun(ctx context.Context, run *store.Run, formats []string, output string) error {
	var paths []string
	if len(formats) > 0 {
		prog := newProgress(loggerFromContext(ctx))
		artifacts, err := pipeline.Render(ctx, pipeline.Routed{Layout: run.Layout, Netlist: run.Netlist}, formats)
		if err != nil {
			return err
		}
		prog.done("Rendered run", "id", run.ID, "formats", formats)
		paths, err = writeArtifacts(artifacts, formats, output, run.Layout.Name)
		if err != nil || output == "-" {
			return err
		}
	}

	printKeyValue("Run", run.ID)
	printKeyValue("Created", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue("Component", run.Component)
	printKeyValue("Top cell", run.Layout.Name)
	printKeyValue("Couplers", fmt.Sprint(len(run.Layout.Couplers())))
	printKeyValue("Spacing", fmt.Sprintf("%g um", run.Options.FiberSpacing))
	printKeyValue("X-section", run.Options.CrossSection)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

func runTable(runs []*store.Run) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID,
			formatRelativeTime(r.CreatedAt),
			r.Component,
			fmt.Sprint(len(r.Layout.Couplers())),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Component", "Couplers").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 || col == 1 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
