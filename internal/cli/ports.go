package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/pipeline"
	"github.com/matzehuels/fiberroute/pkg/route"
)

// portsCommand creates the ports command for inspecting routable ports.
func (c *CLI) portsCommand() *cobra.Command {
	var (
		input   inputFlags
		ports   []string
		exclude []string
		pick    bool
	)

	cmd := &cobra.Command{
		Use:   "ports [component.json|component.toml]",
		Short: "Show which ports of a component would be routed",
		Long: `Show the ports of a component and which of them route would send to
grating couplers, given --ports and --exclude.

With --pick, choose the ports interactively and get the matching route
command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := input.apply(&opts, args); err != nil {
				return err
			}
			comp, err := pipeline.BuildComponent(opts)
			if err != nil {
				return err
			}
			if pick {
				return runPortPicker(comp, args, input)
			}
			working, err := route.SelectPorts(comp, route.SelectOptical, ports, exclude)
			if err != nil {
				return err
			}
			fmt.Println(portTable(comp, working))
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().StringSliceVar(&ports, "ports", nil, "route only these ports, in this order")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "ports to leave unrouted")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick the ports to route interactively")

	return cmd
}

// portTable renders every port of comp, marking the routed ones.
func portTable(comp *component.Component, working []component.Port) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	routed := make(map[string]int, len(working))
	for i, p := range working {
		routed[p.Name] = i + 1
	}

	all := comp.Ports.List()
	rows := make([][]string, 0, len(all))
	for _, p := range all {
		order := "-"
		if n, ok := routed[p.Name]; ok {
			order = fmt.Sprint(n)
		}
		rows = append(rows, []string{
			p.Name,
			string(portType(p)),
			p.Facing().String(),
			fmt.Sprintf("%.3f, %.3f", p.Center.X, p.Center.Y),
			fmt.Sprintf("%.3f", p.Width),
			order,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Port", "Type", "Facing", "Center", "Width", "Routed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if _, ok := routed[all[row].Name]; ok {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorDim)
		})

	return StyleTitle.Render(comp.Name) + "\n" + t.Render()
}

func portType(p component.Port) component.PortType {
	if p.Type == "" {
		return component.Optical
	}
	return p.Type
}

// runPortPicker lets the user choose ports and prints the route command.
func runPortPicker(comp *component.Component, args []string, input inputFlags) error {
	var optical []component.Port
	for _, p := range comp.Ports.List() {
		if p.IsOptical() {
			optical = append(optical, p)
		}
	}
	if len(optical) == 0 {
		return fmt.Errorf("%s has no optical ports", comp.Name)
	}

	final, err := tea.NewProgram(NewPortListModel(optical)).Run()
	if err != nil {
		return fmt.Errorf("port picker: %w", err)
	}
	m := final.(PortListModel)
	if !m.Done {
		printInfo("No ports picked")
		return nil
	}
	picked := m.Picked()
	if len(picked) == 0 {
		printWarning("No ports picked")
		return nil
	}

	printSuccess("Picked %d of %d ports", len(picked), len(optical))
	printNextStep("Route them", routeCommandLine(args, input, picked))
	return nil
}

// routeCommandLine spells out the route invocation for picked ports.
func routeCommandLine(args []string, input inputFlags, picked []string) string {
	parts := []string{appName, "route"}
	if len(args) == 1 {
		parts = append(parts, args[0])
	} else {
		parts = append(parts, "--cell", input.cell)
		if input.length != 0 {
			parts = append(parts, "--length", fmt.Sprint(input.length))
		}
	}
	parts = append(parts, "--ports", strings.Join(picked, ","))
	return strings.Join(parts, " ")
}

// =============================================================================
// PortListModel - Interactive port selection
// =============================================================================

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// PortListModel is the bubbletea model for picking ports to route. Picked
// ports keep the order in which they were toggled on.
type PortListModel struct {
	Ports  []component.Port
	Cursor int
	Order  []string
	Done   bool
}

// NewPortListModel creates a new port list model.
func NewPortListModel(ports []component.Port) PortListModel {
	return PortListModel{Ports: ports}
}

// Picked returns the picked port names in pick order.
func (m PortListModel) Picked() []string {
	return slices.Clone(m.Order)
}

func (m PortListModel) Init() tea.Cmd {
	return nil
}

func (m PortListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Ports)-1 {
			m.Cursor++
		}
	case " ", "x":
		name := m.Ports[m.Cursor].Name
		if i := slices.Index(m.Order, name); i >= 0 {
			m.Order = slices.Delete(slices.Clone(m.Order), i, i+1)
		} else {
			m.Order = append(slices.Clone(m.Order), name)
		}
	case "a":
		if len(m.Order) == len(m.Ports) {
			m.Order = nil
		} else {
			m.Order = m.Order[:0:0]
			for _, p := range m.Ports {
				m.Order = append(m.Order, p.Name)
			}
		}
	case "enter":
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m PortListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Ports"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ done  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Ports {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if n := slices.Index(m.Order, p.Name); n >= 0 {
			mark = fmt.Sprintf("[%d]", n+1)
		}
		line := fmt.Sprintf("%s%-4s %-12s %s", cursor, mark, p.Name, listDimStyle.Render(p.Facing().String()))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case slices.Contains(m.Order, p.Name):
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d picked]", len(m.Order), len(m.Ports))))
	return b.String()
}
