package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/route"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m PortListModel, keys ...string) PortListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(PortListModel)
	}
	return m
}

func TestPortListModel(t *testing.T) {
	m := NewPortListModel(component.MMI2x2(5.5).Ports.List())

	// E1 first, then W0: pick order is kept
	m = press(m, "down", "down", "down", " ", "up", "up", "up", " ")
	if diff := cmp.Diff([]string{"E1", "W0"}, m.Picked()); diff != "" {
		t.Errorf("picked mismatch (-want +got):\n%s", diff)
	}

	// toggling again removes
	m = press(m, " ")
	if diff := cmp.Diff([]string{"E1"}, m.Picked()); diff != "" {
		t.Errorf("picked mismatch (-want +got):\n%s", diff)
	}

	m = press(m, "up", "a")
	if got := len(m.Picked()); got != 4 {
		t.Errorf("picked %d ports after select-all, want 4", got)
	}
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 at the top", m.Cursor)
	}
	m = press(m, "a")
	if got := len(m.Picked()); got != 0 {
		t.Errorf("picked %d ports after second select-all, want 0", got)
	}

	m = press(m, "x", "enter")
	if !m.Done {
		t.Error("enter did not finish the picker")
	}
	if view := m.View(); !strings.Contains(view, "[1/4 picked]") {
		t.Errorf("View missing pick count:\n%s", view)
	}
}

func TestPortListModelQuit(t *testing.T) {
	m := NewPortListModel(component.Straight(10, 0.5).Ports.List())
	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q did not quit")
	}
	if next.(PortListModel).Done {
		t.Error("q marked the picker as done")
	}
}

func TestPortTable(t *testing.T) {
	c := component.MMI2x2(5.5)
	working, err := route.SelectPorts(c, route.SelectOptical, nil, []string{"W1"})
	if err != nil {
		t.Fatalf("SelectPorts: %v", err)
	}
	out := portTable(c, working)
	for _, want := range []string{c.Name, "W0", "W1", "E0", "E1", "west", "east", "optical"} {
		if !strings.Contains(out, want) {
			t.Errorf("portTable missing %q:\n%s", want, out)
		}
	}
}

func TestRouteCommandLine(t *testing.T) {
	tests := []struct {
		args  []string
		input inputFlags
		want  string
	}{
		{[]string{"ring.toml"}, inputFlags{}, "fiberroute route ring.toml --ports o2,o1"},
		{nil, inputFlags{cell: "mmi2x2"}, "fiberroute route --cell mmi2x2 --ports o2,o1"},
		{nil, inputFlags{cell: "straight", length: 20}, "fiberroute route --cell straight --length 20 --ports o2,o1"},
	}
	for _, tt := range tests {
		if got := routeCommandLine(tt.args, tt.input, []string{"o2", "o1"}); got != tt.want {
			t.Errorf("routeCommandLine = %q, want %q", got, tt.want)
		}
	}
}

func TestPortsCommand(t *testing.T) {
	isolate(t)
	if err := execute(t, "ports", "--cell", "cross", "--exclude", "N0"); err != nil {
		t.Errorf("ports: %v", err)
	}
	if err := execute(t, "ports", "--cell", "cross", "--ports", "Z9"); err == nil {
		t.Error("ports with an unknown port succeeded")
	}
}
