package route

import (
	"slices"

	"github.com/matzehuels/fiberroute/pkg/component"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
)

// PortSelector reports whether a port should be fiber-routed.
type PortSelector func(component.Port) bool

// SelectOptical selects optical ports.
func SelectOptical(p component.Port) bool { return p.IsOptical() }

// SelectPrefix returns a selector for optical ports whose name starts with prefix.
func SelectPrefix(prefix string) PortSelector {
	return func(p component.Port) bool {
		return p.IsOptical() && len(p.Name) >= len(prefix) && p.Name[:len(prefix)] == prefix
	}
}

// SelectPorts returns the working port set of c, in port order.
//
// It fails with a NoRoutablePortsError when sel matches nothing on c. With
// explicit names, those ports are returned in the given order with repeats
// dropped, and an unknown name fails with an UnknownPortError; otherwise sel
// decides.
// Excluded names are removed last.
func SelectPorts(c *component.Component, sel PortSelector, explicit, excluded []string) ([]component.Port, error) {
	if sel == nil {
		sel = SelectOptical
	}
	if !slices.ContainsFunc(c.Ports.List(), sel) {
		return nil, &errs.NoRoutablePortsError{Component: c.Name}
	}

	var ports []component.Port
	if explicit != nil {
		ports = make([]component.Port, 0, len(explicit))
		seen := make(map[string]bool, len(explicit))
		for _, name := range explicit {
			if seen[name] {
				continue
			}
			seen[name] = true
			p, ok := c.Port(name)
			if !ok {
				return nil, &errs.UnknownPortError{Component: c.Name, Port: name}
			}
			ports = append(ports, p)
		}
	} else {
		for _, p := range c.Ports.List() {
			if sel(p) {
				ports = append(ports, p)
			}
		}
	}

	if len(excluded) > 0 {
		ports = slices.DeleteFunc(ports, func(p component.Port) bool {
			return slices.Contains(excluded, p.Name)
		})
	}
	return ports, nil
}
