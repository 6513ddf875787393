// Package coupler describes grating-coupler templates and how they are
// assigned to the ports being routed.
//
// A [Template] is a reusable coupler cell with one optical port. A [Spec]
// says which template goes to which port: [Single] repeats one template for
// every port, [PerPort] lists one template per port in routing order.
// [Spec.Resolve] turns either form into a concrete per-port list once, so the
// routers never need to ask which form they were given.
package coupler

import (
	"fmt"
	"math"

	"github.com/matzehuels/fiberroute/pkg/component"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/geom"
)

// Template is a grating-coupler cell used as a fiber interface.
type Template struct {
	Cell *component.Component
	// PortName names the waveguide port of Cell.
	PortName string
	// PortToCenter is the distance from the port to the coupler center along
	// the port axis. Zero means unknown; Offset then falls back to half the
	// cell width.
	PortToCenter float64
	// Polarization is "te" or "tm".
	Polarization string
	// Wavelength is the design wavelength in micrometers.
	Wavelength float64
}

// Port returns the waveguide port of the coupler cell.
func (t *Template) Port() component.Port {
	p, _ := t.Cell.Port(t.PortName)
	return p
}

// Offset returns the port-to-center distance used to size fanout clearance.
func (t *Template) Offset() float64 {
	if t.PortToCenter > 0 {
		return t.PortToCenter
	}
	return t.Cell.XSize() / 2
}

// WavelengthNM returns the design wavelength in whole nanometers.
func (t *Template) WavelengthNM() int {
	return int(math.Round(t.Wavelength * 1e3))
}

// Name returns the cell name.
func (t *Template) Name() string { return t.Cell.Name }

// Validate checks that the template has a cell with the named optical port.
func (t *Template) Validate() error {
	if t == nil || t.Cell == nil {
		return errs.New(errs.ErrCodeInvalidInput, "grating coupler has no cell")
	}
	p, ok := t.Cell.Port(t.PortName)
	if !ok {
		return errs.New(errs.ErrCodeInvalidInput, "grating coupler %s has no port %q", t.Cell.Name, t.PortName)
	}
	if !p.IsOptical() {
		return errs.New(errs.ErrCodeInvalidInput, "grating coupler %s port %q is not optical", t.Cell.Name, t.PortName)
	}
	return nil
}

// Grating builds a coupler cell whose port "o1" faces west at the origin and
// whose grating extends towards +x.
func Grating(name string, taperLength, gratingLength, width float64) *component.Component {
	c := component.New(name)
	c.SetKind(component.KindCoupler)
	c.AddPath(component.Path{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(taperLength, 0)},
		Width:  component.DefaultWGWidth,
		Layer:  component.LayerWG,
	})
	c.Bounds = c.Bounds.Union(geom.R(taperLength, -width/2, taperLength+gratingLength, width/2))
	if err := c.AddPort(component.Port{
		Name:        "o1",
		Orientation: 180,
		Width:       component.DefaultWGWidth,
		Layer:       component.LayerWG,
	}); err != nil {
		panic(err)
	}
	return c
}

// TE returns the default TE grating coupler at 1530 nm.
func TE() *Template {
	return &Template{
		Cell:         Grating("grating_coupler_te", 16, 14, 24),
		PortName:     "o1",
		Polarization: "te",
		Wavelength:   1.53,
	}
}

// TM returns the default TM grating coupler at 1550 nm.
func TM() *Template {
	return &Template{
		Cell:         Grating("grating_coupler_tm", 18, 16, 24),
		PortName:     "o1",
		PortToCenter: 26,
		Polarization: "tm",
		Wavelength:   1.55,
	}
}

// Presets maps preset names to template builders.
var Presets = map[string]func() *Template{
	"te": TE,
	"tm": TM,
}

// Preset returns the named preset template.
func Preset(name string) (*Template, error) {
	f, ok := Presets[name]
	if !ok {
		return nil, errs.New(errs.ErrCodeNotFound, "unknown grating coupler preset %q", name)
	}
	return f(), nil
}

// Spec assigns coupler templates to routed ports.
type Spec struct {
	perPort   bool
	templates []*Template
}

// Single uses t for every port.
func Single(t *Template) Spec {
	return Spec{templates: []*Template{t}}
}

// PerPort assigns ts[i] to the i-th routed port.
func PerPort(ts ...*Template) Spec {
	return Spec{perPort: true, templates: ts}
}

// IsZero reports whether no template was given.
func (s Spec) IsZero() bool { return len(s.templates) == 0 }

// IsPerPort reports whether s lists one template per port.
func (s Spec) IsPerPort() bool { return s.perPort }

// Templates returns the templates as given.
func (s Spec) Templates() []*Template { return s.templates }

// String describes s, e.g. "single(grating_coupler_te)".
func (s Spec) String() string {
	if s.IsZero() {
		return "none"
	}
	if !s.perPort {
		return fmt.Sprintf("single(%s)", s.templates[0].Name())
	}
	return fmt.Sprintf("per-port(%d)", len(s.templates))
}

// Resolve returns the per-port template list for n ports. A single template
// is repeated n times (at least once, so callers can always read the first
// entry); a per-port list must cover all n ports.
func (s Spec) Resolve(n int) ([]*Template, error) {
	if s.IsZero() {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no grating coupler given")
	}
	for _, t := range s.templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	if !s.perPort {
		out := make([]*Template, max(n, 1))
		for i := range out {
			out[i] = s.templates[0]
		}
		return out, nil
	}
	if len(s.templates) < n {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"need a grating coupler for each of %d ports, got %d", n, len(s.templates))
	}
	out := make([]*Template, len(s.templates))
	copy(out, s.templates)
	return out, nil
}
