package config

import (
	"maps"
	"slices"

	"github.com/matzehuels/fiberroute/pkg/coupler"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// Grating defaults for coupler entries that leave the geometry out.
const (
	defaultTaperLength   = 16.0
	defaultGratingLength = 14.0
	defaultGratingWidth  = 24.0
)

// Presets resolves coupler and cross-section names. Entries from the
// configuration file shadow the built-in presets of the same name.
type Presets struct {
	couplers      map[string]CouplerConfig
	crossSections map[string]map[string]any
}

// Presets returns the name resolver for c.
func (c Config) Presets() *Presets {
	return &Presets{couplers: c.Couplers, crossSections: c.CrossSections}
}

// BuiltinPresets resolves the built-in names only.
func BuiltinPresets() *Presets {
	return &Presets{}
}

// Coupler returns a fresh template for name.
func (p *Presets) Coupler(name string) (*coupler.Template, error) {
	cc, ok := p.couplers[name]
	if !ok {
		return coupler.Preset(name)
	}
	return &coupler.Template{
		Cell: coupler.Grating("grating_coupler_"+name,
			orDefault(cc.TaperLength, defaultTaperLength),
			orDefault(cc.GratingLength, defaultGratingLength),
			orDefault(cc.Width, defaultGratingWidth),
		),
		PortName:     "o1",
		PortToCenter: cc.PortToCenter,
		Polarization: cc.Polarization,
		Wavelength:   cc.Wavelength,
	}, nil
}

// CouplerSpec turns coupler names into a spec. One name applies to every
// port unless perPort is set; several names are always per port.
func (p *Presets) CouplerSpec(names []string, perPort bool) (coupler.Spec, error) {
	if len(names) == 0 {
		return coupler.Spec{}, errs.New(errs.ErrCodeInvalidInput, "no grating coupler given")
	}
	ts := make([]*coupler.Template, len(names))
	for i, n := range names {
		t, err := p.Coupler(n)
		if err != nil {
			return coupler.Spec{}, err
		}
		ts[i] = t
	}
	if len(ts) == 1 && !perPort {
		return coupler.Single(ts[0]), nil
	}
	return coupler.PerPort(ts...), nil
}

// CrossSection returns the cross-section for name. A configured entry
// starts from its "base" built-in (strip by default) and overrides fields
// with the remaining keys.
func (p *Presets) CrossSection(name string) (xsection.CrossSection, error) {
	settings, ok := p.crossSections[name]
	if !ok {
		return xsection.Preset(name)
	}
	settings = maps.Clone(settings)
	base, _ := settings["base"].(string)
	delete(settings, "base")
	if base == "" {
		base = "strip"
	}
	xs, err := xsection.Preset(base)
	if err != nil {
		return xsection.CrossSection{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "cross_sections.%s", name)
	}
	settings["name"] = name
	return xs.With(settings)
}

// CouplerNames lists every known coupler name, sorted.
func (p *Presets) CouplerNames() []string {
	return sortedUnion(slices.Collect(maps.Keys(coupler.Presets)), slices.Collect(maps.Keys(p.couplers)))
}

// CrossSectionNames lists every known cross-section name, sorted.
func (p *Presets) CrossSectionNames() []string {
	return sortedUnion(slices.Collect(maps.Keys(xsection.Presets)), slices.Collect(maps.Keys(p.crossSections)))
}

func sortedUnion(a, b []string) []string {
	out := append(a, b...)
	slices.Sort(out)
	return slices.Compact(out)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
