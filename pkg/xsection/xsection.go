// Package xsection defines waveguide cross-sections used when drawing routes.
//
// A cross-section fixes the waveguide width, layer and minimum bend radius
// plus the routing pitch. Callers override fields with a free-form settings
// map, e.g. {"radius": 5, "layer": [2, 0]}, decoded with mapstructure.
package xsection

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/fiberroute/pkg/component"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
)

// CrossSection describes how a routed waveguide is drawn.
type CrossSection struct {
	Name   string          `mapstructure:"name" json:"name" toml:"name"`
	Width  float64         `mapstructure:"width" json:"width" toml:"width"`
	Layer  component.Layer `mapstructure:"layer" json:"layer" toml:"layer"`
	Radius float64         `mapstructure:"radius" json:"radius" toml:"radius"`
	// Separation is the pitch between neighbouring parallel routes.
	Separation float64 `mapstructure:"separation" json:"separation" toml:"separation"`
	// WideWidth is used for straight runs longer than WidenThreshold when
	// auto-widening is on.
	WideWidth      float64 `mapstructure:"wide_width" json:"wide_width" toml:"wide_width"`
	WidenThreshold float64 `mapstructure:"widen_threshold" json:"widen_threshold" toml:"widen_threshold"`
}

// Strip returns the default single-mode strip waveguide.
func Strip() CrossSection {
	return CrossSection{
		Name:           "strip",
		Width:          component.DefaultWGWidth,
		Layer:          component.LayerWG,
		Radius:         10,
		Separation:     5,
		WideWidth:      2,
		WidenThreshold: 100,
	}
}

// Rib returns a rib waveguide on the slab layer pair.
func Rib() CrossSection {
	xs := Strip()
	xs.Name = "rib"
	xs.Width = 0.45
	xs.Layer = component.Layer{Layer: 3, Datatype: 0}
	xs.Radius = 20
	return xs
}

// Presets maps cross-section names to constructors.
var Presets = map[string]func() CrossSection{
	"strip": Strip,
	"rib":   Rib,
}

// Preset returns the named cross-section.
func Preset(name string) (CrossSection, error) {
	f, ok := Presets[name]
	if !ok {
		return CrossSection{}, errs.New(errs.ErrCodeNotFound, "unknown cross-section %q", name)
	}
	return f(), nil
}

// With returns a copy of xs with settings applied. Unknown keys are an error.
func (xs CrossSection) With(settings map[string]any) (CrossSection, error) {
	if len(settings) == 0 {
		return xs, nil
	}
	out := xs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       layerHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return xs, errs.Wrap(errs.ErrCodeInternal, err, "build settings decoder")
	}
	if err := dec.Decode(settings); err != nil {
		return xs, errs.Wrap(errs.ErrCodeInvalidInput, err, "cross-section settings")
	}
	return out, out.Validate()
}

// Validate checks that the cross-section can be drawn.
func (xs CrossSection) Validate() error {
	switch {
	case xs.Width <= 0:
		return errs.New(errs.ErrCodeInvalidInput, "cross-section %s: width must be positive, got %v", xs.Name, xs.Width)
	case xs.Radius < 0:
		return errs.New(errs.ErrCodeInvalidInput, "cross-section %s: radius must not be negative, got %v", xs.Name, xs.Radius)
	case xs.Separation <= 0:
		return errs.New(errs.ErrCodeInvalidInput, "cross-section %s: separation must be positive, got %v", xs.Name, xs.Separation)
	}
	return nil
}

var layerType = reflect.TypeOf(component.Layer{})

// layerHook accepts a [layer, datatype] pair wherever a Layer is expected.
func layerHook(from, to reflect.Type, data any) (any, error) {
	if to != layerType {
		return data, nil
	}
	if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
		return data, nil
	}
	v := reflect.ValueOf(data)
	if v.Len() != 2 {
		return nil, fmt.Errorf("layer needs [layer, datatype], got %d values", v.Len())
	}
	var pair [2]int
	for i := range pair {
		n, err := toInt(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("layer: %w", err)
		}
		pair[i] = n
	}
	return component.Layer{Layer: pair[0], Datatype: pair[1]}, nil
}

func toInt(x any) (int, error) {
	switch n := x.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("not a number: %v", x)
}
