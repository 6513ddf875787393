package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fiberroute/pkg/component"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/geom"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatOf returns the file format for path based on its extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported component file %q (want .json or .toml)", path)
	}
}

// ReadJSON decodes a component file in JSON from r.
func ReadJSON(r io.Reader) (*component.Component, error) {
	var f file
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode component")
	}
	return f.build()
}

// ReadTOML decodes a component file in TOML from r.
func ReadTOML(r io.Reader) (*component.Component, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode component")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown component field %q", undecoded[0].String())
	}
	return f.build()
}

// Read decodes a component file of the given format from r.
func Read(r io.Reader, format string) (*component.Component, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported component format %q", format)
	}
}

// ImportFile reads the component file at path.
func ImportFile(path string) (*component.Component, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "component file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (f *file) build() (*component.Component, error) {
	if err := errs.ValidateCellName(f.Name); err != nil {
		return nil, err
	}
	c := component.New(f.Name)
	c.Info = f.Info

	var centers []geom.Point
	for _, p := range f.Ports {
		if err := errs.ValidatePortName(p.Name); err != nil {
			return nil, err
		}
		port, err := p.port()
		if err != nil {
			return nil, err
		}
		if err := c.AddPort(port); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidComponent, err, "component %s", f.Name)
		}
		centers = append(centers, port.Center)
	}
	for _, p := range f.Paths {
		layer := component.LayerWG
		if p.Layer != nil {
			layer = *p.Layer
		}
		if len(p.Points) < 2 {
			return nil, errs.New(errs.ErrCodeInvalidComponent, "path of %s needs at least two points", f.Name)
		}
		c.AddPath(component.Path{Points: p.Points, Width: orDefault(p.Width, component.DefaultWGWidth), Layer: layer})
	}

	switch {
	case f.Bounds != nil:
		c.Bounds = *f.Bounds
	case len(f.Paths) == 0:
		c.Bounds = geom.BoundsOf(centers...)
	}
	return c, nil
}

func (p portFile) port() (component.Port, error) {
	typ := component.PortType(p.Type)
	switch typ {
	case "", component.Optical, component.Electrical:
	default:
		return component.Port{}, errs.New(errs.ErrCodeInvalidComponent, "port %s has unknown type %q", p.Name, p.Type)
	}
	layer := component.LayerWG
	if p.Layer != nil {
		layer = *p.Layer
	}
	return component.Port{
		Name:        p.Name,
		Number:      p.Number,
		Center:      geom.Pt(p.X, p.Y),
		Orientation: geom.NormalizeAngle(p.Orientation),
		Width:       orDefault(p.Width, component.DefaultWGWidth),
		Layer:       layer,
		Type:        typ,
	}, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
