package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/geom"
)

type file struct {
	Name   string         `json:"name" toml:"name"`
	Bounds *geom.Rect     `json:"bounds,omitempty" toml:"bounds,omitempty"`
	Ports  []portFile     `json:"ports" toml:"ports"`
	Paths  []pathFile     `json:"paths,omitempty" toml:"paths,omitempty"`
	Info   map[string]any `json:"info,omitempty" toml:"info,omitempty"`
}

type portFile struct {
	Name        string           `json:"name" toml:"name"`
	Number      int              `json:"number,omitempty" toml:"number,omitempty"`
	X           float64          `json:"x" toml:"x"`
	Y           float64          `json:"y" toml:"y"`
	Orientation float64          `json:"orientation" toml:"orientation"`
	Width       float64          `json:"width,omitempty" toml:"width,omitempty"`
	Layer       *component.Layer `json:"layer,omitempty" toml:"layer,omitempty"`
	Type        string           `json:"type,omitempty" toml:"type,omitempty"`
}

type pathFile struct {
	Points []geom.Point     `json:"points" toml:"points"`
	Width  float64          `json:"width,omitempty" toml:"width,omitempty"`
	Layer  *component.Layer `json:"layer,omitempty" toml:"layer,omitempty"`
}

// toFile describes c. Placed sub-cells and labels are not part of the
// format; route output is exported through pkg/graph instead.
func toFile(c *component.Component) file {
	b := c.Bounds
	f := file{Name: c.Name, Bounds: &b, Info: c.Info, Ports: []portFile{}}
	for _, p := range c.Ports.List() {
		layer := p.Layer
		f.Ports = append(f.Ports, portFile{
			Name:        p.Name,
			Number:      p.Number,
			X:           p.Center.X,
			Y:           p.Center.Y,
			Orientation: p.Orientation,
			Width:       p.Width,
			Layer:       &layer,
			Type:        string(p.Type),
		})
	}
	for _, p := range c.Paths {
		layer := p.Layer
		f.Paths = append(f.Paths, pathFile{Points: p.Points, Width: p.Width, Layer: &layer})
	}
	return f
}

// WriteJSON encodes c as an indented JSON component file.
func WriteJSON(c *component.Component, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toFile(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes c as a TOML component file.
func WriteTOML(c *component.Component, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(toFile(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes c to path in the format given by its extension.
func ExportFile(c *component.Component, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatTOML {
		return WriteTOML(c, f)
	}
	return WriteJSON(c, f)
}
