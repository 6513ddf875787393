package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fiberroute/pkg/pipeline"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, name, want string
	}{
		{"", "mmi2x2_fiber", "mmi2x2_fiber"},
		{"out/ring", "x", "out/ring"},
		{"out/ring.svg", "x", "out/ring"},
		{"out/ring.json", "x", "out/ring"},
		{"out/ring.netlist.json", "x", "out/ring"},
		{"out/ring.netlist.svg", "x", "out/ring"},
		{"out/ring.dot", "x", "out/ring"},
		{"out/ring.gds", "x", "out/ring.gds"},
		{".svg", "x", ".svg"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.name); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.name, got, tt.want)
		}
	}
}

func TestOutputNames(t *testing.T) {
	want := map[string]string{
		pipeline.FormatJSON:       "top.json",
		pipeline.FormatSVG:        "top.svg",
		pipeline.FormatNetlist:    "top.netlist.json",
		pipeline.FormatDOT:        "top.dot",
		pipeline.FormatNetlistSVG: "top.netlist.svg",
	}
	for format := range pipeline.ValidFormats {
		if got := outputName("top", format); got != want[format] {
			t.Errorf("outputName(top, %s) = %q, want %q", format, got, want[format])
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		pipeline.FormatJSON: []byte(`{}`),
		pipeline.FormatSVG:  []byte(`<svg/>`),
	}

	paths, err := writeArtifacts(artifacts, []string{"json", "svg"}, filepath.Join(dir, "sub", "top.svg"), "ignored")
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{filepath.Join(dir, "sub", "top.json"), filepath.Join(dir, "sub", "top.svg")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if data, _ := os.ReadFile(want[1]); string(data) != "<svg/>" {
		t.Errorf("svg = %q, want <svg/>", data)
	}

	// a single format keeps the exact output name
	single := filepath.Join(dir, "drawing.txt")
	paths, err = writeArtifacts(artifacts, []string{"svg"}, single, "ignored")
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 1 || paths[0] != single {
		t.Errorf("paths = %v, want [%s]", paths, single)
	}
}
