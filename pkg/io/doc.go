// Package io reads and writes component description files.
//
// A component file describes a device to be routed: its name, bounding box
// and ports, plus optional waveguide paths and free-form info. Files are JSON
// or TOML; the format is picked from the extension.
//
// # TOML Format
//
//	name = "ring_r10"
//
//	[bounds]
//	min = { x = -12.0, y = -12.0 }
//	max = { x = 12.0, y = 12.0 }
//
//	[[ports]]
//	name = "o1"
//	x = -12.0
//	orientation = 180.0
//
//	[[ports]]
//	name = "o2"
//	x = 12.0
//	orientation = 0.0
//
// # Port Fields
//
// Required:
//   - name: matches [A-Za-z0-9][A-Za-z0-9_.-]*
//
// Optional:
//   - x, y: center in µm (default 0)
//   - orientation: degrees, counter-clockwise from east (default 0)
//   - width: waveguide width in µm (default 0.5)
//   - type: "optical" (default) or "electrical"
//   - number: 1-based port number (default: position in the file)
//
// When bounds are omitted they are taken from the paths, or from the port
// centers if there are no paths.
//
// # Import and Export
//
//	c, err := io.ImportFile("ring.toml")
//	err = io.ExportFile(c, "ring.json")
package io
