package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/fiberroute/pkg/errors"
)

const sample = `
[route]
fiber_spacing = 127.0
couplers = ["te_o", "tm"]
routing_type = "ports"

[couplers.te_o]
polarization = "te"
wavelength = 1.31
width = 20.0

[cross_sections.strip_wide]
base = "strip"
width = 0.8
radius = 20.0

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "72h"

[server]
mongo_uri = "mongodb://localhost:27017"
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Route.FiberSpacing != 127 {
		t.Errorf("FiberSpacing = %v, want 127", cfg.Route.FiberSpacing)
	}
	// left out of the file, kept from the defaults
	if cfg.Route.MinInputToOutputSpacing != 200 {
		t.Errorf("MinInputToOutputSpacing = %v, want 200", cfg.Route.MinInputToOutputSpacing)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if diff := cmp.Diff([]string{"te_o", "tm"}, cfg.Route.Couplers); diff != "" {
		t.Errorf("couplers mismatch (-want +got):\n%s", diff)
	}
	if cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("Cache.TTL = %v, want 72h", cfg.Cache.TTL)
	}
	if cfg.Path == "" {
		t.Error("Path not recorded")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want errs.Code
	}{
		{"unknown key", "[route]\nfibre_spacing = 10.0\n", errs.ErrCodeInvalidConfig},
		{"bad toml", "[route\n", errs.ErrCodeInvalidConfig},
		{"bad routing type", "[route]\nrouting_type = \"fast\"\n", errs.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errs.ErrCodeInvalidConfig},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", errs.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", errs.ErrCodeInvalidConfig},
		{"coupler without wavelength", "[couplers.x]\npolarization = \"te\"\n", errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.data))
			if !errs.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %s", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestFindEnv(t *testing.T) {
	path := writeConfig(t, sample)
	t.Setenv(EnvConfig, path)
	if got := Find(); got != path {
		t.Errorf("Find = %q, want %q", got, path)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := Default().CacheDir()
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", AppName); dir != want {
		t.Errorf("CacheDir = %q, want %q", dir, want)
	}

	cfg := Default()
	cfg.Cache.Dir = "/var/cache/fr"
	if dir, _ := cfg.CacheDir(); dir != "/var/cache/fr" {
		t.Errorf("CacheDir = %q, want the configured dir", dir)
	}
}

func TestRunsDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	dir, err := Default().RunsDir()
	if err != nil {
		t.Fatalf("RunsDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-data", AppName, "runs"); dir != want {
		t.Errorf("RunsDir = %q, want %q", dir, want)
	}
}

func TestPresets(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := cfg.Presets()

	te, err := p.Coupler("te_o")
	if err != nil {
		t.Fatalf("Coupler(te_o): %v", err)
	}
	if te.WavelengthNM() != 1310 || te.Name() != "grating_coupler_te_o" {
		t.Errorf("te_o = %s at %d nm, want grating_coupler_te_o at 1310 nm", te.Name(), te.WavelengthNM())
	}
	if _, err := p.Coupler("nope"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Coupler(nope) error = %v, want %s", err, errs.ErrCodeNotFound)
	}

	spec, err := p.CouplerSpec(cfg.Route.Couplers, false)
	if err != nil {
		t.Fatalf("CouplerSpec: %v", err)
	}
	if !spec.IsPerPort() || len(spec.Templates()) != 2 {
		t.Errorf("CouplerSpec = %s, want per-port(2)", spec)
	}
	single, _ := p.CouplerSpec([]string{"te"}, false)
	if single.IsPerPort() {
		t.Errorf("CouplerSpec(te) = %s, want single", single)
	}

	xs, err := p.CrossSection("strip_wide")
	if err != nil {
		t.Fatalf("CrossSection: %v", err)
	}
	if xs.Name != "strip_wide" || xs.Width != 0.8 || xs.Radius != 20 || xs.Separation != 5 {
		t.Errorf("strip_wide = %+v, want strip with width 0.8 and radius 20", xs)
	}

	if diff := cmp.Diff([]string{"te", "te_o", "tm"}, p.CouplerNames()); diff != "" {
		t.Errorf("CouplerNames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"rib", "strip", "strip_wide"}, p.CrossSectionNames()); diff != "" {
		t.Errorf("CrossSectionNames mismatch (-want +got):\n%s", diff)
	}
}
