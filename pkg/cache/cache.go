// Package cache stores routed layouts and rendered artifacts between runs.
//
// Routing the same component with the same options always produces the same
// layout, so the pipeline keys its results by a hash of the component and the
// options that influence routing. Three backends implement [Cache]:
//
//   - [FileCache] for the CLI, one JSON file per entry under the XDG cache dir
//   - [RedisCache] for the API server, shared between replicas
//   - [NullCache] when caching is disabled
//
// Keys are built by a [Keyer] so that servers can namespace them per tenant
// with [ScopedKeyer].
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Entry lifetimes.
const (
	TTLRoute    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Backend kinds accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Open returns the cache named by kind. dir is used by the file backend and
// url by the redis backend.
func Open(kind, dir, url string) (Cache, error) {
	switch kind {
	case "", BackendFile:
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCacheFromURL(url)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want file, redis or none)", kind)
	}
}

// RouteKeyOpts are the routing inputs that change the routed layout.
type RouteKeyOpts struct {
	FiberSpacing            float64        `json:"fiber_spacing"`
	MinInputToOutputSpacing float64        `json:"min_input_to_output_spacing"`
	RoutingType             int            `json:"routing_type"`
	Couplers                []string       `json:"couplers"`
	CrossSection            string         `json:"cross_section"`
	Settings                map[string]any `json:"settings,omitempty"`
	Ports                   []string       `json:"ports,omitempty"`
	Exclude                 []string       `json:"exclude,omitempty"`
	AutoWiden               bool           `json:"auto_widen"`
	Loopback                bool           `json:"loopback"`
	ComponentName           string         `json:"component_name,omitempty"`

	// CouplerDefs and CrossSectionDef are what the names above resolved to,
	// so redefining a preset in the config file changes the key.
	CouplerDefs     []CouplerKey          `json:"coupler_defs,omitempty"`
	CrossSectionDef xsection.CrossSection `json:"cross_section_def"`
}

// CouplerKey is a resolved coupler template.
type CouplerKey struct {
	Name         string  `json:"name"`
	CellHash     string  `json:"cell_hash"`
	Port         string  `json:"port"`
	PortToCenter float64 `json:"port_to_center,omitempty"`
	Polarization string  `json:"polarization"`
	Wavelength   float64 `json:"wavelength"`
}

// ArtifactKeyOpts are the rendering inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// RouteKey keys a routed layout by the hash of the input component.
	RouteKey(componentHash string, opts RouteKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of the routed layout.
	ArtifactKey(routeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "route:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RouteKey implements [Keyer].
func (DefaultKeyer) RouteKey(componentHash string, opts RouteKeyOpts) string {
	return hashKey("route", componentHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(routeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", routeHash, opts)
}
