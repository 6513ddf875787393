package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fiberroute/pkg/assembly"
	"github.com/matzehuels/fiberroute/pkg/cache"
	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/graph"
	"github.com/matzehuels/fiberroute/pkg/observability"
	"github.com/matzehuels/fiberroute/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its backends; it doesn't keep
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache cache.Cache
	Keyer cache.Keyer
	// Store records runs requested with Options.Save. Nil disables saving.
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete route → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	c, err := BuildComponent(opts)
	if err != nil {
		return nil, err
	}
	hash, err := HashComponent(c)
	if err != nil {
		return nil, fmt.Errorf("hash component: %w", err)
	}
	result := &Result{Component: c.Name, ComponentHash: hash}

	// Stage 1: Route
	routeStart := time.Now()
	routed, routeHit, err := r.RouteWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	result.Routed = routed
	result.Stats.RouteTime = time.Since(routeStart)
	result.Stats.PortCount = len(routed.Ports)
	result.Stats.CouplerCount = len(routed.Layout.Couplers())
	result.CacheInfo.RouteHit = routeHit

	r.Logger.Info("routed component",
		"component", c.Name,
		"ports", result.Stats.PortCount,
		"couplers", result.Stats.CouplerCount,
		"cached", routeHit,
		"duration", result.Stats.RouteTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, routed, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if opts.Save && r.Store != nil {
		keyOpts, err := opts.RouteKeyOpts()
		if err != nil {
			return nil, err
		}
		run := store.NewRun(c.Name, hash, keyOpts, routed.Layout, routed.Netlist)
		if err := r.Store.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		result.RunID = run.ID
		r.Logger.Debug("saved run", "id", run.ID)
	}

	return result, nil
}

// RouteWithCacheInfo routes c with caching and returns cache hit info.
func (r *Runner) RouteWithCacheInfo(ctx context.Context, c *component.Component, opts Options) (Routed, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Routed{}, false, err
	}

	hash, err := HashComponent(c)
	if err != nil {
		return Routed{}, false, fmt.Errorf("hash component: %w", err)
	}
	keyOpts, err := opts.RouteKeyOpts()
	if err != nil {
		return Routed{}, false, err
	}
	cacheKey := r.Keyer.RouteKey(hash, keyOpts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Routed
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				return cached, true, nil
			}
			// undecodable entries are recomputed
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	routed, err := Route(ctx, c, opts)
	if err != nil {
		return Routed{}, false, err
	}

	if data, err := json.Marshal(routed); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLRoute); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "route", len(data))
		}
	}

	return routed, false, nil
}

// Route assembles the fiber-ready top cell for c without caching.
func Route(ctx context.Context, c *component.Component, opts Options) (Routed, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Routed{}, err
	}
	ao, err := opts.AssemblyOptions()
	if err != nil {
		return Routed{}, err
	}

	hooks := observability.Route()
	hooks.OnRouteStart(ctx, c.Name, c.Ports.Len())
	start := time.Now()
	a, err := assembly.Assemble(c, ao)
	couplers := 0
	if a != nil {
		couplers = len(component.References(a.Routing.Couplers))
	}
	hooks.OnRouteComplete(ctx, c.Name, couplers, time.Since(start), err)
	if err != nil {
		return Routed{}, err
	}

	return Routed{
		Layout:       graph.FromComponent(a.Cell),
		Netlist:      graph.Netlist(a.Cell),
		Ports:        a.Routing.Ports(),
		FanoutLength: a.Routing.FanoutLength,
		HasFanout:    a.Routing.HasFanout,
	}, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, routed Routed, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	// Compute cache key from the routed data
	routedData, err := json.Marshal(routed)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	routeHash := cache.Hash(routedData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(routeHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			break
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Route()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, routed, opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(routeHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Store != nil {
		if serr := r.Store.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
