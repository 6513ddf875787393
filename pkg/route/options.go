package route

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fiberroute/pkg/coupler"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/xsection"
)

// Defaults for single-side fiber routing.
const (
	DefaultFiberSpacing            = 50.0
	DefaultMinInputToOutputSpacing = 200.0
	DefaultRoutingType             = 1
	// DefaultSnapNM is the grid, in nanometers, the fanout deficit is snapped to.
	DefaultSnapNM = 10.0
)

// Routing types understood by the array router.
const (
	RoutingBasic    = 0
	RoutingStandard = 1
	RoutingPorts    = 2
)

// Options configures [RouteFiberSingle].
type Options struct {
	// FiberSpacing is the pitch of the grating-coupler array.
	FiberSpacing float64
	// Coupler assigns grating-coupler templates to ports.
	Coupler coupler.Spec
	// MinInputToOutputSpacing keeps the two opposing fiber bundles apart.
	MinInputToOutputSpacing float64
	// RoutingType selects the array router's ordering strategy (0, 1 or 2).
	RoutingType int
	// PortNames, when set, overrides Selector with an explicit port list.
	PortNames []string
	// ExcludedPorts are never routed.
	ExcludedPorts []string
	// AutoWiden widens long straight runs.
	AutoWiden bool
	// ComponentName is used in measurement labels. Empty means the input
	// component's name.
	ComponentName string
	Selector      PortSelector
	CrossSection  xsection.CrossSection
	// Settings overrides cross-section fields, e.g. {"radius": 5}.
	Settings map[string]any
	// SnapNM is the fanout snap grid in nanometers.
	SnapNM float64
	// Router lays out each edge. Required.
	Router ArrayRouter
	// Parallel routes the two edges concurrently. Results are identical.
	Parallel bool
	Logger   *log.Logger
}

// DefaultOptions returns the documented defaults routed through r.
func DefaultOptions(r ArrayRouter) Options {
	return Options{
		FiberSpacing:            DefaultFiberSpacing,
		Coupler:                 coupler.Single(coupler.TE()),
		MinInputToOutputSpacing: DefaultMinInputToOutputSpacing,
		RoutingType:             DefaultRoutingType,
		Selector:                SelectOptical,
		CrossSection:            xsection.Strip(),
		SnapNM:                  DefaultSnapNM,
		Router:                  r,
	}
}

// Validate checks the options and fills in the defaults that have an
// unambiguous zero value (selector, cross-section, snap grid, logger).
func (o *Options) Validate() error {
	if o.Router == nil {
		return errs.New(errs.ErrCodeInvalidInput, "no array router configured")
	}
	if o.FiberSpacing <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "fiber spacing must be positive, got %v", o.FiberSpacing)
	}
	if o.MinInputToOutputSpacing < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "min input to output spacing must not be negative, got %v", o.MinInputToOutputSpacing)
	}
	if o.RoutingType < RoutingBasic || o.RoutingType > RoutingPorts {
		return errs.New(errs.ErrCodeInvalidInput, "routing type must be 0, 1 or 2, got %d", o.RoutingType)
	}
	if o.Coupler.IsZero() {
		o.Coupler = coupler.Single(coupler.TE())
	}
	if o.Selector == nil {
		o.Selector = SelectOptical
	}
	if o.CrossSection.Width == 0 {
		o.CrossSection = xsection.Strip()
	}
	if o.SnapNM == 0 {
		o.SnapNM = DefaultSnapNM
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
