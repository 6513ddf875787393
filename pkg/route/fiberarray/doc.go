// Package fiberarray routes co-oriented ports to a linear array of grating
// couplers below a component.
//
// [Router] implements route.ArrayRouter. The couplers sit on one row with a
// fixed pitch, their waveguide ports facing north. Each port is connected by
// a Manhattan route: it escapes the component if it does not already face
// south, drops to a turn height, runs across to its coupler column and drops
// onto the coupler. Turn heights are staggered so that routes moving the same
// way never cross.
//
// Every routed port gets a measurement label at its coupler port:
//
//	opt_<polarization>_<wavelength nm>_(<component>)_<coupler index>_<port number>
//
// [Loopback] builds the calibration structure: two extra couplers joined by
// a waveguide, labelled with the component name prefixed by "loopback_".
package fiberarray
