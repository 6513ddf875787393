// Package route implements single-side fiber routing: it connects the optical
// ports of a component to two linear arrays of grating couplers placed on
// opposite edges of the chip.
//
// # Overview
//
// [RouteFiberSingle] runs four stages, each a pure function of its inputs:
//
//  1. [SelectPorts] picks the working port set (selector, explicit names,
//     exclusions) and fails with a NoRoutablePortsError before any geometry
//     is touched when nothing is routable.
//  2. [FanoutLength] computes how far each bundle must fan out so the two
//     opposing fiber arrays stay MinInputToOutputSpacing apart.
//  3. The edge adapter calls an [ArrayRouter] twice. The south pass routes a
//     copy rotated by +90° (west ports now face south); the north pass
//     routes an independent copy rotated by -90° with the south ports
//     removed, using the coupler templates after the first.
//  4. [Compose] rotates the north result by 180° into the south frame and
//     appends it after the south result.
//
// The caller's component is never modified: the orchestrator deep-copies its
// input and only works on rotated copies.
//
// # Frames
//
//	     _________                 E1  E0
//	    |         |_E1             _|___|_
//	 W0_|         |               |       |
//	    |         |_E0   +90°     |       |
//	    |_________|      ----->   |_______|
//	                                  |
//	                                  W0  → routed south
//
// The -90° copy is the +90° copy turned half a revolution, which is why a
// 180° rotation brings the north result back into the south frame.
//
// # Usage
//
//	opts := route.DefaultOptions(fiberarray.New())
//	opts.Coupler = coupler.PerPort(coupler.TE(), coupler.TM())
//	elements, couplers, err := route.RouteFiberSingle(c, opts)
package route
