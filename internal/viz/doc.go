// Package viz draws vorton histories.
//
// Each renderer takes a history and its own options and returns a fresh
// figure and axes; nothing is shared between calls:
//
//   - [VortonTrajectories]: vorton paths colored from Tab10New, with a start marker
//   - [TracerTrajectories]: tracer paths in uniform gray
//   - [PoincareSection]: tracer positions at the recurrence times of a reference vorton
//   - [PoincareStyled]: the same map with marker size, alpha and color cycled
//     per tracer or per section time
//
// Renderers are also reachable by kind name through a [Registry], which
// routes a flat option map to the recurrence filter and to figure creation.
package viz
