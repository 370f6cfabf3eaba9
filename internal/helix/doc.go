// Package helix generates the geometry of a DNA double helix.
//
// Two strands are sampled from the same parametric curve with phase offsets
// 0 and π, so at every index the strands share a height and sit opposite each
// other around the vertical axis. Bridges are interpolated between
// corresponding strand points:
//
//   - [Build]: validate [Params] and produce a [Helix]
//   - [BuildParallel]: same output, strand samples computed across goroutines
//   - [Ramp]: two-stop colour gradient sampled at each point's t
//
// Generation is pure. Mounting points into a scene is a separate step.
package helix
