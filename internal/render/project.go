package render

import (
	"math"
	"sort"

	"github.com/san-kum/helix/internal/scene"
	"github.com/san-kum/helix/internal/vmath"
)

// Sprite is a mesh projected to screen space. X, Y and R are in pixels;
// Size is the scaled radius in world units.
type Sprite struct {
	X, Y, R float64
	Size    float64
	Depth   float64
	World   vmath.Vec3
	Mesh    *scene.Mesh
}

// Project returns visible sprites for a w×h target, sorted far to near.
// The camera aspect is taken from the target, as on a resize.
func Project(sc *scene.Scene, cam *scene.Camera, w, h int) []Sprite {
	if sc == nil || cam == nil || w <= 0 || h <= 0 {
		return nil
	}
	c := *cam
	c.Aspect = float64(w) / float64(h)
	f := c.Focal()

	out := make([]Sprite, 0, sc.Len())
	for _, g := range sc.Groups {
		for _, m := range g.Children {
			world := g.World(m.Position)
			nx, ny, depth, ok := c.ProjectNDC(world)
			if !ok {
				continue
			}
			s := math.Max(m.Scale.X, math.Max(m.Scale.Y, m.Scale.Z)) * math.Max(g.Scale.X, math.Max(g.Scale.Y, g.Scale.Z))
			r := m.Radius * s / depth * f * float64(h) / 2
			sp := Sprite{
				X:     (nx + 1) / 2 * float64(w),
				Y:     (1 - ny) / 2 * float64(h),
				R:     r,
				Size:  m.Radius * s,
				Depth: depth,
				World: world,
				Mesh:  m,
			}
			if sp.X+r < 0 || sp.X-r > float64(w) || sp.Y+r < 0 || sp.Y-r > float64(h) {
				continue
			}
			out = append(out, sp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}
