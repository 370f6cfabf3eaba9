package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/helix/internal/scene"
)

func toRL(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

// meshColor is the base colour plus the current emissive contribution.
func meshColor(m *scene.Mesh) colorful.Color {
	k := m.Material.EmissiveIntensity
	e := m.Material.Emissive
	c := m.Material.Color
	return colorful.Color{R: c.R + e.R*k, G: c.G + e.G*k, B: c.B + e.B*k}
}

func (a *App) drawHelix() {
	for _, g := range a.Stage.Scene().Groups {
		for _, m := range g.Children {
			w := g.World(m.Position)
			pos := rl.NewVector3(float32(w.X), float32(w.Y), float32(w.Z))
			s := max(m.Scale.X, m.Scale.Y, m.Scale.Z)
			r := float32(m.Radius * s)

			rings, slices := int32(12), int32(12)
			if m.Kind == "bridge" {
				rings, slices = 6, 6
			}
			rl.DrawSphereEx(pos, r, rings, slices, toRL(meshColor(m)))

			// glowing spheres get a translucent halo in place of a bloom pass
			if a.Glow && m.Material.EmissiveIntensity > 0.05 {
				halo := toRL(m.Material.Emissive)
				halo.A = uint8(90 * min(m.Material.EmissiveIntensity, 1))
				rl.DrawSphereEx(pos, r*1.6, 8, 8, halo)
			}
		}
	}
}
