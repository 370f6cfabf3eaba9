package export

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/helix/internal/render"
)

// SVG draws projected sprites as flat circles. Sprites are expected far to
// near, as render.Project returns them, so nearer spheres paint over farther ones.
func SVG(sprites []render.Sprite, width, height int, bg colorful.Color) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg.Clamped().Hex()))

	for _, sp := range sprites {
		if sp.Mesh == nil || sp.R <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>
`, sp.X, sp.Y, sp.R, fill(sp).Hex()))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// fill is the base colour brightened by the current glow.
func fill(sp render.Sprite) colorful.Color {
	m := sp.Mesh.Material
	k := m.EmissiveIntensity
	return colorful.Color{
		R: m.Color.R + m.Emissive.R*k,
		G: m.Color.G + m.Emissive.G*k,
		B: m.Color.B + m.Emissive.B*k,
	}.Clamped()
}
