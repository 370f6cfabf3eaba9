package scene

import (
	"fmt"

	"github.com/san-kum/helix/internal/helix"
)

// MeshStyle sets sphere sizes for mounted points.
type MeshStyle struct {
	StrandRadius float64
	BridgeRadius float64
}

var DefaultMeshStyle = MeshStyle{StrandRadius: 8, BridgeRadius: 2}

// Selection names which mounted meshes a behaviour applies to.
type Selection string

const (
	SelectStrands Selection = "strands"
	SelectBridges Selection = "bridges"
	SelectAll     Selection = "all"
	SelectNone    Selection = "none"
)

func ParseSelection(s string) (Selection, error) {
	switch sel := Selection(s); sel {
	case SelectStrands, SelectBridges, SelectAll, SelectNone:
		return sel, nil
	}
	return "", fmt.Errorf("%w: pulse targets %q", helix.ErrInvalidConfig, s)
}

// Assembly holds the meshes created for one helix, all children of Group.
type Assembly struct {
	Group   *Group
	StrandA []*Mesh
	StrandB []*Mesh
	Bridges [][]*Mesh
}

// Mount creates one mesh per helix point under a fresh group. The emissive
// colour equals the base colour so glow brightens a sphere in its own hue.
func Mount(h *helix.Helix, style MeshStyle) *Assembly {
	a := &Assembly{Group: NewGroup()}
	mesh := func(p helix.Point, radius float64) *Mesh {
		m := NewMesh(radius, p.Position, Material{Color: p.Color, Emissive: p.Color})
		m.Kind, m.Index, m.Sub = p.Kind.String(), p.Index, p.Sub
		a.Group.Add(m)
		return m
	}
	for _, p := range h.A {
		a.StrandA = append(a.StrandA, mesh(p, style.StrandRadius))
	}
	for _, p := range h.B {
		a.StrandB = append(a.StrandB, mesh(p, style.StrandRadius))
	}
	for _, br := range h.Bridges {
		row := make([]*Mesh, 0, len(br))
		for _, p := range br {
			row = append(row, mesh(p, style.BridgeRadius))
		}
		a.Bridges = append(a.Bridges, row)
	}
	return a
}

// Targets returns the selected meshes in index order. Strands interleave A[i], B[i].
func (a *Assembly) Targets(sel Selection) []*Mesh {
	var out []*Mesh
	strands := func() {
		for i := range a.StrandA {
			out = append(out, a.StrandA[i])
			if i < len(a.StrandB) {
				out = append(out, a.StrandB[i])
			}
		}
	}
	bridges := func() {
		for _, row := range a.Bridges {
			out = append(out, row...)
		}
	}
	switch sel {
	case SelectStrands:
		strands()
	case SelectBridges:
		bridges()
	case SelectAll:
		strands()
		bridges()
	}
	return out
}
