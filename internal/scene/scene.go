package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/helix/internal/vmath"
)

// Material is a lit surface with an additive emissive term.
type Material struct {
	Color             colorful.Color
	Emissive          colorful.Color
	EmissiveIntensity float64
}

// Mesh is a sphere. Kind, Index and Sub identify the helix point it was mounted from.
type Mesh struct {
	Kind     string
	Index    int
	Sub      int
	Radius   float64
	Position vmath.Vec3
	Scale    vmath.Vec3
	Material Material
}

func NewMesh(radius float64, pos vmath.Vec3, mat Material) *Mesh {
	return &Mesh{Radius: radius, Position: pos, Scale: vmath.Vec3{X: 1, Y: 1, Z: 1}, Material: mat}
}

// Group transforms its children rigidly.
type Group struct {
	Position vmath.Vec3
	Rotation vmath.Vec3
	Scale    vmath.Vec3
	Children []*Mesh
}

func NewGroup() *Group {
	return &Group{Scale: vmath.Vec3{X: 1, Y: 1, Z: 1}}
}

func (g *Group) Add(m ...*Mesh) { g.Children = append(g.Children, m...) }

// World maps a point in group space to world space: scale, rotate, translate.
func (g *Group) World(p vmath.Vec3) vmath.Vec3 {
	return vmath.RotateEuler(p.Mul(g.Scale), g.Rotation).Add(g.Position)
}

// DirectionalLight shines along -Direction, i.e. Direction points at the light.
type DirectionalLight struct {
	Direction vmath.Vec3
	Color     colorful.Color
	Intensity float64
}

// Scene is the root container handed to a renderer.
type Scene struct {
	Background colorful.Color
	Light      DirectionalLight
	Ambient    float64
	Groups     []*Group
}

func New(bg colorful.Color) *Scene {
	return &Scene{
		Background: bg,
		Light: DirectionalLight{
			Direction: vmath.Vec3{X: 1, Y: 1, Z: 1}.Normalize(),
			Color:     colorful.Color{R: 1, G: 1, B: 1},
			Intensity: 1,
		},
	}
}

func (s *Scene) Add(g *Group) { s.Groups = append(s.Groups, g) }

// Remove detaches g; it reports whether g was present.
func (s *Scene) Remove(g *Group) bool {
	for i, x := range s.Groups {
		if x == g {
			s.Groups = append(s.Groups[:i], s.Groups[i+1:]...)
			return true
		}
	}
	return false
}

// Len counts meshes across all groups.
func (s *Scene) Len() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Children)
	}
	return n
}

// Camera is a perspective camera looking down -Z from Position.
type Camera struct {
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position vmath.Vec3
}

func NewCamera(fov, aspect, near, far float64) *Camera {
	return &Camera{FOV: fov, Aspect: aspect, Near: near, Far: far}
}

// Focal is 1/tan(fov/2), the scale from view-space slope to NDC.
func (c *Camera) Focal() float64 {
	return 1 / math.Tan(c.FOV*math.Pi/360)
}

// ToView converts a world point to view space; visible points have negative Z.
func (c *Camera) ToView(p vmath.Vec3) vmath.Vec3 {
	return p.Sub(c.Position)
}

// ProjectNDC returns normalized device coordinates and the view depth.
// ok is false for points outside the near/far range.
func (c *Camera) ProjectNDC(p vmath.Vec3) (x, y, depth float64, ok bool) {
	v := c.ToView(p)
	depth = -v.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	f := c.Focal()
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return v.X / depth * f / aspect, v.Y / depth * f, depth, true
}
