package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/vmath"
)

func testHelix(t *testing.T, n, sub int) *helix.Helix {
	t.Helper()
	h, err := helix.Build(helix.Params{
		TotalPoints: n, Revolutions: 2, Height: 200, Radius: 50, SubCount: sub,
		StartColor: helix.MustParseColor("#ff4933"), EndColor: helix.MustParseColor("#ffae00"),
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return h
}

func TestMount(t *testing.T) {
	h := testHelix(t, 40, 20)
	a := Mount(h, DefaultMeshStyle)

	if got := len(a.Group.Children); got != 920 {
		t.Errorf("expected 920 meshes in group, got %d", got)
	}
	if len(a.StrandA) != 40 || len(a.StrandB) != 40 || len(a.Bridges) != 40 {
		t.Fatalf("unexpected assembly shape %d/%d/%d", len(a.StrandA), len(a.StrandB), len(a.Bridges))
	}
	if a.StrandA[3].Radius != 8 || a.Bridges[3][5].Radius != 2 {
		t.Error("mesh style radii not applied")
	}
	if a.StrandB[7].Position != h.B[7].Position {
		t.Error("mesh position does not match helix point")
	}
	if a.Bridges[2][4].Kind != "bridge" || a.Bridges[2][4].Sub != 4 || a.Bridges[2][4].Index != 2 {
		t.Errorf("bridge mesh identity wrong: %+v", a.Bridges[2][4])
	}
	m := a.StrandA[0]
	if m.Scale != (vmath.Vec3{X: 1, Y: 1, Z: 1}) || m.Material.EmissiveIntensity != 0 {
		t.Errorf("unexpected initial transform %+v", m)
	}
}

func TestAssembly_Targets(t *testing.T) {
	a := Mount(testHelix(t, 5, 3), DefaultMeshStyle)

	tests := []struct {
		sel  Selection
		want int
	}{
		{SelectStrands, 10},
		{SelectBridges, 20},
		{SelectAll, 30},
		{SelectNone, 0},
	}
	for _, tt := range tests {
		if got := len(a.Targets(tt.sel)); got != tt.want {
			t.Errorf("%s: expected %d targets, got %d", tt.sel, tt.want, got)
		}
	}

	strands := a.Targets(SelectStrands)
	if strands[0] != a.StrandA[0] || strands[1] != a.StrandB[0] || strands[2] != a.StrandA[1] {
		t.Error("strand targets not interleaved by index")
	}
}

func TestParseSelection(t *testing.T) {
	if sel, err := ParseSelection("bridges"); err != nil || sel != SelectBridges {
		t.Errorf("ParseSelection(bridges) = %v, %v", sel, err)
	}
	if _, err := ParseSelection("everything"); !errors.Is(err, helix.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGroup_World(t *testing.T) {
	g := NewGroup()
	g.Rotation.Y = math.Pi
	g.Position = vmath.Vec3{Y: 10}
	got := g.World(vmath.Vec3{X: 50, Y: -20, Z: 0})
	if !got.ApproxEqual(vmath.Vec3{X: -50, Y: -10, Z: 0}, 1e-9) {
		t.Errorf("World = %v", got)
	}
}

func TestCamera_ProjectNDC(t *testing.T) {
	cam := NewCamera(90, 2, 0.1, 1000)
	cam.Position = vmath.Vec3{Z: 300}

	x, y, depth, ok := cam.ProjectNDC(vmath.Vec3{})
	if !ok || x != 0 || y != 0 || depth != 300 {
		t.Errorf("origin projects to %v,%v depth %v ok %v", x, y, depth, ok)
	}

	// fov 90 means slope 1 maps to the edge of the frame
	_, y, _, _ = cam.ProjectNDC(vmath.Vec3{Y: 300})
	if math.Abs(y-1) > 1e-9 {
		t.Errorf("expected y at top edge, got %v", y)
	}
	x, _, _, _ = cam.ProjectNDC(vmath.Vec3{X: 300})
	if math.Abs(x-0.5) > 1e-9 {
		t.Errorf("expected aspect-corrected x 0.5, got %v", x)
	}

	if _, _, _, ok := cam.ProjectNDC(vmath.Vec3{Z: 400}); ok {
		t.Error("point behind camera reported visible")
	}
}

func TestScene_AddRemove(t *testing.T) {
	s := New(helix.MustParseColor("#444444"))
	a := Mount(testHelix(t, 4, 1), DefaultMeshStyle)
	s.Add(a.Group)
	if s.Len() != 16 {
		t.Errorf("expected 16 meshes, got %d", s.Len())
	}
	if !s.Remove(a.Group) || s.Remove(a.Group) {
		t.Error("remove should succeed once")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d", s.Len())
	}
}
