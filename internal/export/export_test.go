package export

import (
	"bytes"
	"errors"
	"image/gif"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/render"
	"github.com/san-kum/helix/internal/scene"
	"github.com/san-kum/helix/internal/vmath"
)

func testHelix(t *testing.T) *helix.Helix {
	t.Helper()
	h, err := helix.Build(helix.Params{
		TotalPoints: 6, Revolutions: 2, Height: 200, Radius: 50, SubCount: 2,
		StartColor: helix.MustParseColor("#ff4933"), EndColor: helix.MustParseColor("#ffae00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestSVG(t *testing.T) {
	red := scene.Material{Color: colorful.Color{R: 1}}
	sprites := []render.Sprite{
		{X: 10, Y: 20, R: 4, Mesh: scene.NewMesh(8, vmath.Vec3{}, red)},
		{X: 30, Y: 20, R: 0, Mesh: scene.NewMesh(8, vmath.Vec3{}, red)},
	}
	svg := SVG(sprites, 64, 48, helix.MustParseColor("#444444"))

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not well framed")
	}
	if !strings.Contains(svg, `fill="#444444"`) {
		t.Error("missing background")
	}
	if got := strings.Count(svg, "<circle"); got != 1 {
		t.Errorf("expected 1 circle, got %d", got)
	}
	if !strings.Contains(svg, `cx="10.0" cy="20.0" r="4.00" fill="#ff0000"`) {
		t.Errorf("unexpected circle in %s", svg)
	}
}

func TestSVG_Glow(t *testing.T) {
	m := scene.NewMesh(8, vmath.Vec3{}, scene.Material{
		Color:             colorful.Color{R: 0.5},
		Emissive:          colorful.Color{R: 0.5, G: 0.5},
		EmissiveIntensity: 1,
	})
	svg := SVG([]render.Sprite{{X: 1, Y: 1, R: 1, Mesh: m}}, 4, 4, colorful.Color{})
	if !strings.Contains(svg, `fill="#ff8000"`) {
		t.Errorf("glow not applied: %s", svg)
	}
}

func TestPointsCSV_RoundTrip(t *testing.T) {
	h := testHelix(t)
	var buf bytes.Buffer
	if err := WritePointsCSV(&buf, h.Points()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "kind,index,sub,t,x,y,z,color\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	pts, err := ReadPointsCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != h.Count() {
		t.Fatalf("expected %d points, got %d", h.Count(), len(pts))
	}
	want := h.Bridges[3][1]
	got := pts[2*6+3*3+1]
	if got.Kind != helix.KindBridge || got.Index != 3 || got.Sub != 1 {
		t.Errorf("bridge identity lost: %+v", got)
	}
	if !got.Position.ApproxEqual(want.Position, 1e-6) {
		t.Errorf("position %v, want %v", got.Position, want.Position)
	}
}

func TestReadPointsCSV_Errors(t *testing.T) {
	tests := []string{
		"kind,index,sub,t,x,y,z,color\nhelicase,0,0,0,0,0,0,#000000\n",
		"kind,index,sub,t,x,y,z,color\nbridge,x,0,0,0,0,0,#000000\n",
		"kind,index,sub,t,x,y,z,color\nbridge,0,0,0,0,0,0,blue\n",
		"kind,index\nbridge,0\n",
	}
	for _, in := range tests {
		if _, err := ReadPointsCSV(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
	pts, err := ReadPointsCSV(strings.NewReader(""))
	if err != nil || len(pts) != 0 {
		t.Errorf("empty input: %v, %v", pts, err)
	}
}

func TestWritePointsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePointsJSON(&buf, testHelix(t).A[:1]); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"kind": "strand_a"`, `"color": "#ff4933"`, `"x": 50`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(60)
	if r.Delay != 2 {
		t.Errorf("delay at 60fps = %d, want 2", r.Delay)
	}
	if err := r.Encode(&bytes.Buffer{}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}

	fb := render.NewFramebuffer(8, 6)
	fb.Clear(helix.MustParseColor("#ff4933"))
	r.Add(fb)
	r.Add(fb)
	r.Add(render.NewFramebuffer(0, 0))
	if r.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", r.Len())
	}

	path := filepath.Join(t.TempDir(), "helix.gif")
	if err := r.Save(path); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 || g.Image[0].Bounds().Dx() != 8 {
		t.Errorf("decoded %d frames of width %d", len(g.Image), g.Image[0].Bounds().Dx())
	}

	r.MaxFrames = 1
	r.Add(fb)
	if r.Len() != 1 {
		t.Errorf("MaxFrames not enforced: %d", r.Len())
	}
	r.Reset()
	if r.Len() != 0 {
		t.Error("Reset kept frames")
	}
}
