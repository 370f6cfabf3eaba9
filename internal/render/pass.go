package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/helix/internal/scene"
	"github.com/san-kum/helix/internal/vmath"
)

// Pass is one stage of the composer chain.
type Pass interface {
	Name() string
	Render(fb *Framebuffer, sc *scene.Scene, cam *scene.Camera)
}

// RenderPass clears to the scene background and draws every mesh as a lit sphere.
type RenderPass struct{}

func (RenderPass) Name() string { return "render" }

func (RenderPass) Render(fb *Framebuffer, sc *scene.Scene, cam *scene.Camera) {
	fb.Clear(sc.Background)
	light := sc.Light.Direction.Normalize()
	lightColor := scale(sc.Light.Color, sc.Light.Intensity)
	for _, sp := range Project(sc, cam, fb.W, fb.H) {
		drawSphere(fb, sp, light, lightColor, sc.Ambient)
	}
}

// drawSphere shades per pixel: ambient + lambert from the directional light,
// plus the emissive term. Depth is tested against the sphere surface.
func drawSphere(fb *Framebuffer, sp Sprite, light vmath.Vec3, lightColor colorful.Color, ambient float64) {
	if sp.R <= 0 {
		return
	}
	mat := sp.Mesh.Material
	emissive := scale(mat.Emissive, mat.EmissiveIntensity)

	// spheres smaller than a pixel still cover the pixel they fall on
	r := math.Max(sp.R, 0.5)
	x0, x1 := int(math.Floor(sp.X-r)), int(math.Ceil(sp.X+r))
	y0, y1 := int(math.Floor(sp.Y-r)), int(math.Ceil(sp.Y+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !fb.In(x, y) {
				continue
			}
			dx := (float64(x) + 0.5 - sp.X) / r
			dy := (float64(y) + 0.5 - sp.Y) / r
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			nz := math.Sqrt(1 - d2)
			z := sp.Depth - nz*sp.Size
			idx := y*fb.W + x
			if z >= fb.Depth[idx] {
				continue
			}
			n := vmath.Vec3{X: dx, Y: -dy, Z: nz}
			lambert := math.Max(0, n.Dot(light))
			lit := scale(mat.Color, ambient)
			lit = add(lit, scale(mul(mat.Color, lightColor), lambert))
			fb.Pix[idx] = add(lit, emissive)
			fb.Depth[idx] = z
		}
	}
}

// BloomPass adds a blurred copy of the pixels brighter than Threshold.
// Radius in [0,1] widens the blur; Strength scales what is added back.
type BloomPass struct {
	Strength  float64
	Radius    float64
	Threshold float64

	bright, tmp []colorful.Color
}

func (*BloomPass) Name() string { return "bloom" }

func (b *BloomPass) Render(fb *Framebuffer, _ *scene.Scene, _ *scene.Camera) {
	n := fb.W * fb.H
	if n == 0 || b.Strength == 0 {
		return
	}
	if len(b.bright) != n {
		b.bright = make([]colorful.Color, n)
		b.tmp = make([]colorful.Color, n)
	}
	for i, c := range fb.Pix {
		b.bright[i] = scale(c, smoothstep(b.Threshold, b.Threshold+0.01, Luminance(c)))
	}
	k := b.KernelRadius()
	// two box passes approximate a gaussian
	for pass := 0; pass < 2; pass++ {
		boxBlur(b.bright, b.tmp, fb.W, fb.H, k, true)
		boxBlur(b.tmp, b.bright, fb.W, fb.H, k, false)
	}
	for i := range fb.Pix {
		fb.Pix[i] = add(fb.Pix[i], scale(b.bright[i], b.Strength))
	}
}

// KernelRadius is the box blur half-width in pixels.
func (b *BloomPass) KernelRadius() int {
	return 1 + int(math.Round(math.Max(0, b.Radius)*5))
}

func boxBlur(src, dst []colorful.Color, w, h, k int, horizontal bool) {
	norm := 1 / float64(2*k+1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum colorful.Color
			for d := -k; d <= k; d++ {
				sx, sy := x, y
				if horizontal {
					sx += d
				} else {
					sy += d
				}
				if sx < 0 || sy < 0 || sx >= w || sy >= h {
					continue
				}
				sum = add(sum, src[sy*w+sx])
			}
			dst[y*w+x] = scale(sum, norm)
		}
	}
}

func smoothstep(e0, e1, x float64) float64 {
	if x <= e0 {
		return 0
	}
	if x >= e1 {
		return 1
	}
	t := (x - e0) / (e1 - e0)
	return t * t * (3 - 2*t)
}

// Composer runs passes in order over a reused framebuffer.
type Composer struct {
	Passes []Pass
	fb     *Framebuffer
}

func NewComposer(passes ...Pass) *Composer {
	return &Composer{Passes: passes, fb: NewFramebuffer(0, 0)}
}

func (c *Composer) Add(p Pass) { c.Passes = append(c.Passes, p) }

// Render draws a w×h frame. The returned framebuffer is reused by the next call.
func (c *Composer) Render(sc *scene.Scene, cam *scene.Camera, w, h int) *Framebuffer {
	c.fb.Resize(w, h)
	for _, p := range c.Passes {
		p.Render(c.fb, sc, cam)
	}
	return c.fb
}
