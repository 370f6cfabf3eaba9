package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Framebuffer is an RGB image with a depth buffer. Channels may exceed 1
// before tone mapping; encoders clamp.
type Framebuffer struct {
	W, H  int
	Pix   []colorful.Color
	Depth []float64
}

func NewFramebuffer(w, h int) *Framebuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Framebuffer{W: w, H: h, Pix: make([]colorful.Color, w*h), Depth: make([]float64, w*h)}
}

// Resize reallocates only when the dimensions change.
func (fb *Framebuffer) Resize(w, h int) {
	if fb.W == w && fb.H == h {
		return
	}
	*fb = *NewFramebuffer(w, h)
}

func (fb *Framebuffer) Clear(bg colorful.Color) {
	for i := range fb.Pix {
		fb.Pix[i] = bg
		fb.Depth[i] = math.Inf(1)
	}
}

func (fb *Framebuffer) In(x, y int) bool { return x >= 0 && y >= 0 && x < fb.W && y < fb.H }

// At returns black outside the buffer.
func (fb *Framebuffer) At(x, y int) colorful.Color {
	if !fb.In(x, y) {
		return colorful.Color{}
	}
	return fb.Pix[y*fb.W+x]
}

func (fb *Framebuffer) Set(x, y int, c colorful.Color) {
	if fb.In(x, y) {
		fb.Pix[y*fb.W+x] = c
	}
}

// Luminance uses Rec. 709 weights on linear channels.
func Luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func add(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

func scale(c colorful.Color, s float64) colorful.Color {
	return colorful.Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

func mul(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B}
}
