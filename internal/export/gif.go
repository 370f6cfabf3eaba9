package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/helix/internal/render"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// Recorder collects framebuffer snapshots into an animated GIF.
type Recorder struct {
	// Delay between frames in 100ths of a second.
	Delay int
	// MaxFrames caps memory use; older frames are dropped first. Zero is unlimited.
	MaxFrames int

	frames []*image.Paletted
}

// NewRecorder records at the given frame rate. GIF delays have 10ms
// resolution and most viewers clamp anything under 20ms.
func NewRecorder(fps int) *Recorder {
	delay := 2
	if fps > 0 && 100/fps > delay {
		delay = 100 / fps
	}
	return &Recorder{Delay: delay, MaxFrames: 600}
}

// Add copies fb into a paletted frame with Floyd-Steinberg dithering.
func (r *Recorder) Add(fb *render.Framebuffer) {
	if fb == nil || fb.W == 0 || fb.H == 0 {
		return
	}
	src := image.NewRGBA(image.Rect(0, 0, fb.W, fb.H))
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			cr, cg, cb := fb.Pix[y*fb.W+x].Clamped().RGB255()
			src.SetRGBA(x, y, color.RGBA{R: cr, G: cg, B: cb, A: 255})
		}
	}
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})

	r.frames = append(r.frames, dst)
	if r.MaxFrames > 0 && len(r.frames) > r.MaxFrames {
		r.frames = r.frames[len(r.frames)-r.MaxFrames:]
	}
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = nil }

// Encode writes a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
