package stage

import (
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/san-kum/helix/internal/anim"
	"github.com/san-kum/helix/internal/config"
	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/motion"
	"github.com/san-kum/helix/internal/render"
	"github.com/san-kum/helix/internal/scene"
	"github.com/san-kum/helix/internal/vmath"
)

// Stage owns one running helix: geometry, scene, animation clock and renderer.
// All methods except Close, Closed and Frames must be called from the frame
// loop goroutine.
type Stage struct {
	cfg      *config.Config
	helix    *helix.Helix
	scene    *scene.Scene
	camera   *scene.Camera
	assembly *scene.Assembly
	engine   *anim.Engine
	seq      *motion.Sequencer
	composer *render.Composer
	bloom    *render.BloomPass

	frames atomic.Int64

	closeOnce sync.Once
}

// New validates cfg, then builds, mounts and starts the animations.
func New(cfg *config.Config) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, err := cfg.BuildHelix()
	if err != nil {
		return nil, err
	}

	bg, _ := helix.ParseColor(cfg.Scene.Background)
	lightColor, _ := helix.ParseColor(cfg.Scene.LightColor)
	sc := scene.New(bg)
	sc.Light.Color = lightColor
	sc.Light.Intensity = cfg.Scene.LightIntensity
	sc.Ambient = cfg.Scene.Ambient

	cam := scene.NewCamera(cfg.Scene.FOV, 1, cfg.Scene.Near, cfg.Scene.Far)
	cam.Position = vmath.Vec3{Z: cfg.Scene.CameraZ}

	a := scene.Mount(h, cfg.MeshStyle())
	sc.Add(a.Group)

	engine := anim.NewEngine()
	seq, err := motion.Attach(engine, a, cfg.Motion())
	if err != nil {
		return nil, err
	}

	s := &Stage{
		cfg:      cfg,
		helix:    h,
		scene:    sc,
		camera:   cam,
		assembly: a,
		engine:   engine,
		seq:      seq,
		bloom: &render.BloomPass{
			Strength:  cfg.Bloom.Strength,
			Radius:    cfg.Bloom.Radius,
			Threshold: cfg.Bloom.Threshold,
		},
	}
	s.composer = render.NewComposer(render.RenderPass{})
	if cfg.Bloom.Enabled {
		s.composer.Add(s.bloom)
	}
	log.Printf("stage: %s, %d meshes, %d pulsing", cfg, h.Count(), len(seq.Targets()))
	return s, nil
}

func (s *Stage) Config() *config.Config { return s.cfg }

func (s *Stage) Helix() *helix.Helix { return s.helix }

func (s *Stage) Scene() *scene.Scene { return s.scene }

func (s *Stage) Camera() *scene.Camera { return s.camera }

func (s *Stage) Assembly() *scene.Assembly { return s.assembly }

func (s *Stage) Sequencer() *motion.Sequencer { return s.seq }

// Scroll moves the page by dy, clamped to the page.
func (s *Stage) Scroll(dy float64) {
	s.SetScroll(s.engine.Scroll() + dy)
}

func (s *Stage) SetScroll(y float64) {
	y = math.Max(0, math.Min(y, s.cfg.MaxScroll()))
	s.engine.SetScroll(y)
}

func (s *Stage) ScrollY() float64 { return s.engine.Scroll() }

// Progress is the scroll progress currently applied to the rotation.
func (s *Stage) Progress() float64 { return s.seq.Trigger().Current() }

// Rotation is the current assembly rotation around Y in radians.
func (s *Stage) Rotation() float64 { return s.assembly.Group.Rotation.Y }

// Time is the animation clock in seconds.
func (s *Stage) Time() float64 { return s.engine.Time() }

func (s *Stage) Frames() int { return int(s.frames.Load()) }

// Advance moves the clock by dt. While paused the clock stands still but
// scroll changes are still applied, smoothing included.
func (s *Stage) Advance(dt float64) {
	s.engine.Advance(dt)
}

func (s *Stage) Paused() bool { return s.engine.Paused() }

func (s *Stage) TogglePause() bool {
	p := !s.engine.Paused()
	s.engine.SetPaused(p)
	return p
}

func (s *Stage) BloomEnabled() bool {
	for _, p := range s.composer.Passes {
		if p == render.Pass(s.bloom) {
			return true
		}
	}
	return false
}

// ToggleBloom adds or removes the bloom pass and reports the new state.
func (s *Stage) ToggleBloom() bool {
	if s.BloomEnabled() {
		s.composer.Passes = s.composer.Passes[:1]
		return false
	}
	s.composer.Add(s.bloom)
	return true
}

// Render draws a w×h frame. The framebuffer is reused by the next call.
func (s *Stage) Render(w, h int) *render.Framebuffer {
	s.frames.Add(1)
	return s.composer.Render(s.scene, s.camera, w, h)
}

// Frame renders and encodes a frame that fills cols×rows terminal cells.
func (s *Stage) Frame(mode render.Mode, cols, rows int) string {
	w, h := render.PixelSize(mode, cols, rows)
	return render.Encode(mode, s.Render(w, h), s.scene.Background)
}

// Sprites projects the current scene for vector output.
func (s *Stage) Sprites(w, h int) []render.Sprite {
	return render.Project(s.scene, s.camera, w, h)
}

// Closed reports whether Close has run. Front-ends poll it to end their loop
// when the stage is torn down from elsewhere.
func (s *Stage) Closed() bool { return !s.seq.Trigger().Attached() }

// Close stops every animation and detaches the scroll trigger. Safe to call
// more than once and from any goroutine.
func (s *Stage) Close() error {
	s.closeOnce.Do(func() {
		s.seq.Stop()
		s.engine.KillAll()
		log.Printf("stage: closed after %d frames", s.frames.Load())
	})
	return nil
}
