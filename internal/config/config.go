package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/helix/internal/anim"
	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/motion"
	"github.com/san-kum/helix/internal/render"
	"github.com/san-kum/helix/internal/scene"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTotalPoints  = 40
	DefaultRevolutions  = 2.0
	DefaultHeight       = 200.0
	DefaultRadius       = 50.0
	DefaultSubCount     = 20
	DefaultStartColor   = "#ff4933"
	DefaultEndColor     = "#ffae00"
	DefaultStrandRadius = 8.0
	DefaultBridgeRadius = 2.0

	DefaultBackground = "#444444"
	DefaultCameraZ    = 300.0
	DefaultFOV        = 75.0
	DefaultNear       = 0.1
	DefaultFar        = 1000.0
	DefaultAmbient    = 0.15

	DefaultBloomStrength  = 1.5
	DefaultBloomRadius    = 0.4
	DefaultBloomThreshold = 0.85

	DefaultFPS        = 60
	DefaultPageHeight = 600.0
	DefaultScrollStep = 10.0
)

const (
	ContainerScreen = "screen"
	ContainerInline = "inline"
)

type Config struct {
	Geometry GeometryConfig `yaml:"geometry" json:"geometry"`
	Pulse    PulseConfig    `yaml:"pulse" json:"pulse"`
	Scroll   ScrollConfig   `yaml:"scroll" json:"scroll"`
	Scene    SceneConfig    `yaml:"scene" json:"scene"`
	Bloom    BloomConfig    `yaml:"bloom" json:"bloom"`
	Render   RenderConfig   `yaml:"render" json:"render"`
}

type GeometryConfig struct {
	TotalPoints  int     `yaml:"total_points" json:"total_points"`
	Revolutions  float64 `yaml:"revolutions" json:"revolutions"`
	Height       float64 `yaml:"height" json:"height"`
	Radius       float64 `yaml:"radius" json:"radius"`
	SubCount     int     `yaml:"sub_count" json:"sub_count"`
	StartColor   string  `yaml:"start_color" json:"start_color"`
	EndColor     string  `yaml:"end_color" json:"end_color"`
	StrandRadius float64 `yaml:"strand_radius" json:"strand_radius"`
	BridgeRadius float64 `yaml:"bridge_radius" json:"bridge_radius"`
}

type PulseConfig struct {
	Targets         string  `yaml:"targets" json:"targets"`
	Stagger         float64 `yaml:"stagger" json:"stagger"`
	RepeatDelay     float64 `yaml:"repeat_delay" json:"repeat_delay"`
	ScalePeak       float64 `yaml:"scale_peak" json:"scale_peak"`
	ScaleDuration   float64 `yaml:"scale_duration" json:"scale_duration"`
	ScaleEase       string  `yaml:"scale_ease" json:"scale_ease"`
	GlowPeak        float64 `yaml:"glow_peak" json:"glow_peak"`
	GlowDuration    float64 `yaml:"glow_duration" json:"glow_duration"`
	GlowEase        string  `yaml:"glow_ease" json:"glow_ease"`
	JitterAmplitude float64 `yaml:"jitter_amplitude" json:"jitter_amplitude"`
	JitterLeg       float64 `yaml:"jitter_leg" json:"jitter_leg"`
	JitterRepeats   int     `yaml:"jitter_repeats" json:"jitter_repeats"`
	JitterEase      string  `yaml:"jitter_ease" json:"jitter_ease"`
	SettleDuration  float64 `yaml:"settle_duration" json:"settle_duration"`
	SettleEase      string  `yaml:"settle_ease" json:"settle_ease"`
}

// ScrollConfig places the tracked section on a virtual page. Units are
// arbitrary scroll units; the viewport is the visible page height.
type ScrollConfig struct {
	Section       string  `yaml:"section" json:"section"`
	SectionTop    float64 `yaml:"section_top" json:"section_top"`
	SectionHeight float64 `yaml:"section_height" json:"section_height"`
	PageHeight    float64 `yaml:"page_height" json:"page_height"`
	Viewport      float64 `yaml:"viewport" json:"viewport"`
	Start         string  `yaml:"start" json:"start"`
	End           string  `yaml:"end" json:"end"`
	Scrub         float64 `yaml:"scrub" json:"scrub"`
	Step          float64 `yaml:"step" json:"step"`
	Turns         float64 `yaml:"turns" json:"turns"`
}

type SceneConfig struct {
	Background     string  `yaml:"background" json:"background"`
	CameraZ        float64 `yaml:"camera_z" json:"camera_z"`
	FOV            float64 `yaml:"fov" json:"fov"`
	Near           float64 `yaml:"near" json:"near"`
	Far            float64 `yaml:"far" json:"far"`
	LightColor     string  `yaml:"light_color" json:"light_color"`
	LightIntensity float64 `yaml:"light_intensity" json:"light_intensity"`
	Ambient        float64 `yaml:"ambient" json:"ambient"`
}

type BloomConfig struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Strength  float64 `yaml:"strength" json:"strength"`
	Radius    float64 `yaml:"radius" json:"radius"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

type RenderConfig struct {
	FPS       int    `yaml:"fps" json:"fps"`
	Mode      string `yaml:"mode" json:"mode"`
	Container string `yaml:"container" json:"container"`
	Theme     string `yaml:"theme" json:"theme"`
	Workers   int    `yaml:"workers" json:"workers"`
}

func DefaultConfig() *Config {
	trigger := motion.DefaultTrigger()
	pulse := motion.DefaultPulse()
	return &Config{
		Geometry: GeometryConfig{
			TotalPoints:  DefaultTotalPoints,
			Revolutions:  DefaultRevolutions,
			Height:       DefaultHeight,
			Radius:       DefaultRadius,
			SubCount:     DefaultSubCount,
			StartColor:   DefaultStartColor,
			EndColor:     DefaultEndColor,
			StrandRadius: DefaultStrandRadius,
			BridgeRadius: DefaultBridgeRadius,
		},
		Pulse: PulseConfig{
			Targets:         string(pulse.Targets),
			Stagger:         pulse.Stagger,
			RepeatDelay:     pulse.RepeatDelay,
			ScalePeak:       pulse.ScalePeak,
			ScaleDuration:   pulse.ScaleDuration,
			ScaleEase:       pulse.ScaleEase,
			GlowPeak:        pulse.GlowPeak,
			GlowDuration:    pulse.GlowDuration,
			GlowEase:        pulse.GlowEase,
			JitterAmplitude: pulse.JitterAmplitude,
			JitterLeg:       pulse.JitterLeg,
			JitterRepeats:   pulse.JitterRepeats,
			JitterEase:      pulse.JitterEase,
			SettleDuration:  pulse.SettleDuration,
			SettleEase:      pulse.SettleEase,
		},
		Scroll: ScrollConfig{
			Section:       trigger.Region.Name,
			SectionTop:    trigger.Region.Top,
			SectionHeight: trigger.Region.Height,
			PageHeight:    DefaultPageHeight,
			Viewport:      trigger.Viewport,
			Start:         trigger.Start,
			End:           trigger.End,
			Scrub:         trigger.Scrub,
			Step:          DefaultScrollStep,
			Turns:         1,
		},
		Scene: SceneConfig{
			Background:     DefaultBackground,
			CameraZ:        DefaultCameraZ,
			FOV:            DefaultFOV,
			Near:           DefaultNear,
			Far:            DefaultFar,
			LightColor:     "#ffffff",
			LightIntensity: 1,
			Ambient:        DefaultAmbient,
		},
		Bloom: BloomConfig{
			Enabled:   true,
			Strength:  DefaultBloomStrength,
			Radius:    DefaultBloomRadius,
			Threshold: DefaultBloomThreshold,
		},
		Render: RenderConfig{
			FPS:       DefaultFPS,
			Mode:      "color",
			Container: ContainerScreen,
			Theme:     "ember",
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep the
// base values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HelixParams resolves the geometry section, colours included.
func (c *Config) HelixParams() (helix.Params, error) {
	g := c.Geometry
	start, err := helix.ParseColor(g.StartColor)
	if err != nil {
		return helix.Params{}, fieldError("geometry.start_color", g.StartColor, err)
	}
	end, err := helix.ParseColor(g.EndColor)
	if err != nil {
		return helix.Params{}, fieldError("geometry.end_color", g.EndColor, err)
	}
	p := helix.Params{
		TotalPoints: g.TotalPoints,
		Revolutions: g.Revolutions,
		Height:      g.Height,
		Radius:      g.Radius,
		SubCount:    g.SubCount,
		StartColor:  start,
		EndColor:    end,
	}
	return p, p.Validate()
}

// BuildHelix generates the geometry, in parallel when more than one worker
// is configured.
func (c *Config) BuildHelix() (*helix.Helix, error) {
	params, err := c.HelixParams()
	if err != nil {
		return nil, err
	}
	var h *helix.Helix
	if c.Render.Workers > 1 {
		h, err = helix.BuildParallel(params, c.Render.Workers)
	} else {
		h, err = helix.Build(params)
	}
	if err != nil {
		return nil, fmt.Errorf("build helix: %w", err)
	}
	return h, nil
}

func (c *Config) MeshStyle() scene.MeshStyle {
	return scene.MeshStyle{StrandRadius: c.Geometry.StrandRadius, BridgeRadius: c.Geometry.BridgeRadius}
}

func (c *Config) Trigger() anim.TriggerVars {
	s := c.Scroll
	return anim.TriggerVars{
		Region:   anim.Region{Name: s.Section, Top: s.SectionTop, Height: s.SectionHeight},
		Viewport: s.Viewport,
		Start:    s.Start,
		End:      s.End,
		Scrub:    s.Scrub,
	}
}

func (c *Config) Motion() motion.Config {
	p := c.Pulse
	return motion.Config{
		Turns:   c.Scroll.Turns,
		Trigger: c.Trigger(),
		Pulse: motion.PulseConfig{
			Targets:         scene.Selection(p.Targets),
			Stagger:         p.Stagger,
			RepeatDelay:     p.RepeatDelay,
			ScalePeak:       p.ScalePeak,
			ScaleDuration:   p.ScaleDuration,
			ScaleEase:       p.ScaleEase,
			GlowPeak:        p.GlowPeak,
			GlowDuration:    p.GlowDuration,
			GlowEase:        p.GlowEase,
			JitterAmplitude: p.JitterAmplitude,
			JitterLeg:       p.JitterLeg,
			JitterRepeats:   p.JitterRepeats,
			JitterEase:      p.JitterEase,
			SettleDuration:  p.SettleDuration,
			SettleEase:      p.SettleEase,
		},
	}
}

// MaxScroll is the furthest the page can scroll.
func (c *Config) MaxScroll() float64 {
	return math.Max(0, c.Scroll.PageHeight-c.Scroll.Viewport)
}

// Validate checks every section without building anything.
func (c *Config) Validate() error {
	if _, err := c.HelixParams(); err != nil {
		return err
	}
	g := c.Geometry
	if g.StrandRadius < 0 || g.BridgeRadius < 0 {
		return fieldError("geometry.strand_radius", g.StrandRadius, helix.ErrInvalidConfig)
	}
	if err := c.Motion().Validate(); err != nil {
		return err
	}
	if _, err := anim.NewScrollTrigger(c.Trigger(), nil); err != nil {
		return fieldError("scroll", c.Scroll.Section, err)
	}
	if c.Scroll.PageHeight < 0 || c.Scroll.Step <= 0 {
		return fieldError("scroll.step", c.Scroll.Step, helix.ErrInvalidConfig)
	}
	s := c.Scene
	for field, v := range map[string]string{"scene.background": s.Background, "scene.light_color": s.LightColor} {
		if _, err := helix.ParseColor(v); err != nil {
			return fieldError(field, v, err)
		}
	}
	if s.FOV <= 0 || s.FOV >= 180 {
		return fieldError("scene.fov", s.FOV, helix.ErrInvalidConfig)
	}
	if s.Near <= 0 || s.Far <= s.Near {
		return fieldError("scene.near", s.Near, helix.ErrInvalidConfig)
	}
	if s.Ambient < 0 {
		return fieldError("scene.ambient", s.Ambient, helix.ErrInvalidConfig)
	}
	b := c.Bloom
	if b.Strength < 0 || b.Radius < 0 || b.Radius > 1 || b.Threshold < 0 {
		return fieldError("bloom", b, helix.ErrInvalidConfig)
	}
	r := c.Render
	if r.FPS <= 0 {
		return fieldError("render.fps", r.FPS, helix.ErrInvalidConfig)
	}
	if _, err := render.ParseMode(r.Mode); err != nil {
		return fieldError("render.mode", r.Mode, helix.ErrInvalidConfig)
	}
	if r.Container != ContainerScreen && r.Container != ContainerInline {
		return fieldError("render.container", r.Container, helix.ErrInvalidConfig)
	}
	if r.Workers < 0 {
		return fieldError("render.workers", r.Workers, helix.ErrInvalidConfig)
	}
	return nil
}

func fieldError(field string, value any, err error) error {
	return &helix.ConfigError{Field: field, Value: value, Wrapped: err}
}

func (c *Config) String() string {
	g := c.Geometry
	return fmt.Sprintf("helix n=%d rev=%g h=%g r=%g sub=%d", g.TotalPoints, g.Revolutions, g.Height, g.Radius, g.SubCount)
}
