package motion

import (
	"math"

	"github.com/san-kum/helix/internal/anim"
	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/scene"
)

// PulseConfig holds the timing of one pulse: swell and glow together, jitter
// along x, then settle back. Durations are in seconds.
type PulseConfig struct {
	Targets scene.Selection

	Stagger     float64
	RepeatDelay float64

	ScalePeak     float64
	ScaleDuration float64
	ScaleEase     string

	GlowPeak     float64
	GlowDuration float64
	GlowEase     string

	JitterAmplitude float64
	JitterLeg       float64
	JitterRepeats   int
	JitterEase      string

	SettleDuration float64
	SettleEase     string
}

func DefaultPulse() PulseConfig {
	return PulseConfig{
		Targets:         scene.SelectStrands,
		Stagger:         0.2,
		RepeatDelay:     2,
		ScalePeak:       1.5,
		ScaleDuration:   0.2,
		ScaleEase:       "power2.out",
		GlowPeak:        1,
		GlowDuration:    0.2,
		GlowEase:        "power2.inOut",
		JitterAmplitude: 3,
		JitterLeg:       0.05,
		JitterRepeats:   5,
		JitterEase:      "power1.inOut",
		SettleDuration:  0.2,
		SettleEase:      "power2.in",
	}
}

func (c PulseConfig) Validate() error {
	if _, err := scene.ParseSelection(string(c.Targets)); err != nil {
		return &helix.ConfigError{Field: "pulse.targets", Value: c.Targets, Wrapped: helix.ErrInvalidConfig}
	}
	durations := []struct {
		name string
		v    float64
	}{
		{"pulse.stagger", c.Stagger},
		{"pulse.repeat_delay", c.RepeatDelay},
		{"pulse.scale_duration", c.ScaleDuration},
		{"pulse.glow_duration", c.GlowDuration},
		{"pulse.jitter_leg", c.JitterLeg},
		{"pulse.settle_duration", c.SettleDuration},
	}
	for _, d := range durations {
		if d.v < 0 || math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return &helix.ConfigError{Field: d.name, Value: d.v, Wrapped: helix.ErrInvalidConfig}
		}
	}
	for _, v := range []float64{c.ScalePeak, c.GlowPeak, c.JitterAmplitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &helix.ConfigError{Field: "pulse", Value: v, Wrapped: helix.ErrInvalidConfig}
		}
	}
	if c.JitterRepeats < 0 {
		return &helix.ConfigError{Field: "pulse.jitter_repeats", Value: c.JitterRepeats, Wrapped: helix.ErrInvalidConfig}
	}
	eases := []struct{ field, name string }{
		{"pulse.scale_ease", c.ScaleEase},
		{"pulse.glow_ease", c.GlowEase},
		{"pulse.jitter_ease", c.JitterEase},
		{"pulse.settle_ease", c.SettleEase},
	}
	for _, e := range eases {
		if _, err := anim.ParseEase(e.name); err != nil {
			return &helix.ConfigError{Field: e.field, Value: e.name, Wrapped: err}
		}
	}
	return nil
}

// CycleDuration is one pass of the four phases, without the repeat delay.
func (c PulseConfig) CycleDuration() float64 {
	swell := math.Max(c.ScaleDuration, c.GlowDuration)
	return swell + c.JitterLeg*float64(c.JitterRepeats+1) + c.SettleDuration
}

// Pulse builds the looping timeline for the i-th target. The jitter is relative
// to the x the mesh holds now. cfg must be valid.
func Pulse(m *scene.Mesh, i int, cfg PulseConfig) *anim.Timeline {
	scale := func(to float64) []anim.Target {
		return []anim.Target{
			{Prop: anim.Field(&m.Scale.X), To: to},
			{Prop: anim.Field(&m.Scale.Y), To: to},
			{Prop: anim.Field(&m.Scale.Z), To: to},
		}
	}
	glow := anim.Field(&m.Material.EmissiveIntensity)

	tl := anim.NewTimeline(anim.TimelineVars{
		Delay:       float64(i) * cfg.Stagger,
		Repeat:      -1,
		RepeatDelay: cfg.RepeatDelay,
	})
	tl.To(anim.TweenVars{Duration: cfg.ScaleDuration, Ease: anim.MustEase(cfg.ScaleEase)}, anim.After, scale(cfg.ScalePeak)...)
	tl.To(anim.TweenVars{Duration: cfg.GlowDuration, Ease: anim.MustEase(cfg.GlowEase)}, anim.WithPrevious,
		anim.Target{Prop: glow, To: cfg.GlowPeak})
	tl.To(anim.TweenVars{
		Duration: cfg.JitterLeg,
		Ease:     anim.MustEase(cfg.JitterEase),
		Repeat:   cfg.JitterRepeats,
		Yoyo:     true,
	}, anim.After, anim.Target{Prop: anim.Field(&m.Position.X), To: m.Position.X + cfg.JitterAmplitude})
	tl.To(anim.TweenVars{Duration: cfg.SettleDuration, Ease: anim.MustEase(cfg.SettleEase)}, anim.After, scale(1)...)
	tl.To(anim.TweenVars{Duration: cfg.SettleDuration, Ease: anim.MustEase(cfg.SettleEase)}, anim.WithPrevious,
		anim.Target{Prop: glow, To: 0})
	return tl
}
