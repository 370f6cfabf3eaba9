package motion

import (
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/helix/internal/anim"
	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/scene"
)

// RotationY maps scroll progress to one full turn around the vertical axis.
func RotationY(p float64) float64 { return Rotation(1, p) }

// Rotation maps scroll progress linearly to turns full revolutions.
func Rotation(turns, p float64) float64 { return turns * 2 * math.Pi * p }

// DefaultTrigger tracks the helix section from "top center" to "bottom center"
// with the rotation locked to the scroll position.
func DefaultTrigger() anim.TriggerVars {
	return anim.TriggerVars{
		Region:   anim.Region{Name: "dna-section", Top: 100, Height: 300},
		Viewport: 100,
		Start:    "top center",
		End:      "bottom center",
	}
}

// AttachRotation binds group.Rotation.Y to scroll progress through the trigger
// region. The tween is not scheduled on the clock; only the trigger drives it.
func AttachRotation(e *anim.Engine, g *scene.Group, vars anim.TriggerVars, turns float64) (*anim.Tween, *anim.ScrollTrigger, error) {
	tw := anim.NewTween(
		anim.TweenVars{Duration: 1, Ease: anim.MustEase("none")},
		anim.Target{Prop: anim.Field(&g.Rotation.Y), To: Rotation(turns, 1)},
	)
	st, err := anim.NewScrollTrigger(vars, tw)
	if err != nil {
		return nil, nil, fmt.Errorf("rotation trigger: %w", err)
	}
	e.AddTrigger(st)
	return tw, st, nil
}

// Config is everything Attach needs besides the engine and the meshes.
type Config struct {
	Turns   float64
	Trigger anim.TriggerVars
	Pulse   PulseConfig
}

func DefaultConfig() Config {
	return Config{Turns: 1, Trigger: DefaultTrigger(), Pulse: DefaultPulse()}
}

func (c Config) Validate() error {
	if math.IsNaN(c.Turns) || math.IsInf(c.Turns, 0) {
		return &helix.ConfigError{Field: "turns", Value: c.Turns, Wrapped: helix.ErrInvalidConfig}
	}
	return c.Pulse.Validate()
}

// Sequencer owns the animations attached to one assembly.
type Sequencer struct {
	engine   *anim.Engine
	rotation *anim.Tween
	trigger  *anim.ScrollTrigger
	pulses   []*anim.Timeline
	targets  []*scene.Mesh
	stop     sync.Once
}

// Attach starts the scroll-linked rotation of a.Group and one pulse timeline
// per mesh selected by cfg.Pulse.Targets, staggered by index.
func Attach(e *anim.Engine, a *scene.Assembly, cfg Config) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tw, st, err := AttachRotation(e, a.Group, cfg.Trigger, cfg.Turns)
	if err != nil {
		return nil, err
	}
	s := &Sequencer{engine: e, rotation: tw, trigger: st}
	s.targets = a.Targets(cfg.Pulse.Targets)
	for i, m := range s.targets {
		tl := Pulse(m, i, cfg.Pulse)
		e.Add(tl)
		s.pulses = append(s.pulses, tl)
	}
	return s, nil
}

func (s *Sequencer) Trigger() *anim.ScrollTrigger { return s.trigger }

func (s *Sequencer) Rotation() *anim.Tween { return s.rotation }

func (s *Sequencer) Pulses() []*anim.Timeline { return s.pulses }

// Targets are the pulsing meshes, in stagger order.
func (s *Sequencer) Targets() []*scene.Mesh { return s.targets }

// Stop kills every pulse and detaches the rotation trigger. Safe to call more than once.
func (s *Sequencer) Stop() {
	s.stop.Do(func() {
		s.engine.Kill(s.rotation)
		for _, tl := range s.pulses {
			s.engine.Kill(tl)
		}
		s.trigger.Detach()
	})
}
