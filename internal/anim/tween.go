package anim

import "math"

// Property is a numeric attribute an animation can read and write.
type Property struct {
	Get func() float64
	Set func(float64)
}

// Field adapts a float64 field into a Property.
func Field(p *float64) Property {
	return Property{
		Get: func() float64 { return *p },
		Set: func(v float64) { *p = v },
	}
}

// Target pairs a property with its absolute end value.
type Target struct {
	Prop Property
	To   float64
}

// Animation is anything that can be rendered at a local time measured from its own start.
type Animation interface {
	// TotalDuration includes repeats; +Inf when repeating forever.
	TotalDuration() float64
	Render(t float64)
}

// TweenVars configures a Tween. Repeat counts extra iterations; -1 repeats forever.
type TweenVars struct {
	Duration float64
	Ease     Ease
	Repeat   int
	Yoyo     bool
}

// Tween interpolates its targets from the values they hold when first rendered.
type Tween struct {
	vars    TweenVars
	targets []Target
	from    []float64
	started bool
}

func NewTween(vars TweenVars, targets ...Target) *Tween {
	if vars.Ease == nil {
		vars.Ease = eases["none"]
	}
	if vars.Duration < 0 {
		vars.Duration = 0
	}
	return &Tween{vars: vars, targets: targets}
}

func (tw *Tween) Duration() float64 { return tw.vars.Duration }

func (tw *Tween) TotalDuration() float64 {
	if tw.vars.Repeat < 0 {
		return math.Inf(1)
	}
	return tw.vars.Duration * float64(tw.vars.Repeat+1)
}

// Started reports whether start values have been captured.
func (tw *Tween) Started() bool { return tw.started }

// Ratio is the eased progress at local time t, accounting for repeats and yoyo.
func (tw *Tween) Ratio(t float64) float64 {
	d := tw.vars.Duration
	if t < 0 {
		t = 0
	}
	if total := tw.TotalDuration(); t > total {
		t = total
	}
	if d == 0 {
		return tw.vars.Ease(1)
	}
	iter := int(math.Floor(t / d))
	local := t - float64(iter)*d
	// the final instant belongs to the last iteration, not a new one
	if local == 0 && iter > 0 && t == tw.TotalDuration() {
		iter--
		local = d
	}
	p := clamp01(local / d)
	if tw.vars.Yoyo && iter%2 == 1 {
		p = 1 - p
	}
	return tw.vars.Ease(p)
}

func (tw *Tween) Render(t float64) {
	if !tw.started {
		tw.from = make([]float64, len(tw.targets))
		for i, tg := range tw.targets {
			tw.from[i] = tg.Prop.Get()
		}
		tw.started = true
	}
	r := tw.Ratio(t)
	for i, tg := range tw.targets {
		tg.Prop.Set(tw.from[i] + (tg.To-tw.from[i])*r)
	}
}

// SetProgress renders at a fraction of the total duration. Used by scroll scrubbing.
func (tw *Tween) SetProgress(p float64) {
	total := tw.TotalDuration()
	if math.IsInf(total, 1) {
		total = tw.vars.Duration
	}
	tw.Render(clamp01(p) * total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
