package anim

import "math"

type posKind int

const (
	posAfter posKind = iota
	posWithPrevious
	posAt
)

// Position places a child on a timeline.
type Position struct {
	kind posKind
	at   float64
}

var (
	// After starts the child when everything added so far has finished.
	After = Position{kind: posAfter}
	// WithPrevious starts the child together with the previously added one.
	WithPrevious = Position{kind: posWithPrevious}
)

// At starts the child at an absolute offset from the timeline start.
func At(t float64) Position { return Position{kind: posAt, at: t} }

// TimelineVars configures looping. Repeat -1 loops forever; RepeatDelay is the
// pause between the end of one cycle and the start of the next.
type TimelineVars struct {
	Delay       float64
	Repeat      int
	RepeatDelay float64
}

type child struct {
	start float64
	anim  Animation
}

// Timeline sequences animations with explicit offsets. Children are rendered in
// insertion order, so a later tween on the same property captures the value left
// by an earlier one.
type Timeline struct {
	vars      TimelineVars
	children  []child
	end       float64
	lastStart float64
	iteration int
}

func NewTimeline(vars TimelineVars) *Timeline {
	return &Timeline{vars: vars, iteration: -1}
}

// Add appends a child and returns the timeline for chaining.
func (tl *Timeline) Add(a Animation, pos Position) *Timeline {
	var start float64
	switch pos.kind {
	case posWithPrevious:
		start = tl.lastStart
	case posAt:
		start = math.Max(0, pos.at)
	default:
		start = tl.end
	}
	tl.children = append(tl.children, child{start: start, anim: a})
	tl.lastStart = start
	tl.end = math.Max(tl.end, start+a.TotalDuration())
	return tl
}

// To is shorthand for Add(NewTween(vars, targets...), pos).
func (tl *Timeline) To(vars TweenVars, pos Position, targets ...Target) *Timeline {
	return tl.Add(NewTween(vars, targets...), pos)
}

// Delay is the time before the first cycle starts.
func (tl *Timeline) Delay() float64 { return tl.vars.Delay }

// Duration is the length of one cycle, excluding delay and repeat delay.
func (tl *Timeline) Duration() float64 { return tl.end }

// Period is one cycle plus the pause before the next.
func (tl *Timeline) Period() float64 { return tl.end + tl.vars.RepeatDelay }

// StartOf returns the offset of the i-th child.
func (tl *Timeline) StartOf(i int) float64 { return tl.children[i].start }

func (tl *Timeline) Len() int { return len(tl.children) }

func (tl *Timeline) TotalDuration() float64 {
	if tl.vars.Repeat < 0 {
		return math.Inf(1)
	}
	n := float64(tl.vars.Repeat)
	return tl.vars.Delay + tl.end*(n+1) + tl.vars.RepeatDelay*n
}

// Iteration is the cycle index of the last render, -1 before the first.
func (tl *Timeline) Iteration() int { return tl.iteration }

// Render draws the timeline at time t measured from when it was started,
// delay included. Nothing is written before the delay elapses.
func (tl *Timeline) Render(t float64) {
	local := t - tl.vars.Delay
	if local < 0 {
		return
	}
	cycle, period := tl.end, tl.Period()
	ct, n := local, 0
	if period > 0 {
		n = int(math.Floor(local / period))
		ct = local - float64(n)*period
		if tl.vars.Repeat >= 0 && n > tl.vars.Repeat {
			n, ct = tl.vars.Repeat, cycle
		}
	}
	if tl.iteration >= 0 && n > tl.iteration {
		// close out the skipped cycle so every property lands on its end value
		tl.renderAt(cycle)
	}
	tl.iteration = n
	tl.renderAt(math.Min(ct, cycle))
}

func (tl *Timeline) renderAt(ct float64) {
	for _, c := range tl.children {
		if ct < c.start {
			continue
		}
		c.anim.Render(ct - c.start)
	}
}
