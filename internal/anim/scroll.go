package anim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// Anchor pairs a point on the trigger element with a point on the viewport,
// both as fractions from the top: "top center" is {0, 0.5}.
type Anchor struct {
	Element, Viewport float64
}

// ParseAnchor reads "<element> <viewport>" where each side is top, center,
// bottom or a percentage. A single token applies to the element and pins the
// viewport side to top.
func ParseAnchor(s string) (Anchor, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Anchor{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, s)
	}
	el, err := anchorFraction(fields[0])
	if err != nil {
		return Anchor{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, s)
	}
	vp := 0.0
	if len(fields) == 2 {
		if vp, err = anchorFraction(fields[1]); err != nil {
			return Anchor{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, s)
		}
	}
	return Anchor{Element: el, Viewport: vp}, nil
}

func anchorFraction(tok string) (float64, error) {
	switch tok {
	case "top":
		return 0, nil
	case "center":
		return 0.5, nil
	case "bottom":
		return 1, nil
	}
	if pct, ok := strings.CutSuffix(tok, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	}
	return 0, fmt.Errorf("unknown anchor token %q", tok)
}

// Region is the named page section a trigger tracks, in scroll units.
type Region struct {
	Name   string
	Top    float64
	Height float64
}

// TriggerVars configures a ScrollTrigger. Scrub 0 follows the scroll position
// exactly; Scrub > 0 is the time in seconds the animation takes to catch up.
type TriggerVars struct {
	Region   Region
	Viewport float64
	Start    string
	End      string
	Scrub    float64
}

// Scrubbable is driven by scroll progress in [0,1].
type Scrubbable interface {
	SetProgress(p float64)
}

// ScrollTrigger binds a Scrubbable to the scroll position within a region.
type ScrollTrigger struct {
	region      Region
	viewport    float64
	start, end  Anchor
	scrub       float64
	target      Scrubbable
	progress    float64
	attached    atomic.Bool
	initialized bool
}

func NewScrollTrigger(vars TriggerVars, target Scrubbable) (*ScrollTrigger, error) {
	if vars.Viewport <= 0 || vars.Region.Height < 0 || vars.Scrub < 0 {
		return nil, fmt.Errorf("%w: viewport=%v height=%v scrub=%v", ErrInvalidTrigger, vars.Viewport, vars.Region.Height, vars.Scrub)
	}
	start, err := ParseAnchor(vars.Start)
	if err != nil {
		return nil, err
	}
	end, err := ParseAnchor(vars.End)
	if err != nil {
		return nil, err
	}
	s := &ScrollTrigger{
		region:   vars.Region,
		viewport: vars.Viewport,
		start:    start,
		end:      end,
		scrub:    vars.Scrub,
		target:   target,
	}
	if s.EndY() <= s.StartY() {
		return nil, fmt.Errorf("%w: %q ends at %v before it starts at %v", ErrInvalidTrigger, vars.Region.Name, s.EndY(), s.StartY())
	}
	return s, nil
}

func (s *ScrollTrigger) anchorY(a Anchor) float64 {
	return s.region.Top + a.Element*s.region.Height - a.Viewport*s.viewport
}

// StartY is the scroll offset where progress leaves 0.
func (s *ScrollTrigger) StartY() float64 { return s.anchorY(s.start) }

// EndY is the scroll offset where progress reaches 1.
func (s *ScrollTrigger) EndY() float64 { return s.anchorY(s.end) }

// Progress maps a scroll offset linearly onto [0,1].
func (s *ScrollTrigger) Progress(scrollY float64) float64 {
	return clamp01((scrollY - s.StartY()) / (s.EndY() - s.StartY()))
}

// Current is the progress last applied to the target.
func (s *ScrollTrigger) Current() float64 { return s.progress }

// Attached reports whether the trigger still drives its target. Safe from any goroutine.
func (s *ScrollTrigger) Attached() bool { return s.attached.Load() }

func (s *ScrollTrigger) Region() Region { return s.region }

// Update applies the progress for scrollY, smoothed over dt when scrubbing lags.
func (s *ScrollTrigger) Update(scrollY, dt float64) {
	if !s.attached.Load() {
		return
	}
	want := s.Progress(scrollY)
	switch {
	case !s.initialized || s.scrub == 0:
		s.progress = want
		s.initialized = true
	case dt > 0:
		// roughly 95% of the gap is closed after scrub seconds
		k := 1 - math.Exp(-3*dt/s.scrub)
		s.progress += (want - s.progress) * k
		if math.Abs(want-s.progress) < 1e-4 {
			s.progress = want
		}
	}
	s.target.SetProgress(s.progress)
}

// Detach stops the trigger from driving its target. Safe to call twice.
func (s *ScrollTrigger) Detach() { s.attached.Store(false) }
