package anim

import "sync"

type entry struct {
	anim  Animation
	start float64
}

// Engine owns the clock for registered animations and scroll triggers.
// Advance renders every animation on the calling goroutine; the mutex only
// makes registration and teardown safe from other goroutines.
type Engine struct {
	mu       sync.Mutex
	time     float64
	paused   bool
	scrollY  float64
	entries  []entry
	triggers []*ScrollTrigger
}

func NewEngine() *Engine {
	return &Engine{}
}

// Add starts a at the current engine time.
func (e *Engine) Add(a Animation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append(e.entries, entry{anim: a, start: e.time})
}

// AddTrigger attaches a scroll trigger and renders it at the current scroll position.
func (e *Engine) AddTrigger(s *ScrollTrigger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s.attached.Store(true)
	s.Update(e.scrollY, 0)
	e.triggers = append(e.triggers, s)
}

// SetScroll records the scroll offset; triggers follow on the next Advance.
func (e *Engine) SetScroll(y float64) {
	e.mu.Lock()
	e.scrollY = y
	e.mu.Unlock()
}

func (e *Engine) Scroll() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollY
}

// SetPaused stops or restarts the clock. Scroll triggers keep following the
// scroll position while the clock is stopped.
func (e *Engine) SetPaused(p bool) {
	e.mu.Lock()
	e.paused = p
	e.mu.Unlock()
}

func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Advance moves the clock by dt and renders every live animation. Animations
// with a finite duration are dropped once their final frame has been drawn.
// Triggers always receive the real dt so scrub smoothing runs while paused.
func (e *Engine) Advance(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.triggers {
		s.Update(e.scrollY, dt)
	}
	if e.paused {
		return
	}
	if dt > 0 {
		e.time += dt
	}
	live := e.entries[:0]
	for _, en := range e.entries {
		local := e.time - en.start
		en.anim.Render(local)
		if local < en.anim.TotalDuration() {
			live = append(live, en)
		}
	}
	for i := len(live); i < len(e.entries); i++ {
		e.entries[i] = entry{}
	}
	e.entries = live
}

// Kill removes a and any trigger driving it. It reports whether anything was removed.
func (e *Engine) Kill(a Animation) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := false
	for i, en := range e.entries {
		if en.anim == a {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			removed = true
			break
		}
	}
	for i, s := range e.triggers {
		if anim, ok := s.target.(Animation); ok && anim == a {
			s.Detach()
			e.triggers = append(e.triggers[:i], e.triggers[i+1:]...)
			removed = true
			break
		}
	}
	return removed
}

// KillAll stops every animation and detaches every trigger.
func (e *Engine) KillAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.triggers {
		s.Detach()
	}
	e.entries = nil
	e.triggers = nil
}

// Len counts live animations and attached triggers.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries) + len(e.triggers)
}

func (e *Engine) Time() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.time
}
