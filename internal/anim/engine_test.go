package anim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/helix/internal/anim"
)

var _ = Describe("Engine", func() {
	var (
		e *anim.Engine
		x float64
	)

	BeforeEach(func() {
		e = anim.NewEngine()
		x = 0
	})

	It("renders finite tweens and drops them once finished", func() {
		e.Add(anim.NewTween(anim.TweenVars{Duration: 1}, anim.Target{Prop: anim.Field(&x), To: 4}))
		Expect(e.Len()).To(Equal(1))

		e.Advance(0.5)
		Expect(x).To(BeNumerically("~", 2, 1e-12))
		e.Advance(0.75)
		Expect(x).To(Equal(4.0))
		Expect(e.Len()).To(Equal(0))
	})

	It("starts animations at the engine time they were added", func() {
		e.Advance(3)
		Expect(e.Time()).To(Equal(3.0))
		e.Add(anim.NewTween(anim.TweenVars{Duration: 2}, anim.Target{Prop: anim.Field(&x), To: 2}))
		e.Advance(0.5)
		Expect(x).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("ignores negative steps", func() {
		e.Advance(-1)
		Expect(e.Time()).To(Equal(0.0))
	})

	It("holds the clock and every animation while paused", func() {
		e.Add(anim.NewTween(anim.TweenVars{Duration: 1}, anim.Target{Prop: anim.Field(&x), To: 4}))
		e.Advance(0.25)
		e.SetPaused(true)
		Expect(e.Paused()).To(BeTrue())
		e.Advance(0.5)
		Expect(e.Time()).To(Equal(0.25))
		Expect(x).To(BeNumerically("~", 1, 1e-12))

		e.SetPaused(false)
		e.Advance(0.25)
		Expect(x).To(BeNumerically("~", 2, 1e-12))
	})

	It("stops writing after KillAll", func() {
		tl := anim.NewTimeline(anim.TimelineVars{Repeat: -1})
		tl.To(anim.TweenVars{Duration: 1}, anim.After, anim.Target{Prop: anim.Field(&x), To: 1})
		e.Add(tl)
		e.Advance(0.25)
		Expect(e.Len()).To(Equal(1))

		e.KillAll()
		Expect(e.Len()).To(Equal(0))
		before := x
		e.Advance(0.5)
		Expect(x).To(Equal(before))
	})

	It("kills a single animation", func() {
		y := 0.0
		a := anim.NewTween(anim.TweenVars{Duration: 1}, anim.Target{Prop: anim.Field(&x), To: 1})
		b := anim.NewTween(anim.TweenVars{Duration: 1}, anim.Target{Prop: anim.Field(&y), To: 1})
		e.Add(a)
		e.Add(b)
		Expect(e.Kill(a)).To(BeTrue())
		Expect(e.Kill(a)).To(BeFalse())
		e.Advance(0.5)
		Expect(x).To(Equal(0.0))
		Expect(y).To(BeNumerically("~", 0.5, 1e-12))
	})

	Describe("scroll triggers", func() {
		var (
			rot  float64
			tw   *anim.Tween
			trig *anim.ScrollTrigger
		)

		BeforeEach(func() {
			rot = 0
			tw = anim.NewTween(anim.TweenVars{Duration: 1}, anim.Target{Prop: anim.Field(&rot), To: 2 * math.Pi})
			var err error
			trig, err = anim.NewScrollTrigger(anim.TriggerVars{
				Region:   anim.Region{Name: "dna-section", Top: 100, Height: 300},
				Viewport: 100,
				Start:    "top center",
				End:      "bottom center",
			}, tw)
			Expect(err).NotTo(HaveOccurred())
			e.AddTrigger(trig)
		})

		It("renders the initial scroll position on attach", func() {
			Expect(trig.Attached()).To(BeTrue())
			Expect(rot).To(Equal(0.0))
		})

		It("follows the scroll position in both directions", func() {
			for _, step := range []struct{ y, want float64 }{
				{200, math.Pi},
				{350, 2 * math.Pi},
				{1000, 2 * math.Pi},
				{125, math.Pi / 2},
				{0, 0},
			} {
				e.SetScroll(step.y)
				e.Advance(1.0 / 60)
				Expect(rot).To(BeNumerically("~", step.want, 1e-9), "scroll %v", step.y)
			}
		})

		It("keeps scrubbing toward the scroll position while paused", func() {
			lagged, err := anim.NewScrollTrigger(anim.TriggerVars{
				Region:   anim.Region{Name: "dna-section", Top: 100, Height: 300},
				Viewport: 100,
				Start:    "top center",
				End:      "bottom center",
				Scrub:    0.5,
			}, tw)
			Expect(err).NotTo(HaveOccurred())
			e.Kill(tw)
			e.AddTrigger(lagged)

			e.SetPaused(true)
			e.SetScroll(350)
			e.Advance(1.0 / 60)
			Expect(lagged.Current()).To(BeNumerically(">", 0))
			Expect(lagged.Current()).To(BeNumerically("<", 1))
			for i := 0; i < 120; i++ {
				e.Advance(1.0 / 60)
			}
			Expect(lagged.Current()).To(Equal(1.0))
			Expect(rot).To(BeNumerically("~", 2*math.Pi, 1e-9))
		})

		It("detaches the trigger when its tween is killed", func() {
			Expect(e.Kill(tw)).To(BeTrue())
			Expect(trig.Attached()).To(BeFalse())
			e.SetScroll(350)
			e.Advance(0.1)
			Expect(rot).To(Equal(0.0))
			Expect(e.Len()).To(Equal(0))
		})
	})
})
