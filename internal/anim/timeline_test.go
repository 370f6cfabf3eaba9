package anim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/helix/internal/anim"
)

var _ = Describe("Timeline", func() {
	const tol = 1e-6

	var (
		scale, glow, x float64
		tl             *anim.Timeline
	)

	BeforeEach(func() {
		scale, glow, x = 1, 0, 10
		tl = anim.NewTimeline(anim.TimelineVars{Delay: 0.4, Repeat: -1, RepeatDelay: 2})
		tl.To(anim.TweenVars{Duration: 0.2, Ease: anim.MustEase("power2.out")}, anim.After,
			anim.Target{Prop: anim.Field(&scale), To: 1.5}).
			To(anim.TweenVars{Duration: 0.2, Ease: anim.MustEase("power2.inOut")}, anim.WithPrevious,
				anim.Target{Prop: anim.Field(&glow), To: 1}).
			To(anim.TweenVars{Duration: 0.05, Ease: anim.MustEase("power1.inOut"), Repeat: 5, Yoyo: true}, anim.After,
				anim.Target{Prop: anim.Field(&x), To: 13}).
			To(anim.TweenVars{Duration: 0.2, Ease: anim.MustEase("power2.in")}, anim.After,
				anim.Target{Prop: anim.Field(&scale), To: 1}).
			To(anim.TweenVars{Duration: 0.2, Ease: anim.MustEase("power2.in")}, anim.WithPrevious,
				anim.Target{Prop: anim.Field(&glow), To: 0})
	})

	It("places children after or alongside their predecessor", func() {
		Expect(tl.Len()).To(Equal(5))
		starts := []float64{0, 0, 0.2, 0.5, 0.5}
		for i, want := range starts {
			Expect(tl.StartOf(i)).To(BeNumerically("~", want, 1e-12))
		}
		Expect(tl.Duration()).To(BeNumerically("~", 0.7, 1e-12))
		Expect(tl.Period()).To(BeNumerically("~", 2.7, 1e-12))
		Expect(math.IsInf(tl.TotalDuration(), 1)).To(BeTrue())
	})

	It("writes nothing before its delay", func() {
		tl.Render(0.39)
		Expect(scale).To(Equal(1.0))
		Expect(glow).To(Equal(0.0))
		Expect(tl.Iteration()).To(Equal(-1))
	})

	It("runs the scale, glow, jitter and settle phases in order", func() {
		tl.Render(0.4 + 0.1)
		Expect(scale).To(BeNumerically(">", 1))
		Expect(scale).To(BeNumerically("<", 1.5))
		Expect(glow).To(BeNumerically(">", 0))

		tl.Render(0.4 + 0.2)
		Expect(scale).To(BeNumerically("~", 1.5, tol))
		Expect(glow).To(BeNumerically("~", 1, tol))
		Expect(x).To(BeNumerically("~", 10, tol))

		tl.Render(0.4 + 0.25)
		Expect(x).To(BeNumerically("~", 13, tol))
		Expect(scale).To(BeNumerically("~", 1.5, tol))

		tl.Render(0.4 + 0.6)
		Expect(scale).To(BeNumerically("<", 1.5))
		Expect(x).To(BeNumerically("~", 10, tol))

		tl.Render(0.4 + 0.7)
		Expect(scale).To(BeNumerically("~", 1, tol))
		Expect(glow).To(BeNumerically("~", 0, tol))
	})

	It("holds the end state through the repeat delay and loops", func() {
		tl.Render(0.4 + 0.2)
		tl.Render(0.4 + 1.5)
		Expect(scale).To(BeNumerically("~", 1, tol))
		Expect(tl.Iteration()).To(Equal(0))

		tl.Render(0.4 + 2.7 + 0.2)
		Expect(tl.Iteration()).To(Equal(1))
		Expect(scale).To(BeNumerically("~", 1.5, tol))
		Expect(glow).To(BeNumerically("~", 1, tol))
	})

	It("closes out a skipped cycle before entering the next one", func() {
		tl.Render(0.4 + 0.275)
		Expect(x).To(BeNumerically("~", 11.5, tol))

		tl.Render(0.4 + 2.7 + 0.01)
		Expect(x).To(BeNumerically("~", 10, tol))
		Expect(tl.Iteration()).To(Equal(1))
	})

	It("stops at the final cycle when the repeat count is finite", func() {
		v := 0.0
		finite := anim.NewTimeline(anim.TimelineVars{Repeat: 1, RepeatDelay: 1})
		finite.To(anim.TweenVars{Duration: 1}, anim.After, anim.Target{Prop: anim.Field(&v), To: 1})
		Expect(finite.TotalDuration()).To(BeNumerically("~", 3, 1e-12))

		finite.Render(2.5)
		Expect(v).To(BeNumerically("~", 0.5, 1e-12))
		finite.Render(10)
		Expect(v).To(Equal(1.0))
		Expect(finite.Iteration()).To(Equal(1))
	})

	It("honours absolute positions", func() {
		v := 0.0
		abs := anim.NewTimeline(anim.TimelineVars{})
		abs.To(anim.TweenVars{Duration: 1}, anim.At(2), anim.Target{Prop: anim.Field(&v), To: 4})
		Expect(abs.Duration()).To(BeNumerically("~", 3, 1e-12))
		abs.Render(1)
		Expect(v).To(Equal(0.0))
		abs.Render(2.5)
		Expect(v).To(BeNumerically("~", 2, 1e-12))
	})
})
