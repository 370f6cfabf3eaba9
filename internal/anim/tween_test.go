package anim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/helix/internal/anim"
)

var _ = Describe("Ease", func() {
	It("resolves power and sine curves by name", func() {
		Expect(anim.MustEase("power2.out")(0.5)).To(BeNumerically("~", 0.875, 1e-12))
		Expect(anim.MustEase("power2.in")(0.5)).To(BeNumerically("~", 0.125, 1e-12))
		Expect(anim.MustEase("none")(0.3)).To(BeNumerically("~", 0.3, 1e-12))
	})

	It("treats the empty name as linear", func() {
		e, err := anim.ParseEase("")
		Expect(err).NotTo(HaveOccurred())
		Expect(e(0.42)).To(BeNumerically("~", 0.42, 1e-12))
	})

	It("rejects unknown names", func() {
		_, err := anim.ParseEase("elastic.wobble")
		Expect(err).To(MatchError(anim.ErrUnknownEase))
	})

	It("keeps every curve pinned at 0 and 1", func() {
		for _, name := range anim.EaseNames() {
			e := anim.MustEase(name)
			Expect(e(0)).To(BeNumerically("~", 0, 1e-12), name)
			Expect(e(1)).To(BeNumerically("~", 1, 1e-12), name)
		}
	})
})

var _ = Describe("Tween", func() {
	var x float64

	BeforeEach(func() {
		x = 0
	})

	It("interpolates linearly and clamps outside its duration", func() {
		tw := anim.NewTween(anim.TweenVars{Duration: 2}, anim.Target{Prop: anim.Field(&x), To: 10})
		tw.Render(-1)
		Expect(x).To(Equal(0.0))
		tw.Render(1)
		Expect(x).To(BeNumerically("~", 5, 1e-12))
		tw.Render(2)
		Expect(x).To(Equal(10.0))
		tw.Render(7)
		Expect(x).To(Equal(10.0))
	})

	It("captures start values on first render", func() {
		x = 4
		tw := anim.NewTween(anim.TweenVars{Duration: 1}, anim.Target{Prop: anim.Field(&x), To: 10})
		Expect(tw.Started()).To(BeFalse())
		tw.Render(0)
		Expect(tw.Started()).To(BeTrue())
		x = 100
		tw.Render(0)
		Expect(x).To(Equal(4.0))
	})

	It("mirrors odd iterations when yoyo is set", func() {
		x = 10
		tw := anim.NewTween(anim.TweenVars{
			Duration: 0.05,
			Ease:     anim.MustEase("power1.inOut"),
			Repeat:   5,
			Yoyo:     true,
		}, anim.Target{Prop: anim.Field(&x), To: 13})

		Expect(tw.TotalDuration()).To(BeNumerically("~", 0.3, 1e-12))
		tw.Render(0.05)
		Expect(x).To(BeNumerically("~", 13, 1e-9))
		tw.Render(0.1)
		Expect(x).To(BeNumerically("~", 10, 1e-9))
		tw.Render(0.125)
		Expect(x).To(BeNumerically("~", 11.5, 1e-9))
		tw.Render(10)
		Expect(x).To(BeNumerically("~", 10, 1e-9))
	})

	It("repeats forever with Repeat -1", func() {
		tw := anim.NewTween(anim.TweenVars{Duration: 1, Repeat: -1}, anim.Target{Prop: anim.Field(&x), To: 1})
		Expect(math.IsInf(tw.TotalDuration(), 1)).To(BeTrue())
		tw.Render(3.25)
		Expect(x).To(BeNumerically("~", 0.25, 1e-12))
	})

	It("jumps to the end when the duration is zero", func() {
		tw := anim.NewTween(anim.TweenVars{}, anim.Target{Prop: anim.Field(&x), To: 3})
		tw.Render(0)
		Expect(x).To(Equal(3.0))
	})

	It("scrubs by progress, forwards and backwards", func() {
		tw := anim.NewTween(anim.TweenVars{Duration: 1}, anim.Target{Prop: anim.Field(&x), To: 2 * math.Pi})
		for _, p := range []float64{0, 0.5, 1, 0.25, 0, 1.5, -3} {
			tw.SetProgress(p)
			want := 2 * math.Pi * math.Max(0, math.Min(1, p))
			Expect(x).To(BeNumerically("~", want, 1e-12))
		}
	})
})
