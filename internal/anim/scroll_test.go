package anim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/helix/internal/anim"
)

type progressRecorder struct {
	values []float64
}

func (r *progressRecorder) SetProgress(p float64) { r.values = append(r.values, p) }

func (r *progressRecorder) last() float64 { return r.values[len(r.values)-1] }

var _ = Describe("ScrollTrigger", func() {
	section := anim.Region{Name: "dna-section", Top: 100, Height: 300}

	DescribeTable("anchor parsing",
		func(in string, want anim.Anchor) {
			got, err := anim.ParseAnchor(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Element).To(BeNumerically("~", want.Element, 1e-12))
			Expect(got.Viewport).To(BeNumerically("~", want.Viewport, 1e-12))
		},
		Entry("top center", "top center", anim.Anchor{Element: 0, Viewport: 0.5}),
		Entry("bottom center", "bottom center", anim.Anchor{Element: 1, Viewport: 0.5}),
		Entry("percentages", "25% 80%", anim.Anchor{Element: 0.25, Viewport: 0.8}),
		Entry("single token", "center", anim.Anchor{Element: 0.5}),
	)

	DescribeTable("rejected anchors",
		func(in string) {
			_, err := anim.ParseAnchor(in)
			Expect(err).To(MatchError(anim.ErrInvalidAnchor))
		},
		Entry("empty", ""),
		Entry("unknown word", "middle center"),
		Entry("too many tokens", "top center bottom"),
		Entry("bad percentage", "top x%"),
	)

	It("maps the region linearly between its anchors", func() {
		rec := &progressRecorder{}
		trig, err := anim.NewScrollTrigger(anim.TriggerVars{
			Region: section, Viewport: 100, Start: "top center", End: "bottom center",
		}, rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(trig.StartY()).To(Equal(50.0))
		Expect(trig.EndY()).To(Equal(350.0))
		Expect(trig.Progress(0)).To(Equal(0.0))
		Expect(trig.Progress(50)).To(Equal(0.0))
		Expect(trig.Progress(200)).To(Equal(0.5))
		Expect(trig.Progress(350)).To(Equal(1.0))
		Expect(trig.Progress(900)).To(Equal(1.0))
	})

	It("rejects a region that ends before it starts", func() {
		_, err := anim.NewScrollTrigger(anim.TriggerVars{
			Region: section, Viewport: 100, Start: "bottom top", End: "top top",
		}, &progressRecorder{})
		Expect(err).To(MatchError(anim.ErrInvalidTrigger))
	})

	It("rejects a non-positive viewport", func() {
		_, err := anim.NewScrollTrigger(anim.TriggerVars{
			Region: section, Start: "top center", End: "bottom center",
		}, &progressRecorder{})
		Expect(err).To(MatchError(anim.ErrInvalidTrigger))
	})

	It("does nothing until attached", func() {
		rec := &progressRecorder{}
		trig, _ := anim.NewScrollTrigger(anim.TriggerVars{
			Region: section, Viewport: 100, Start: "top center", End: "bottom center",
		}, rec)
		trig.Update(200, 0.1)
		Expect(rec.values).To(BeEmpty())
	})

	It("lags behind and converges when scrub is positive", func() {
		rec := &progressRecorder{}
		trig, err := anim.NewScrollTrigger(anim.TriggerVars{
			Region: section, Viewport: 100, Start: "top center", End: "bottom center", Scrub: 1,
		}, rec)
		Expect(err).NotTo(HaveOccurred())

		e := anim.NewEngine()
		e.AddTrigger(trig)
		Expect(rec.last()).To(Equal(0.0))

		e.SetScroll(350)
		e.Advance(0.1)
		Expect(rec.last()).To(BeNumerically(">", 0))
		Expect(rec.last()).To(BeNumerically("<", 1))

		prev := rec.last()
		for i := 0; i < 100; i++ {
			e.Advance(0.1)
			Expect(rec.last()).To(BeNumerically(">=", prev))
			prev = rec.last()
		}
		Expect(trig.Current()).To(Equal(1.0))
	})
})
