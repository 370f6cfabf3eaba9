package helix

import (
	"math"
	"sync"

	"github.com/san-kum/helix/internal/vmath"
)

// Phase offsets of the two strands.
const (
	PhaseA = 0.0
	PhaseB = math.Pi
)

type Kind int

const (
	KindStrandA Kind = iota
	KindStrandB
	KindBridge
)

func (k Kind) String() string {
	switch k {
	case KindStrandA:
		return "strand_a"
	case KindStrandB:
		return "strand_b"
	case KindBridge:
		return "bridge"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindStrandA, KindStrandB, KindBridge} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Params fully determines the generated geometry.
type Params struct {
	TotalPoints int
	Revolutions float64
	Height      float64
	Radius      float64
	SubCount    int
	StartColor  Color
	EndColor    Color
}

// Validate rejects parameters that would produce negative-length or non-finite output.
// TotalPoints == 0 is accepted and yields an empty helix.
func (p Params) Validate() error {
	if p.TotalPoints < 0 {
		return invalid("total_points", p.TotalPoints)
	}
	if p.SubCount < 0 {
		return invalid("sub_count", p.SubCount)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"revolutions", p.Revolutions},
		{"height", p.Height},
		{"radius", p.Radius},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.name, f.v)
		}
	}
	for _, c := range []struct {
		name string
		v    Color
	}{
		{"start_color", p.StartColor},
		{"end_color", p.EndColor},
	} {
		if !c.v.IsValid() {
			return &ConfigError{Field: c.name, Value: c.v, Wrapped: ErrInvalidColor}
		}
	}
	return nil
}

func (p Params) ramp() Ramp { return Ramp{Start: p.StartColor, End: p.EndColor} }

// Point is one generated sphere centre. Sub is the bridge sub-index and is zero on strands.
type Point struct {
	Kind     Kind
	Index    int
	Sub      int
	T        float64
	Position vmath.Vec3
	Color    Color
}

type Strand []Point

type Bridge []Point

// Helix is the immutable output of Build.
type Helix struct {
	Params  Params
	A, B    Strand
	Bridges []Bridge
}

// Count is 2n + n(subCount+1).
func (h *Helix) Count() int {
	n := len(h.A) + len(h.B)
	for _, b := range h.Bridges {
		n += len(b)
	}
	return n
}

// Points flattens the helix in mount order: strand A, strand B, then each bridge.
func (h *Helix) Points() []Point {
	out := make([]Point, 0, h.Count())
	out = append(out, h.A...)
	out = append(out, h.B...)
	for _, b := range h.Bridges {
		out = append(out, b...)
	}
	return out
}

// Normalized returns i/n, or 0 when n is zero.
func Normalized(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n)
}

// StrandPoint computes sample i of the strand with the given phase offset.
func StrandPoint(p Params, i int, phase float64) vmath.Vec3 {
	t := Normalized(i, p.TotalPoints)
	angle := t*2*math.Pi*p.Revolutions + phase
	return vmath.Vec3{
		X: math.Cos(angle) * p.Radius,
		Y: (t - 0.5) * p.Height * 2,
		Z: math.Sin(angle) * p.Radius,
	}
}

func strandKind(phase float64) Kind {
	if phase == PhaseA {
		return KindStrandA
	}
	return KindStrandB
}

func fillStrand(p Params, s Strand, phase float64, from, to int) {
	ramp, kind := p.ramp(), strandKind(phase)
	for i := from; i < to; i++ {
		t := Normalized(i, p.TotalPoints)
		s[i] = Point{
			Kind:     kind,
			Index:    i,
			T:        t,
			Position: StrandPoint(p, i, phase),
			Color:    ramp.At(t),
		}
	}
}

// BuildStrand generates all p.TotalPoints samples of one strand.
func BuildStrand(p Params, phase float64) Strand {
	s := make(Strand, p.TotalPoints)
	fillStrand(p, s, phase, 0, p.TotalPoints)
	return s
}

// BuildBridges interpolates subCount+1 points between a[i] and b[i] for every index.
// Bridge colour follows the parent index, not the interpolation fraction.
func BuildBridges(p Params, a, b Strand) []Bridge {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	ramp := p.ramp()
	bridges := make([]Bridge, n)
	for i := 0; i < n; i++ {
		color := ramp.At(a[i].T)
		br := make(Bridge, p.SubCount+1)
		for k := 0; k <= p.SubCount; k++ {
			alpha := 0.0
			if p.SubCount > 0 {
				alpha = float64(k) / float64(p.SubCount)
			}
			br[k] = Point{
				Kind:     KindBridge,
				Index:    i,
				Sub:      k,
				T:        a[i].T,
				Position: a[i].Position.Lerp(b[i].Position, alpha),
				Color:    color,
			}
		}
		bridges[i] = br
	}
	return bridges
}

// Build validates p and generates both strands and the bridges between them.
func Build(p Params) (*Helix, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	a := BuildStrand(p, PhaseA)
	b := BuildStrand(p, PhaseB)
	return &Helix{Params: p, A: a, B: b, Bridges: BuildBridges(p, a, b)}, nil
}

// BuildParallel is Build with strand samples split into contiguous chunks across
// workers. Each index is written by exactly one goroutine.
func BuildParallel(p Params, workers int) (*Helix, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	a := make(Strand, p.TotalPoints)
	b := make(Strand, p.TotalPoints)
	chunk := (p.TotalPoints + workers - 1) / workers

	var wg sync.WaitGroup
	for from := 0; from < p.TotalPoints; from += chunk {
		from := from
		to := min(from+chunk, p.TotalPoints)
		wg.Add(2)
		go func() {
			defer wg.Done()
			fillStrand(p, a, PhaseA, from, to)
		}()
		go func() {
			defer wg.Done()
			fillStrand(p, b, PhaseB, from, to)
		}()
	}
	wg.Wait()

	return &Helix{Params: p, A: a, B: b, Bridges: BuildBridges(p, a, b)}, nil
}
