package chart

import "math"

// BandScale spreads an ordered set of labels over a range, one band each,
// with the same inner and outer padding and centred alignment.
type BandScale struct {
	start     float64
	step      float64
	bandwidth float64
}

func NewBandScale(domain []string, r0, r1, padding float64) BandScale {
	n := float64(len(domain))
	step := (r1 - r0) / math.Max(1, n-padding+2*padding)
	start := r0 + (r1-r0-step*(n-padding))*0.5
	return BandScale{
		start:     start,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

// At returns the start of the i-th band.
func (s BandScale) At(i int) float64 {
	return s.start + s.step*float64(i)
}

func (s BandScale) Bandwidth() float64 { return s.bandwidth }

// LinearScale maps [d0, d1] onto [r0, r1].
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps v into the range. A collapsed domain maps everything to r0.
func (s LinearScale) Scale(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// IntegerTicks returns roughly count evenly spaced whole-number ticks
// covering the domain, stepping by 1, 2 or 5 times a power of ten.
func (s LinearScale) IntegerTicks(count int) []float64 {
	lo, hi := math.Min(s.d0, s.d1), math.Max(s.d0, s.d1)
	if hi == lo || count <= 0 {
		return []float64{lo}
	}

	step := math.Max(1, tickStep(lo, hi, count))
	first := math.Ceil(lo/step) * step
	var ticks []float64
	for v := first; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(raw))
	base := math.Pow(10, power)
	switch e := raw / base; {
	case e >= math.Sqrt(50):
		return 10 * base
	case e >= math.Sqrt(10):
		return 5 * base
	case e >= math.Sqrt(2):
		return 2 * base
	default:
		return base
	}
}
