package chart

import "math"

// defaultTicks is the maximum number of ticks of a scale.
const defaultTicks = 10

// Scale is an axis range rounded outward to human friendly bounds.
type Scale struct {
	Lower, Upper, Step float64
}

// NewScale returns a scale covering [min, max] with at most ten ticks.
func NewScale(min, max float64) Scale {
	return NewScaleTicks(min, max, defaultTicks)
}

// NewScaleTicks returns a scale covering [min, max] with at most ticks
// ticks.
func NewScaleTicks(min, max float64, ticks int) Scale {
	if min > max {
		min, max = max, min
	}
	if min == max {
		if min == 0 {
			max = 1
		} else {
			d := math.Abs(min) / 10
			min, max = min-d, max+d
		}
	}
	if ticks < 2 {
		ticks = 2
	}
	span := niceNumber(max-min, false)
	step := niceNumber(span/float64(ticks-1), true)
	return Scale{
		Lower: math.Floor(min/step) * step,
		Upper: math.Ceil(max/step) * step,
		Step:  step,
	}
}

// niceNumber returns a 1, 2, 5 or 10 multiple of a power of ten close to v.
func niceNumber(v float64, round bool) float64 {
	exp := math.Floor(math.Log10(v))
	frac := v / math.Pow(10, exp)
	var nice float64
	switch {
	case round && frac < 1.5, !round && frac <= 1:
		nice = 1
	case round && frac < 3, !round && frac <= 2:
		nice = 2
	case round && frac < 7, !round && frac <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * math.Pow(10, exp)
}

// Ticks returns the tick values from Lower to Upper.
func (s Scale) Ticks() []float64 {
	if s.Step <= 0 {
		return []float64{s.Lower}
	}
	n := int(math.Round((s.Upper - s.Lower) / s.Step))
	p := math.Pow(10, math.Max(0, -math.Floor(math.Log10(s.Step))))
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		v := s.Lower + float64(i)*s.Step
		out = append(out, math.Round(v*p)/p)
	}
	return out
}

// Fraction maps v into [0, 1] after clamping it to the scale bounds.
func (s Scale) Fraction(v float64) float64 {
	if s.Upper <= s.Lower {
		return 0
	}
	v = math.Max(s.Lower, math.Min(s.Upper, v))
	return (v - s.Lower) / (s.Upper - s.Lower)
}
