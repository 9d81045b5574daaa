package shape

import (
	"math"

	"github.com/laurentmuller/calculation-sub010/coords"
)

// Sector draws a pie slice centred on (xc, yc) from angle a to angle b in
// degrees. Angles grow counter-clockwise from origin (0 is 3 o'clock, 90 is
// 12 o'clock) unless clockwise is set. Equal angles draw nothing; angles
// that differ by a multiple of 360 draw the full disc.
func Sector(c Canvas, xc, yc, r, a, b float64, mode RenderMode, clockwise bool, origin float64) {
	if r <= 0 || a == b {
		return
	}
	d0 := a - b
	if clockwise {
		d := b
		b = origin - a
		a = origin - d
	} else {
		b += origin
		a += origin
	}
	a = coords.NormalizeDegrees(a)
	b = coords.NormalizeDegrees(b)
	if a > b {
		b += 360
	}
	a = a / 360 * 2 * math.Pi
	b = b / 360 * 2 * math.Pi
	d := b - a
	if d == 0 && d0 != 0 {
		d = 2 * math.Pi
	}

	p := newPen(c)
	p.moveTo(xc, yc)
	p.lineTo(xc+r*math.Cos(a), yc-r*math.Sin(a))
	if d < math.Pi/2 {
		arc := arcHandle(d, r)
		sectorArc(p, xc, yc, r, a, b, arc)
	} else {
		b = a + d/4
		arc := arcHandle(d/4, r)
		for i := 0; i < 4; i++ {
			sectorArc(p, xc, yc, r, a, b, arc)
			a = b
			b = a + d/4
		}
	}
	p.paint(c, mode.paint(true))
}

// arcHandle is the Bézier control distance approximating an arc of angle d.
func arcHandle(d, r float64) float64 {
	s := math.Sin(d / 2)
	if s == 0 {
		return 0
	}
	return 4.0 / 3.0 * (1 - math.Cos(d/2)) / s * r
}

func sectorArc(p *pen, xc, yc, r, a, b, arc float64) {
	p.curveTo(
		xc+r*math.Cos(a)+arc*math.Cos(math.Pi/2+a), yc-r*math.Sin(a)-arc*math.Sin(math.Pi/2+a),
		xc+r*math.Cos(b)+arc*math.Cos(b-math.Pi/2), yc-r*math.Sin(b)-arc*math.Sin(b-math.Pi/2),
		xc+r*math.Cos(b), yc-r*math.Sin(b),
	)
}
