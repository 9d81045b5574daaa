// Package shape draws ellipses, pie sectors, polygons, point markers and
// dashed rectangles with Bézier and line segments.
package shape

import (
	"math"
	"strings"

	"github.com/laurentmuller/calculation-sub010/contentstream"
)

// Canvas is the drawing surface; *document.Document implements it.
type Canvas interface {
	Out(s string)
	K() float64
	PageHeight() float64
	LineWidth() float64
	SetLineWidth(w float64)
	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, style string)
}

// RenderMode selects stroking, filling or both.
type RenderMode int

const (
	Border RenderMode = iota
	Fill
	Both
)

// RectStyle returns the rectangle style letters ("D", "F" or "DF").
func (m RenderMode) RectStyle() string {
	switch m {
	case Fill:
		return "F"
	case Both:
		return "DF"
	}
	return "D"
}

func (m RenderMode) paint(closed bool) contentstream.Paint {
	switch m {
	case Fill:
		return contentstream.PaintFill
	case Both:
		if closed {
			return contentstream.PaintCloseFillStroke
		}
		return contentstream.PaintFillStroke
	}
	if closed {
		return contentstream.PaintCloseStroke
	}
	return contentstream.PaintStroke
}

// pen converts user coordinates (top-left origin) into page space.
type pen struct {
	k, h float64
	path contentstream.Path
}

func newPen(c Canvas) *pen { return &pen{k: c.K(), h: c.PageHeight()} }

func (p *pen) moveTo(x, y float64) { p.path.MoveTo(x*p.k, (p.h-y)*p.k) }
func (p *pen) lineTo(x, y float64) { p.path.LineTo(x*p.k, (p.h-y)*p.k) }

func (p *pen) curveTo(x1, y1, x2, y2, x3, y3 float64) {
	p.path.CurveTo(x1*p.k, (p.h-y1)*p.k, x2*p.k, (p.h-y2)*p.k, x3*p.k, (p.h-y3)*p.k)
}

func (p *pen) close() { p.path.Close() }

func (p *pen) paint(c Canvas, paint contentstream.Paint) {
	var b contentstream.Builder
	b.DrawPath(&p.path, paint)
	if b.Len() > 0 {
		c.Out(strings.TrimSuffix(string(b.Bytes()), "\n"))
	}
}

// Ellipse draws an ellipse centred on (x, y) with four cubic Bézier arcs.
func Ellipse(c Canvas, x, y, rx, ry float64, mode RenderMode) {
	if rx <= 0 || ry <= 0 {
		return
	}
	lx := 4.0 / 3.0 * (math.Sqrt2 - 1) * rx
	ly := 4.0 / 3.0 * (math.Sqrt2 - 1) * ry
	p := newPen(c)
	p.moveTo(x+rx, y)
	p.curveTo(x+rx, y-ly, x+lx, y-ry, x, y-ry)
	p.curveTo(x-lx, y-ry, x-rx, y-ly, x-rx, y)
	p.curveTo(x-rx, y+ly, x-lx, y+ry, x, y+ry)
	p.curveTo(x+lx, y+ry, x+rx, y+ly, x+rx, y)
	p.paint(c, mode.paint(false))
}

// Circle draws a circle centred on (x, y).
func Circle(c Canvas, x, y, r float64, mode RenderMode) {
	Ellipse(c, x, y, r, r, mode)
}

// Vertex is a polygon corner in user units.
type Vertex struct{ X, Y float64 }

// Polygon draws a closed polygon through points.
func Polygon(c Canvas, points []Vertex, mode RenderMode) {
	if len(points) < 2 {
		return
	}
	p := newPen(c)
	p.moveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.lineTo(pt.X, pt.Y)
	}
	p.close()
	p.paint(c, mode.paint(false))
}

// DashedRect outlines a rectangle with dashes. Dash and gap each take half
// of max(w, h)/dashes; dashes below 1 default to 15.
func DashedRect(c Canvas, x, y, w, h float64, dashes int) {
	if w <= 0 || h <= 0 {
		return
	}
	if dashes < 1 {
		dashes = 15
	}
	step := math.Max(w, h) / float64(dashes)
	dash := step / 2
	for t := 0.0; t < w; t += step {
		end := math.Min(t+dash, w)
		c.Line(x+t, y, x+end, y)
		c.Line(x+t, y+h, x+end, y+h)
	}
	for t := 0.0; t < h; t += step {
		end := math.Min(t+dash, h)
		c.Line(x, y+t, x, y+end)
		c.Line(x+w, y+t, x+w, y+end)
	}
}
