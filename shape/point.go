package shape

import (
	"fmt"
	"math"
	"strings"
)

// PointStyle is the marker drawn by Point.
type PointStyle int

const (
	PointCircle PointStyle = iota
	PointCross
	PointCrossRotated
	PointDiamond
	PointEllipse
	PointRectangle
	PointSquare
	PointTriangle
)

var pointStyleNames = [...]string{"circle", "cross", "cross-rotated", "diamond", "ellipse", "rectangle", "square", "triangle"}

func (s PointStyle) String() string {
	if s < 0 || int(s) >= len(pointStyleNames) {
		return fmt.Sprintf("PointStyle(%d)", int(s))
	}
	return pointStyleNames[s]
}

// ParsePointStyle returns the style named s.
func ParsePointStyle(s string) (PointStyle, error) {
	for i, name := range pointStyleNames {
		if strings.EqualFold(s, name) {
			return PointStyle(i), nil
		}
	}
	return 0, fmt.Errorf("shape: unknown point style %q", s)
}

// crossLineWidth is the stroke width of cross markers.
const crossLineWidth = 0.5

// Point draws a marker inside the box (x, y, w, h).
func Point(c Canvas, style PointStyle, x, y, w, h float64, mode RenderMode) {
	if w <= 0 || h <= 0 {
		return
	}
	cx, cy := x+w/2, y+h/2
	switch style {
	case PointCircle:
		Circle(c, cx, cy, math.Min(w, h)/2, mode)
	case PointEllipse:
		Ellipse(c, cx, cy, w/2, h/2, mode)
	case PointRectangle:
		c.Rect(x, y, w, h, mode.RectStyle())
	case PointSquare:
		side := math.Min(w, h)
		c.Rect(cx-side/2, cy-side/2, side, side, mode.RectStyle())
	case PointDiamond:
		Polygon(c, []Vertex{{cx, y}, {x + w, cy}, {cx, y + h}, {x, cy}}, mode)
	case PointTriangle:
		Polygon(c, []Vertex{{cx, y}, {x + w, y + h}, {x, y + h}}, mode)
	case PointCross, PointCrossRotated:
		old := c.LineWidth()
		c.SetLineWidth(crossLineWidth)
		if style == PointCross {
			c.Line(cx, y, cx, y+h)
			c.Line(x, cy, x+w, cy)
		} else {
			c.Line(x, y, x+w, y+h)
			c.Line(x, y+h, x+w, y)
		}
		c.SetLineWidth(old)
	}
}
