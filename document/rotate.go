package document

import (
	"math"

	"github.com/laurentmuller/calculation-sub010/coords"
)

// Rotate turns the coordinate system by angle degrees counter-clockwise
// around the cursor. See RotateAt.
func (d *Document) Rotate(angle float64) { d.RotateAt(angle, d.x, d.y) }

// RotateAt turns the coordinate system by angle degrees around (x, y). An
// active rotation is closed first. Angles are taken modulo 360 and a zero
// angle emits nothing. The rotation lasts until EndRotate or the end of the
// page.
func (d *Document) RotateAt(angle, x, y float64) {
	d.EndRotate()
	angle = coords.NormalizeDegrees(angle)
	if angle == 0 {
		return
	}
	d.angle = angle
	a := angle * math.Pi / 180
	c, s := math.Cos(a), math.Sin(a)
	cx, cy := x*d.k, (d.h-y)*d.k
	d.Outf("q %.5f %.5f %.5f %.5f %.2f %.2f cm 1 0 0 1 %.2f %.2f cm", c, s, -s, c, cx, cy, -cx, -cy)
}

// EndRotate restores the state saved by the last rotation.
func (d *Document) EndRotate() {
	if d.angle != 0 {
		d.angle = 0
		d.Out("Q")
	}
}

// RotationAngle returns the active rotation in degrees, zero when none.
func (d *Document) RotationAngle() float64 { return d.angle }

func (d *Document) closeRotation() { d.EndRotate() }

// RotateText prints txt rotated by angle around its origin (x, y).
func (d *Document) RotateText(txt string, angle, x, y float64) {
	d.RotateAt(angle, x, y)
	d.Text(x, y, txt)
	d.EndRotate()
}

// RotateRect draws a rectangle rotated by angle around its top-left corner.
func (d *Document) RotateRect(x, y, w, h, angle float64, style string) {
	d.RotateAt(angle, x, y)
	d.Rect(x, y, w, h, style)
	d.EndRotate()
}
