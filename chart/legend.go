package chart

import (
	"math"

	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/shape"
)

// legendMetrics derives legend sizes from the current font.
type legendMetrics struct {
	line, swatch, gap float64
}

func metrics(d *document.Document) legendMetrics {
	line := d.FontSizeUser() * 1.25
	swatch := line * 0.6
	return legendMetrics{line: line, swatch: swatch, gap: swatch / 2}
}

func (m legendMetrics) itemWidth(d *document.Document, l Legend) float64 {
	return m.swatch + m.gap + d.StringWidth(l.Label)
}

// LegendsWidth returns the width legends take with the current font: the
// sum of the items and their gaps in a row, or the widest item in a column.
func LegendsWidth(d *document.Document, legends []Legend, vertical bool) float64 {
	if len(legends) == 0 {
		return 0
	}
	m := metrics(d)
	total, widest := 0.0, 0.0
	for _, l := range legends {
		w := m.itemWidth(d, l)
		total += w
		widest = math.Max(widest, w)
	}
	if vertical {
		return widest
	}
	return total + 2*m.gap*float64(len(legends)-1)
}

// LegendsHeight returns the height legends take with the current font.
func LegendsHeight(d *document.Document, legends []Legend, vertical bool) float64 {
	if len(legends) == 0 {
		return 0
	}
	m := metrics(d)
	if vertical {
		return m.line * float64(len(legends))
	}
	return m.line
}

// RenderLegends draws legends in one row, centred in the printable width
// unless At is given. The cursor moves below the row.
func RenderLegends(d *document.Document, legends []Legend, circle bool, opts ...Option) error {
	if len(legends) == 0 {
		return nil
	}
	f := newFrame(opts)
	m := metrics(d)
	x := d.LeftMargin() + (d.PrintableWidth()-LegendsWidth(d, legends, false))/2
	y := d.GetY()
	if f.hasX {
		x, y = f.x, f.y
	}
	state := saveState(d)
	for _, l := range legends {
		drawLegend(d, m, l, x, y, circle)
		x += m.itemWidth(d, l) + 2*m.gap
	}
	err := state.restore(d)
	d.SetXY(d.LeftMargin(), y+m.line)
	return err
}

// RenderVerticalLegends draws legends in a column at the cursor or at At.
// The cursor is left unchanged.
func RenderVerticalLegends(d *document.Document, legends []Legend, circle bool, opts ...Option) error {
	if len(legends) == 0 {
		return nil
	}
	f := newFrame(opts)
	m := metrics(d)
	cx, cy := d.GetX(), d.GetY()
	x, y := cx, cy
	if f.hasX {
		x, y = f.x, f.y
	}
	state := saveState(d)
	for _, l := range legends {
		drawLegend(d, m, l, x, y, circle)
		y += m.line
	}
	err := state.restore(d)
	d.SetXY(cx, cy)
	return err
}

func drawLegend(d *document.Document, m legendMetrics, l Legend, x, y float64, circle bool) {
	l.Color.AsFill().Apply(d)
	if circle {
		shape.Circle(d, x+m.swatch/2, y+m.line/2, m.swatch/2, shape.Fill)
	} else {
		d.Rect(x, y+(m.line-m.swatch)/2, m.swatch, m.swatch, "F")
	}
	d.Text(x+m.swatch+m.gap, y+m.line/2+0.3*d.FontSizeUser(), l.Label)
}
