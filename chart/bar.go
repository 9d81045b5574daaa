package chart

import (
	"math"
	"strconv"

	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/document"
)

const (
	// BarSeparator is the gap between two bars and around them.
	BarSeparator = 3.0
	// DefaultBarHeight is the chart height used without Size.
	DefaultBarHeight = 200.0
)

// Axis configures the value axis. Nil bounds are computed from the row
// totals.
type Axis struct {
	Min, Max  *float64
	Formatter func(float64) string
}

// Bound returns a pointer to v, for Axis literals.
func Bound(v float64) *float64 { return &v }

func defaultFormat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// BarScale returns the scale of the value axis. Without explicit bounds
// the smallest and largest row totals are used.
func BarScale(rows []BarRow, axis Axis) Scale {
	totals := make([]float64, len(rows))
	for i, r := range rows {
		totals[i] = r.Total()
	}
	lo, hi := Min(totals...), Max(totals...)
	if axis.Min != nil {
		lo = *axis.Min
	}
	if axis.Max != nil {
		hi = *axis.Max
	}
	return NewScale(lo, hi)
}

// RenderBarChart draws stacked bars with a value grid. Without At the chart
// starts at the left margin and the cursor; without Size it spans the
// printable width and DefaultBarHeight. A chart that does not fit moves to
// a new page. The cursor ends below the chart.
func RenderBarChart(d *document.Document, rows []BarRow, axis Axis, opts ...Option) error {
	if len(rows) == 0 {
		return nil
	}
	f := newFrame(opts)
	x, y, w, h := d.LeftMargin(), d.GetY(), d.PrintableWidth(), DefaultBarHeight
	if f.hasX {
		x, y = f.x, f.y
	}
	if f.hasW {
		w = f.w
	}
	if f.hasH {
		h = f.h
	}
	if y+h > d.PageBreakTrigger() {
		d.AddPage()
		y = d.TopMargin()
	}
	state := saveState(d)
	d.SetCellMargin(0)
	drawBars(d, rows, axis, x, y, w, h)
	err := state.restore(d)
	d.SetXY(d.LeftMargin(), y+h)
	return err
}

func drawBars(d *document.Document, rows []BarRow, axis Axis, x, y, w, h float64) {
	scale := BarScale(rows, axis)
	format := axis.Formatter
	if format == nil {
		format = defaultFormat
	}
	lh := d.FontSizeUser()

	ticks := scale.Ticks()
	labels := make([]string, len(ticks))
	gutter := 0.0
	for i, v := range ticks {
		labels[i] = format(v)
		gutter = math.Max(gutter, d.StringWidth(labels[i]))
	}
	if gutter > 0 {
		gutter += BarSeparator
	}

	plotX, plotW := x+gutter, w-gutter
	n := float64(len(rows))
	barW := (plotW - (n+1)*BarSeparator) / n
	if barW <= 0 {
		return
	}
	labelW := 0.0
	for _, r := range rows {
		labelW = math.Max(labelW, d.StringWidth(r.Label))
	}
	rotated := labelW > barW
	reserved := lh
	if rotated {
		reserved = math.Sin(math.Pi/4)*labelW + lh
	}
	plotTop := y + lh/2
	plotBottom := y + h - reserved
	plotH := plotBottom - plotTop
	if plotH <= 0 {
		return
	}

	color.LightGray.AsDraw().Apply(d)
	color.Black.AsText().Apply(d)
	for i, v := range ticks {
		ty := plotBottom - scale.Fraction(v)*plotH
		d.Line(plotX, ty, x+w, ty)
		d.SetXY(x, ty-lh/2)
		d.Cell(gutter-BarSeparator, lh, labels[i], "", 0, "R", false, document.Link{})
	}

	for i, row := range rows {
		bx := plotX + BarSeparator + float64(i)*(barW+BarSeparator)
		if rotated {
			c := math.Cos(math.Pi / 4)
			lw := d.StringWidth(row.Label)
			d.RotateText(row.Label, 45, bx+barW/2-c*lw, plotBottom+0.8*lh+c*lw)
		} else {
			d.SetXY(bx, plotBottom)
			d.Cell(barW, lh, row.Label, "", 0, "C", false, document.Link{})
		}
		base := plotBottom
		for _, v := range row.Values {
			bh := scale.Fraction(v.Value) * plotH
			if bh <= 0 {
				continue
			}
			top := base - bh
			if top < plotTop-1e-6 {
				continue
			}
			v.Color.AsFill().Apply(d)
			d.Rect(bx, top, barW, bh, "F")
			base = top
		}
		if !row.Link.IsZero() && base < plotBottom {
			d.Link(bx, base, barW, plotBottom-base, row.Link)
		}
	}
}
