package chart

import (
	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/shape"
)

// PieOptions controls how wedges are painted and laid out.
type PieOptions struct {
	Mode      shape.RenderMode
	Clockwise bool
	// Origin is the angle of the first wedge in degrees, 90 being 12 o'clock.
	Origin float64
}

// DefaultPieOptions fills and strokes clockwise wedges from 12 o'clock.
func DefaultPieOptions() PieOptions {
	return PieOptions{Mode: shape.Both, Clockwise: true, Origin: 90}
}

// RenderPieChart draws one wedge per row centred on (cx, cy), each sweeping
// value/total of the circle. Nothing is drawn for a non-positive radius,
// no rows or a zero total. A circle that does not fit on the page moves to
// the top of a new page.
func RenderPieChart(d *document.Document, cx, cy, r float64, rows []PieRow, opts PieOptions) error {
	if r <= 0 || len(rows) == 0 {
		return nil
	}
	total := 0.0
	for _, row := range rows {
		total += row.Value
	}
	if total == 0 {
		return nil
	}
	if cy+r > d.PageBreakTrigger() {
		d.AddPage()
		cy = d.TopMargin() + r
	}
	state := saveState(d)
	start := 0.0
	for _, row := range rows {
		end := start + row.Value/total*360
		row.Color.AsFill().Apply(d)
		shape.Sector(d, cx, cy, r, start, end, opts.Mode, opts.Clockwise, opts.Origin)
		start = end
	}
	return state.restore(d)
}
