package report

import (
	"math"

	"github.com/laurentmuller/calculation-sub010/chart"
	"github.com/laurentmuller/calculation-sub010/color"
)

// marginShade lightens c towards white for the margin part of a bar.
func marginShade(c color.Color) color.Color {
	mix := func(v uint8) uint8 { return uint8(int(v) + (255-int(v))/2) }
	return color.RGB(mix(c.R), mix(c.G), mix(c.B))
}

// charts draws one stacked bar per group (amount, then margin) and a pie of
// the group totals, each followed by its legends.
func (r *renderer) charts() error {
	var (
		bars    []chart.BarRow
		pie     []chart.PieRow
		legends []chart.Legend
	)
	for _, g := range r.calc.Groups {
		if g.Total() == 0 {
			continue
		}
		spec := color.Named(g.Color)
		base := spec.Resolve(color.DefaultFill)
		bars = append(bars, chart.BarRow{
			Label: g.Code,
			Values: []chart.BarValue{
				chart.NewBarValue(spec, g.Amount()),
				chart.NewBarValue(color.FromRGB(marginShade(base)), g.MarginAmount()),
			},
		})
		pie = append(pie, chart.NewPieRow(spec, g.Total(), g.Code))
		legends = append(legends, chart.NewLegend(spec, g.Code))
	}
	if len(bars) == 0 {
		return nil
	}
	axis := chart.Axis{Min: chart.Bound(0), Formatter: r.opts.AxisFormatter}
	if err := chart.RenderBarChart(r.d, bars, axis, chart.Size(0, r.opts.BarHeight)); err != nil {
		return err
	}
	if err := chart.RenderLegends(r.d, legends, false); err != nil {
		return err
	}

	h := r.lineHeight()
	radius := math.Min(r.d.PrintableWidth(), r.opts.BarHeight) / 3
	if radius <= 0 {
		radius = r.d.PrintableWidth() / 4
	}
	page := r.d.PageNo()
	cx := r.d.LeftMargin() + r.d.PrintableWidth()/2
	cy := r.d.GetY() + h + radius
	if err := chart.RenderPieChart(r.d, cx, cy, radius, pie, chart.DefaultPieOptions()); err != nil {
		return err
	}
	if r.d.PageNo() != page {
		cy = r.d.TopMargin() + radius
	}
	r.d.SetY(cy + radius + h)
	legends = chart.PieLegends(pie)
	return chart.RenderLegends(r.d, legends, true)
}
