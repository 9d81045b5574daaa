package chart_test

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/laurentmuller/calculation-sub010/chart"
	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/contentstream"
	"github.com/laurentmuller/calculation-sub010/document"
)

func newDoc(t *testing.T) *document.Document {
	t.Helper()
	d := document.New(
		document.WithUnit(document.UnitPoint),
		document.WithCompression(false),
		document.WithInfo(document.Info{CreationDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}),
	)
	d.AddPage()
	return d
}

func pageOps(t *testing.T, d *document.Document, page int) []contentstream.Operation {
	t.Helper()
	ops, err := contentstream.Parse(d.PageContent(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ops
}

func trace(t *testing.T, ops []contentstream.Operation) *contentstream.Trace {
	t.Helper()
	tr, err := contentstream.NewTracer().Trace(ops)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	return tr
}

func countOp(ops []contentstream.Operation, name string) int {
	n := 0
	for _, op := range ops {
		if op.Operator == name {
			n++
		}
	}
	return n
}

func approx(tol float64) cmp.Option {
	return cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < tol })
}

func barRows(values ...float64) []chart.BarRow {
	rows := make([]chart.BarRow, len(values))
	for i, v := range values {
		rows[i] = chart.BarRow{Label: string(rune('A' + i)), Values: []chart.BarValue{chart.NewBarValue(color.Named("blue"), v)}}
	}
	return rows
}

func TestScale(t *testing.T) {
	cases := []struct {
		min, max float64
		want     chart.Scale
	}{
		{0, 30, chart.Scale{Lower: 0, Upper: 30, Step: 5}},
		{3, 97, chart.Scale{Lower: 0, Upper: 100, Step: 10}},
		{0, 0, chart.Scale{Lower: 0, Upper: 1, Step: 0.1}},
	}
	for _, tc := range cases {
		got := chart.NewScale(tc.min, tc.max)
		if diff := cmp.Diff(tc.want, got, approx(1e-9)); diff != "" {
			t.Fatalf("NewScale(%v, %v) (-want +got):\n%s", tc.min, tc.max, diff)
		}
	}
}

func TestScaleCoversRange(t *testing.T) {
	for _, r := range [][2]float64{{-17, 42}, {0.02, 0.9}, {1200, 98000}, {-5, -1}, {7, 7}} {
		s := chart.NewScale(r[0], r[1])
		if s.Lower > r[0] || s.Upper < r[1] || s.Step <= 0 {
			t.Fatalf("range %v: scale %+v does not cover it", r, s)
		}
		if n := len(s.Ticks()); n < 2 || n > 12 {
			t.Fatalf("range %v: %d ticks", r, n)
		}
	}
}

func TestScaleTicks(t *testing.T) {
	got := chart.NewScale(0, 0).Ticks()
	if len(got) != 11 || got[3] != 0.3 || got[10] != 1 {
		t.Fatalf("ticks = %v", got)
	}
}

func TestScaleFractionClamps(t *testing.T) {
	s := chart.Scale{Lower: 0, Upper: 30, Step: 5}
	for v, want := range map[float64]float64{-5: 0, 0: 0, 15: 0.5, 30: 1, 45: 1} {
		if got := s.Fraction(v); got != want {
			t.Fatalf("Fraction(%v) = %v, want %v", v, got, want)
		}
	}
}

func TestBarChartThreeRows(t *testing.T) {
	d := newDoc(t)
	axis := chart.Axis{Min: chart.Bound(0), Max: chart.Bound(30)}
	if err := chart.RenderBarChart(d, barRows(10, 20, 30), axis); err != nil {
		t.Fatal(err)
	}
	filled := trace(t, pageOps(t, d, 1)).Filled()
	if len(filled) != 3 {
		t.Fatalf("filled rectangles = %d, want 3", len(filled))
	}
	sort.Slice(filled, func(i, j int) bool { return filled[i].Rect.LLX < filled[j].Rect.LLX })
	for i := 1; i < 3; i++ {
		prev, cur := filled[i-1].Rect, filled[i].Rect
		if cur.Height() <= prev.Height() {
			t.Fatalf("heights not increasing: %v then %v", prev.Height(), cur.Height())
		}
		if math.Abs(cur.Width()-prev.Width()) > 0.01 {
			t.Fatalf("widths differ: %v and %v", prev.Width(), cur.Width())
		}
		if gap := cur.LLX - prev.URX; math.Abs(gap-chart.BarSeparator) > 0.02 {
			t.Fatalf("gap = %v, want %v", gap, chart.BarSeparator)
		}
	}
	// Bars share the baseline.
	if math.Abs(filled[0].Rect.LLY-filled[2].Rect.LLY) > 0.01 {
		t.Fatalf("baselines differ: %v and %v", filled[0].Rect.LLY, filled[2].Rect.LLY)
	}
	if diff := cmp.Diff(3.0, filled[2].Rect.Height()/filled[0].Rect.Height(), approx(0.01)); diff != "" {
		t.Fatalf("height ratio (-want +got):\n%s", diff)
	}
}

func TestBarChartClampsBelowLowerBound(t *testing.T) {
	d := newDoc(t)
	axis := chart.Axis{Min: chart.Bound(0), Max: chart.Bound(30)}
	if err := chart.RenderBarChart(d, barRows(-5, 10), axis); err != nil {
		t.Fatal(err)
	}
	if got := len(trace(t, pageOps(t, d, 1)).Filled()); got != 1 {
		t.Fatalf("filled rectangles = %d, want 1", got)
	}
}

func TestBarChartDropsOverflowingSegments(t *testing.T) {
	d := newDoc(t)
	rows := []chart.BarRow{{
		Label: "stack",
		Values: []chart.BarValue{
			chart.NewBarValue(color.Named("red"), 20),
			chart.NewBarValue(color.Named("green"), 20),
		},
	}}
	axis := chart.Axis{Min: chart.Bound(0), Max: chart.Bound(30)}
	if err := chart.RenderBarChart(d, rows, axis); err != nil {
		t.Fatal(err)
	}
	if got := len(trace(t, pageOps(t, d, 1)).Filled()); got != 1 {
		t.Fatalf("filled rectangles = %d, want 1", got)
	}
}

func TestBarScaleUsesRowTotals(t *testing.T) {
	rows := []chart.BarRow{
		{Values: []chart.BarValue{{Value: 40}, {Value: 50}}},
		{Values: []chart.BarValue{{Value: 10}}},
	}
	s := chart.BarScale(rows, chart.Axis{})
	if s.Lower > 10 || s.Upper < 90 {
		t.Fatalf("scale %+v does not span row totals 10..90", s)
	}
}

func TestBarChartEmptyIsNoop(t *testing.T) {
	d := newDoc(t)
	before := len(d.PageContent(1))
	y := d.GetY()
	if err := chart.RenderBarChart(d, nil, chart.Axis{}); err != nil {
		t.Fatal(err)
	}
	if len(d.PageContent(1)) != before || d.GetY() != y {
		t.Fatal("empty chart changed the document")
	}
}

func TestBarChartCursorAndPageBreak(t *testing.T) {
	d := newDoc(t)
	y := d.GetY()
	if err := chart.RenderBarChart(d, barRows(1, 2), chart.Axis{}, chart.Size(0, 120)); err != nil {
		t.Fatal(err)
	}
	if d.GetY() != y+120 || d.GetX() != d.LeftMargin() {
		t.Fatalf("cursor = (%v,%v), want (%v,%v)", d.GetX(), d.GetY(), d.LeftMargin(), y+120)
	}
	d.SetY(d.PageBreakTrigger() - 50)
	if err := chart.RenderBarChart(d, barRows(1, 2), chart.Axis{Min: chart.Bound(0)}); err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 2 {
		t.Fatalf("pages = %d, want 2", d.PageCount())
	}
	if got, want := d.GetY(), d.TopMargin()+chart.DefaultBarHeight; math.Abs(got-want) > 0.001 {
		t.Fatalf("y = %v, want %v", got, want)
	}
	if got := len(trace(t, pageOps(t, d, 2)).Filled()); got != 2 {
		t.Fatalf("bars on page 2 = %d", got)
	}
}

func TestBarChartRotatesLongLabels(t *testing.T) {
	d := newDoc(t)
	rows := barRows(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	for i := range rows {
		rows[i].Label = "A rather long category label"
	}
	if err := chart.RenderBarChart(d, rows, chart.Axis{}); err != nil {
		t.Fatal(err)
	}
	ops := pageOps(t, d, 1)
	if got := countOp(ops, "cm"); got != 2*len(rows) {
		t.Fatalf("cm ops = %d, want %d", got, 2*len(rows))
	}
	if tr := trace(t, ops); tr.FinalDepth != 0 {
		t.Fatalf("unbalanced graphics state: depth %d", tr.FinalDepth)
	}
}

func TestBarChartRestoresState(t *testing.T) {
	d := newDoc(t)
	d.SetFillColor(10, 20, 30)
	d.SetLineWidth(1.5)
	margin := d.CellMargin()
	if err := chart.RenderBarChart(d, barRows(5, 6), chart.Axis{}); err != nil {
		t.Fatal(err)
	}
	r, g, b := d.FillColor()
	if r != 10 || g != 20 || b != 30 || d.LineWidth() != 1.5 || d.CellMargin() != margin {
		t.Fatalf("state not restored: fill=(%d,%d,%d) width=%v margin=%v", r, g, b, d.LineWidth(), d.CellMargin())
	}
}

func TestAxisFormatter(t *testing.T) {
	d := newDoc(t)
	calls := 0
	axis := chart.Axis{Formatter: func(v float64) string {
		calls++
		return "x"
	}}
	if err := chart.RenderBarChart(d, barRows(3, 9), axis); err != nil {
		t.Fatal(err)
	}
	if calls == 0 {
		t.Fatal("formatter not used")
	}
}

func TestPieChartNoops(t *testing.T) {
	zero := []chart.PieRow{
		chart.NewPieRow(color.Named("red"), 0, "a"),
		chart.NewPieRow(color.Named("blue"), 0, "b"),
	}
	cases := []struct {
		name string
		r    float64
		rows []chart.PieRow
	}{
		{"zero sum", 50, zero},
		{"no rows", 50, nil},
		{"zero radius", 0, []chart.PieRow{chart.NewPieRow(color.Named("red"), 1, "a")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDoc(t)
			before := len(d.PageContent(1))
			if err := chart.RenderPieChart(d, 100, 100, tc.r, tc.rows, chart.DefaultPieOptions()); err != nil {
				t.Fatal(err)
			}
			if len(d.PageContent(1)) != before {
				t.Fatal("pie chart drew something")
			}
		})
	}
}

func TestPieChartSingleRowIsFullCircle(t *testing.T) {
	d := newDoc(t)
	rows := []chart.PieRow{chart.NewPieRow(color.Named("red"), 42, "all")}
	if err := chart.RenderPieChart(d, 100, 100, 50, rows, chart.DefaultPieOptions()); err != nil {
		t.Fatal(err)
	}
	ops := pageOps(t, d, 1)
	if got := countOp(ops, "c"); got != 4 {
		t.Fatalf("curves = %d, want 4", got)
	}
	filled := trace(t, ops).Filled()
	if len(filled) != 1 {
		t.Fatalf("wedges = %d", len(filled))
	}
	h := d.PageHeight()
	want := contentstream.Rectangle{LLX: 50, LLY: h - 150, URX: 150, URY: h - 50}
	if diff := cmp.Diff(want, filled[0].Rect, approx(0.05)); diff != "" {
		t.Fatalf("bounds (-want +got):\n%s", diff)
	}
}

func TestPieChartWedges(t *testing.T) {
	d := newDoc(t)
	rows := []chart.PieRow{
		chart.NewPieRow(color.Named("red"), 1, "a"),
		chart.NewPieRow(color.Named("green"), 0, "skipped"),
		chart.NewPieRow(color.Named("blue"), 3, "b"),
	}
	if err := chart.RenderPieChart(d, 100, 100, 50, rows, chart.DefaultPieOptions()); err != nil {
		t.Fatal(err)
	}
	if got := countOp(pageOps(t, d, 1), "b"); got != 2 {
		t.Fatalf("wedges = %d, want 2", got)
	}
}

func TestPieChartPageBreak(t *testing.T) {
	d := newDoc(t)
	rows := []chart.PieRow{chart.NewPieRow(color.Named("red"), 1, "a")}
	if err := chart.RenderPieChart(d, 100, d.PageBreakTrigger()-10, 50, rows, chart.DefaultPieOptions()); err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 2 {
		t.Fatalf("pages = %d, want 2", d.PageCount())
	}
	filled := trace(t, pageOps(t, d, 2)).Filled()
	if len(filled) != 1 {
		t.Fatalf("wedges on page 2 = %d", len(filled))
	}
	top := d.PageHeight() - d.TopMargin()
	if math.Abs(filled[0].Rect.URY-top) > 0.05 {
		t.Fatalf("circle top = %v, want %v", filled[0].Rect.URY, top)
	}
}

func TestColourFallback(t *testing.T) {
	for _, spec := range []color.Spec{color.Unset(), color.Named("no-such-colour"), color.FromHex("#zz")} {
		if got := chart.NewBarValue(spec, 1).Color; !got.Equal(color.DarkGray) {
			t.Fatalf("bar value colour = %v", got)
		}
		if got := chart.NewLegend(spec, "x").Color; !got.Equal(color.DarkGray) {
			t.Fatalf("legend colour = %v", got)
		}
	}
	d := newDoc(t)
	rows := []chart.PieRow{chart.NewPieRow(color.Unset(), 1, "a")}
	if err := chart.RenderPieChart(d, 100, 100, 50, rows, chart.DefaultPieOptions()); err != nil {
		t.Fatal(err)
	}
	filled := trace(t, pageOps(t, d, 1)).Filled()
	want := [3]float64{169.0 / 255, 169.0 / 255, 169.0 / 255}
	if diff := cmp.Diff(want, filled[0].FillRGB, approx(0.001)); diff != "" {
		t.Fatalf("fill (-want +got):\n%s", diff)
	}
}

func TestLegendsSizes(t *testing.T) {
	d := newDoc(t)
	legends := []chart.Legend{
		chart.NewLegend(color.Named("red"), "Short"),
		chart.NewLegend(color.Named("blue"), "A longer label"),
	}
	hw, vw := chart.LegendsWidth(d, legends, false), chart.LegendsWidth(d, legends, true)
	if hw <= vw || vw <= d.StringWidth("A longer label") {
		t.Fatalf("widths: horizontal %v vertical %v", hw, vw)
	}
	hh, vh := chart.LegendsHeight(d, legends, false), chart.LegendsHeight(d, legends, true)
	if math.Abs(vh-2*hh) > 1e-9 {
		t.Fatalf("heights: horizontal %v vertical %v", hh, vh)
	}
	if chart.LegendsWidth(d, nil, false) != 0 || chart.LegendsHeight(d, nil, true) != 0 {
		t.Fatal("empty legends take space")
	}
}

func TestRenderLegends(t *testing.T) {
	legends := []chart.Legend{
		chart.NewLegend(color.Named("red"), "One"),
		chart.NewLegend(color.Named("blue"), "Two"),
		chart.NewLegend(color.Named("green"), "Three"),
	}
	t.Run("horizontal squares", func(t *testing.T) {
		d := newDoc(t)
		y := d.GetY()
		if err := chart.RenderLegends(d, legends, false); err != nil {
			t.Fatal(err)
		}
		if got := len(trace(t, pageOps(t, d, 1)).Filled()); got != 3 {
			t.Fatalf("swatches = %d", got)
		}
		if got, want := d.GetY(), y+chart.LegendsHeight(d, legends, false); math.Abs(got-want) > 1e-9 {
			t.Fatalf("y = %v, want %v", got, want)
		}
	})
	t.Run("vertical circles", func(t *testing.T) {
		d := newDoc(t)
		d.SetXY(100, 200)
		if err := chart.RenderVerticalLegends(d, legends, true); err != nil {
			t.Fatal(err)
		}
		ops := pageOps(t, d, 1)
		if got := countOp(ops, "c"); got != 12 {
			t.Fatalf("curves = %d, want 12", got)
		}
		if d.GetX() != 100 || d.GetY() != 200 {
			t.Fatalf("cursor = (%v,%v), want (100,200)", d.GetX(), d.GetY())
		}
	})
}

func TestReductions(t *testing.T) {
	if got := chart.Sum(1, 2, 3.5); got != 6.5 {
		t.Fatalf("Sum = %v", got)
	}
	if got := chart.Min(4, -2, 9); got != -2 {
		t.Fatalf("Min = %v", got)
	}
	if got := chart.Max(4, -2, 9); got != 9 {
		t.Fatalf("Max = %v", got)
	}
	if chart.Min() != 0 || chart.Max() != 0 || chart.Sum() != 0 {
		t.Fatal("empty reductions not zero")
	}
}

func TestScriptFormatter(t *testing.T) {
	f, err := chart.ScriptFormatter(`value.toFixed(1) + " CHF"`)
	if err != nil {
		t.Fatal(err)
	}
	if got := f(12); got != "12.0 CHF" {
		t.Fatalf("got %q", got)
	}
	if _, err := chart.ScriptFormatter("value +"); err == nil {
		t.Fatal("expected compile error")
	}
	broken, err := chart.ScriptFormatter("missing(value)")
	if err != nil {
		t.Fatal(err)
	}
	if got := broken(12.5); got != "12.5" {
		t.Fatalf("fallback = %q", got)
	}
}
