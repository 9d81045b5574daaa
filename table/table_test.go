package table_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/laurentmuller/calculation-sub010/contentstream"
	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/style"
	"github.com/laurentmuller/calculation-sub010/table"
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

func countOps(t *testing.T, d *document.Document, page int, name string) int {
	t.Helper()
	ops, err := contentstream.Parse(d.PageContent(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n := 0
	for _, op := range ops {
		if op.Operator == name {
			n++
		}
	}
	return n
}

func approx() cmp.Option {
	return cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 0.001 })
}

func TestAlignmentString(t *testing.T) {
	got := []string{table.AlignLeft.String(), table.AlignCenter.String(), table.AlignRight.String()}
	if diff := cmp.Diff([]string{"L", "C", "R"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWidths(t *testing.T) {
	d := newDoc(t)
	cols := []table.Column{
		table.Left("Code", 50, true),
		table.Left("Description", 100, false),
		table.Right("Amount", 50, false),
	}
	t.Run("as given", func(t *testing.T) {
		tb := table.New(d).AddColumns(cols...)
		if diff := cmp.Diff([]float64{50, 100, 50}, tb.Widths(), approx()); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("full width", func(t *testing.T) {
		tb := table.New(d, table.FullWidth()).AddColumns(cols...)
		rest := d.PrintableWidth() - 50
		want := []float64{50, rest * 2 / 3, rest / 3}
		if diff := cmp.Diff(want, tb.Widths(), approx()); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRowErrors(t *testing.T) {
	d := newDoc(t)
	if err := table.New(d).AddRow("a"); !errors.Is(err, table.ErrNoColumns) {
		t.Fatalf("no columns: got %v", err)
	}
	tb := table.New(d).AddColumns(table.Left("A", 50, false), table.Left("B", 50, false))
	if err := tb.EndRow(); !errors.Is(err, table.ErrNoRow) {
		t.Fatalf("no row: got %v", err)
	}
	if err := tb.AddRow("a", "b", "c"); !errors.Is(err, table.ErrColumnCount) {
		t.Fatalf("too many cells: got %v", err)
	}
	if err := tb.AddRow("a"); !errors.Is(err, table.ErrColumnCount) {
		t.Fatalf("too few cells: got %v", err)
	}
	if err := tb.StartRow(nil).Add("a").CompleteRow(); err != nil {
		t.Fatalf("complete row: %v", err)
	}
}

func TestRowDrawing(t *testing.T) {
	d := newDoc(t)
	tb := table.New(d).AddColumns(table.Left("A", 100, false), table.Right("B", 60, false))
	y := d.GetY()
	if err := tb.OutputHeaders(); err != nil {
		t.Fatal(err)
	}
	if err := tb.StartRow(nil).Add("text").AddAmount(12.5).EndRow(); err != nil {
		t.Fatal(err)
	}
	if got, want := d.GetY(), y+2*tb.LineHeight(); math.Abs(got-want) > 0.001 {
		t.Fatalf("y = %v, want %v", got, want)
	}
	if d.GetX() != d.LeftMargin() {
		t.Fatalf("x = %v, want left margin", d.GetX())
	}
	// Header cells are filled and bordered, body cells bordered only.
	if got := countOps(t, d, 1, "B"); got != 2 {
		t.Fatalf("filled cells = %d, want 2", got)
	}
	if got := countOps(t, d, 1, "re"); got != 4 {
		t.Fatalf("cell rects = %d, want 4", got)
	}
}

func TestRowHeightFollowsWrappedText(t *testing.T) {
	d := newDoc(t)
	tb := table.New(d, table.WithRowStyle(style.NoBorder())).AddColumns(table.Left("A", 60, false))
	text := "one two three four five six seven eight nine ten"
	if err := style.NoBorder().Apply(d); err != nil {
		t.Fatal(err)
	}
	lines := len(d.SplitText(text, 60))
	if lines < 2 {
		t.Fatalf("expected wrapping, got %d line", lines)
	}
	y := d.GetY()
	if err := tb.AddRow(text); err != nil {
		t.Fatal(err)
	}
	if got, want := d.GetY()-y, float64(lines)*tb.LineHeight(); math.Abs(got-want) > 0.001 {
		t.Fatalf("row height = %v, want %v", got, want)
	}
}

func TestPageBreakRepeatsHeaders(t *testing.T) {
	d := newDoc(t)
	tb := table.New(d, table.RepeatHeader()).AddColumns(table.Left("A", 100, false), table.Left("B", 100, false))
	if err := tb.OutputHeaders(); err != nil {
		t.Fatal(err)
	}
	d.SetY(d.PageBreakTrigger() - 1)
	if err := tb.AddRow("x", "y"); err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 2 {
		t.Fatalf("pages = %d, want 2", d.PageCount())
	}
	if got := countOps(t, d, 2, "B"); got != 2 {
		t.Fatalf("header cells on page 2 = %d, want 2", got)
	}
	if got := countOps(t, d, 2, "re"); got != 4 {
		t.Fatalf("cells on page 2 = %d, want 4", got)
	}
}

func TestSingleLineAndLink(t *testing.T) {
	d := newDoc(t)
	tb := table.New(d).AddColumns(table.Left("A", 100, false), table.Left("B", 50, false))
	if err := tb.SingleLine("total", nil, table.AlignCenter); err != nil {
		t.Fatal(err)
	}
	ops, err := contentstream.Parse(d.PageContent(1))
	if err != nil {
		t.Fatal(err)
	}
	trace, err := contentstream.NewTracer().Trace(ops)
	if err != nil {
		t.Fatal(err)
	}
	var widths []float64
	for _, s := range trace.Shapes {
		if s.Rects > 0 {
			widths = append(widths, s.Rect.Width())
		}
	}
	if diff := cmp.Diff([]float64{150}, widths, approx()); diff != "" {
		t.Fatalf("rect widths (-want +got):\n%s", diff)
	}

	link := d.AddLink()
	if err := tb.StartRow(nil).AddCell(table.Cell{Text: "go", Cols: 2, Link: document.Internal(link)}).EndRow(); err != nil {
		t.Fatal(err)
	}
	if got := d.PageLinkCount(1); got != 1 {
		t.Fatalf("links = %d, want 1", got)
	}
}

type fakeTranslator map[string]string

func (f fakeTranslator) Trans(id string, params map[string]string) string {
	if s, ok := f[id]; ok {
		return s + params["suffix"]
	}
	return id
}

func TestTranslation(t *testing.T) {
	d := newDoc(t)
	tr := fakeTranslator{"col.name": "Name", "row.total": "Total"}
	tb := table.New(d, table.WithTranslator(tr)).AddColumns(table.Left("col.name", 100, false))
	if err := tb.OutputHeaders(); err != nil {
		t.Fatal(err)
	}
	if err := tb.StartRow(nil).AddTrans("row.total", map[string]string{"suffix": ":"}).EndRow(); err != nil {
		t.Fatal(err)
	}
	if got := countOps(t, d, 1, "Tj") + countOps(t, d, 1, "TJ"); got != 2 {
		t.Fatalf("text shows = %d, want 2", got)
	}
}

func TestFormatter(t *testing.T) {
	en := table.NewFormatter(language.English)
	cases := []struct {
		name, got, want string
	}{
		{"amount", en.Amount(1234.5), "1,234.50"},
		{"negative amount", en.Amount(-0.5), "-0.50"},
		{"int", en.Int(1234567), "1,234,567"},
		{"percent", en.Percent(0.25), "25%"},
		{"german amount", table.NewFormatter(language.German).Amount(1234.5), "1.234,50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
	en.PercentDecimals = 1
	if got := en.Percent(0.125); got != "12.5%" {
		t.Fatalf("percent with decimals = %q", got)
	}
}
