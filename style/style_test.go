package style_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/style"
)

func TestFontStyleString(t *testing.T) {
	cases := map[style.FontStyle]string{
		style.Regular:                               "",
		style.Bold:                                  "B",
		style.Italic | style.Bold:                   "BI",
		style.Bold | style.Italic | style.Underline: "BIU",
		style.Underline:                             "U",
	}
	for fs, want := range cases {
		if got := fs.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", fs, got, want)
		}
		if back := style.ParseFontStyle(want); back != fs {
			t.Fatalf("ParseFontStyle(%q) = %d, want %d", want, back, fs)
		}
	}
}

func TestBorderString(t *testing.T) {
	if got := (style.Border{Sides: style.All}).String(); got != "LTRB" {
		t.Fatalf("All = %q", got)
	}
	if got := (style.Border{Sides: style.Top | style.Bottom}).String(); got != "TB" {
		t.Fatalf("Top|Bottom = %q", got)
	}
	if !(style.Border{}).IsNone() {
		t.Fatal("zero border should be none")
	}
}

func TestWithMethodsCopy(t *testing.T) {
	base := style.Default()
	bold := base.WithFontStyle(style.Bold).WithFill(color.Red)
	if base.Font.Style != style.Regular || base.Fill != nil {
		t.Fatal("With methods mutated the receiver")
	}
	if bold.Fill == nil || *bold.Fill != color.Red || bold.Font.Style != style.Bold {
		t.Fatalf("bold = %+v", bold)
	}
	if header := style.HeaderCell(); !header.HasFill() || header.Font.Style&style.Bold == 0 || header.Border.Sides != style.All {
		t.Fatalf("header cell = %+v", header)
	}
}

func TestApply(t *testing.T) {
	d := document.New(document.WithUnit(document.UnitPoint))
	s := style.Cell().WithFontStyle(style.Bold|style.Underline).WithFontSize(14).WithText(color.Blue).WithFill(color.Header)
	if err := s.Apply(d); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	type state struct {
		Family, Style string
		Size          float64
		Draw, Fill    [3]int
		Text          [3]int
		Width         float64
	}
	got := state{Family: d.FontFamily(), Style: d.FontStyle(), Size: d.FontSize(), Width: d.LineWidth()}
	got.Draw[0], got.Draw[1], got.Draw[2] = d.DrawColor()
	got.Fill[0], got.Fill[1], got.Fill[2] = d.FillColor()
	got.Text[0], got.Text[1], got.Text[2] = d.TextColor()
	want := state{
		Family: "helvetica", Style: "BU", Size: 14,
		Draw:  [3]int{221, 221, 221},
		Fill:  [3]int{245, 245, 245},
		Text:  [3]int{0, 0, 255},
		Width: style.DefaultLineWidth,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	if err := style.Default().Apply(d); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if r, g, b := d.FillColor(); r != 255 || g != 255 || b != 255 {
		t.Fatalf("default fill = %d %d %d", r, g, b)
	}
	if d.FontStyle() != "" || d.FontSize() != style.DefaultSize {
		t.Fatalf("default font = %q %v", d.FontStyle(), d.FontSize())
	}
}

func TestApplyUnknownFamily(t *testing.T) {
	d := document.New()
	s := style.Default().WithFont(style.Font{Family: "wingdings", Size: 10})
	if err := s.Apply(d); err == nil {
		t.Fatal("expected error")
	}
}
