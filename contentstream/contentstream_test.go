package contentstream

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/laurentmuller/calculation-sub010/coords"
)

func TestParseOperands(t *testing.T) {
	ops, err := Parse([]byte("q 1 0 0 1 10 20 cm\n/GS1 gs\n(a\\(b\\)) Tj [<0041> -20 <0042>] TJ\nQ"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var got []string
	for _, op := range ops {
		got = append(got, op.Operator)
	}
	if diff := cmp.Diff([]string{"q", "cm", "gs", "Tj", "TJ", "Q"}, got); diff != "" {
		t.Fatalf("operators (-want +got):\n%s", diff)
	}
	if ops[2].Operands[0].Name != "GS1" {
		t.Fatalf("name operand = %q", ops[2].Operands[0].Name)
	}
	if string(ops[3].Operands[0].String) != "a(b)" {
		t.Fatalf("literal = %q", ops[3].Operands[0].String)
	}
	arr := ops[4].Operands[0].Array
	if len(arr) != 3 || string(arr[0].String) != "\x00A" || arr[1].Number != -20 {
		t.Fatalf("array operand = %+v", arr)
	}
}

func TestParseDanglingOperand(t *testing.T) {
	if _, err := Parse([]byte("1 2 m 3")); err == nil {
		t.Fatalf("expected dangling operand error")
	}
}

func TestBuilderTracksDepth(t *testing.T) {
	var b Builder
	b.Save()
	b.Transform(coords.Translate(5, 5))
	b.Save()
	b.Restore()
	if b.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", b.Depth())
	}
	b.Restore()
	if b.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", b.Depth())
	}
}

func TestBuilderDrawPath(t *testing.T) {
	var b Builder
	p := (&Path{}).MoveTo(0, 0).LineTo(10, 0).CurveTo(10, 5, 5, 10, 0, 10).Close()
	b.DrawPath(p, PaintFillStroke)
	want := "0 0 m\n10 0 l\n10 5 5 10 0 10 c\nh\nB\n"
	if got := string(b.Bytes()); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestTracerRectangles(t *testing.T) {
	ops, err := Parse([]byte("0.5 0 0 rg\n10 20 30 40 re f\nq 1 0 0 1 100 0 cm 0 0 5 5 re B Q\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tr, err := NewTracer().Trace(ops)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	filled := tr.Filled()
	if len(filled) != 2 {
		t.Fatalf("filled shapes = %d, want 2", len(filled))
	}
	want := Rectangle{LLX: 10, LLY: 20, URX: 40, URY: 60}
	if diff := cmp.Diff(want, filled[0].Rect); diff != "" {
		t.Fatalf("first rect (-want +got):\n%s", diff)
	}
	if filled[0].FillRGB != [3]float64{0.5, 0, 0} {
		t.Fatalf("fill colour = %v", filled[0].FillRGB)
	}
	if math.Abs(filled[1].Rect.LLX-100) > 1e-9 {
		t.Fatalf("transformed rect = %+v", filled[1].Rect)
	}
	if tr.FinalDepth != 0 || tr.MaxDepth != 1 {
		t.Fatalf("depth final=%d max=%d", tr.FinalDepth, tr.MaxDepth)
	}
}

func TestTracerUnbalancedRestore(t *testing.T) {
	ops, _ := Parse([]byte("Q"))
	if _, err := NewTracer().Trace(ops); err == nil {
		t.Fatalf("expected error on unbalanced Q")
	}
}

func TestNum(t *testing.T) {
	for in, want := range map[float64]string{1.5: "1.5", 2: "2", -0.001: "0", 3.14159: "3.14"} {
		if got := Num(in, 2); got != want {
			t.Errorf("Num(%v) = %q, want %q", in, got, want)
		}
	}
}
