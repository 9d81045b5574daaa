package richtext_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/laurentmuller/calculation-sub010/contentstream"
	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/richtext"
)

func newDoc(t *testing.T) *document.Document {
	t.Helper()
	d := document.New(document.WithUnit(document.UnitMM), document.WithCompression(false))
	d.AddPage()
	return d
}

func fontNames(t *testing.T, d *document.Document) map[string]bool {
	t.Helper()
	ops, err := contentstream.Parse(d.PageContent(1))
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, op := range ops {
		if op.Operator == "Tf" && len(op.Operands) > 0 && op.Operands[0].Kind == contentstream.OperandName {
			names[op.Operands[0].Name] = true
		}
	}
	return names
}

func TestMarkdownFontsAndLinks(t *testing.T) {
	d := newDoc(t)
	y := d.GetY()
	src := []byte("Plain *italic* and **bold** with `code` and a [link](https://example.com).\n\nSecond paragraph.")
	if err := richtext.Markdown(d, 5, src); err != nil {
		t.Fatal(err)
	}
	if d.GetY() <= y {
		t.Fatalf("y = %v, want below %v", d.GetY(), y)
	}
	if got := d.PageLinkCount(1); got != 1 {
		t.Fatalf("links = %d, want 1", got)
	}
	if got := len(fontNames(t, d)); got < 4 {
		t.Fatalf("distinct fonts = %d, want at least 4", got)
	}
	if diff := cmp.Diff([]any{"helvetica", "", 12.0}, []any{d.FontFamily(), d.FontStyle(), d.FontSize()}); diff != "" {
		t.Fatalf("font not restored (-want +got):\n%s", diff)
	}
	r, g, b := d.TextColor()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("text colour = %d %d %d, want black", r, g, b)
	}
}

func TestMarkdownAutoLinkAndList(t *testing.T) {
	d := newDoc(t)
	src := []byte("- one <https://example.org>\n- two\n\n1. first\n2. second\n")
	if err := richtext.Markdown(d, 5, src); err != nil {
		t.Fatal(err)
	}
	if got := d.PageLinkCount(1); got != 1 {
		t.Fatalf("links = %d, want 1", got)
	}
	// four items, one line each
	if got, want := d.GetY(), d.TopMargin()+4*5; got < want {
		t.Fatalf("y = %v, want at least %v", got, want)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	d := newDoc(t)
	x, y := d.GetX(), d.GetY()
	if err := richtext.Markdown(d, 5, nil); err != nil {
		t.Fatal(err)
	}
	if d.GetX() != x || d.GetY() != y {
		t.Fatalf("cursor moved to %v,%v", d.GetX(), d.GetY())
	}
}
