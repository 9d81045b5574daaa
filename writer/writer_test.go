package writer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/laurentmuller/calculation-sub010/raw"
)

func TestSerializePrimitives(t *testing.T) {
	cases := []struct {
		name string
		obj  raw.Object
		want string
	}{
		{"name", raw.Name("Type"), "/Type"},
		{"name escaped", raw.Name("A B#"), "/A#20B#23"},
		{"integer", raw.Int(-12), "-12"},
		{"real", raw.Float(1.5), "1.5"},
		{"real trimmed", raw.Float(2.0), "2"},
		{"real prec", raw.FloatPrec(0.12345, 3), "0.123"},
		{"negative zero", raw.Float(-0.00001), "0"},
		{"bool", raw.Bool(true), "true"},
		{"null", raw.Null{}, "null"},
		{"string", raw.Str("a(b)\\"), `(a\(b\)\\)`},
		{"hex", raw.HexStr([]byte{0xAB, 0x01}), "<AB01>"},
		{"array", raw.NewArray(raw.Int(1), raw.Name("X")), "[1 /X]"},
		{"ref", raw.RefTo(raw.ObjectRef{Num: 4}), "4 0 R"},
		{"dict order", raw.DictOf("Type", raw.Name("Page"), "A", raw.Int(1)), "<</Type /Page/A 1>>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(Serialize(tc.obj)); got != tc.want {
				t.Fatalf("Serialize = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriterProducesXRef(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Config{FileID: []byte{1, 2}})
	catalog := w.Alloc()
	pages := w.Alloc()
	if err := w.Put(pages, raw.DictOf("Type", raw.Name("Pages"), "Count", raw.Int(0), "Kids", raw.NewArray())); err != nil {
		t.Fatalf("put pages: %v", err)
	}
	if err := w.Put(catalog, raw.DictOf("Type", raw.Name("Catalog"), "Pages", raw.RefTo(pages))); err != nil {
		t.Fatalf("put catalog: %v", err)
	}
	if err := w.Finish(catalog, nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"%PDF-1.3", "1 0 obj", "2 0 obj", "xref\n0 3\n", "/Root 1 0 R", "/ID [<0102> <0102>]", "%%EOF"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if err := w.Put(catalog, raw.Null{}); !errors.Is(err, ErrFinished) {
		t.Fatalf("put after finish = %v, want ErrFinished", err)
	}
}

func TestWriterRejectsMissingObjects(t *testing.T) {
	w := New(&bytes.Buffer{}, Config{})
	root := w.Alloc()
	w.Alloc()
	if err := w.Put(root, raw.NewDict()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := w.Finish(root, nil); err == nil {
		t.Fatalf("expected error for unwritten object")
	}
}

func TestWriterCompressesStreams(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Config{Compress: true})
	ref := w.Alloc()
	data := bytes.Repeat([]byte("0 0 m 10 10 l S\n"), 50)
	if err := w.Put(ref, raw.NewStream(nil, data)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.Contains(buf.String(), "/Filter /FlateDecode") {
		t.Fatalf("stream not compressed: %s", buf.String())
	}
	if strings.Contains(buf.String(), "10 10 l") {
		t.Fatalf("stream data written uncompressed")
	}
}
