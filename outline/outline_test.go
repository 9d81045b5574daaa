package outline_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/outline"
)

func newDoc(t *testing.T) *document.Document {
	t.Helper()
	d := document.New(
		document.WithUnit(document.UnitMM),
		document.WithCompression(false),
		document.WithFileID([16]byte{9}),
		document.WithInfo(document.Info{CreationDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}),
	)
	d.AddPage()
	return d
}

func TestLevelInvariant(t *testing.T) {
	o := outline.New(newDoc(t))
	if err := o.Add("first", true, 1, false, false); !errors.Is(err, outline.ErrInvalidLevel) {
		t.Fatalf("first entry at level 1: got %v", err)
	}
	for _, level := range []int{0, 1, 2} {
		if err := o.Add("entry", true, level, false, false); err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
	}
	if err := o.Add("jump", true, 4, false, false); !errors.Is(err, outline.ErrInvalidLevel) {
		t.Fatalf("level 4 after 2: got %v", err)
	}
	if err := o.Add("negative", true, -1, false, false); !errors.Is(err, outline.ErrInvalidLevel) {
		t.Fatalf("level -1: got %v", err)
	}
	if err := o.Add("deeper", true, 3, false, false); err != nil {
		t.Fatalf("level 3 after 2: %v", err)
	}
	if err := o.Add("back", true, 0, false, false); err != nil {
		t.Fatalf("level 0 after 3: %v", err)
	}
	if o.Len() != 5 {
		t.Fatalf("entries = %d, want 5", o.Len())
	}
}

func TestAddCapturesPosition(t *testing.T) {
	d := newDoc(t)
	o := outline.New(d)
	d.SetY(80)
	if err := o.Add("\xe9t\xe9", false, 0, true, true); err != nil {
		t.Fatal(err)
	}
	d.AddPage()
	if err := o.Add("top", true, 0, false, false); err != nil {
		t.Fatal(err)
	}
	got := o.Entries()
	if got[0].Text != "été" || got[0].Page != 1 || got[0].Y != 80 || got[0].Link == 0 {
		t.Fatalf("first entry = %+v", got[0])
	}
	if got[1].Page != 2 || got[1].Y != 0 || got[1].Link != 0 {
		t.Fatalf("second entry = %+v", got[1])
	}
}

func TestResolve(t *testing.T) {
	levels := []int{0, 1, 2, 1, 0, 1}
	entries := make([]outline.Entry, len(levels))
	for i, l := range levels {
		entries[i].Level = l
	}
	first, last := outline.Resolve(entries)
	if first != 0 || last != 4 {
		t.Fatalf("top level = %d..%d, want 0..4", first, last)
	}
	type rel struct{ Parent, First, Last, Prev, Next int }
	const n = outline.None
	want := []rel{
		{n, 1, 3, n, 4},
		{0, 2, 2, n, 3},
		{1, n, n, n, n},
		{0, n, n, 1, n},
		{n, 5, 5, 0, n},
		{4, n, n, n, n},
	}
	got := make([]rel, len(entries))
	for i, e := range entries {
		got[i] = rel{e.Parent, e.First, e.Last, e.Prev, e.Next}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("relations (-want +got):\n%s", diff)
	}
}

func TestOutputWritesOutline(t *testing.T) {
	d := newDoc(t)
	o := outline.New(d)
	for i, l := range []int{0, 1, 0} {
		if i > 0 {
			d.AddPage()
		}
		if err := o.Add("Section", true, l, true, true); err != nil {
			t.Fatal(err)
		}
	}
	out, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{"/Type /Outlines", "/Outlines ", "/PageMode /UseOutlines", "/Dest [", "/Count -1", "/Count 2"} {
		if !strings.Contains(s, want) {
			t.Fatalf("output lacks %q", want)
		}
	}
	if strings.Contains(s, "/Count 0") {
		t.Fatal("bookmark written with /Count 0")
	}
	if got := strings.Count(s, "/Title (Section)"); got != 3 {
		t.Fatalf("bookmarks = %d, want 3", got)
	}
	if err := o.Add("late", true, 0, false, false); !errors.Is(err, document.ErrClosed) {
		t.Fatalf("add after output: got %v", err)
	}
}

func TestNestedOutlineIsStrictlyValid(t *testing.T) {
	d := newDoc(t)
	o := outline.New(d)
	for i, l := range []int{0, 1, 2, 1, 0, 1} {
		if i > 0 {
			d.AddPage()
		}
		if err := o.Add("Part", true, l, true, true); err != nil {
			t.Fatal(err)
		}
	}
	if err := o.AddPageIndex(outline.DefaultIndexOptions()); err != nil {
		t.Fatal(err)
	}
	entries := o.Entries()
	outline.Resolve(entries)
	if diff := cmp.Diff([]int{3, 1, 0, 0, 1, 0, 0}, outline.Descendants(entries)); diff != "" {
		t.Fatalf("descendants (-want +got):\n%s", diff)
	}
	out, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for want, n := range map[string]int{"/Count -3": 1, "/Count -1": 2, "/Count 3": 1, "/Count 0": 0} {
		if got := strings.Count(s, want); got != n {
			t.Errorf("%q written %d times, want %d", want, got, n)
		}
	}
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationStrict
	ctx, err := api.ReadContext(bytes.NewReader(out), conf)
	if err != nil {
		t.Fatal(err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		t.Fatalf("strict validation: %v", err)
	}
}

func TestOutputWithoutBookmarks(t *testing.T) {
	d := newDoc(t)
	outline.New(d)
	out, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "/Outlines") {
		t.Fatal("empty outline written")
	}
}

func TestAddPageIndex(t *testing.T) {
	d := newDoc(t)
	o := outline.New(d)
	if err := o.AddPageIndex(outline.DefaultIndexOptions()); err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 1 {
		t.Fatal("index without bookmarks added a page")
	}
	for i, l := range []int{0, 1, 1} {
		if i > 0 {
			d.AddPage()
		}
		if err := o.Add("Chapter", true, l, true, true); err != nil {
			t.Fatal(err)
		}
	}
	if err := o.AddPageIndex(outline.DefaultIndexOptions()); err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 4 {
		t.Fatalf("pages = %d, want 4", d.PageCount())
	}
	if got := d.PageLinkCount(4); got != 3 {
		t.Fatalf("index links = %d, want 3", got)
	}
	entries := o.Entries()
	if len(entries) != 4 || entries[3].Text != "Index" || entries[3].Page != 4 || entries[3].Level != 0 {
		t.Fatalf("title bookmark = %+v", entries[len(entries)-1])
	}
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestFitText(t *testing.T) {
	d := newDoc(t)
	long := strings.Repeat("Calculation overview ", 20)
	width := 50.0
	got := outline.FitText(d, long, width)
	if got == long || !strings.HasPrefix(long, got) {
		t.Fatalf("%q is not a strict prefix", got)
	}
	if d.StringWidth(got) > width {
		t.Fatalf("clipped width %v exceeds %v", d.StringWidth(got), width)
	}
	if next := []rune(long)[len([]rune(got))]; d.StringWidth(got+string(next)) <= width {
		t.Fatal("clipped more than needed")
	}
	if got := outline.FitText(d, "short", width); got != "short" {
		t.Fatalf("short text changed to %q", got)
	}
}
