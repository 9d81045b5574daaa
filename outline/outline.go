// Package outline records bookmarks while pages are written and emits them
// as the document outline (the reader's bookmark tree) when the document is
// output. It also renders an index page listing the bookmarks.
package outline

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/observability"
	"github.com/laurentmuller/calculation-sub010/raw"
)

// ErrInvalidLevel is returned when a bookmark level is negative or more
// than one deeper than the previous bookmark.
var ErrInvalidLevel = errors.New("outline: invalid bookmark level")

// None marks a missing relative in an Entry.
const None = -1

// Entry is one bookmark. Relatives are indexes into Entries; Parent is None
// for top level entries. They are resolved when the outline is emitted.
type Entry struct {
	Text  string
	Level int
	Page  int
	Y     float64
	// Link is the internal link id, 0 when none was created.
	Link int

	Parent, First, Last, Prev, Next int
}

type state int

const (
	accumulating state = iota
	finalizing
	emitted
)

// Outline is bound to one document. It is not safe for concurrent use.
type Outline struct {
	doc     *document.Document
	entries []Entry
	state   state
}

// New returns an outline writing its objects when d is output.
func New(d *document.Document) *Outline {
	o := &Outline{doc: d}
	d.AddFinalizer(o)
	return o
}

// Add appends a bookmark on the current page. Text is converted from
// Latin-1 unless isUTF8 is set. The bookmark points at the cursor when
// useCurrentY is set and at the top of the page otherwise; createLink also
// registers an internal link to that position.
func (o *Outline) Add(text string, isUTF8 bool, level int, useCurrentY, createLink bool) error {
	if o.state != accumulating {
		return document.ErrClosed
	}
	maxLevel := 0
	if n := len(o.entries); n > 0 {
		maxLevel = o.entries[n-1].Level + 1
	}
	if level < 0 || level > maxLevel {
		o.doc.Logger().Warn("bookmark rejected",
			observability.String("text", text),
			observability.Int("level", level),
			observability.Int("max_level", maxLevel))
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidLevel, level, maxLevel)
	}
	if !isUTF8 {
		s, err := charmap.ISO8859_1.NewDecoder().String(text)
		if err != nil {
			return fmt.Errorf("outline: convert %q: %w", text, err)
		}
		text = s
	}
	e := Entry{Text: text, Level: level, Page: o.doc.PageNo(), Parent: None, First: None, Last: None, Prev: None, Next: None}
	if useCurrentY {
		e.Y = o.doc.GetY()
	}
	if createLink {
		e.Link = o.doc.AddLink()
		o.doc.SetLink(e.Link, e.Y, e.Page)
	}
	o.entries = append(o.entries, e)
	return nil
}

// Entries returns a copy of the bookmarks.
func (o *Outline) Entries() []Entry { return append([]Entry(nil), o.entries...) }

// Len returns the number of bookmarks.
func (o *Outline) Len() int { return len(o.entries) }

// Resolve links every entry to its parent, children and siblings. Levels
// must respect the Add invariant. The returned values are the first and
// last top level entries.
func Resolve(entries []Entry) (first, last int) {
	first, last = None, None
	// lastAt[l] is the latest entry seen at level l.
	var lastAt []int
	for i := range entries {
		e := &entries[i]
		e.Parent, e.First, e.Last, e.Prev, e.Next = None, None, None, None, None
		if e.Level > 0 {
			e.Parent = lastAt[e.Level-1]
			p := &entries[e.Parent]
			if p.First == None {
				p.First = i
			}
			p.Last = i
		} else {
			if first == None {
				first = i
			}
			last = i
		}
		if e.Level < len(lastAt) {
			if prev := lastAt[e.Level]; entries[prev].Parent == e.Parent {
				e.Prev = prev
				entries[prev].Next = i
			}
			lastAt = lastAt[:e.Level+1]
			lastAt[e.Level] = i
		} else {
			lastAt = append(lastAt, i)
		}
	}
	return first, last
}

// Descendants returns, for every resolved entry, how many entries sit below
// it in the tree.
func Descendants(entries []Entry) []int {
	n := make([]int, len(entries))
	for i := range entries {
		for p := entries[i].Parent; p != None; p = entries[p].Parent {
			n[p]++
		}
	}
	return n
}

// Finalize writes one object per bookmark and the outline root, and points
// the catalog at it.
func (o *Outline) Finalize(objs *document.Objects) error {
	if o.state == emitted {
		return nil
	}
	o.state = finalizing
	defer func() { o.state = emitted }()
	if len(o.entries) == 0 {
		return nil
	}
	first, last := Resolve(o.entries)
	below := Descendants(o.entries)
	root := objs.Alloc()
	refs := make([]raw.ObjectRef, len(o.entries))
	for i := range refs {
		refs[i] = objs.Alloc()
	}
	ref := func(i int) raw.Object {
		if i == None {
			return raw.RefTo(root)
		}
		return raw.RefTo(refs[i])
	}
	for i, e := range o.entries {
		dict := raw.DictOf("Title", objs.TextString(e.Text), "Parent", ref(e.Parent))
		if e.Prev != None {
			dict.Set("Prev", ref(e.Prev))
		}
		if e.Next != None {
			dict.Set("Next", ref(e.Next))
		}
		if e.First != None {
			dict.Set("First", ref(e.First))
			dict.Set("Last", ref(e.Last))
		}
		dict.Set("Dest", objs.Dest(e.Page, e.Y))
		// Parents are written closed, so Count is negative.
		if below[i] > 0 {
			dict.Set("Count", raw.Int(-below[i]))
		}
		if err := objs.Put(refs[i], dict); err != nil {
			return fmt.Errorf("outline: bookmark %d: %w", i, err)
		}
	}
	visible := 0
	for _, e := range o.entries {
		if e.Level == 0 {
			visible++
		}
	}
	rootDict := raw.DictOf("Type", raw.Name("Outlines"), "First", ref(first), "Last", ref(last),
		"Count", raw.Int(visible))
	if err := objs.Put(root, rootDict); err != nil {
		return fmt.Errorf("outline: root: %w", err)
	}
	objs.SetCatalog("Outlines", raw.RefTo(root))
	objs.SetCatalog("PageMode", raw.Name("UseOutlines"))
	return nil
}
