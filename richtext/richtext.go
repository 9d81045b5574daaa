// Package richtext writes inline markdown as flowing document text.
package richtext

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/document"
)

// CodeFamily is the font family of code spans and blocks.
const CodeFamily = "courier"

const bullet = "• "

// Markdown writes src from the cursor with lines h high. Emphasis, strong
// text, code, links, headings, lists and paragraphs change the font or the
// layout; other markup is written as plain text. The font and text colour
// in effect before the call are restored.
func Markdown(d *document.Document, h float64, src []byte) error {
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	r := &renderer{d: d, h: h, src: src, family: d.FontFamily(), style: d.FontStyle(), size: d.FontSize()}
	r.text[0], r.text[1], r.text[2] = d.TextColor()
	err := ast.Walk(root, r.walk)
	if ferr := d.SetFont(r.family, r.style, r.size); err == nil {
		err = ferr
	}
	d.SetTextColor(r.text[0], r.text[1], r.text[2])
	if err != nil {
		return fmt.Errorf("richtext: %w", err)
	}
	return d.Err()
}

type renderer struct {
	d      *document.Document
	h      float64
	src    []byte
	family string
	style  string
	size   float64
	text   [3]int

	bold, italic, code int
	link               document.Link
	lists              []int
}

func (r *renderer) apply() error {
	family := r.family
	if r.code > 0 {
		family = CodeFamily
	}
	style := ""
	if r.bold > 0 {
		style += "B"
	}
	if r.italic > 0 {
		style += "I"
	}
	if !r.link.IsZero() {
		style += "U"
		color.Link.AsText().Apply(r.d)
	} else {
		r.d.SetTextColor(r.text[0], r.text[1], r.text[2])
	}
	return r.d.SetFont(family, style, r.size)
}

func (r *renderer) write(s string) {
	if s != "" {
		r.d.Write(r.h, s, r.link)
	}
}

func (r *renderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Text:
		if entering {
			r.write(string(node.Segment.Value(r.src)))
			switch {
			case node.HardLineBreak():
				r.d.Ln(r.h)
			case node.SoftLineBreak():
				r.write(" ")
			}
		}
	case *ast.String:
		if entering {
			r.write(string(node.Value))
		}
	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.Level >= 2 {
			r.bold += delta
		} else {
			r.italic += delta
		}
		return ast.WalkContinue, r.apply()
	case *ast.CodeSpan:
		if entering {
			r.code++
		} else {
			r.code--
		}
		return ast.WalkContinue, r.apply()
	case *ast.Link:
		if entering {
			r.link = document.URL(string(node.Destination))
		} else {
			r.link = document.Link{}
		}
		return ast.WalkContinue, r.apply()
	case *ast.AutoLink:
		if !entering {
			return ast.WalkContinue, nil
		}
		r.link = document.URL(string(node.URL(r.src)))
		if err := r.apply(); err != nil {
			return ast.WalkStop, err
		}
		r.write(string(node.Label(r.src)))
		r.link = document.Link{}
		return ast.WalkSkipChildren, r.apply()
	case *ast.Heading:
		if entering {
			r.bold++
			return ast.WalkContinue, r.apply()
		}
		r.bold--
		r.d.Ln(r.h * 1.5)
		return ast.WalkContinue, r.apply()
	case *ast.Paragraph:
		if !entering {
			r.d.Ln(r.h)
			if n.NextSibling() != nil && len(r.lists) == 0 {
				r.d.Ln(r.h / 2)
			}
		}
	case *ast.TextBlock:
		if !entering {
			r.d.Ln(r.h)
		}
	case *ast.List:
		if entering {
			r.lists = append(r.lists, node.Start)
			if !node.IsOrdered() {
				r.lists[len(r.lists)-1] = -1
			}
		} else {
			r.lists = r.lists[:len(r.lists)-1]
		}
	case *ast.ListItem:
		if entering && len(r.lists) > 0 {
			i := len(r.lists) - 1
			if r.lists[i] < 0 {
				r.write(bullet)
			} else {
				r.write(fmt.Sprintf("%d. ", r.lists[i]))
				r.lists[i]++
			}
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		r.code++
		if err := r.apply(); err != nil {
			return ast.WalkStop, err
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			r.write(string(seg.Value(r.src)))
		}
		r.code--
		r.d.Ln(r.h / 2)
		return ast.WalkSkipChildren, r.apply()
	case *ast.ThematicBreak:
		if entering {
			y := r.d.GetY() + r.h/2
			r.d.Line(r.d.LeftMargin(), y, r.d.PageWidth()-r.d.RightMargin(), y)
			r.d.Ln(r.h)
		}
	}
	return ast.WalkContinue, nil
}
