package outline

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/style"
)

// IndexOptions configures AddPageIndex.
type IndexOptions struct {
	// Title is printed centred at the top of the index page when not empty.
	Title string
	// TitleBookmark registers the title as a top level bookmark.
	TitleBookmark bool
	// Separator is the leader character between labels and page numbers.
	Separator rune
	// Unit is the indent per level, doubled; 0 is one millimetre.
	Unit float64
	// LineHeight is the height of an index line; 0 uses the font size.
	LineHeight float64
	TitleStyle *style.Style
	EntryStyle *style.Style
}

// DefaultIndexOptions uses "Index" as title and dots as leader.
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{Title: "Index", TitleBookmark: true, Separator: '.'}
}

// AddPageIndex starts a new page listing every bookmark: the label indented
// by its level, a leader and the page number, the whole line linking to the
// bookmark. It does nothing when there are no bookmarks.
func (o *Outline) AddPageIndex(opts IndexOptions) error {
	if len(o.entries) == 0 {
		return nil
	}
	d := o.doc
	if opts.Separator == 0 {
		opts.Separator = '.'
	}
	unit := opts.Unit
	if unit <= 0 {
		unit = 72 / 25.4 / d.K()
	}
	titleStyle := style.BoldStyle().WithFontSize(12)
	if opts.TitleStyle != nil {
		titleStyle = *opts.TitleStyle
	}
	entryStyle := style.Default()
	if opts.EntryStyle != nil {
		entryStyle = *opts.EntryStyle
	}
	entries := o.Entries()

	d.AddPage()
	margin := d.CellMargin()
	d.SetCellMargin(0)
	defer d.SetCellMargin(margin)

	if opts.Title != "" {
		if err := titleStyle.Apply(d); err != nil {
			return err
		}
		if opts.TitleBookmark {
			if err := o.Add(opts.Title, true, 0, true, true); err != nil && !errors.Is(err, ErrInvalidLevel) {
				return err
			}
		}
		d.Cell(0, lineHeight(d, opts.LineHeight), opts.Title, "", 1, "C", false, document.Link{})
	}

	if err := entryStyle.Apply(d); err != nil {
		return err
	}
	lh := lineHeight(d, opts.LineHeight)
	sep := string(opts.Separator)
	sepWidth := d.StringWidth(sep)
	for _, e := range entries {
		d.CheckPageBreak(lh)
		x, y := d.LeftMargin()+2*float64(e.Level)*unit, d.GetY()
		page := strconv.Itoa(e.Page)
		pageWidth := d.StringWidth(page)
		available := d.PageWidth() - d.RightMargin() - x - pageWidth - 2*sepWidth
		label := FitText(d, e.Text, available)
		labelWidth := d.StringWidth(label)
		leaderWidth := available + 2*sepWidth - labelWidth
		leader := ""
		if sepWidth > 0 && leaderWidth > sepWidth {
			leader = strings.Repeat(sep, int(math.Floor(leaderWidth/sepWidth))-1)
		}
		d.SetX(x + labelWidth)
		if label != "" {
			d.SetX(x)
			d.Cell(labelWidth, lh, label, "", 0, "L", false, document.Link{})
		}
		d.Cell(leaderWidth, lh, leader, "", 0, "C", false, document.Link{})
		d.Cell(pageWidth, lh, page, "", 1, "R", false, document.Link{})
		if e.Link > 0 {
			d.Link(x, y, labelWidth+leaderWidth+pageWidth, lh, document.Internal(e.Link))
		}
	}
	return nil
}

func lineHeight(d *document.Document, h float64) float64 {
	if h > 0 {
		return h
	}
	return d.FontSizeUser() * 1.5
}

// FitText removes characters from the end of text until it is at most
// width wide with the current font.
func FitText(d *document.Document, text string, width float64) string {
	runes := []rune(text)
	for len(runes) > 0 && d.StringWidth(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
