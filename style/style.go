// Package style bundles font, border and colours so they can be applied to a
// document in one call. Styles are values: every With method returns a copy.
package style

import (
	"strings"

	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/document"
)

// FontStyle is a set of font style flags.
type FontStyle int

const (
	Bold FontStyle = 1 << iota
	Italic
	Underline

	Regular FontStyle = 0
)

// String returns the document style letters, e.g. "BI".
func (s FontStyle) String() string {
	var b strings.Builder
	if s&Bold != 0 {
		b.WriteByte('B')
	}
	if s&Italic != 0 {
		b.WriteByte('I')
	}
	if s&Underline != 0 {
		b.WriteByte('U')
	}
	return b.String()
}

// ParseFontStyle reads letters such as "BU".
func ParseFontStyle(s string) FontStyle {
	var fs FontStyle
	s = strings.ToUpper(s)
	if strings.Contains(s, "B") {
		fs |= Bold
	}
	if strings.Contains(s, "I") {
		fs |= Italic
	}
	if strings.Contains(s, "U") {
		fs |= Underline
	}
	return fs
}

// Font describes a family, style flags and a size in points.
type Font struct {
	Family string
	Style  FontStyle
	Size   float64
}

const (
	DefaultFamily = "helvetica"
	DefaultSize   = 9.0
)

// DefaultFont is helvetica 9pt.
func DefaultFont() Font { return Font{Family: DefaultFamily, Size: DefaultSize} }

// Side is a set of rectangle sides.
type Side int

const (
	Left Side = 1 << iota
	Top
	Right
	Bottom

	None Side = 0
	All       = Left | Top | Right | Bottom
)

// Border tells which sides of a cell are drawn and with which width.
type Border struct {
	Sides Side
	Width float64
}

// String returns the sides as cell border letters ("LTRB").
func (b Border) String() string {
	var s strings.Builder
	if b.Sides&Left != 0 {
		s.WriteByte('L')
	}
	if b.Sides&Top != 0 {
		s.WriteByte('T')
	}
	if b.Sides&Right != 0 {
		s.WriteByte('R')
	}
	if b.Sides&Bottom != 0 {
		s.WriteByte('B')
	}
	return s.String()
}

// IsNone reports whether no side is drawn.
func (b Border) IsNone() bool { return b.Sides == None }

// DefaultLineWidth is the border width in user units.
const DefaultLineWidth = 0.2

// Style is an immutable set of drawing attributes. Nil colours apply the
// defaults: black lines and text on a white fill.
type Style struct {
	Font   Font
	Border Border
	Indent float64
	Draw   *color.Color
	Fill   *color.Color
	Text   *color.Color
}

func (s Style) WithFont(f Font) Style {
	s.Font = f
	return s
}

func (s Style) WithFontStyle(fs FontStyle) Style {
	s.Font.Style = fs
	return s
}

// WithFontSize changes the size in points.
func (s Style) WithFontSize(size float64) Style {
	s.Font.Size = size
	return s
}

func (s Style) WithBorder(b Border) Style {
	s.Border = b
	return s
}

// WithIndent sets the left text indent in user units.
func (s Style) WithIndent(indent float64) Style {
	s.Indent = indent
	return s
}

func (s Style) WithDraw(c color.Color) Style {
	c = c.AsDraw()
	s.Draw = &c
	return s
}

func (s Style) WithFill(c color.Color) Style {
	c = c.AsFill()
	s.Fill = &c
	return s
}

func (s Style) WithText(c color.Color) Style {
	c = c.AsText()
	s.Text = &c
	return s
}

// HasFill reports whether the style paints a background.
func (s Style) HasFill() bool { return s.Fill != nil }

// Apply sets font, colours and line width on d.
func (s Style) Apply(d *document.Document) error {
	font := s.Font
	if font.Family == "" {
		font.Family = DefaultFamily
	}
	if font.Size <= 0 {
		font.Size = DefaultSize
	}
	if err := d.SetFont(font.Family, font.Style.String(), font.Size); err != nil {
		return err
	}
	pick := func(c *color.Color, def color.Color) color.Color {
		if c != nil {
			return *c
		}
		return def
	}
	pick(s.Draw, color.Black).AsDraw().Apply(d)
	pick(s.Fill, color.White).AsFill().Apply(d)
	pick(s.Text, color.Black).AsText().Apply(d)
	width := s.Border.Width
	if width <= 0 {
		width = DefaultLineWidth
	}
	d.SetLineWidth(width)
	return nil
}

// Default is helvetica 9pt without border.
func Default() Style { return Style{Font: DefaultFont()} }

// BoldStyle is Default in bold.
func BoldStyle() Style { return Default().WithFontStyle(Bold) }

// ItalicStyle is Default in italic.
func ItalicStyle() Style { return Default().WithFontStyle(Italic) }

// BoldItalic is Default in bold italic.
func BoldItalic() Style { return Default().WithFontStyle(Bold | Italic) }

// NoBorder is Default without border.
func NoBorder() Style { return Default().WithBorder(Border{Sides: None}) }

// Cell is the bordered table cell style.
func Cell() Style {
	return Default().WithBorder(Border{Sides: All, Width: DefaultLineWidth}).WithDraw(color.CellBorder)
}

// HeaderCell is a bold cell on a light background.
func HeaderCell() Style { return Cell().WithFontStyle(Bold).WithFill(color.Header) }

// BoldCell is Cell in bold.
func BoldCell() Style { return Cell().WithFontStyle(Bold) }
