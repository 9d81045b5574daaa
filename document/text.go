package document

import (
	"fmt"
	"math"
	"strings"

	"github.com/laurentmuller/calculation-sub010/fonts"
	"github.com/laurentmuller/calculation-sub010/observability"
)

type fontEntry struct {
	index  int
	key    string
	face   *fonts.Face
	widths map[rune]float64
}

// runeWidth is the nominal advance of r in 1/1000 em.
func (f *fontEntry) runeWidth(r rune) float64 {
	if w, ok := f.widths[r]; ok {
		return w
	}
	w := float64(f.face.GlyphWidth(f.face.GlyphIndex(r)))
	f.widths[r] = w
	return w
}

// encode shapes text and returns the show operator with glyph ids in hex.
func (f *fontEntry) encode(text string) string {
	glyphs := f.face.Shape(text)
	if len(glyphs) == 0 {
		return "<> Tj"
	}
	var b strings.Builder
	kerned := false
	for _, g := range glyphs {
		if math.Abs(g.Adjust) >= 0.5 {
			kerned = true
			break
		}
	}
	if !kerned {
		b.WriteByte('<')
		for _, g := range glyphs {
			fmt.Fprintf(&b, "%04X", g.ID)
		}
		b.WriteString("> Tj")
		return b.String()
	}
	b.WriteString("[<")
	for _, g := range glyphs {
		fmt.Fprintf(&b, "%04X", g.ID)
		if math.Abs(g.Adjust) >= 0.5 {
			fmt.Fprintf(&b, "> %d <", int(math.Round(g.Adjust)))
		}
	}
	b.WriteString(">] TJ")
	return b.String()
}

func normalizeStyle(style string) (base string, underline bool) {
	style = strings.ToUpper(style)
	underline = strings.Contains(style, "U")
	bold := strings.Contains(style, "B")
	italic := strings.Contains(style, "I")
	switch {
	case bold && italic:
		base = "BI"
	case bold:
		base = "B"
	case italic:
		base = "I"
	}
	return base, underline
}

// SetFont selects a registered family, a style made of B, I and U, and a
// size in points. An empty family keeps the current one and a zero size
// keeps the current size.
func (d *Document) SetFont(family, style string, size float64) error {
	return d.selectFont(family, style, size)
}

func (d *Document) selectFont(family, style string, size float64) error {
	family = strings.ToLower(strings.TrimSpace(family))
	if family == "" {
		family = d.fontFamily
	}
	if size == 0 {
		size = d.fontSizePt
	}
	base, underline := normalizeStyle(style)
	key := family + base
	entry, ok := d.fonts[key]
	if !ok {
		fam, known := d.families[family]
		if !known {
			return fmt.Errorf("%w: %q", ErrUnknownFont, family)
		}
		face, err := fonts.Load(family+base, fam.Variant(strings.Contains(base, "B"), strings.Contains(base, "I")))
		if err != nil {
			return fmt.Errorf("load font %q: %w", key, err)
		}
		entry = &fontEntry{index: len(d.fontOrder) + 1, key: key, face: face, widths: make(map[rune]float64)}
		d.fonts[key] = entry
		d.fontOrder = append(d.fontOrder, entry)
		d.logger.Debug("font registered", observability.String("font", key), observability.String("name", face.Name))
	}
	d.font = entry
	d.fontFamily = family
	d.fontStyle = base
	d.underline = underline
	d.fontSizePt = size
	d.fontSize = size / d.k
	return nil
}

// SetFontSize changes the size in points.
func (d *Document) SetFontSize(size float64) {
	d.fontSizePt = size
	d.fontSize = size / d.k
}

// SetFontStyle keeps family and size and changes the style.
func (d *Document) SetFontStyle(style string) error {
	return d.selectFont(d.fontFamily, style, d.fontSizePt)
}

// FontSize is the current size in points.
func (d *Document) FontSize() float64 { return d.fontSizePt }

// FontSizeUser is the current size in user units.
func (d *Document) FontSizeUser() float64 { return d.fontSize }

func (d *Document) FontFamily() string { return d.fontFamily }

// FontStyle returns the current style letters, including U when underlining.
func (d *Document) FontStyle() string {
	if d.underline {
		return d.fontStyle + "U"
	}
	return d.fontStyle
}

// StringWidth returns the width of s in user units with the current font.
func (d *Document) StringWidth(s string) float64 {
	if d.font == nil || s == "" {
		return 0
	}
	return d.font.face.Width(s) * d.fontSize / 1000
}

func (d *Document) textOp(x, y float64, txt string) string {
	return fmt.Sprintf("BT /F%d %.2f Tf %.2f %.2f Td %s ET", d.font.index, d.fontSizePt, x*d.k, (d.h-y)*d.k, d.font.encode(txt))
}

func (d *Document) underlineOp(x, y float64, txt string) string {
	const up, ut = -100.0, 50.0
	w := d.StringWidth(txt)
	return fmt.Sprintf("%.2f %.2f %.2f %.2f re f", x*d.k, (d.h-(y-up/1000*d.fontSize))*d.k, w*d.k, -ut/1000*d.fontSizePt)
}

// Text prints txt with its baseline at (x, y). The cursor does not move.
func (d *Document) Text(x, y float64, txt string) {
	if d.font == nil {
		d.SetErr(ErrNoFont)
		return
	}
	s := d.textOp(x, y, txt)
	if d.underline && txt != "" {
		s += " " + d.underlineOp(x, y, txt)
	}
	if d.colorFlag {
		s = "q " + d.textColor + " " + s + " Q"
	}
	d.Out(s)
}

// Cell prints a rectangular area with optional border, background and text.
// border is "", "0", "1" or any combination of L, T, R and B. ln is 0 to move
// right, 1 to move to the next line and 2 to move below. align is L, C or R.
func (d *Document) Cell(w, h float64, txt, border string, ln int, align string, fill bool, link Link) {
	k := d.k
	d.CheckPageBreak(h)
	if w == 0 {
		w = d.w - d.rMargin - d.x
	}
	var s strings.Builder
	if fill || border == "1" {
		op := "S"
		if fill {
			op = "f"
			if border == "1" {
				op = "B"
			}
		}
		fmt.Fprintf(&s, "%.2f %.2f %.2f %.2f re %s ", d.x*k, (d.h-d.y)*k, w*k, -h*k, op)
	}
	if border != "1" && border != "0" && border != "" {
		x, y := d.x, d.y
		if strings.Contains(border, "L") {
			fmt.Fprintf(&s, "%.2f %.2f m %.2f %.2f l S ", x*k, (d.h-y)*k, x*k, (d.h-(y+h))*k)
		}
		if strings.Contains(border, "T") {
			fmt.Fprintf(&s, "%.2f %.2f m %.2f %.2f l S ", x*k, (d.h-y)*k, (x+w)*k, (d.h-y)*k)
		}
		if strings.Contains(border, "R") {
			fmt.Fprintf(&s, "%.2f %.2f m %.2f %.2f l S ", (x+w)*k, (d.h-y)*k, (x+w)*k, (d.h-(y+h))*k)
		}
		if strings.Contains(border, "B") {
			fmt.Fprintf(&s, "%.2f %.2f m %.2f %.2f l S ", x*k, (d.h-(y+h))*k, (x+w)*k, (d.h-(y+h))*k)
		}
	}
	if txt != "" {
		if d.font == nil {
			d.SetErr(ErrNoFont)
			return
		}
		width := d.StringWidth(txt)
		dx := d.cMargin
		switch align {
		case "R":
			dx = w - d.cMargin - width
		case "C":
			dx = (w - width) / 2
		}
		if d.colorFlag {
			s.WriteString("q " + d.textColor + " ")
		}
		baseline := d.y + 0.5*h + 0.3*d.fontSize
		s.WriteString(d.textOp(d.x+dx, baseline, txt))
		if d.underline {
			s.WriteString(" " + d.underlineOp(d.x+dx, baseline, txt))
		}
		if d.colorFlag {
			s.WriteString(" Q")
		}
		if !link.IsZero() {
			d.Link(d.x+dx, d.y+0.5*h-0.5*d.fontSize, width, d.fontSize, link)
		}
	}
	if s.Len() > 0 {
		d.Out(strings.TrimSpace(s.String()))
	}
	d.lasth = h
	if ln > 0 {
		d.y += h
		if ln == 1 {
			d.x = d.lMargin
		}
	} else {
		d.x += w
	}
}

// SplitText breaks text into the lines MultiCell would print in a cell of
// width w (zero extends to the right margin).
func (d *Document) SplitText(text string, w float64) []string {
	if d.font == nil {
		return []string{text}
	}
	if w == 0 {
		w = d.w - d.rMargin - d.x
	}
	wmax := (w - 2*d.cMargin) * 1000 / d.fontSize
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		runes := []rune(para)
		start, sep := 0, -1
		l := 0.0
		for i := 0; i < len(runes); {
			r := runes[i]
			if r == ' ' {
				sep = i
			}
			l += d.font.runeWidth(r)
			if l <= wmax {
				i++
				continue
			}
			if sep == -1 {
				if i == start {
					i++
				}
				lines = append(lines, string(runes[start:i]))
			} else {
				lines = append(lines, string(runes[start:sep]))
				i = sep + 1
			}
			start, sep, l = i, -1, 0
		}
		lines = append(lines, string(runes[start:]))
	}
	return lines
}

// MultiCell prints text wrapped to width w, one cell per line. The cursor
// ends at the left margin below the last line.
func (d *Document) MultiCell(w, h float64, txt, border, align string, fill bool) {
	if d.font == nil {
		d.SetErr(ErrNoFont)
		return
	}
	if w == 0 {
		w = d.w - d.rMargin - d.x
	}
	var first, middle, last string
	switch {
	case border == "1":
		first, middle, last = "LRT", "LR", "LR"
	case border != "" && border != "0":
		if strings.Contains(border, "L") {
			middle += "L"
		}
		if strings.Contains(border, "R") {
			middle += "R"
		}
		first, last = middle, middle
		if strings.Contains(border, "T") {
			first += "T"
		}
	}
	if border == "1" || (border != "0" && strings.Contains(border, "B")) {
		last += "B"
	}
	lines := d.SplitText(txt, w)
	for i, line := range lines {
		b := middle
		switch {
		case len(lines) == 1:
			b = first
			if strings.Contains(last, "B") {
				b += "B"
			}
		case i == 0:
			b = first
		case i == len(lines)-1:
			b = last
		}
		d.Cell(w, h, line, b, 2, align, fill, Link{})
	}
	d.x = d.lMargin
}

// Write prints flowing text from the cursor, wrapping at the right margin.
// Lines are h high and the cursor stays after the last character.
func (d *Document) Write(h float64, txt string, link Link) {
	if d.font == nil {
		d.SetErr(ErrNoFont)
		return
	}
	w := d.w - d.rMargin - d.x
	wmax := (w - 2*d.cMargin) * 1000 / d.fontSize
	runes := []rune(strings.ReplaceAll(txt, "\r", ""))
	sep := -1
	i, j, nl := 0, 0, 1
	l := 0.0
	resetLine := func() {
		if nl == 1 {
			d.x = d.lMargin
			w = d.w - d.rMargin - d.x
			wmax = (w - 2*d.cMargin) * 1000 / d.fontSize
		}
		nl++
	}
	for i < len(runes) {
		c := runes[i]
		if c == '\n' {
			d.Cell(w, h, string(runes[j:i]), "", 2, "", false, link)
			i++
			sep, j, l = -1, i, 0
			resetLine()
			continue
		}
		if c == ' ' {
			sep = i
		}
		l += d.font.runeWidth(c)
		if l <= wmax {
			i++
			continue
		}
		if sep == -1 {
			if d.x > d.lMargin {
				// wrap before the first word when it does not fit after the cursor
				d.x = d.lMargin
				d.y += h
				w = d.w - d.rMargin - d.x
				wmax = (w - 2*d.cMargin) * 1000 / d.fontSize
				i, l = j, 0
				nl++
				continue
			}
			if i == j {
				i++
			}
			d.Cell(w, h, string(runes[j:i]), "", 2, "", false, link)
		} else {
			d.Cell(w, h, string(runes[j:sep]), "", 2, "", false, link)
			i = sep + 1
		}
		sep, j, l = -1, i, 0
		resetLine()
	}
	if i != j {
		d.Cell(l/1000*d.fontSize+2*d.cMargin, h, string(runes[j:]), "", 0, "", false, link)
	}
}
