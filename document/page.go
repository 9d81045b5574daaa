package document

import (
	"fmt"

	"github.com/laurentmuller/calculation-sub010/observability"
)

// AddPage closes the current page (running the footer and page-end hooks)
// and starts a new one. Line width, font and colours carry over.
func (d *Document) AddPage() {
	if d.state == stateClosed {
		d.SetErr(ErrClosed)
		return
	}
	family, style, size := d.fontFamily, d.fontStyle, d.fontSizePt
	if d.underline {
		style += "U"
	}
	lw := d.lineWidth
	dc, fc, tc := d.drawColor, d.fillColor, d.textColor
	drgb, frgb, trgb := d.drawRGB, d.fillRGB, d.textRGB
	cf := d.colorFlag
	if len(d.pages) > 0 {
		d.inFooter = true
		if d.footer != nil {
			d.footer()
		}
		d.inFooter = false
		d.endPage()
	}
	d.beginPage()
	d.Out("2 J")
	d.lineWidth = lw
	d.Outf("%.2f w", lw*d.k)
	if family != "" {
		_ = d.SetFont(family, style, size)
	}
	d.drawColor, d.drawRGB = dc, drgb
	if dc != rgbOp(0, 0, 0, false) {
		d.Out(dc)
	}
	d.fillColor, d.fillRGB = fc, frgb
	if fc != rgbOp(0, 0, 0, true) {
		d.Out(fc)
	}
	d.textColor, d.textRGB = tc, trgb
	d.colorFlag = cf

	if d.header != nil {
		d.inHeader = true
		d.header()
		d.inHeader = false
	}
	if d.lineWidth != lw {
		d.lineWidth = lw
		d.Outf("%.2f w", lw*d.k)
	}
	if family != "" {
		_ = d.SetFont(family, style, size)
	}
	if d.drawColor != dc {
		d.drawColor, d.drawRGB = dc, drgb
		d.Out(dc)
	}
	if d.fillColor != fc {
		d.fillColor, d.fillRGB = fc, frgb
		d.Out(fc)
	}
	d.textColor, d.textRGB = tc, trgb
	d.colorFlag = cf
}

func (d *Document) beginPage() {
	d.pages = append(d.pages, &page{})
	d.state = stateOpen
	d.x = d.lMargin
	d.y = d.tMargin
	d.logger.Debug("page added", observability.Int("page", len(d.pages)))
}

func (d *Document) endPage() {
	for _, fn := range d.pageEnd {
		fn()
	}
	d.state = stateBetween
}

// close finishes the last page; an empty document gets one blank page.
func (d *Document) close() {
	if d.state == stateClosed {
		return
	}
	if len(d.pages) == 0 {
		d.AddPage()
	}
	d.inFooter = true
	if d.footer != nil {
		d.footer()
	}
	d.inFooter = false
	d.endPage()
	d.state = stateClosed
}

// CheckPageBreak starts a new page when h does not fit below the cursor and
// reports whether it did. X is preserved.
func (d *Document) CheckPageBreak(h float64) bool {
	if d.y+h > d.pageBreakTrigger && !d.inHeader && !d.inFooter && d.autoPageBreak {
		x := d.x
		d.AddPage()
		d.x = x
		return true
	}
	return false
}

func rgbOp(r, g, b int, fill bool) string {
	op := "RG"
	gray := "G"
	if fill {
		op, gray = "rg", "g"
	}
	if r == g && r == b {
		return fmt.Sprintf("%.3f %s", float64(r)/255, gray)
	}
	return fmt.Sprintf("%.3f %.3f %.3f %s", float64(r)/255, float64(g)/255, float64(b)/255, op)
}

// SetDrawColor sets the stroke colour from 0-255 channels.
func (d *Document) SetDrawColor(r, g, b int) {
	d.drawRGB = [3]int{r, g, b}
	d.drawColor = rgbOp(r, g, b, false)
	if d.state == stateOpen {
		d.Out(d.drawColor)
	}
}

// SetFillColor sets the fill colour from 0-255 channels.
func (d *Document) SetFillColor(r, g, b int) {
	d.fillRGB = [3]int{r, g, b}
	d.fillColor = rgbOp(r, g, b, true)
	d.colorFlag = d.fillColor != d.textColor
	if d.state == stateOpen {
		d.Out(d.fillColor)
	}
}

// SetTextColor sets the text colour from 0-255 channels.
func (d *Document) SetTextColor(r, g, b int) {
	d.textRGB = [3]int{r, g, b}
	d.textColor = rgbOp(r, g, b, true)
	d.colorFlag = d.fillColor != d.textColor
}

func (d *Document) DrawColor() (r, g, b int) { return d.drawRGB[0], d.drawRGB[1], d.drawRGB[2] }
func (d *Document) FillColor() (r, g, b int) { return d.fillRGB[0], d.fillRGB[1], d.fillRGB[2] }
func (d *Document) TextColor() (r, g, b int) { return d.textRGB[0], d.textRGB[1], d.textRGB[2] }

// SetLineWidth sets the stroke width in user units.
func (d *Document) SetLineWidth(w float64) {
	d.lineWidth = w
	if d.state == stateOpen {
		d.Outf("%.2f w", w*d.k)
	}
}

func (d *Document) LineWidth() float64 { return d.lineWidth }

// Line draws a segment between two points.
func (d *Document) Line(x1, y1, x2, y2 float64) {
	d.Outf("%.2f %.2f m %.2f %.2f l S", x1*d.k, (d.h-y1)*d.k, x2*d.k, (d.h-y2)*d.k)
}

// Rect draws a rectangle. style is "D" (or empty) to stroke, "F" to fill and
// "DF"/"FD" for both.
func (d *Document) Rect(x, y, w, h float64, style string) {
	op := "S"
	switch style {
	case "F":
		op = "f"
	case "FD", "DF":
		op = "B"
	}
	d.Outf("%.2f %.2f %.2f %.2f re %s", x*d.k, (d.h-y)*d.k, w*d.k, -h*d.k, op)
}
