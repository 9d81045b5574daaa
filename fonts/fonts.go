// Package fonts loads TrueType faces, measures text and records the glyphs a
// document uses so the writer can embed them with a ToUnicode map.
package fonts

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
)

// Face is a parsed TrueType face. Metrics are expressed in 1/1000 em.
type Face struct {
	Name        string
	Ascent      float64
	Descent     float64
	CapHeight   float64
	ItalicAngle float64
	BBox        [4]float64

	data   []byte
	font   *sfnt.Font
	buf    sfnt.Buffer
	upem   sfnt.Units
	ppem   fixed.Int26_6
	widths map[int]int
	used   map[int][]rune
	shape  func(in shaping.Input) shaping.Output
}

// Load parses a TrueType/OpenType font. The whole file is embedded when the
// face is used in a document.
func Load(name string, data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("truetype font data is empty")
	}
	font, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	upem := font.UnitsPerEm()
	if upem == 0 {
		return nil, fmt.Errorf("invalid unitsPerEm")
	}
	f := &Face{
		data:   data,
		font:   font,
		upem:   upem,
		ppem:   fixed.Int26_6(upem << 6),
		widths: make(map[int]int),
		used:   make(map[int][]rune),
	}
	f.Name = strings.TrimSpace(name)
	if ps, _ := font.Name(&f.buf, sfnt.NameIDPostScript); len(ps) > 0 {
		f.Name = ps
	}
	if f.Name == "" {
		f.Name = "CustomTT"
	}
	f.Name = strings.ReplaceAll(f.Name, " ", "")

	metrics, err := font.Metrics(&f.buf, f.ppem, xfont.HintingNone)
	if err == nil {
		f.Ascent = f.scale(metrics.Ascent)
		f.Descent = -f.scale(metrics.Descent)
		f.CapHeight = f.scale(metrics.CapHeight)
		if f.CapHeight == 0 {
			f.CapHeight = f.Ascent
		}
	}
	if bounds, err := font.Bounds(&f.buf, f.ppem, xfont.HintingNone); err == nil {
		f.BBox = [4]float64{
			f.scale(bounds.Min.X), -f.scale(bounds.Max.Y),
			f.scale(bounds.Max.X), -f.scale(bounds.Min.Y),
		}
	}
	if post := font.PostTable(); post != nil {
		f.ItalicAngle = post.ItalicAngle
	}

	if face, err := gofont.ParseTTF(bytes.NewReader(data)); err == nil {
		shaper := &shaping.HarfbuzzShaper{}
		f.shape = func(in shaping.Input) shaping.Output {
			in.Face = face
			return shaper.Shape(in)
		}
	}
	return f, nil
}

func (f *Face) scale(v fixed.Int26_6) float64 {
	return float64(v) * 1000.0 / (64.0 * float64(f.upem))
}

// Data returns the font file.
func (f *Face) Data() []byte { return f.data }

// GlyphWidth returns the advance of glyph gid from the hmtx table.
func (f *Face) GlyphWidth(gid int) int {
	if w, ok := f.widths[gid]; ok {
		return w
	}
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem, xfont.HintingNone)
	w := 0
	if err == nil {
		w = int(math.Round(f.scale(adv)))
	}
	f.widths[gid] = w
	return w
}

// GlyphIndex maps r through the cmap table; 0 is .notdef.
func (f *Face) GlyphIndex(r rune) int {
	gid, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return int(gid)
}

// Used returns the glyphs shaped so far with the text they represent.
func (f *Face) Used() map[int][]rune { return f.used }

// UsedWidths returns the hmtx advance of every used glyph.
func (f *Face) UsedWidths() map[int]int {
	out := make(map[int]int, len(f.used))
	for gid := range f.used {
		out[gid] = f.GlyphWidth(gid)
	}
	return out
}

// Width returns the advance of text in 1/1000 em.
func (f *Face) Width(text string) float64 {
	var w float64
	for _, g := range f.Shape(text) {
		w += g.Advance
	}
	return w
}

// StringWidth returns the width of text at size points.
func (f *Face) StringWidth(text string, size float64) float64 {
	return f.Width(text) * size / 1000
}
