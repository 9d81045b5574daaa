package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Family groups the four style variants of a typeface.
type Family struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

// GoSans returns the Go proportional family.
func GoSans() Family {
	return Family{
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	}
}

// GoMono returns the Go monospaced family.
func GoMono() Family {
	return Family{
		Regular:    gomono.TTF,
		Bold:       gomonobold.TTF,
		Italic:     gomonoitalic.TTF,
		BoldItalic: gomonobolditalic.TTF,
	}
}

// Variant picks the font file for a style, falling back to Regular when the
// family lacks the variant.
func (f Family) Variant(bold, italic bool) []byte {
	var data []byte
	switch {
	case bold && italic:
		data = f.BoldItalic
	case bold:
		data = f.Bold
	case italic:
		data = f.Italic
	default:
		data = f.Regular
	}
	if len(data) == 0 {
		return f.Regular
	}
	return data
}
