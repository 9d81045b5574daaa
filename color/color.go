// Package color holds immutable RGB values tagged with the role they play
// when applied to a document: stroke, fill or text.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned for strings that are not #RGB or #RRGGBB.
var ErrInvalidColor = errors.New("color: invalid hexadecimal color")

// Role selects which document colour a value sets.
type Role int

const (
	Fill Role = iota
	Draw
	Text
)

func (r Role) String() string {
	switch r {
	case Draw:
		return "draw"
	case Text:
		return "text"
	}
	return "fill"
}

// Color is an 8-bit RGB value with a role.
type Color struct {
	R, G, B uint8
	Role    Role
}

// Setter receives colours; *document.Document implements it.
type Setter interface {
	SetDrawColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetTextColor(r, g, b int)
}

// RGB builds a fill colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// FromInt splits a 24-bit 0xRRGGBB value.
func FromInt(v int) Color {
	return Color{R: uint8(v >> 16 & 0xff), G: uint8(v >> 8 & 0xff), B: uint8(v & 0xff)}
}

// Parse reads #RGB or #RRGGBB, with or without the leading #.
func Parse(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [3]uint8
	for i := range ch {
		v, err := hexToDec(h[2*i : 2*i+2])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = v
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// MustParse is Parse for constants; it panics on invalid input.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexToDec(pair string) (uint8, error) {
	v, err := strconv.ParseUint(pair, 16, 8)
	return uint8(v), err
}

// Hex returns #RRGGBB in upper case.
func (c Color) Hex() string { return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B) }

// Int returns the 24-bit 0xRRGGBB value.
func (c Color) Int() int { return int(c.R)<<16 | int(c.G)<<8 | int(c.B) }

// RGB returns the channels as ints.
func (c Color) RGB() (r, g, b int) { return int(c.R), int(c.G), int(c.B) }

func (c Color) AsDraw() Color {
	c.Role = Draw
	return c
}

func (c Color) AsFill() Color {
	c.Role = Fill
	return c
}

func (c Color) AsText() Color {
	c.Role = Text
	return c
}

// Equal compares channels, ignoring the role.
func (c Color) Equal(o Color) bool { return c.R == o.R && c.G == o.G && c.B == o.B }

// Apply sets the colour of its role on s.
func (c Color) Apply(s Setter) {
	r, g, b := c.RGB()
	switch c.Role {
	case Draw:
		s.SetDrawColor(r, g, b)
	case Text:
		s.SetTextColor(r, g, b)
	default:
		s.SetFillColor(r, g, b)
	}
}

func (c Color) String() string { return c.Hex() }
