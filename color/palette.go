package color

import "strings"

var (
	Black      = RGB(0, 0, 0)
	White      = RGB(255, 255, 255)
	DarkGray   = RGB(169, 169, 169)
	Gray       = RGB(128, 128, 128)
	LightGray  = RGB(211, 211, 211)
	Red        = RGB(255, 0, 0)
	Green      = RGB(0, 128, 0)
	Blue       = RGB(0, 0, 255)
	Header     = RGB(245, 245, 245)
	CellBorder = RGB(221, 221, 221)
	Link       = RGB(0, 0, 255)
	Error      = RGB(220, 53, 69)

	// DefaultFill is used when a chart or legend colour cannot be resolved.
	DefaultFill = DarkGray
)

var named = map[string]Color{
	"black":      Black,
	"white":      White,
	"darkgray":   DarkGray,
	"gray":       Gray,
	"lightgray":  LightGray,
	"red":        Red,
	"green":      Green,
	"blue":       Blue,
	"header":     Header,
	"cellborder": CellBorder,
	"link":       Link,
	"error":      Error,
}

// Lookup finds a palette colour by case-insensitive name; dashes,
// underscores and spaces are ignored.
func Lookup(name string) (Color, bool) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	c, ok := named[key]
	return c, ok
}
