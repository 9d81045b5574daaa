package color

type specKind int

const (
	kindUnset specKind = iota
	kindNamed
	kindRGB
	kindHex
)

// Spec is a colour as supplied by data: unset, a palette name, an RGB value
// or a hexadecimal string. It is resolved once, when chart data is built.
type Spec struct {
	kind  specKind
	name  string
	value Color
}

// Unset is the empty Spec.
func Unset() Spec { return Spec{} }

func Named(name string) Spec { return Spec{kind: kindNamed, name: name} }

func FromRGB(c Color) Spec { return Spec{kind: kindRGB, value: c} }

func FromHex(s string) Spec { return Spec{kind: kindHex, name: s} }

// IsSet reports whether the spec carries a value.
func (s Spec) IsSet() bool { return s.kind != kindUnset }

// Resolve returns the described colour as a fill, or fallback when the spec
// is unset or does not name a valid colour.
func (s Spec) Resolve(fallback Color) Color {
	switch s.kind {
	case kindRGB:
		return s.value.AsFill()
	case kindNamed:
		if c, ok := Lookup(s.name); ok {
			return c.AsFill()
		}
		if c, err := Parse(s.name); err == nil {
			return c
		}
	case kindHex:
		if c, err := Parse(s.name); err == nil {
			return c
		}
	}
	return fallback
}
