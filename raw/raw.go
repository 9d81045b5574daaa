// Package raw models the indirect object graph written to a PDF file.
package raw

import "fmt"

// ObjectRef uniquely identifies an indirect PDF object.
type ObjectRef struct {
	Num int
	Gen int
}

func (r ObjectRef) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// IsZero reports whether the reference was never allocated.
func (r ObjectRef) IsZero() bool { return r.Num == 0 }

// Object is the base interface for all raw PDF objects.
type Object interface {
	Type() string
}

// Name is a PDF name object, written with a leading slash.
type Name string

func (Name) Type() string { return "name" }

// Integer is a PDF integer number.
type Integer int64

func (Integer) Type() string { return "integer" }

// Real is a PDF real number. Prec is the number of decimals kept on output;
// zero means the writer default.
type Real struct {
	V    float64
	Prec int
}

func (Real) Type() string { return "real" }

// Bool is a PDF boolean.
type Bool bool

func (Bool) Type() string { return "boolean" }

// Null is the PDF null object.
type Null struct{}

func (Null) Type() string { return "null" }

// String is a PDF string. Hex strings are written as <...>.
type String struct {
	Bytes []byte
	Hex   bool
}

func (String) Type() string { return "string" }

// Array is an ordered list of objects.
type Array struct{ Items []Object }

func (*Array) Type() string { return "array" }

// Len returns the number of items.
func (a *Array) Len() int { return len(a.Items) }

// Append adds items at the end of the array.
func (a *Array) Append(items ...Object) { a.Items = append(a.Items, items...) }

// Dict is a PDF dictionary. Keys are written in insertion order.
type Dict struct {
	keys []Name
	kv   map[Name]Object
}

func (*Dict) Type() string { return "dict" }

// Set stores value under key, keeping the first insertion position.
func (d *Dict) Set(key Name, value Object) {
	if d.kv == nil {
		d.kv = make(map[Name]Object)
	}
	if _, ok := d.kv[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.kv[key] = value
}

// Get returns the value stored under key.
func (d *Dict) Get(key Name) (Object, bool) {
	o, ok := d.kv[key]
	return o, ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Name { return append([]Name(nil), d.keys...) }

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Stream is a dictionary followed by binary data. /Length is set by the writer.
type Stream struct {
	Dict *Dict
	Data []byte
}

func (*Stream) Type() string { return "stream" }

// Ref is an indirect reference to another object.
type Ref ObjectRef

func (Ref) Type() string { return "ref" }

// Helpers

func Int(i int) Integer                 { return Integer(i) }
func Float(f float64) Real              { return Real{V: f} }
func FloatPrec(f float64, prec int) Real { return Real{V: f, Prec: prec} }
func Str(s string) String               { return String{Bytes: []byte(s)} }
func Bytes(b []byte) String             { return String{Bytes: b} }
func HexStr(b []byte) String            { return String{Bytes: b, Hex: true} }
func NewArray(items ...Object) *Array   { return &Array{Items: items} }
func NewDict() *Dict                    { return &Dict{kv: make(map[Name]Object)} }
func NewStream(d *Dict, data []byte) *Stream {
	if d == nil {
		d = NewDict()
	}
	return &Stream{Dict: d, Data: data}
}
func RefTo(r ObjectRef) Ref { return Ref(r) }

// DictOf builds a dictionary from alternating key/value pairs.
func DictOf(pairs ...any) *Dict {
	d := NewDict()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		if v, ok := pairs[i+1].(Object); ok {
			d.Set(Name(key), v)
		}
	}
	return d
}
