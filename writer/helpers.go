package writer

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/laurentmuller/calculation-sub010/raw"
)

const defaultRealPrec = 4

// Serialize returns the PDF syntax of a direct object.
func Serialize(o raw.Object) []byte {
	var b bytes.Buffer
	serializeTo(&b, o)
	return b.Bytes()
}

func serializeTo(b *bytes.Buffer, o raw.Object) {
	switch v := o.(type) {
	case raw.Name:
		b.WriteByte('/')
		b.WriteString(NameLiteral(string(v)))
	case raw.Integer:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case raw.Real:
		prec := v.Prec
		if prec <= 0 {
			prec = defaultRealPrec
		}
		b.WriteString(FormatReal(v.V, prec))
	case raw.Bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case raw.Null:
		b.WriteString("null")
	case raw.String:
		if v.Hex {
			b.WriteByte('<')
			b.WriteString(strings.ToUpper(hex.EncodeToString(v.Bytes)))
			b.WriteByte('>')
			return
		}
		b.Write(EscapeLiteralString(v.Bytes))
	case *raw.Array:
		b.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			serializeTo(b, it)
		}
		b.WriteByte(']')
	case *raw.Dict:
		b.WriteString("<<")
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			b.WriteByte('/')
			b.WriteString(NameLiteral(string(k)))
			b.WriteByte(' ')
			serializeTo(b, val)
		}
		b.WriteString(">>")
	case *raw.Stream:
		serializeTo(b, v.Dict)
		b.WriteString("\nstream\n")
		b.Write(v.Data)
		b.WriteString("\nendstream")
	case raw.Ref:
		fmt.Fprintf(b, "%d %d R", v.Num, v.Gen)
	default:
		b.WriteString("null")
	}
}

// FormatReal writes f with at most prec decimals, trimming trailing zeros.
func FormatReal(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// EscapeLiteralString returns a (...) literal string with the delimiters and
// non-printable bytes escaped.
func EscapeLiteralString(rawBytes []byte) []byte {
	var b bytes.Buffer
	b.WriteByte('(')
	for _, ch := range rawBytes {
		switch ch {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		case '\b':
			b.WriteString("\\b")
		case '\f':
			b.WriteString("\\f")
		default:
			if ch < 0x20 || ch >= 0x80 {
				fmt.Fprintf(&b, "\\%03o", ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	b.WriteByte(')')
	return b.Bytes()
}

// NameLiteral escapes the characters a PDF name cannot carry verbatim.
func NameLiteral(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch > 0x20 && ch < 0x7F && !strings.ContainsRune("#/()<>[]{}%", rune(ch)) {
			b.WriteByte(ch)
			continue
		}
		fmt.Fprintf(&b, "#%02X", ch)
	}
	return b.String()
}
