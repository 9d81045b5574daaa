package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/laurentmuller/calculation-sub010/coords"
)

// Builder accumulates the operators of one page content stream.
type Builder struct {
	buf   bytes.Buffer
	depth int
}

// Bytes returns the stream written so far.
func (b *Builder) Bytes() []byte { return b.buf.Bytes() }

// Len returns the number of bytes written.
func (b *Builder) Len() int { return b.buf.Len() }

// Depth returns the number of unbalanced q operators.
func (b *Builder) Depth() int { return b.depth }

// Raw appends s followed by a newline.
func (b *Builder) Raw(s string) {
	b.buf.WriteString(s)
	b.buf.WriteByte('\n')
	b.track(s)
}

// Rawf appends a formatted line. Float verbs use a fixed notation so the
// stream never contains exponents.
func (b *Builder) Rawf(format string, args ...any) {
	b.Raw(fmt.Sprintf(format, args...))
}

func (b *Builder) track(s string) {
	for _, f := range strings.Fields(s) {
		switch f {
		case "q":
			b.depth++
		case "Q":
			if b.depth > 0 {
				b.depth--
			}
		}
	}
}

// Save emits q.
func (b *Builder) Save() { b.Raw("q") }

// Restore emits Q.
func (b *Builder) Restore() { b.Raw("Q") }

// Transform emits a cm operator.
func (b *Builder) Transform(m coords.Matrix) {
	b.Rawf("%s %s %s %s %s %s cm", Num(m[0], 5), Num(m[1], 5), Num(m[2], 5), Num(m[3], 5), Num(m[4], 2), Num(m[5], 2))
}

// AppendPath writes the construction operators of path without painting.
func (b *Builder) AppendPath(path *Path) {
	for _, sp := range path.Subpaths {
		for _, pt := range sp.Points {
			switch pt.Type {
			case PathMoveTo:
				b.Rawf("%s %s m", Num(pt.X, 2), Num(pt.Y, 2))
			case PathLineTo:
				b.Rawf("%s %s l", Num(pt.X, 2), Num(pt.Y, 2))
			case PathCurveTo:
				b.Rawf("%s %s %s %s %s %s c",
					Num(pt.Control1X, 2), Num(pt.Control1Y, 2),
					Num(pt.Control2X, 2), Num(pt.Control2Y, 2),
					Num(pt.X, 2), Num(pt.Y, 2))
			}
		}
		if sp.Closed {
			b.Raw("h")
		}
	}
}

// DrawPath writes path followed by the paint operator.
func (b *Builder) DrawPath(path *Path, paint Paint) {
	if path == nil || len(path.Subpaths) == 0 {
		return
	}
	b.AppendPath(path)
	b.Raw(paint.Operator())
}

// Num formats f with at most prec decimals and no trailing zeros.
func Num(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
