// Package writer serialises an indirect object graph into a PDF file: header,
// numbered objects, cross-reference table and trailer.
package writer

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/laurentmuller/calculation-sub010/raw"
)

// PDFVersion is the header version written to the file.
type PDFVersion string

const (
	PDF13 PDFVersion = "1.3"
	PDF14 PDFVersion = "1.4"
	PDF17 PDFVersion = "1.7"
)

// ErrFinished is returned when objects are written after the trailer.
var ErrFinished = errors.New("writer: file already finished")

// Config controls serialisation.
type Config struct {
	Version PDFVersion
	// Compress applies FlateDecode to streams that carry no filter yet.
	Compress bool
	// Level is the zlib compression level; zero selects the default.
	Level int
	// FileID is written twice in the trailer /ID array when set.
	FileID []byte
}

// Writer emits objects in the order they are put.
type Writer struct {
	out      *countingWriter
	cfg      Config
	offsets  map[int]int64
	next     int
	header   bool
	finished bool
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// New returns a writer producing a PDF file on w.
func New(w io.Writer, cfg Config) *Writer {
	if cfg.Version == "" {
		cfg.Version = PDF13
	}
	return &Writer{
		out:     &countingWriter{w: w},
		cfg:     cfg,
		offsets: make(map[int]int64),
		next:    1,
	}
}

// SetVersion changes the header version; it has no effect once the header
// has been written.
func (w *Writer) SetVersion(v PDFVersion) {
	if !w.header {
		w.cfg.Version = v
	}
}

// Alloc reserves the next object number.
func (w *Writer) Alloc() raw.ObjectRef {
	ref := raw.ObjectRef{Num: w.next}
	w.next++
	return ref
}

// Count returns the number of allocated objects.
func (w *Writer) Count() int { return w.next - 1 }

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 { return w.out.n }

func (w *Writer) writeHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	_, err := fmt.Fprintf(w.out, "%%PDF-%s\n%%\xE2\xE3\xCF\xD3\n", w.cfg.Version)
	return err
}

// Put writes obj as the indirect object ref.
func (w *Writer) Put(ref raw.ObjectRef, obj raw.Object) error {
	if w.finished {
		return ErrFinished
	}
	if ref.Num <= 0 || ref.Num >= w.next {
		return fmt.Errorf("writer: object %d was not allocated", ref.Num)
	}
	if _, dup := w.offsets[ref.Num]; dup {
		return fmt.Errorf("writer: object %d written twice", ref.Num)
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if s, ok := obj.(*raw.Stream); ok {
		prepared, err := w.prepareStream(s)
		if err != nil {
			return fmt.Errorf("writer: object %d: %w", ref.Num, err)
		}
		obj = prepared
	}
	w.offsets[ref.Num] = w.out.n
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d obj\n", ref.Num, ref.Gen)
	buf.Write(Serialize(obj))
	buf.WriteString("\nendobj\n")
	_, err := w.out.Write(buf.Bytes())
	return err
}

// PutNew allocates a number for obj, writes it and returns the reference.
func (w *Writer) PutNew(obj raw.Object) (raw.ObjectRef, error) {
	ref := w.Alloc()
	return ref, w.Put(ref, obj)
}

func (w *Writer) prepareStream(s *raw.Stream) (*raw.Stream, error) {
	dict := raw.NewDict()
	for _, k := range s.Dict.Keys() {
		if k == "Length" {
			continue
		}
		v, _ := s.Dict.Get(k)
		dict.Set(k, v)
	}
	data := s.Data
	if _, filtered := s.Dict.Get("Filter"); w.cfg.Compress && !filtered && len(data) > 0 {
		encoded, err := Deflate(data, w.cfg.Level)
		if err != nil {
			return nil, err
		}
		data = encoded
		dict.Set("Filter", raw.Name("FlateDecode"))
	}
	dict.Set("Length", raw.Int(len(data)))
	return raw.NewStream(dict, data), nil
}

// Finish writes the cross-reference table and the trailer. Every allocated
// object must have been put.
func (w *Writer) Finish(root raw.ObjectRef, info *raw.ObjectRef) error {
	if w.finished {
		return ErrFinished
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	missing := make([]int, 0)
	for i := 1; i < w.next; i++ {
		if _, ok := w.offsets[i]; !ok {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return fmt.Errorf("writer: objects allocated but not written: %v", missing)
	}
	xref := w.out.n
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "xref\n0 %d\n", w.next)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i < w.next; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", w.offsets[i])
	}
	trailer := raw.NewDict()
	trailer.Set("Size", raw.Int(w.next))
	trailer.Set("Root", raw.RefTo(root))
	if info != nil {
		trailer.Set("Info", raw.RefTo(*info))
	}
	if len(w.cfg.FileID) > 0 {
		trailer.Set("ID", raw.NewArray(raw.HexStr(w.cfg.FileID), raw.HexStr(w.cfg.FileID)))
	}
	buf.WriteString("trailer\n")
	buf.Write(Serialize(trailer))
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xref)
	if _, err := w.out.Write(buf.Bytes()); err != nil {
		return err
	}
	w.finished = true
	return nil
}

// Deflate compresses data with zlib for the FlateDecode filter; level zero
// selects the default compression.
func Deflate(data []byte, level int) ([]byte, error) {
	if level == 0 {
		level = zlib.DefaultCompression
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
