package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/laurentmuller/calculation-sub010/observability"
	"github.com/laurentmuller/calculation-sub010/raw"
	"github.com/laurentmuller/calculation-sub010/writer"
)

// Finalizer writes additional objects once all pages are known.
type Finalizer interface {
	Finalize(o *Objects) error
}

// FinalizerFunc adapts a function to Finalizer.
type FinalizerFunc func(o *Objects) error

func (f FinalizerFunc) Finalize(o *Objects) error { return f(o) }

// Objects gives finalizers access to the object graph being written.
type Objects struct {
	d        *Document
	w        *writer.Writer
	pageRefs []raw.ObjectRef
	catalog  *raw.Dict
}

// Alloc reserves an object number.
func (o *Objects) Alloc() raw.ObjectRef { return o.w.Alloc() }

// Put writes an indirect object.
func (o *Objects) Put(ref raw.ObjectRef, obj raw.Object) error { return o.w.Put(ref, obj) }

// PageRef returns the object of page n (1-based).
func (o *Objects) PageRef(n int) (raw.ObjectRef, bool) {
	if n < 1 || n > len(o.pageRefs) {
		return raw.ObjectRef{}, false
	}
	return o.pageRefs[n-1], true
}

// PageHeightPt is the height of page n in points.
func (o *Objects) PageHeightPt(int) float64 { return o.d.hPt }

// K is the number of points per user unit.
func (o *Objects) K() float64 { return o.d.k }

// LinkDest returns the destination array of an internal link.
func (o *Objects) LinkDest(id int) (raw.Object, bool) {
	if id < 1 || id > len(o.d.links) {
		return nil, false
	}
	dest := o.d.links[id-1]
	return o.Dest(dest.page, dest.y), true
}

// Dest builds [page /XYZ 0 top null] for position y (user units) of page.
func (o *Objects) Dest(page int, y float64) raw.Object {
	if page < 1 {
		page = 1
	}
	ref, _ := o.PageRef(page)
	return raw.NewArray(raw.RefTo(ref), raw.Name("XYZ"), raw.Int(0),
		raw.FloatPrec(o.PageHeightPt(page)-y*o.d.k, 2), raw.Null{})
}

// SetCatalog adds an entry to the document catalog.
func (o *Objects) SetCatalog(key string, obj raw.Object) { o.catalog.Set(raw.Name(key), obj) }

// TextString encodes s as a PDF text string: plain bytes for ASCII and
// UTF-16BE with a byte order mark otherwise.
func (o *Objects) TextString(s string) raw.String { return TextString(s) }

// TextString encodes s as a PDF text string.
func TextString(s string) raw.String {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return raw.Str(s)
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.String(s)
	if err != nil {
		return raw.Str(s)
	}
	return raw.Str(out)
}

// Bytes closes the document and returns the PDF file.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Output closes the document and writes the PDF file to w.
func (d *Document) Output(w io.Writer) error {
	return d.OutputContext(context.Background(), w)
}

// pdfVersion is 1.4 once the document uses transparency: alpha states or
// soft masked images.
func (d *Document) pdfVersion() writer.PDFVersion {
	if len(d.alphas) > 0 {
		return writer.PDF14
	}
	for _, img := range d.imageOrder {
		if len(img.smask) > 0 {
			return writer.PDF14
		}
	}
	return writer.PDF13
}

// OutputContext is Output with a context for tracing.
func (d *Document) OutputContext(ctx context.Context, w io.Writer) (err error) {
	if d.state == stateClosed {
		return ErrClosed
	}
	_, span := d.tracer.StartSpan(ctx, observability.SpanWrite)
	defer func() {
		if err != nil {
			span.SetError(err)
		}
		span.Finish()
	}()
	d.close()
	if d.err != nil {
		return d.err
	}
	version := d.pdfVersion()
	id := d.fileID
	if id == nil {
		u := uuid.New()
		id = (*[16]byte)(&u)
	}
	counter := &countingWriter{w: w}
	pw := writer.New(counter, writer.Config{Version: version, Compress: d.compress, FileID: id[:]})
	if err := d.putDocument(pw); err != nil {
		return err
	}
	span.SetTag(observability.TagPageCount, len(d.pages))
	span.SetTag(observability.TagObjectCount, pw.Count())
	span.SetTag(observability.TagBytes, counter.n)
	d.logger.Info("document written",
		observability.Int("pages", len(d.pages)),
		observability.Int("objects", pw.Count()),
		observability.Int64("bytes", counter.n))
	return nil
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

func (d *Document) putDocument(pw *writer.Writer) error {
	pagesRef := pw.Alloc()
	resourcesRef := pw.Alloc()
	o := &Objects{d: d, w: pw, catalog: raw.NewDict()}
	for range d.pages {
		o.pageRefs = append(o.pageRefs, pw.Alloc())
	}

	fontRefs := make(map[int]raw.ObjectRef, len(d.fontOrder))
	for _, f := range d.fontOrder {
		ref, err := d.putFont(pw, f)
		if err != nil {
			return fmt.Errorf("write font %s: %w", f.key, err)
		}
		fontRefs[f.index] = ref
	}
	imageRefs := make(map[int]raw.ObjectRef, len(d.imageOrder))
	for _, img := range d.imageOrder {
		ref, err := putImage(pw, img)
		if err != nil {
			return fmt.Errorf("write image %s: %w", img.name, err)
		}
		imageRefs[img.index] = ref
	}
	gsRefs := make([]raw.ObjectRef, 0, len(d.alphas))
	for _, a := range d.alphas {
		gs := raw.DictOf(
			"Type", raw.Name("ExtGState"),
			"ca", raw.FloatPrec(a.alpha, 3),
			"CA", raw.FloatPrec(a.alpha, 3),
			"BM", raw.Name(a.blend),
		)
		ref, err := pw.PutNew(gs)
		if err != nil {
			return err
		}
		gsRefs = append(gsRefs, ref)
	}
	if err := pw.Put(resourcesRef, d.resourceDict(fontRefs, imageRefs, gsRefs)); err != nil {
		return err
	}

	kids := raw.NewArray()
	for i, p := range d.pages {
		if err := d.putPage(o, pagesRef, resourcesRef, i, p); err != nil {
			return err
		}
		kids.Append(raw.RefTo(o.pageRefs[i]))
	}
	pages := raw.DictOf(
		"Type", raw.Name("Pages"),
		"Kids", kids,
		"Count", raw.Int(len(d.pages)),
		"MediaBox", raw.NewArray(raw.Int(0), raw.Int(0), raw.FloatPrec(d.wPt, 2), raw.FloatPrec(d.hPt, 2)),
	)
	if err := pw.Put(pagesRef, pages); err != nil {
		return err
	}

	for _, f := range d.finalizers {
		if err := f.Finalize(o); err != nil {
			return fmt.Errorf("finalize: %w", err)
		}
	}

	infoRef, err := pw.PutNew(d.infoDict())
	if err != nil {
		return err
	}
	catalog := raw.DictOf("Type", raw.Name("Catalog"), "Pages", raw.RefTo(pagesRef))
	for _, k := range o.catalog.Keys() {
		v, _ := o.catalog.Get(k)
		catalog.Set(k, v)
	}
	catalogRef, err := pw.PutNew(catalog)
	if err != nil {
		return err
	}
	return pw.Finish(catalogRef, &infoRef)
}

func (d *Document) resourceDict(fontRefs, imageRefs map[int]raw.ObjectRef, gsRefs []raw.ObjectRef) *raw.Dict {
	res := raw.NewDict()
	res.Set("ProcSet", raw.NewArray(raw.Name("PDF"), raw.Name("Text"), raw.Name("ImageB"), raw.Name("ImageC"), raw.Name("ImageI")))
	fontDict := raw.NewDict()
	for _, f := range d.fontOrder {
		fontDict.Set(raw.Name(fmt.Sprintf("F%d", f.index)), raw.RefTo(fontRefs[f.index]))
	}
	res.Set("Font", fontDict)
	xobjects := raw.NewDict()
	for _, img := range d.imageOrder {
		xobjects.Set(raw.Name(fmt.Sprintf("I%d", img.index)), raw.RefTo(imageRefs[img.index]))
	}
	res.Set("XObject", xobjects)
	if len(gsRefs) > 0 {
		gs := raw.NewDict()
		for i, ref := range gsRefs {
			gs.Set(raw.Name(fmt.Sprintf("GS%d", i+1)), raw.RefTo(ref))
		}
		res.Set("ExtGState", gs)
	}
	return res
}

func (d *Document) putPage(o *Objects, pagesRef, resourcesRef raw.ObjectRef, i int, p *page) error {
	contentRef, err := o.w.PutNew(raw.NewStream(nil, p.content.Bytes()))
	if err != nil {
		return err
	}
	dict := raw.DictOf(
		"Type", raw.Name("Page"),
		"Parent", raw.RefTo(pagesRef),
		"Resources", raw.RefTo(resourcesRef),
		"Contents", raw.RefTo(contentRef),
	)
	if len(p.links) > 0 {
		annots := raw.NewArray()
		for _, l := range p.links {
			ref, err := o.w.PutNew(d.linkAnnot(o, l))
			if err != nil {
				return err
			}
			annots.Append(raw.RefTo(ref))
		}
		dict.Set("Annots", annots)
	}
	if len(d.alphas) > 0 {
		dict.Set("Group", raw.DictOf("Type", raw.Name("Group"), "S", raw.Name("Transparency"), "CS", raw.Name("DeviceRGB")))
	}
	return o.w.Put(o.pageRefs[i], dict)
}

func (d *Document) linkAnnot(o *Objects, l pageLink) *raw.Dict {
	annot := raw.DictOf(
		"Type", raw.Name("Annot"),
		"Subtype", raw.Name("Link"),
		"Rect", raw.NewArray(raw.FloatPrec(l.x, 2), raw.FloatPrec(l.y-l.h, 2), raw.FloatPrec(l.x+l.w, 2), raw.FloatPrec(l.y, 2)),
		"Border", raw.NewArray(raw.Int(0), raw.Int(0), raw.Int(0)),
	)
	if l.link.URL != "" {
		annot.Set("A", raw.DictOf("S", raw.Name("URI"), "URI", raw.Str(l.link.URL)))
	} else if dest, ok := o.LinkDest(l.link.ID); ok {
		annot.Set("Dest", dest)
	}
	return annot
}

func (d *Document) infoDict() *raw.Dict {
	info := raw.NewDict()
	info.Set("Producer", raw.Str("calculation-sub010"))
	for _, kv := range []struct{ key, value string }{
		{"Title", d.info.Title},
		{"Author", d.info.Author},
		{"Subject", d.info.Subject},
		{"Keywords", d.info.Keywords},
		{"Creator", d.info.Creator},
	} {
		if kv.value != "" {
			info.Set(raw.Name(kv.key), TextString(kv.value))
		}
	}
	created := d.info.CreationDate
	if created.IsZero() {
		created = time.Now()
	}
	info.Set("CreationDate", raw.Str(pdfDate(created)))
	return info
}

func pdfDate(t time.Time) string {
	date := t.Format("20060102150405-0700")
	return "D:" + date[:len(date)-2] + "'" + date[len(date)-2:] + "'"
}

func putImage(pw *writer.Writer, img *imageEntry) (raw.ObjectRef, error) {
	dict := raw.DictOf(
		"Type", raw.Name("XObject"),
		"Subtype", raw.Name("Image"),
		"Width", raw.Int(img.width),
		"Height", raw.Int(img.height),
		"ColorSpace", raw.Name(img.colorSpace),
		"BitsPerComponent", raw.Int(img.bpc),
		"Filter", raw.Name(img.filter),
	)
	if len(img.decode) > 0 {
		arr := raw.NewArray()
		for _, v := range img.decode {
			arr.Append(raw.Float(v))
		}
		dict.Set("Decode", arr)
	}
	if len(img.smask) > 0 {
		mask := raw.DictOf(
			"Type", raw.Name("XObject"),
			"Subtype", raw.Name("Image"),
			"Width", raw.Int(img.width),
			"Height", raw.Int(img.height),
			"ColorSpace", raw.Name("DeviceGray"),
			"BitsPerComponent", raw.Int(8),
			"Filter", raw.Name("FlateDecode"),
		)
		maskRef, err := pw.PutNew(raw.NewStream(mask, img.smask))
		if err != nil {
			return raw.ObjectRef{}, err
		}
		dict.Set("SMask", raw.RefTo(maskRef))
	}
	return pw.PutNew(raw.NewStream(dict, img.data))
}

func (d *Document) putFont(pw *writer.Writer, f *fontEntry) (raw.ObjectRef, error) {
	face := f.face
	fileRef, err := pw.PutNew(raw.NewStream(raw.DictOf("Length1", raw.Int(len(face.Data()))), face.Data()))
	if err != nil {
		return raw.ObjectRef{}, err
	}
	flags := 32
	if face.ItalicAngle != 0 {
		flags |= 64
	}
	descriptor := raw.DictOf(
		"Type", raw.Name("FontDescriptor"),
		"FontName", raw.Name(face.Name),
		"Flags", raw.Int(flags),
		"FontBBox", raw.NewArray(raw.FloatPrec(face.BBox[0], 0), raw.FloatPrec(face.BBox[1], 0), raw.FloatPrec(face.BBox[2], 0), raw.FloatPrec(face.BBox[3], 0)),
		"ItalicAngle", raw.FloatPrec(face.ItalicAngle, 2),
		"Ascent", raw.FloatPrec(face.Ascent, 0),
		"Descent", raw.FloatPrec(face.Descent, 0),
		"CapHeight", raw.FloatPrec(face.CapHeight, 0),
		"StemV", raw.Int(80),
		"FontFile2", raw.RefTo(fileRef),
	)
	descRef, err := pw.PutNew(descriptor)
	if err != nil {
		return raw.ObjectRef{}, err
	}
	cid := raw.DictOf(
		"Type", raw.Name("Font"),
		"Subtype", raw.Name("CIDFontType2"),
		"BaseFont", raw.Name(face.Name),
		"CIDSystemInfo", raw.DictOf("Registry", raw.Str("Adobe"), "Ordering", raw.Str("Identity"), "Supplement", raw.Int(0)),
		"FontDescriptor", raw.RefTo(descRef),
		"DW", raw.Int(1000),
		"CIDToGIDMap", raw.Name("Identity"),
	)
	if widths := face.UsedWidths(); len(widths) > 0 {
		cid.Set("W", cidWidths(widths))
	}
	cidRef, err := pw.PutNew(cid)
	if err != nil {
		return raw.ObjectRef{}, err
	}
	font := raw.DictOf(
		"Type", raw.Name("Font"),
		"Subtype", raw.Name("Type0"),
		"BaseFont", raw.Name(face.Name),
		"Encoding", raw.Name("Identity-H"),
		"DescendantFonts", raw.NewArray(raw.RefTo(cidRef)),
	)
	if cmap := toUnicodeCMap(face.Name, face.Used()); len(cmap) > 0 {
		ref, err := pw.PutNew(raw.NewStream(nil, cmap))
		if err != nil {
			return raw.ObjectRef{}, err
		}
		font.Set("ToUnicode", raw.RefTo(ref))
	}
	return pw.PutNew(font)
}

// cidWidths groups consecutive glyph ids: [first [w1 w2 ...] ...].
func cidWidths(widths map[int]int) *raw.Array {
	gids := make([]int, 0, len(widths))
	for gid := range widths {
		gids = append(gids, gid)
	}
	sort.Ints(gids)
	arr := raw.NewArray()
	var run *raw.Array
	prev := -2
	for _, gid := range gids {
		if gid != prev+1 || run == nil {
			run = raw.NewArray()
			arr.Append(raw.Int(gid), run)
		}
		run.Append(raw.Int(widths[gid]))
		prev = gid
	}
	return arr
}

func toUnicodeCMap(name string, used map[int][]rune) []byte {
	gids := make([]int, 0, len(used))
	for gid, runes := range used {
		if len(runes) > 0 {
			gids = append(gids, gid)
		}
	}
	if len(gids) == 0 {
		return nil
	}
	sort.Ints(gids)
	var buf bytes.Buffer
	buf.WriteString("/CIDInit /ProcSet findresource begin\n")
	buf.WriteString("12 dict begin\n")
	buf.WriteString("begincmap\n")
	buf.WriteString("/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n")
	fmt.Fprintf(&buf, "/CMapName /%s-UTF16 def\n", strings.ReplaceAll(name, " ", ""))
	buf.WriteString("/CMapType 2 def\n")
	buf.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")
	for i := 0; i < len(gids); i += 100 {
		chunk := gids[i:min(i+100, len(gids))]
		fmt.Fprintf(&buf, "%d beginbfchar\n", len(chunk))
		for _, gid := range chunk {
			fmt.Fprintf(&buf, "<%04X> <", gid)
			for _, u := range utf16.Encode(used[gid]) {
				fmt.Fprintf(&buf, "%04X", u)
			}
			buf.WriteString(">\n")
		}
		buf.WriteString("endbfchar\n")
	}
	buf.WriteString("endcmap\n")
	buf.WriteString("CMapName currentdict /CMap defineresource pop\n")
	buf.WriteString("end\nend\n")
	return buf.Bytes()
}
