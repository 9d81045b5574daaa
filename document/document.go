// Package document is a low-level PDF writer in the tradition of FPDF: it owns
// the page list, the cursor, the current font and colours, and turns drawing
// calls into page content streams. Coordinates are user units with the origin
// at the top-left corner of the page.
package document

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/laurentmuller/calculation-sub010/contentstream"
	"github.com/laurentmuller/calculation-sub010/fonts"
	"github.com/laurentmuller/calculation-sub010/observability"
)

var (
	// ErrNoPage is recorded when content is emitted before the first page.
	ErrNoPage = errors.New("document: no page has been added")
	// ErrClosed is returned once the document has been written.
	ErrClosed = errors.New("document: document is closed")
	// ErrUnknownFont is returned for a family that was never registered.
	ErrUnknownFont = errors.New("document: unknown font family")
	// ErrNoFont is recorded when text is drawn without a current font.
	ErrNoFont = errors.New("document: no font has been set")
)

// Unit is the user unit of measure.
type Unit string

const (
	UnitPoint Unit = "pt"
	UnitMM    Unit = "mm"
	UnitCM    Unit = "cm"
	UnitInch  Unit = "in"
)

// Scale returns the number of points per unit.
func (u Unit) Scale() (float64, error) {
	switch u {
	case UnitPoint:
		return 1, nil
	case UnitMM, "":
		return 72 / 25.4, nil
	case UnitCM:
		return 72 / 2.54, nil
	case UnitInch:
		return 72, nil
	}
	return 0, fmt.Errorf("document: incorrect unit %q", string(u))
}

// Orientation of the pages.
type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// PageSize is expressed in points, portrait.
type PageSize struct {
	Width, Height float64
}

var (
	A3     = PageSize{841.89, 1190.55}
	A4     = PageSize{595.28, 841.89}
	A5     = PageSize{420.94, 595.28}
	Letter = PageSize{612, 792}
	Legal  = PageSize{612, 1008}
)

// LookupPageSize resolves a standard size name such as "A4".
func LookupPageSize(name string) (PageSize, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a3":
		return A3, true
	case "a4", "":
		return A4, true
	case "a5":
		return A5, true
	case "letter":
		return Letter, true
	case "legal":
		return Legal, true
	}
	return PageSize{}, false
}

// Margins in user units.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// Info holds the document information dictionary.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords string
	// CreationDate defaults to the output time.
	CreationDate time.Time
}

type settings struct {
	size        PageSize
	orientation Orientation
	unit        Unit
	margins     *Margins
	compress    bool
	logger      observability.Logger
	tracer      observability.Tracer
	families    map[string]fonts.Family
	info        Info
	fileID      *[16]byte
}

// Option configures a Document.
type Option func(*settings)

func WithPageSize(size PageSize) Option { return func(s *settings) { s.size = size } }

func WithOrientation(o Orientation) Option { return func(s *settings) { s.orientation = o } }

func WithUnit(u Unit) Option { return func(s *settings) { s.unit = u } }

// WithMargins sets the page margins in user units.
func WithMargins(m Margins) Option { return func(s *settings) { s.margins = &m } }

// WithCompression toggles FlateDecode on page streams.
func WithCompression(on bool) Option { return func(s *settings) { s.compress = on } }

func WithLogger(l observability.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithTracer(t observability.Tracer) Option {
	return func(s *settings) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithFontFamily registers a TrueType family under name.
func WithFontFamily(name string, family fonts.Family) Option {
	return func(s *settings) { s.families[strings.ToLower(name)] = family }
}

func WithInfo(info Info) Option { return func(s *settings) { s.info = info } }

// WithFileID fixes the trailer identifier, making the output reproducible
// together with Info.CreationDate.
func WithFileID(id [16]byte) Option { return func(s *settings) { s.fileID = &id } }

type docState int

const (
	stateEmpty docState = iota
	stateOpen
	stateBetween
	stateClosed
)

type page struct {
	content contentstream.Builder
	links   []pageLink
}

// Document builds one PDF file. It is not safe for concurrent use.
type Document struct {
	k                float64
	w, h             float64
	wPt, hPt         float64
	lMargin, tMargin float64
	rMargin, bMargin float64
	cMargin          float64
	x, y, lasth      float64

	autoPageBreak    bool
	pageBreakTrigger float64

	pages    []*page
	state    docState
	inHeader bool
	inFooter bool
	header   func()
	footer   func()
	pageEnd  []func()

	lineWidth float64
	drawRGB   [3]int
	fillRGB   [3]int
	textRGB   [3]int
	drawColor string
	fillColor string
	textColor string
	colorFlag bool

	families   map[string]fonts.Family
	fonts      map[string]*fontEntry
	fontOrder  []*fontEntry
	font       *fontEntry
	fontFamily string
	fontStyle  string
	underline  bool
	fontSizePt float64
	fontSize   float64

	images     map[string]*imageEntry
	imageOrder []*imageEntry

	links      []linkDest
	angle      float64
	alphas     []alphaState
	finalizers []Finalizer

	compress bool
	info     Info
	fileID   *[16]byte
	logger   observability.Logger
	tracer   observability.Tracer
	err      error
}

// New creates an empty document. The default font is helvetica at 12pt.
func New(opts ...Option) *Document {
	s := &settings{
		size:        A4,
		orientation: Portrait,
		unit:        UnitMM,
		compress:    true,
		logger:      observability.NopLogger{},
		tracer:      observability.NopTracer(),
		families: map[string]fonts.Family{
			"helvetica": fonts.GoSans(),
			"arial":     fonts.GoSans(),
			"times":     fonts.GoSans(),
			"courier":   fonts.GoMono(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	d := &Document{
		families:  s.families,
		fonts:     make(map[string]*fontEntry),
		images:    make(map[string]*imageEntry),
		compress:  s.compress,
		info:      s.info,
		fileID:    s.fileID,
		logger:    s.logger,
		tracer:    s.tracer,
		drawColor: rgbOp(0, 0, 0, false),
		fillColor: rgbOp(0, 0, 0, true),
		textColor: rgbOp(0, 0, 0, true),
	}
	k, err := s.unit.Scale()
	if err != nil {
		d.err = err
		k = 72 / 25.4
	}
	d.k = k
	size := s.size
	if size.Width <= 0 || size.Height <= 0 {
		size = A4
	}
	if s.orientation == Landscape {
		d.wPt, d.hPt = size.Height, size.Width
	} else {
		d.wPt, d.hPt = size.Width, size.Height
	}
	d.w, d.h = d.wPt/k, d.hPt/k
	// 1 cm margins
	margin := 28.35 / k
	if s.margins != nil {
		d.lMargin, d.tMargin, d.rMargin, d.bMargin = s.margins.Left, s.margins.Top, s.margins.Right, s.margins.Bottom
	} else {
		d.lMargin, d.tMargin, d.rMargin, d.bMargin = margin, margin, margin, 2*margin
	}
	d.cMargin = margin / 10
	d.lineWidth = 0.567 / k
	d.autoPageBreak = true
	d.pageBreakTrigger = d.h - d.bMargin
	d.OnPageEnd(d.closeRotation)
	if err := d.selectFont("helvetica", "", 12); err != nil && d.err == nil {
		d.err = err
	}
	return d
}

// Err returns the first error recorded while drawing.
func (d *Document) Err() error { return d.err }

// SetErr records err unless an earlier error is present.
func (d *Document) SetErr(err error) {
	if d.err == nil && err != nil {
		d.err = err
		d.logger.Warn("document error", observability.Error("error", err))
	}
}

// Logger returns the configured logger.
func (d *Document) Logger() observability.Logger { return d.logger }

// K is the number of points per user unit.
func (d *Document) K() float64 { return d.k }

func (d *Document) PageWidth() float64  { return d.w }
func (d *Document) PageHeight() float64 { return d.h }

// PageBreakTrigger is the Y position beyond which content overflows.
func (d *Document) PageBreakTrigger() float64 { return d.pageBreakTrigger }

// SetAutoPageBreak toggles automatic page breaks with the bottom margin.
func (d *Document) SetAutoPageBreak(auto bool, margin float64) {
	d.autoPageBreak = auto
	d.bMargin = margin
	d.pageBreakTrigger = d.h - margin
}

func (d *Document) AutoPageBreak() bool { return d.autoPageBreak }

func (d *Document) SetHeaderFunc(fn func()) { d.header = fn }
func (d *Document) SetFooterFunc(fn func()) { d.footer = fn }

// OnPageEnd registers fn to run before each page is closed.
func (d *Document) OnPageEnd(fn func()) {
	if fn != nil {
		d.pageEnd = append(d.pageEnd, fn)
	}
}

// AddFinalizer registers f to write extra objects at output time.
func (d *Document) AddFinalizer(f Finalizer) {
	if f != nil {
		d.finalizers = append(d.finalizers, f)
	}
}

func (d *Document) GetX() float64 { return d.x }
func (d *Document) GetY() float64 { return d.y }

// SetX moves the cursor horizontally; negative values count from the right.
func (d *Document) SetX(x float64) {
	if x >= 0 {
		d.x = x
	} else {
		d.x = d.w + x
	}
}

// SetY moves the cursor vertically and resets X to the left margin.
func (d *Document) SetY(y float64) {
	d.x = d.lMargin
	if y >= 0 {
		d.y = y
	} else {
		d.y = d.h + y
	}
}

func (d *Document) SetXY(x, y float64) {
	d.SetY(y)
	d.SetX(x)
}

// Ln moves to the start of the next line; a negative h uses the last cell
// height.
func (d *Document) Ln(h float64) {
	d.x = d.lMargin
	if h < 0 {
		d.y += d.lasth
	} else {
		d.y += h
	}
}

func (d *Document) LeftMargin() float64   { return d.lMargin }
func (d *Document) TopMargin() float64    { return d.tMargin }
func (d *Document) RightMargin() float64  { return d.rMargin }
func (d *Document) BottomMargin() float64 { return d.bMargin }

// SetMargins sets the left, top and right margins.
func (d *Document) SetMargins(left, top, right float64) {
	d.lMargin, d.tMargin, d.rMargin = left, top, right
}

func (d *Document) SetLeftMargin(m float64) {
	d.lMargin = m
	if d.state == stateOpen && d.x < m {
		d.x = m
	}
}

func (d *Document) SetRightMargin(m float64) { d.rMargin = m }

func (d *Document) CellMargin() float64     { return d.cMargin }
func (d *Document) SetCellMargin(m float64) { d.cMargin = m }

// PrintableWidth is the page width between the left and right margins.
func (d *Document) PrintableWidth() float64 { return d.w - d.lMargin - d.rMargin }

// LastHeight returns the height of the last printed cell.
func (d *Document) LastHeight() float64 { return d.lasth }

// Out appends s to the current page content stream. It does nothing once an
// error has been recorded.
func (d *Document) Out(s string) {
	if d.err != nil {
		return
	}
	switch d.state {
	case stateOpen:
		d.pages[len(d.pages)-1].content.Raw(s)
	case stateClosed:
		d.SetErr(ErrClosed)
	default:
		d.SetErr(ErrNoPage)
	}
}

// Outf formats and appends a content stream line. Use %.2f style verbs for
// coordinates.
func (d *Document) Outf(format string, args ...any) {
	d.Out(fmt.Sprintf(format, args...))
}

// PageContent returns the uncompressed content stream of page n (1-based).
func (d *Document) PageContent(n int) []byte {
	if n < 1 || n > len(d.pages) {
		return nil
	}
	return d.pages[n-1].content.Bytes()
}

// ContentDepth returns the unbalanced q nesting of the current page.
func (d *Document) ContentDepth() int {
	if len(d.pages) == 0 {
		return 0
	}
	return d.pages[len(d.pages)-1].content.Depth()
}

func (d *Document) PageNo() int      { return len(d.pages) }
func (d *Document) PageCount() int   { return len(d.pages) }
func (d *Document) IsClosed() bool   { return d.state == stateClosed }
func (d *Document) InHeader() bool   { return d.inHeader }
func (d *Document) InFooter() bool   { return d.inFooter }
func (d *Document) Compressed() bool { return d.compress }
