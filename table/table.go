// Package table lays out bordered rows of cells on a document: column
// definitions with fixed or flexible widths, wrapped cell text, page
// breaks with repeated headers, and formatted numeric cells.
package table

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/style"
)

var (
	// ErrNoColumns is returned when a row is written before AddColumns.
	ErrNoColumns = errors.New("table: no columns")
	// ErrNoRow is returned when cells are ended without StartRow.
	ErrNoRow = errors.New("table: no row started")
	// ErrColumnCount is returned when the cells of a row do not span
	// exactly the table columns.
	ErrColumnCount = errors.New("table: cells do not match columns")
)

// Alignment is the horizontal placement of cell text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the cell alignment letter.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "C"
	case AlignRight:
		return "R"
	}
	return "L"
}

// Column is a table column. Flexible columns are scaled so that a full
// width table spans the printable width; fixed columns keep Width.
type Column struct {
	Text  string
	Width float64
	Fixed bool
	Align Alignment
}

func Left(text string, width float64, fixed bool) Column {
	return Column{Text: text, Width: width, Fixed: fixed, Align: AlignLeft}
}

func Center(text string, width float64, fixed bool) Column {
	return Column{Text: text, Width: width, Fixed: fixed, Align: AlignCenter}
}

func Right(text string, width float64, fixed bool) Column {
	return Column{Text: text, Width: width, Fixed: fixed, Align: AlignRight}
}

// Cell is one cell of a row. Cols below 1 spans one column; nil Style and
// Align inherit from the row and the column.
type Cell struct {
	Text  string
	Cols  int
	Style *style.Style
	Align *Alignment
	Link  document.Link
}

func (c Cell) span() int {
	if c.Cols < 1 {
		return 1
	}
	return c.Cols
}

// Translator resolves message ids.
type Translator interface {
	Trans(id string, params map[string]string) string
}

// Option configures a Table.
type Option func(*Table)

// FullWidth scales flexible columns to the printable width.
func FullWidth() Option {
	return func(t *Table) { t.fullWidth = true }
}

func WithTranslator(tr Translator) Option {
	return func(t *Table) { t.trans = tr }
}

func WithFormatter(f *Formatter) Option {
	return func(t *Table) { t.format = f }
}

// WithRowStyle replaces the style of rows started without one.
func WithRowStyle(s style.Style) Option {
	return func(t *Table) { t.rowStyle = s }
}

func WithHeaderStyle(s style.Style) Option {
	return func(t *Table) { t.headerStyle = s }
}

// WithDefaultStyle sets the style Reset applies to the document.
func WithDefaultStyle(s style.Style) Option {
	return func(t *Table) { t.defaultStyle = s }
}

// WithLineHeight sets the height of one text line in user units.
func WithLineHeight(h float64) Option {
	return func(t *Table) { t.lineHeight = h }
}

// RepeatHeader outputs the headers again at the top of each new page.
func RepeatHeader() Option {
	return func(t *Table) { t.repeatHeader = true }
}

// defaultLineHeight is 5mm expressed in points.
const defaultLineHeight = 5 * 72 / 25.4

// Table writes rows on a document. A Table is not safe for concurrent use.
type Table struct {
	doc          *document.Document
	columns      []Column
	widths       []float64
	fullWidth    bool
	trans        Translator
	format       *Formatter
	rowStyle     style.Style
	headerStyle  style.Style
	defaultStyle style.Style
	lineHeight   float64
	repeatHeader bool

	headersDone bool
	inHeaders   bool
	inRow       bool
	current     *style.Style
	cells       []Cell
}

// New returns a table writing on d.
func New(d *document.Document, opts ...Option) *Table {
	t := &Table{
		doc:          d,
		rowStyle:     style.Cell(),
		headerStyle:  style.HeaderCell(),
		defaultStyle: style.Default(),
		lineHeight:   defaultLineHeight / d.K(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.format == nil {
		t.format = NewFormatter(language.English)
	}
	return t
}

// AddColumns appends column definitions.
func (t *Table) AddColumns(cols ...Column) *Table {
	t.columns = append(t.columns, cols...)
	t.widths = nil
	return t
}

// Columns returns the column definitions.
func (t *Table) Columns() []Column { return t.columns }

// LineHeight returns the height of one text line.
func (t *Table) LineHeight() float64 { return t.lineHeight }

// Widths returns the drawn column widths.
func (t *Table) Widths() []float64 {
	if t.widths != nil {
		return t.widths
	}
	widths := make([]float64, len(t.columns))
	fixed, flexible := 0.0, 0.0
	for i, c := range t.columns {
		widths[i] = c.Width
		if c.Fixed {
			fixed += c.Width
		} else {
			flexible += c.Width
		}
	}
	if t.fullWidth && flexible > 0 {
		remaining := t.doc.PrintableWidth() - fixed
		if remaining > 0 {
			factor := remaining / flexible
			for i, c := range t.columns {
				if !c.Fixed {
					widths[i] = c.Width * factor
				}
			}
		}
	}
	t.widths = widths
	return widths
}

// OutputHeaders writes one row with the column texts in the header style.
// Header texts are translated when the table has a translator.
func (t *Table) OutputHeaders() error {
	if len(t.columns) == 0 {
		return ErrNoColumns
	}
	t.inHeaders = true
	defer func() { t.inHeaders = false }()
	hs := t.headerStyle
	t.StartRow(&hs)
	for _, c := range t.columns {
		align := c.Align
		t.AddCell(Cell{Text: t.translate(c.Text, nil), Align: &align})
	}
	if err := t.EndRow(); err != nil {
		return err
	}
	t.headersDone = true
	return nil
}

// StartRow begins a row. A nil style selects the table row style.
func (t *Table) StartRow(s *style.Style) *Table {
	t.inRow = true
	t.cells = t.cells[:0]
	t.current = s
	return t
}

// Add appends a text cell spanning one column.
func (t *Table) Add(text string) *Table {
	return t.AddCell(Cell{Text: text})
}

// AddStyled appends a text cell with its own style.
func (t *Table) AddStyled(text string, s style.Style) *Table {
	return t.AddCell(Cell{Text: text, Style: &s})
}

// AddCell appends c to the current row.
func (t *Table) AddCell(c Cell) *Table {
	t.cells = append(t.cells, c)
	return t
}

// AddAmount appends a right aligned amount.
func (t *Table) AddAmount(v float64) *Table {
	return t.addRight(t.format.Amount(v))
}

// AddInt appends a right aligned integer.
func (t *Table) AddInt(v int64) *Table {
	return t.addRight(t.format.Int(v))
}

// AddPercent appends the ratio v right aligned as a percentage.
func (t *Table) AddPercent(v float64) *Table {
	return t.addRight(t.format.Percent(v))
}

// AddTrans appends the translation of id.
func (t *Table) AddTrans(id string, params map[string]string) *Table {
	return t.Add(t.translate(id, params))
}

func (t *Table) addRight(text string) *Table {
	align := AlignRight
	return t.AddCell(Cell{Text: text, Align: &align})
}

func (t *Table) translate(id string, params map[string]string) string {
	if t.trans == nil {
		return id
	}
	return t.trans.Trans(id, params)
}

// Formatter returns the number formatter.
func (t *Table) Formatter() *Formatter { return t.format }

// CompleteRow pads the current row with empty cells and ends it.
func (t *Table) CompleteRow() error {
	if !t.inRow {
		return ErrNoRow
	}
	for n := t.spanned(); n < len(t.columns); n++ {
		t.AddCell(Cell{})
	}
	return t.EndRow()
}

// AddRow writes a row of plain text cells.
func (t *Table) AddRow(values ...string) error {
	t.StartRow(nil)
	for _, v := range values {
		t.Add(v)
	}
	return t.EndRow()
}

// SingleLine writes a row made of one cell spanning every column.
func (t *Table) SingleLine(text string, s *style.Style, align Alignment) error {
	t.StartRow(s)
	t.AddCell(Cell{Text: text, Cols: len(t.columns), Align: &align})
	return t.EndRow()
}

func (t *Table) spanned() int {
	n := 0
	for _, c := range t.cells {
		n += c.span()
	}
	return n
}

// EndRow draws the current row. The row moves to a new page when it does
// not fit above the page break trigger.
func (t *Table) EndRow() error {
	if !t.inRow {
		return ErrNoRow
	}
	t.inRow = false
	if len(t.columns) == 0 {
		return ErrNoColumns
	}
	if n := t.spanned(); n != len(t.columns) {
		return fmt.Errorf("%w: %d cells for %d columns", ErrColumnCount, n, len(t.columns))
	}
	rowStyle := t.rowStyle
	if t.current != nil {
		rowStyle = *t.current
	}
	cells := append([]Cell(nil), t.cells...)
	layouts, height, err := t.layout(cells, rowStyle)
	if err != nil {
		return err
	}
	if err := t.checkNewPage(height); err != nil {
		return err
	}
	return t.draw(layouts, height)
}

type cellLayout struct {
	cell  Cell
	style style.Style
	align Alignment
	width float64
	lines []string
}

func (t *Table) layout(cells []Cell, rowStyle style.Style) ([]cellLayout, float64, error) {
	widths := t.Widths()
	out := make([]cellLayout, 0, len(cells))
	col := 0
	lines := 1
	for _, c := range cells {
		l := cellLayout{cell: c, style: rowStyle, align: t.columns[col].Align}
		for i := 0; i < c.span(); i++ {
			l.width += widths[col+i]
		}
		if c.Style != nil {
			l.style = *c.Style
		}
		if c.Align != nil {
			l.align = *c.Align
		}
		if err := l.style.Apply(t.doc); err != nil {
			return nil, 0, err
		}
		l.lines = t.doc.SplitText(c.Text, l.width-l.style.Indent)
		lines = max(lines, len(l.lines))
		out = append(out, l)
		col += c.span()
	}
	return out, float64(lines) * t.lineHeight, nil
}

func (t *Table) checkNewPage(height float64) error {
	d := t.doc
	if !d.AutoPageBreak() || d.InHeader() || d.InFooter() || d.GetY()+height <= d.PageBreakTrigger() {
		return nil
	}
	d.AddPage()
	if t.repeatHeader && t.headersDone && !t.inHeaders {
		return t.OutputHeaders()
	}
	return nil
}

func (t *Table) draw(cells []cellLayout, height float64) error {
	d := t.doc
	x0, y := d.LeftMargin(), d.GetY()
	x := x0
	for _, l := range cells {
		if err := l.style.Apply(d); err != nil {
			return err
		}
		t.drawBorder(l, x, y, height)
		d.SetXY(x+l.style.Indent, y)
		for _, line := range l.lines {
			d.Cell(l.width-l.style.Indent, t.lineHeight, line, "", 2, l.align.String(), false, document.Link{})
			d.SetX(x + l.style.Indent)
		}
		if !l.cell.Link.IsZero() {
			d.Link(x, y, l.width, height, l.cell.Link)
		}
		x += l.width
	}
	d.SetXY(x0, y+height)
	return t.defaultStyle.Apply(d)
}

func (t *Table) drawBorder(l cellLayout, x, y, h float64) {
	d := t.doc
	b := l.style.Border
	switch {
	case b.Sides == style.All:
		if l.style.HasFill() {
			d.Rect(x, y, l.width, h, "DF")
		} else {
			d.Rect(x, y, l.width, h, "D")
		}
		return
	case l.style.HasFill():
		d.Rect(x, y, l.width, h, "F")
	}
	if b.Sides&style.Left != 0 {
		d.Line(x, y, x, y+h)
	}
	if b.Sides&style.Top != 0 {
		d.Line(x, y, x+l.width, y)
	}
	if b.Sides&style.Right != 0 {
		d.Line(x+l.width, y, x+l.width, y+h)
	}
	if b.Sides&style.Bottom != 0 {
		d.Line(x, y+h, x+l.width, y+h)
	}
}

// Reset applies the table default style to the document.
func (t *Table) Reset() error {
	return t.defaultStyle.Apply(t.doc)
}
