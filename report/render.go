package report

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"

	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/document"
	"github.com/laurentmuller/calculation-sub010/imaging"
	"github.com/laurentmuller/calculation-sub010/observability"
	"github.com/laurentmuller/calculation-sub010/outline"
	"github.com/laurentmuller/calculation-sub010/richtext"
	"github.com/laurentmuller/calculation-sub010/style"
	"github.com/laurentmuller/calculation-sub010/table"
)

// Options controls the rendering of a calculation.
type Options struct {
	// Translator resolves message ids; nil uses the built-in English
	// messages.
	Translator table.Translator
	// Formatter formats amounts and percentages; nil uses English.
	Formatter *table.Formatter
	Font      style.Font
	// MinMargin highlights groups whose margin fraction is below it.
	MinMargin float64
	// DateLayout is a time layout for the calculation date.
	DateLayout string
	// Logo is drawn at the top-left corner of the first page, LogoHeight
	// high. Any format the imaging package decodes is accepted.
	Logo       []byte
	LogoHeight float64

	Bookmarks bool
	Index     bool
	IndexOpts outline.IndexOptions

	Charts        bool
	BarHeight     float64
	AxisFormatter func(float64) string
}

// DefaultOptions renders bookmarks and charts with the default font. The
// index title is a message id.
func DefaultOptions() Options {
	index := outline.DefaultIndexOptions()
	index.Title = "report.index"
	return Options{
		Font:       style.DefaultFont(),
		MinMargin:  0.1,
		DateLayout: "02.01.2006",
		Bookmarks:  true,
		IndexOpts:  index,
		Charts:     true,
		BarHeight:  80,
	}
}

type renderer struct {
	d      *document.Document
	calc   *Calculation
	opts   Options
	trans  table.Translator
	format *table.Formatter
	out    *outline.Outline
	log    observability.Logger
	body   style.Style
}

// Render writes calc on d, starting a page when d has none. The document
// is not closed.
func Render(d *document.Document, calc *Calculation, opts Options) error {
	r := &renderer{d: d, calc: calc, opts: opts, trans: opts.Translator, format: opts.Formatter, log: d.Logger()}
	if r.trans == nil {
		cat, err := Messages()
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		r.trans = cat.Translator("en")
	}
	if r.format == nil {
		r.format = table.NewFormatter(language.English)
	}
	if r.opts.Font.Size <= 0 {
		r.opts.Font = style.DefaultFont()
	}
	r.body = style.Default().WithFont(r.opts.Font)
	if opts.Bookmarks || opts.Index {
		r.out = outline.New(d)
	}
	if err := r.render(); err != nil {
		return err
	}
	r.log.Info("calculation rendered",
		observability.Int("id", calc.ID),
		observability.Int("groups", len(calc.Groups)),
		observability.Int("pages", d.PageCount()))
	return d.Err()
}

func (r *renderer) t(id string, params map[string]string) string { return r.trans.Trans(id, params) }

func (r *renderer) render() error {
	r.d.SetFooterFunc(r.footer)
	if r.d.PageCount() == 0 {
		r.d.AddPage()
	}
	if err := r.header(); err != nil {
		return err
	}
	if r.calc.IsEmpty() {
		r.d.Ln(r.lineHeight())
		return r.write(r.t("report.empty", nil), r.body.WithFontStyle(style.Italic))
	}
	sections := []struct {
		id   string
		draw func() error
	}{
		{"section.groups", r.groupsTable},
		{"section.items", r.itemsTable},
		{"section.overall", r.overallTable},
	}
	if r.opts.Charts {
		sections = append(sections, struct {
			id   string
			draw func() error
		}{"section.charts", r.charts})
	}
	for _, s := range sections {
		r.d.Ln(r.lineHeight())
		if err := r.bookmark(r.t(s.id, nil), 0); err != nil {
			return err
		}
		if err := r.draw(s.draw); err != nil {
			return fmt.Errorf("report: %s: %w", s.id, err)
		}
	}
	if r.opts.Index && r.out != nil {
		opts := r.opts.IndexOpts
		if opts.Title != "" {
			opts.Title = r.t(opts.Title, nil)
		}
		if err := r.out.AddPageIndex(opts); err != nil {
			return fmt.Errorf("report: index: %w", err)
		}
	}
	return nil
}

func (r *renderer) draw(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	return r.d.Err()
}

func (r *renderer) lineHeight() float64 { return r.opts.Font.Size * 1.5 / r.d.K() }

func (r *renderer) write(text string, s style.Style) error {
	if err := s.Apply(r.d); err != nil {
		return err
	}
	r.d.Cell(0, r.lineHeight(), text, "", 1, "L", false, document.Link{})
	return r.body.Apply(r.d)
}

// bookmark adds an outline entry at the cursor when bookmarks are on.
func (r *renderer) bookmark(text string, level int) error {
	if r.out == nil {
		return nil
	}
	if r.d.GetY()+r.lineHeight() > r.d.PageBreakTrigger() {
		r.d.AddPage()
	}
	return r.out.Add(text, true, level, true, true)
}

func (r *renderer) header() error {
	h := r.lineHeight()
	if len(r.opts.Logo) > 0 {
		lh := r.opts.LogoHeight
		if lh <= 0 {
			lh = 2 * h
		}
		x, y := r.d.GetX(), r.d.GetY()
		if err := imaging.Embed(r.d, "logo", r.opts.Logo, x, y, 0, lh, document.Link{}); err != nil {
			return fmt.Errorf("report: logo: %w", err)
		}
		r.d.SetXY(x, y)
	}
	title := r.body.WithFontStyle(style.Bold).WithFontSize(r.opts.Font.Size + 6)
	if err := title.Apply(r.d); err != nil {
		return err
	}
	r.d.Cell(0, h*1.5, r.t("report.title", map[string]string{"id": strconv.Itoa(r.calc.ID)}), "", 1, "C", false, document.Link{})
	if err := r.body.Apply(r.d); err != nil {
		return err
	}

	info := table.New(r.d,
		table.FullWidth(),
		table.WithTranslator(r.trans),
		table.WithFormatter(r.format),
		table.WithRowStyle(style.NoBorder().WithFont(r.opts.Font)),
		table.WithDefaultStyle(r.body),
		table.WithLineHeight(h),
	)
	info.AddColumns(table.Left("", 35, true), table.Left("", 100, false))
	label := r.body.WithFontStyle(style.Bold)
	rows := [][2]string{{"report.customer", r.calc.Customer}}
	if !r.calc.Date.IsZero() {
		rows = append(rows, [2]string{"report.date", r.calc.Date.Format(r.opts.DateLayout)})
	}
	for _, row := range rows {
		info.StartRow(nil).AddStyled(r.t(row[0], nil), label).Add(row[1])
		if err := info.EndRow(); err != nil {
			return err
		}
	}
	if r.calc.State != "" {
		state := r.body.WithText(color.Named(r.calc.StateColor).Resolve(color.Black))
		info.StartRow(nil).AddStyled(r.t("report.state", nil), label).AddStyled(r.calc.State, state)
		if err := info.EndRow(); err != nil {
			return err
		}
	}
	if r.calc.Description != "" {
		r.d.Ln(h / 2)
		if err := richtext.Markdown(r.d, h, []byte(r.calc.Description)); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) footer() {
	s := r.body.WithFontStyle(style.Italic).WithFontSize(r.opts.Font.Size - 1)
	if err := s.Apply(r.d); err != nil {
		r.d.SetErr(err)
		return
	}
	r.d.SetY(-r.d.BottomMargin())
	r.d.Cell(0, r.d.BottomMargin()/2, r.t("report.page", map[string]string{"page": strconv.Itoa(r.d.PageNo())}), "T", 0, "R", false, document.Link{})
}
