package report

import (
	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/style"
	"github.com/laurentmuller/calculation-sub010/table"
)

func (r *renderer) newTable(cols ...table.Column) *table.Table {
	t := table.New(r.d,
		table.FullWidth(),
		table.RepeatHeader(),
		table.WithTranslator(r.trans),
		table.WithFormatter(r.format),
		table.WithRowStyle(style.Cell().WithFont(r.opts.Font)),
		table.WithHeaderStyle(style.HeaderCell().WithFont(r.opts.Font).WithFontStyle(style.Bold)),
		table.WithDefaultStyle(r.body),
		table.WithLineHeight(r.lineHeight()),
	)
	return t.AddColumns(cols...)
}

func (r *renderer) totalStyle() *style.Style {
	s := style.BoldCell().WithFont(r.opts.Font).WithFontStyle(style.Bold).WithFill(color.Header)
	return &s
}

// marginCell highlights margins below the minimum in the error colour.
func (r *renderer) marginCell(t *table.Table, margin float64) {
	if margin >= r.opts.MinMargin {
		t.AddPercent(margin)
		return
	}
	s := style.Cell().WithFont(r.opts.Font).WithText(color.Error)
	align := table.AlignRight
	t.AddCell(table.Cell{Text: r.format.Percent(margin), Style: &s, Align: &align})
}

// groupsTable lists each group with its amount, margin and total.
func (r *renderer) groupsTable() error {
	t := r.newTable(
		table.Left("column.group", 40, false),
		table.Right("column.amount", 25, true),
		table.Right("column.margin", 18, true),
		table.Right("column.margin_amount", 30, true),
		table.Right("column.total", 25, true),
	)
	if err := t.OutputHeaders(); err != nil {
		return err
	}
	for _, g := range r.calc.Groups {
		t.StartRow(nil).Add(g.Code).AddAmount(g.Amount())
		r.marginCell(t, g.MarginPercent())
		t.AddAmount(g.MarginAmount()).AddAmount(g.Total())
		if err := t.EndRow(); err != nil {
			return err
		}
	}
	t.StartRow(r.totalStyle()).AddTrans("total.groups", nil).AddAmount(r.calc.ItemsAmount())
	amount := r.calc.ItemsAmount()
	margin := 0.0
	if amount != 0 {
		margin = r.calc.GroupsMarginAmount() / amount
	}
	t.AddPercent(margin).AddAmount(r.calc.GroupsMarginAmount()).AddAmount(r.calc.GroupsTotal())
	return t.EndRow()
}

// itemsTable lists the items under one line per group and category. Each
// group gets a second level bookmark.
func (r *renderer) itemsTable() error {
	t := r.newTable(
		table.Left("column.description", 50, false),
		table.Left("column.unit", 15, true),
		table.Right("column.price", 22, true),
		table.Right("column.quantity", 20, true),
		table.Right("column.total", 25, true),
	)
	if err := t.OutputHeaders(); err != nil {
		return err
	}
	group := style.Cell().WithFont(r.opts.Font).WithFontStyle(style.Bold).WithFill(color.Header)
	category := style.Cell().WithFont(r.opts.Font).WithFontStyle(style.Italic)
	for _, g := range r.calc.Groups {
		if g.ItemsCount() == 0 {
			continue
		}
		if err := r.bookmark(g.Code, 1); err != nil {
			return err
		}
		if err := t.SingleLine(g.Code, &group, table.AlignLeft); err != nil {
			return err
		}
		for _, c := range g.Categories {
			if len(c.Items) == 0 {
				continue
			}
			if err := t.SingleLine(c.Code, &category, table.AlignLeft); err != nil {
				return err
			}
			for _, item := range c.Items {
				t.StartRow(nil).Add(item.Description).Add(item.Unit).
					AddAmount(item.Price).AddAmount(item.Quantity).AddAmount(item.Total())
				if err := t.EndRow(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// overallTable sums up the groups total, the margins and the overall total.
func (r *renderer) overallTable() error {
	c := r.calc
	t := r.newTable(
		table.Left("column.description", 50, false),
		table.Right("column.margin", 25, true),
		table.Right("column.total", 30, true),
	)
	if err := t.OutputHeaders(); err != nil {
		return err
	}
	t.StartRow(nil).AddTrans("total.groups", nil).Add("").AddAmount(c.GroupsTotal())
	if err := t.EndRow(); err != nil {
		return err
	}
	if c.GlobalMargin != 0 {
		t.StartRow(nil).AddTrans("total.global_margin", nil).AddPercent(c.GlobalMargin - 1).AddAmount(c.GlobalMarginAmount())
		if err := t.EndRow(); err != nil {
			return err
		}
	}
	t.StartRow(nil).AddTrans("total.net", nil).Add("").AddAmount(c.NetTotal())
	if err := t.EndRow(); err != nil {
		return err
	}
	if c.UserMargin != 0 {
		t.StartRow(nil).AddTrans("total.user_margin", nil).AddPercent(c.UserMargin).AddAmount(c.UserMarginAmount())
		if err := t.EndRow(); err != nil {
			return err
		}
	}
	t.StartRow(r.totalStyle()).AddTrans("total.overall", nil)
	r.marginCell(t, c.OverallMargin())
	t.AddAmount(c.OverallTotal())
	return t.EndRow()
}
