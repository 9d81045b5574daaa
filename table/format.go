package table

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers for table cells using the grouping and decimal
// conventions of a locale.
type Formatter struct {
	printer *message.Printer
	// AmountDecimals is the number of decimals of amounts (default 2).
	AmountDecimals int
	// PercentDecimals is the number of decimals of percentages (default 0).
	PercentDecimals int
}

// NewFormatter returns a formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag), AmountDecimals: 2}
}

// Amount formats v with grouping and AmountDecimals decimals.
func (f *Formatter) Amount(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(f.AmountDecimals)))
}

// Int formats v with grouping.
func (f *Formatter) Int(v int64) string {
	return f.printer.Sprint(number.Decimal(v))
}

// Percent formats the ratio v as a percentage (0.25 is 25%).
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprint(number.Percent(v, number.Scale(f.PercentDecimals)))
}
