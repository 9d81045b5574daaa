// Package chart renders bar charts, pie charts and their legends.
//
// Colours are resolved when values are built: NewBarValue, NewPieRow and
// NewLegend fall back to color.DefaultFill for unset or unknown colours.
package chart

import (
	"math"

	"github.com/laurentmuller/calculation-sub010/color"
	"github.com/laurentmuller/calculation-sub010/document"
)

// BarValue is one stacked segment of a bar.
type BarValue struct {
	Color color.Color
	Value float64
}

// NewBarValue resolves spec into a fill colour.
func NewBarValue(spec color.Spec, value float64) BarValue {
	return BarValue{Color: spec.Resolve(color.DefaultFill), Value: value}
}

// BarRow is one bar: a label and stacked values drawn bottom up.
type BarRow struct {
	Label  string
	Values []BarValue
	Link   document.Link
}

// Total returns the sum of the row values.
func (r BarRow) Total() float64 {
	t := 0.0
	for _, v := range r.Values {
		t += v.Value
	}
	return t
}

// PieRow is one wedge of a pie chart.
type PieRow struct {
	Color color.Color
	Value float64
	Label string
}

// NewPieRow resolves spec into a fill colour.
func NewPieRow(spec color.Spec, value float64, label string) PieRow {
	return PieRow{Color: spec.Resolve(color.DefaultFill), Value: value, Label: label}
}

// Legend is a colour swatch followed by a label.
type Legend struct {
	Color color.Color
	Label string
}

// NewLegend resolves spec into a fill colour.
func NewLegend(spec color.Spec, label string) Legend {
	return Legend{Color: spec.Resolve(color.DefaultFill), Label: label}
}

// PieLegends returns one legend per pie row.
func PieLegends(rows []PieRow) []Legend {
	out := make([]Legend, len(rows))
	for i, r := range rows {
		out[i] = Legend{Color: r.Color, Label: r.Label}
	}
	return out
}

// Sum adds values.
func Sum(values ...float64) float64 {
	s := 0.0
	for _, v := range values {
		s += v
	}
	return s
}

// Min returns the smallest value, 0 for none.
func Min(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := math.Inf(1)
	for _, v := range values {
		m = math.Min(m, v)
	}
	return m
}

// Max returns the largest value, 0 for none.
func Max(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := math.Inf(-1)
	for _, v := range values {
		m = math.Max(m, v)
	}
	return m
}
