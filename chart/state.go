package chart

import "github.com/laurentmuller/calculation-sub010/document"

// drawState is the document state a chart changes while drawing.
type drawState struct {
	family, style string
	size          float64
	draw, fill    [3]int
	text          [3]int
	lineWidth     float64
	cellMargin    float64
}

func saveState(d *document.Document) drawState {
	s := drawState{
		family:     d.FontFamily(),
		style:      d.FontStyle(),
		size:       d.FontSize(),
		lineWidth:  d.LineWidth(),
		cellMargin: d.CellMargin(),
	}
	s.draw[0], s.draw[1], s.draw[2] = d.DrawColor()
	s.fill[0], s.fill[1], s.fill[2] = d.FillColor()
	s.text[0], s.text[1], s.text[2] = d.TextColor()
	return s
}

func (s drawState) restore(d *document.Document) error {
	d.SetCellMargin(s.cellMargin)
	d.SetLineWidth(s.lineWidth)
	d.SetDrawColor(s.draw[0], s.draw[1], s.draw[2])
	d.SetFillColor(s.fill[0], s.fill[1], s.fill[2])
	d.SetTextColor(s.text[0], s.text[1], s.text[2])
	if s.family == "" {
		return nil
	}
	return d.SetFont(s.family, s.style, s.size)
}
