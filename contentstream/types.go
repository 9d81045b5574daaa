package contentstream

// Paint selects the painting operator closing a path.
type Paint int

const (
	PaintStroke Paint = iota
	PaintFill
	PaintFillStroke
	// PaintCloseFillStroke closes the subpath before filling and stroking.
	PaintCloseFillStroke
	PaintCloseStroke
)

// Operator returns the content-stream operator for the paint mode.
func (p Paint) Operator() string {
	switch p {
	case PaintFill:
		return "f"
	case PaintFillStroke:
		return "B"
	case PaintCloseFillStroke:
		return "b"
	case PaintCloseStroke:
		return "s"
	default:
		return "S"
	}
}

// Path describes a graphics path made of subpaths.
type Path struct {
	Subpaths []Subpath
}

// Subpath describes a portion of a path.
type Subpath struct {
	Points []PathPoint
	Closed bool
}

// PathPoint identifies a path segment and its coordinates.
type PathPoint struct {
	X, Y                 float64
	Type                 PathPointType
	Control1X, Control1Y float64
	Control2X, Control2Y float64
}

// PathPointType enumerates path segment types.
type PathPointType int

const (
	PathMoveTo PathPointType = iota
	PathLineTo
	PathCurveTo
)

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) *Path {
	p.Subpaths = append(p.Subpaths, Subpath{Points: []PathPoint{{X: x, Y: y, Type: PathMoveTo}}})
	return p
}

// LineTo appends a straight segment to the current subpath.
func (p *Path) LineTo(x, y float64) *Path {
	p.last().Points = append(p.last().Points, PathPoint{X: x, Y: y, Type: PathLineTo})
	return p
}

// CurveTo appends a cubic Bézier segment to the current subpath.
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) *Path {
	p.last().Points = append(p.last().Points, PathPoint{
		X: x3, Y: y3, Type: PathCurveTo,
		Control1X: x1, Control1Y: y1,
		Control2X: x2, Control2Y: y2,
	})
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.last().Closed = true
	return p
}

func (p *Path) last() *Subpath {
	if len(p.Subpaths) == 0 {
		p.Subpaths = append(p.Subpaths, Subpath{})
	}
	return &p.Subpaths[len(p.Subpaths)-1]
}
