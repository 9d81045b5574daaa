package contentstream

import (
	"errors"
	"math"

	"github.com/laurentmuller/calculation-sub010/coords"
)

// Rectangle is an axis-aligned box in default user space.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

func (r Rectangle) Width() float64  { return r.URX - r.LLX }
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// PaintedShape is one painted path with the bounding box of its points.
type PaintedShape struct {
	OpIndex  int
	Operator string
	Rect     Rectangle
	// FillRGB is the non-stroking colour active when the shape was painted.
	FillRGB [3]float64
	// Rects counts the re operators of the path.
	Rects int
}

// GraphicsState tracks the parts of the graphics state the tracer needs.
type GraphicsState struct {
	CTM       coords.Matrix
	LineWidth float64
	FillRGB   [3]float64
	stack     []GraphicsState
}

// Save pushes a copy of the state.
func (gs *GraphicsState) Save() {
	clone := *gs
	clone.stack = nil
	gs.stack = append(gs.stack, clone)
}

// Restore pops the last saved state.
func (gs *GraphicsState) Restore() error {
	n := len(gs.stack)
	if n == 0 {
		return errors.New("state stack empty")
	}
	saved := gs.stack[n-1]
	saved.stack = gs.stack[:n-1]
	*gs = saved
	return nil
}

// Depth returns the number of saved states.
func (gs *GraphicsState) Depth() int { return len(gs.stack) }

// Trace is the result of executing a content stream virtually.
type Trace struct {
	Shapes   []PaintedShape
	MaxDepth int
	// FinalDepth is the q/Q nesting left open at the end of the stream.
	FinalDepth int
	// FinalCTM is the transformation matrix at the end of the stream.
	FinalCTM coords.Matrix
}

// Tracer calculates the painted shapes of a content stream.
type Tracer struct{}

func NewTracer() *Tracer { return &Tracer{} }

// Trace executes ops and returns the painted shapes in default user space.
func (t *Tracer) Trace(ops []Operation) (*Trace, error) {
	gs := &GraphicsState{CTM: coords.Identity(), LineWidth: 1}
	res := &Trace{}
	var points []coords.Point
	rects := 0
	for i, op := range ops {
		switch op.Operator {
		case "q":
			gs.Save()
			if gs.Depth() > res.MaxDepth {
				res.MaxDepth = gs.Depth()
			}
		case "Q":
			if err := gs.Restore(); err != nil {
				return nil, err
			}
		case "cm":
			if len(op.Operands) == 6 {
				m := coords.Matrix{op.Float(0), op.Float(1), op.Float(2), op.Float(3), op.Float(4), op.Float(5)}
				gs.CTM = m.Multiply(gs.CTM)
			}
		case "w":
			gs.LineWidth = op.Float(0)
		case "rg":
			gs.FillRGB = [3]float64{op.Float(0), op.Float(1), op.Float(2)}
		case "g":
			v := op.Float(0)
			gs.FillRGB = [3]float64{v, v, v}
		case "m", "l":
			points = append(points, gs.CTM.Transform(coords.Point{X: op.Float(0), Y: op.Float(1)}))
		case "c":
			for j := 0; j < 6; j += 2 {
				points = append(points, gs.CTM.Transform(coords.Point{X: op.Float(j), Y: op.Float(j + 1)}))
			}
		case "re":
			x, y, w, h := op.Float(0), op.Float(1), op.Float(2), op.Float(3)
			points = append(points,
				gs.CTM.Transform(coords.Point{X: x, Y: y}),
				gs.CTM.Transform(coords.Point{X: x + w, Y: y}),
				gs.CTM.Transform(coords.Point{X: x, Y: y + h}),
				gs.CTM.Transform(coords.Point{X: x + w, Y: y + h}),
			)
			rects++
		case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*":
			if len(points) > 0 {
				res.Shapes = append(res.Shapes, PaintedShape{
					OpIndex:  i,
					Operator: op.Operator,
					Rect:     pointsToRect(points),
					FillRGB:  gs.FillRGB,
					Rects:    rects,
				})
			}
			points = points[:0]
			rects = 0
		case "n":
			points = points[:0]
			rects = 0
		}
	}
	res.FinalDepth = gs.Depth()
	res.FinalCTM = gs.CTM
	return res, nil
}

// Filled returns the shapes painted with a fill operator.
func (t *Trace) Filled() []PaintedShape {
	var out []PaintedShape
	for _, s := range t.Shapes {
		switch s.Operator {
		case "f", "F", "f*", "B", "B*", "b", "b*":
			out = append(out, s)
		}
	}
	return out
}

func pointsToRect(pts []coords.Point) Rectangle {
	r := Rectangle{LLX: math.Inf(1), LLY: math.Inf(1), URX: math.Inf(-1), URY: math.Inf(-1)}
	for _, p := range pts {
		r.LLX = math.Min(r.LLX, p.X)
		r.LLY = math.Min(r.LLY, p.Y)
		r.URX = math.Max(r.URX, p.X)
		r.URY = math.Max(r.URY, p.Y)
	}
	return r
}
