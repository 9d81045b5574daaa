package chart

// Option positions and sizes a chart or a legend block.
type Option func(*frame)

type frame struct {
	x, y, w, h float64
	hasX, hasY bool
	hasW, hasH bool
}

// At places the top-left corner at (x, y).
func At(x, y float64) Option {
	return func(f *frame) {
		f.x, f.y, f.hasX, f.hasY = x, y, true, true
	}
}

// Size sets the width and height. Non-positive values keep the default.
func Size(w, h float64) Option {
	return func(f *frame) {
		if w > 0 {
			f.w, f.hasW = w, true
		}
		if h > 0 {
			f.h, f.hasH = h, true
		}
	}
}

func newFrame(opts []Option) frame {
	var f frame
	for _, opt := range opts {
		opt(&f)
	}
	return f
}
