package document

// BlendMode is a PDF blend mode name.
type BlendMode string

const (
	BlendNormal     BlendMode = "Normal"
	BlendMultiply   BlendMode = "Multiply"
	BlendScreen     BlendMode = "Screen"
	BlendOverlay    BlendMode = "Overlay"
	BlendDarken     BlendMode = "Darken"
	BlendLighten    BlendMode = "Lighten"
	BlendColorDodge BlendMode = "ColorDodge"
	BlendColorBurn  BlendMode = "ColorBurn"
	BlendHardLight  BlendMode = "HardLight"
	BlendSoftLight  BlendMode = "SoftLight"
	BlendDifference BlendMode = "Difference"
	BlendExclusion  BlendMode = "Exclusion"
	BlendHue        BlendMode = "Hue"
	BlendSaturation BlendMode = "Saturation"
	BlendColor      BlendMode = "Color"
	BlendLuminosity BlendMode = "Luminosity"
)

type alphaState struct {
	alpha float64
	blend BlendMode
}

// SetAlpha selects a new transparency state for stroking and filling. alpha
// is clamped into [0, 1] and an empty mode means Normal. Every call adds a
// graphics state resource, even for values seen before.
func (d *Document) SetAlpha(alpha float64, mode BlendMode) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	if mode == "" {
		mode = BlendNormal
	}
	d.alphas = append(d.alphas, alphaState{alpha: alpha, blend: mode})
	d.Outf("/GS%d gs", len(d.alphas))
}

// ResetAlpha restores opaque painting.
func (d *Document) ResetAlpha() { d.SetAlpha(1, BlendNormal) }

// AlphaStateCount returns the number of transparency states created.
func (d *Document) AlphaStateCount() int { return len(d.alphas) }
