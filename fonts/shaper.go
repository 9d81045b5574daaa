package fonts

import (
	"sort"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Glyph is a shaped glyph. Advance is in 1/1000 em and Adjust is the TJ
// correction between the hmtx width and the shaped advance.
type Glyph struct {
	ID      int
	Advance float64
	Adjust  float64
	Runes   []rune
}

// Shape converts text into positioned glyphs and records them as used.
// Text is shaped left to right; control characters are dropped.
func (f *Face) Shape(text string) []Glyph {
	runes := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsControl(r) {
			continue
		}
		runes = append(runes, r)
	}
	if len(runes) == 0 {
		return nil
	}
	var glyphs []Glyph
	if f.shape != nil {
		glyphs = f.shapeRuns(runes)
	} else {
		glyphs = f.nominal(runes)
	}
	for _, g := range glyphs {
		if _, ok := f.used[g.ID]; !ok || len(f.used[g.ID]) == 0 {
			f.used[g.ID] = g.Runes
		}
	}
	return glyphs
}

func (f *Face) shapeRuns(runes []rune) []Glyph {
	// Use a standard size for shaping: 1000 units per em in 26.6 fixed point.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Size:      fixed.Int26_6(1000 * 64),
		Script:    detectScript(runes),
		Language:  language.DefaultLanguage(),
	}
	output := f.shape(input)
	clusters := make([]int, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		clusters = append(clusters, g.ClusterIndex)
	}
	sort.Ints(clusters)
	seen := make(map[int]bool, len(output.Glyphs))
	result := make([]Glyph, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		id := int(g.GlyphID)
		adv := float64(g.XAdvance) / 64.0
		glyph := Glyph{ID: id, Advance: adv, Adjust: float64(f.GlyphWidth(id)) - adv}
		if !seen[g.ClusterIndex] {
			seen[g.ClusterIndex] = true
			end := len(runes)
			i := sort.SearchInts(clusters, g.ClusterIndex+1)
			if i < len(clusters) {
				end = clusters[i]
			}
			if g.ClusterIndex >= 0 && g.ClusterIndex < end && end <= len(runes) {
				glyph.Runes = append([]rune(nil), runes[g.ClusterIndex:end]...)
			}
		}
		result = append(result, glyph)
	}
	return result
}

// nominal maps runes one to one through the cmap table.
func (f *Face) nominal(runes []rune) []Glyph {
	out := make([]Glyph, 0, len(runes))
	for _, r := range runes {
		id := f.GlyphIndex(r)
		out = append(out, Glyph{ID: id, Advance: float64(f.GlyphWidth(id)), Runes: []rune{r}})
	}
	return out
}

func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	maxCount := 0
	bestScript := language.Latin
	for _, r := range runes {
		script := scriptFromRune(r)
		if script == language.Unknown {
			continue
		}
		counts[script]++
		if counts[script] > maxCount {
			maxCount = counts[script]
			bestScript = script
		}
	}
	return bestScript
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	}
	return language.Unknown
}
