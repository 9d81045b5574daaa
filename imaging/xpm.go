package imaging

import (
	"fmt"
	"image"
	stdcolor "image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/laurentmuller/calculation-sub010/color"
)

var xpmString = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

type xpmDecoder struct{}

// Decode reads an XPM3 pixmap: a values string, one string per colour and
// one per row. Colours are #RGB, #RRGGBB, #RRRRGGGGBBBB, None or a palette
// name.
func (xpmDecoder) Decode(data []byte) (image.Image, error) {
	var strs []string
	for _, m := range xpmString.FindAllSubmatch(data, -1) {
		strs = append(strs, string(m[1]))
	}
	if len(strs) == 0 {
		return nil, fmt.Errorf("xpm: no values")
	}
	fields := strings.Fields(strs[0])
	if len(fields) < 4 {
		return nil, fmt.Errorf("xpm: bad values %q", strs[0])
	}
	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("xpm: bad values %q", strs[0])
		}
		v[i] = n
	}
	w, h, ncolors, cpp := v[0], v[1], v[2], v[3]
	if w > maxDimension || h > maxDimension {
		return nil, fmt.Errorf("xpm: invalid size %dx%d", w, h)
	}
	if len(strs) < 1+ncolors+h {
		return nil, fmt.Errorf("xpm: truncated data")
	}
	palette := make(map[string]stdcolor.NRGBA, ncolors)
	for _, line := range strs[1 : 1+ncolors] {
		if len(line) < cpp {
			return nil, fmt.Errorf("xpm: bad colour %q", line)
		}
		c, err := xpmColor(strings.Fields(line[cpp:]))
		if err != nil {
			return nil, err
		}
		palette[line[:cpp]] = c
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y, row := range strs[1+ncolors : 1+ncolors+h] {
		if len(row) < w*cpp {
			return nil, fmt.Errorf("xpm: row %d too short", y)
		}
		for x := 0; x < w; x++ {
			c, ok := palette[row[x*cpp:(x+1)*cpp]]
			if !ok {
				return nil, fmt.Errorf("xpm: unknown pixel %q", row[x*cpp:(x+1)*cpp])
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// xpmColor picks the colour visual ("c") of a colour definition, falling
// back to the first visual given.
func xpmColor(fields []string) (stdcolor.NRGBA, error) {
	value := ""
	for i := 0; i+1 < len(fields); i += 2 {
		if value == "" || fields[i] == "c" {
			value = fields[i+1]
		}
		if fields[i] == "c" {
			break
		}
	}
	switch {
	case value == "":
		return stdcolor.NRGBA{}, fmt.Errorf("xpm: colour without value")
	case strings.EqualFold(value, "none"):
		return stdcolor.NRGBA{}, nil
	case len(value) == 13 && value[0] == '#':
		value = "#" + value[1:3] + value[5:7] + value[9:11]
	}
	c, ok := color.Lookup(value)
	if !ok {
		var err error
		if c, err = color.Parse(value); err != nil {
			return stdcolor.NRGBA{}, fmt.Errorf("xpm: colour %q: %w", value, err)
		}
	}
	return stdcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
}
