package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"regexp"
	"strconv"
)

var (
	xbmDefine = regexp.MustCompile(`#define\s+\S*?_(width|height)\s+(\d+)`)
	xbmByte   = regexp.MustCompile(`0[xX][0-9a-fA-F]{1,2}`)
)

type xbmDecoder struct{}

// Decode reads an X bitmap: C source with width and height defines and an
// array of bytes, least significant bit first, a set bit being black.
func (xbmDecoder) Decode(data []byte) (image.Image, error) {
	var w, h int
	for _, m := range xbmDefine.FindAllSubmatch(data, -1) {
		v, err := strconv.Atoi(string(m[2]))
		if err != nil {
			return nil, fmt.Errorf("xbm: %w", err)
		}
		if string(m[1]) == "width" {
			w = v
		} else {
			h = v
		}
	}
	if w <= 0 || h <= 0 || w > maxDimension || h > maxDimension {
		return nil, fmt.Errorf("xbm: invalid size %dx%d", w, h)
	}
	brace := bytes.IndexByte(data, '{')
	if brace < 0 {
		return nil, fmt.Errorf("xbm: missing bits array")
	}
	hex := xbmByte.FindAll(data[brace:], -1)
	stride := (w + 7) / 8
	if len(hex) < stride*h {
		return nil, fmt.Errorf("xbm: %d bytes for %dx%d", len(hex), w, h)
	}
	bits := make([]byte, stride*h)
	for i := range bits {
		v, err := strconv.ParseUint(string(hex[i][2:]), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("xbm: %w", err)
		}
		bits[i] = byte(v)
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.Gray{Y: 0xff}
			if bits[y*stride+x/8]&(1<<(x%8)) != 0 {
				c.Y = 0
			}
			img.SetGray(x, y, c)
		}
	}
	return img, nil
}
