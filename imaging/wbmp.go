package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// maxDimension bounds decoded widths and heights.
const maxDimension = 1 << 14

// readMultiByte reads a WBMP multi-byte integer: seven bits per byte, high
// bit set on every byte but the last.
func readMultiByte(data []byte) (v, n int, ok bool) {
	for n < len(data) && n < 4 {
		b := data[n]
		v = v<<7 | int(b&0x7f)
		n++
		if b&0x80 == 0 {
			return v, n, true
		}
	}
	return 0, n, false
}

type wbmpDecoder struct{}

// Decode reads a type 0 WBMP: one bit per pixel, rows padded to a byte, a
// set bit being white.
func (wbmpDecoder) Decode(data []byte) (image.Image, error) {
	if len(data) < 2 || data[0] != 0 {
		return nil, fmt.Errorf("wbmp: unsupported type header")
	}
	pos := 2
	w, n, ok := readMultiByte(data[pos:])
	if !ok {
		return nil, fmt.Errorf("wbmp: bad width")
	}
	pos += n
	h, n, ok := readMultiByte(data[pos:])
	if !ok {
		return nil, fmt.Errorf("wbmp: bad height")
	}
	pos += n
	if w <= 0 || h <= 0 || w > maxDimension || h > maxDimension {
		return nil, fmt.Errorf("wbmp: invalid size %dx%d", w, h)
	}
	stride := (w + 7) / 8
	if len(data)-pos < stride*h {
		return nil, fmt.Errorf("wbmp: truncated data")
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := data[pos+y*stride:]
		for x := 0; x < w; x++ {
			if row[x/8]&(0x80>>(x%8)) != 0 {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img, nil
}
